package effects

import (
	"math"

	"github.com/limehawk/tte-screensaver/internal/ansi"
)

// hsvToRGB converts HSV to an RGB cell color (hue: 0-360, saturation: 0-1,
// value: 0-1).
func hsvToRGB(h, s, v float64) ansi.RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return ansi.RGB{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// scaleRGB dims a color toward black. f outside [0,1] is clamped.
func scaleRGB(c ansi.RGB, f float64) ansi.RGB {
	f = clamp01(f)
	return ansi.RGB{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}

// lerpRGB blends two colors; t=0 gives a, t=1 gives b.
func lerpRGB(a, b ansi.RGB, t float64) ansi.RGB {
	t = clamp01(t)
	return ansi.RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp01(t)
}

// easeOutQuad decelerates toward the end of the motion.
func easeOutQuad(t float64) float64 {
	t = clamp01(t)
	return t * (2 - t)
}
