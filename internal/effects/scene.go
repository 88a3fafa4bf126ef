package effects

import (
	"strings"
	"unicode"

	"github.com/limehawk/tte-screensaver/internal/ansi"
)

// Char is one non-blank character of the art: its rune, home cell and the
// color it settles into when an effect completes.
type Char struct {
	Ch    rune
	X, Y  int
	Color ansi.RGB
}

// Scene is the user's art laid out centered on a W by H cell canvas. Every
// effect animates the same scene; characters whose home falls outside the
// canvas are clipped at construction.
type Scene struct {
	W, H  int
	Chars []Char
}

// NewScene centers art on a w by h canvas and assigns each character its
// final color from a diagonal hue gradient.
func NewScene(art string, w, h int) *Scene {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	art = strings.ReplaceAll(art, "\r\n", "\n")
	lines := strings.Split(art, "\n")

	artW := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > artW {
			artW = n
		}
	}
	artH := len(lines)

	offX := (w - artW) / 2
	if offX < 0 {
		offX = 0
	}
	offY := (h - artH) / 2
	if offY < 0 {
		offY = 0
	}

	s := &Scene{W: w, H: h}
	for y, line := range lines {
		for x, r := range []rune(line) {
			if unicode.IsSpace(r) {
				continue
			}
			hx, hy := offX+x, offY+y
			if hx >= w || hy >= h {
				continue
			}
			s.Chars = append(s.Chars, Char{Ch: r, X: hx, Y: hy})
		}
	}

	// Final colors run indigo to violet along the art's diagonal.
	span := float64(artW + artH)
	if span == 0 {
		span = 1
	}
	for i := range s.Chars {
		c := &s.Chars[i]
		t := float64(c.X-offX+c.Y-offY) / span
		c.Color = hsvToRGB(210+75*t, 0.65, 1.0)
	}
	return s
}
