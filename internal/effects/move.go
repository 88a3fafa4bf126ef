package effects

import (
	"math"
	"math/rand"
)

func init() {
	register("Scattered", newScattered)
	register("Expand", newExpand)
	register("Slide", newSlide)
}

// glide is the shared motion core: every character travels from a start
// position to its home cell with an ease-out curve and a per-char delay.
type glide struct {
	s      *Scene
	b      *buf
	sx, sy []float64
	delay  []int
	travel int
	tick   int
	done   bool
}

func newGlide(s *Scene, travel int) *glide {
	n := len(s.Chars)
	return &glide{
		s:      s,
		b:      newBuf(s.W, s.H),
		sx:     make([]float64, n),
		sy:     make([]float64, n),
		delay:  make([]int, n),
		travel: travel,
	}
}

func (g *glide) Step() (string, bool) {
	if g.done {
		return "", false
	}
	g.b.clear()

	settled := true
	for i, c := range g.s.Chars {
		t := float64(g.tick-g.delay[i]) / float64(g.travel)
		if t < 0 {
			t = 0
		}
		if t < 1 {
			settled = false
		}
		e := easeOutQuad(t)
		x := int(math.Round(lerp(g.sx[i], float64(c.X), e)))
		y := int(math.Round(lerp(g.sy[i], float64(c.Y), e)))
		g.b.set(x, y, c.Ch, c.Color)
	}

	frame := g.b.encode()
	g.tick++
	if settled {
		g.done = true
	}
	return frame, true
}

func newScattered(s *Scene, rng *rand.Rand) Effect {
	g := newGlide(s, 90)
	for i := range g.sx {
		g.sx[i] = rng.Float64() * float64(s.W-1)
		g.sy[i] = rng.Float64() * float64(s.H-1)
		g.delay[i] = rng.Intn(30)
	}
	return g
}

func newExpand(s *Scene, rng *rand.Rand) Effect {
	g := newGlide(s, 80)
	cx, cy := float64(s.W)/2, float64(s.H)/2
	for i := range g.sx {
		g.sx[i] = cx
		g.sy[i] = cy
		g.delay[i] = rng.Intn(10)
	}
	return g
}

func newSlide(s *Scene, rng *rand.Rand) Effect {
	g := newGlide(s, 70)

	minY := s.H
	for _, c := range s.Chars {
		if c.Y < minY {
			minY = c.Y
		}
	}
	off := float64(s.W + 4)
	for i, c := range s.Chars {
		row := c.Y - minY
		if row%2 == 0 {
			g.sx[i] = float64(c.X) - off
		} else {
			g.sx[i] = float64(c.X) + off
		}
		g.sy[i] = float64(c.Y)
		g.delay[i] = row*4 + rng.Intn(3)
	}
	return g
}
