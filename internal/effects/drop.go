package effects

import (
	"math/rand"

	"github.com/limehawk/tte-screensaver/internal/ansi"
)

func init() {
	register("Rain", newRain)
	register("Pour", newPour)
}

type raindrop struct {
	delay  int
	y      float64
	speed  float64
	tint   ansi.RGB
	landed bool
}

// rain drops every character from above the canvas onto its home cell, each
// with its own start delay and fall speed.
type rain struct {
	s     *Scene
	b     *buf
	drops []raindrop
	tick  int
	limit int
	done  bool
}

func newRain(s *Scene, rng *rand.Rand) Effect {
	r := &rain{s: s, b: newBuf(s.W, s.H)}
	r.drops = make([]raindrop, len(s.Chars))
	for i := range r.drops {
		r.drops[i] = raindrop{
			delay: rng.Intn(50),
			y:     -float64(rng.Intn(s.H/2 + 1)),
			speed: 0.3 + rng.Float64()*0.7,
			tint:  hsvToRGB(200+rng.Float64()*40, 0.6, 0.95),
		}
	}
	r.limit = 50 + int(float64(s.H)/0.3) + int(float64(s.H)/0.3)/2
	return r
}

func (r *rain) Step() (string, bool) {
	if r.done {
		return "", false
	}
	r.b.clear()

	allLanded := true
	for i := range r.drops {
		d := &r.drops[i]
		c := r.s.Chars[i]
		if d.landed {
			r.b.setChar(c)
			continue
		}
		if r.tick < d.delay {
			allLanded = false
			continue
		}
		d.y += d.speed
		if int(d.y) >= c.Y || r.tick >= r.limit {
			d.landed = true
			r.b.setChar(c)
			continue
		}
		allLanded = false
		if d.y >= 0 {
			r.b.set(c.X, int(d.y), c.Ch, d.tint)
		}
	}

	r.tick++
	if allLanded {
		r.done = true
	}
	return r.b.encode(), true
}

// pour releases characters in reading order from the top edge, a steady
// stream filling the art from its first row down.
type pour struct {
	s       *Scene
	b       *buf
	startAt []int
	ys      []float64
	speeds  []float64
	landed  []bool
	tick    int
	limit   int
	done    bool
}

func newPour(s *Scene, rng *rand.Rand) Effect {
	n := len(s.Chars)
	p := &pour{
		s:       s,
		b:       newBuf(s.W, s.H),
		startAt: make([]int, n),
		ys:      make([]float64, n),
		speeds:  make([]float64, n),
		landed:  make([]bool, n),
	}
	perTick := n/150 + 1
	for i := 0; i < n; i++ {
		p.startAt[i] = i / perTick
		p.ys[i] = -1
		p.speeds[i] = 1.2 + rng.Float64()*0.5
	}
	p.limit = 150 + int(float64(s.H)/1.2) + 20
	return p
}

func (p *pour) Step() (string, bool) {
	if p.done {
		return "", false
	}
	p.b.clear()

	allLanded := true
	for i, c := range p.s.Chars {
		if p.landed[i] {
			p.b.setChar(c)
			continue
		}
		if p.tick < p.startAt[i] {
			allLanded = false
			continue
		}
		p.ys[i] += p.speeds[i]
		if int(p.ys[i]) >= c.Y || p.tick >= p.limit {
			p.landed[i] = true
			p.b.setChar(c)
			continue
		}
		allLanded = false
		if p.ys[i] >= 0 {
			p.b.set(c.X, int(p.ys[i]), c.Ch, scaleRGB(c.Color, 0.75))
		}
	}

	p.tick++
	if allLanded {
		p.done = true
	}
	return p.b.encode(), true
}
