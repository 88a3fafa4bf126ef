package effects

import (
	"math/rand"

	"github.com/limehawk/tte-screensaver/internal/ansi"
)

func init() {
	register("Print", newPrint)
	register("RandomSequence", newRandomSequence)
	register("Wipe", newWipe)
}

// typewriter prints the art in reading order with a block cursor riding the
// frontier.
type typewriter struct {
	s       *Scene
	b       *buf
	perTick int
	tick    int
	pause   int
	done    bool
}

func newPrint(s *Scene, rng *rand.Rand) Effect {
	n := len(s.Chars)
	return &typewriter{
		s:       s,
		b:       newBuf(s.W, s.H),
		perTick: n/240 + 1,
		pause:   8 + rng.Intn(8),
	}
}

func (t *typewriter) Step() (string, bool) {
	if t.done {
		return "", false
	}
	t.b.clear()

	shown := t.tick * t.perTick
	n := len(t.s.Chars)
	for i, c := range t.s.Chars {
		if i < shown {
			t.b.setChar(c)
		}
	}
	if shown < n {
		next := t.s.Chars[shown]
		t.b.set(next.X, next.Y, '█', ansi.RGB{R: 220, G: 220, B: 220})
	}

	frame := t.b.encode()
	t.tick++
	if shown >= n+t.pause*t.perTick {
		t.done = true
	}
	return frame, true
}

// randomSeq reveals characters in shuffled order, already in their final
// colors.
type randomSeq struct {
	s       *Scene
	b       *buf
	order   []int
	perTick int
	tick    int
	done    bool
}

func newRandomSequence(s *Scene, rng *rand.Rand) Effect {
	n := len(s.Chars)
	return &randomSeq{
		s:       s,
		b:       newBuf(s.W, s.H),
		order:   rng.Perm(n),
		perTick: n/200 + 1,
	}
}

func (r *randomSeq) Step() (string, bool) {
	if r.done {
		return "", false
	}
	r.b.clear()

	shown := r.tick * r.perTick
	for k, idx := range r.order {
		if k >= shown {
			break
		}
		r.b.setChar(r.s.Chars[idx])
	}

	frame := r.b.encode()
	r.tick++
	if shown >= len(r.order) {
		r.done = true
	}
	return frame, true
}

// wipe sweeps a bright column frontier left to right, leaving the finished
// art behind it.
type wipe struct {
	s        *Scene
	b        *buf
	frontier float64
	speed    float64
	done     bool
}

func newWipe(s *Scene, rng *rand.Rand) Effect {
	return &wipe{
		s:     s,
		b:     newBuf(s.W, s.H),
		speed: float64(s.W+8)/110 + rng.Float64()*0.2,
	}
}

func (w *wipe) Step() (string, bool) {
	if w.done {
		return "", false
	}
	w.b.clear()

	w.frontier += w.speed
	f := int(w.frontier)
	for _, c := range w.s.Chars {
		switch {
		case c.X < f-2:
			w.b.setChar(c)
		case c.X <= f:
			w.b.set(c.X, c.Y, c.Ch, ansi.RGB{R: 255, G: 255, B: 255})
		}
	}

	frame := w.b.encode()
	if f > w.s.W+2 {
		w.done = true
	}
	return frame, true
}
