package effects

import (
	"math/rand"
	"sort"

	"github.com/limehawk/tte-screensaver/internal/ansi"
)

func init() {
	register("Beams", newBeams)
	register("ColorShift", newColorShift)
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

type beam struct {
	vertical bool
	index    int
	startAt  int
	pos      float64
}

var (
	beamHead = ansi.RGB{R: 200, G: 255, B: 255}
	beamTail = ansi.RGB{R: 0, G: 170, B: 210}
)

const (
	beamSpeed    = 2.0
	beamTrail    = 5
	beamBrighten = 40
)

// beams sweeps bright streaks along every row and column the art occupies;
// characters a beam has crossed glow dim until a final brighten pass.
type beams struct {
	s        *Scene
	b        *buf
	list     []beam
	rowProg  map[int]float64
	colProg  map[int]float64
	tick     int
	sweepEnd int
	total    int
	done     bool
}

func newBeams(s *Scene, rng *rand.Rand) Effect {
	rows := map[int]bool{}
	cols := map[int]bool{}
	for _, c := range s.Chars {
		rows[c.Y] = true
		cols[c.X] = true
	}

	// Sorted key order keeps construction deterministic for a given seed.
	var list []beam
	for _, y := range sortedKeys(rows) {
		list = append(list, beam{vertical: false, index: y})
	}
	for _, x := range sortedKeys(cols) {
		list = append(list, beam{vertical: true, index: x})
	}
	rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })

	spacing := 200/(len(list)+1) + 1
	longest := 0
	for i := range list {
		list[i].startAt = i * spacing
		axis := s.W
		if list[i].vertical {
			axis = s.H
		}
		end := list[i].startAt + int(float64(axis+beamTrail)/beamSpeed) + 1
		if end > longest {
			longest = end
		}
	}

	e := &beams{
		s:        s,
		b:        newBuf(s.W, s.H),
		list:     list,
		rowProg:  map[int]float64{},
		colProg:  map[int]float64{},
		sweepEnd: longest,
	}
	e.total = e.sweepEnd + beamBrighten
	return e
}

func (e *beams) Step() (string, bool) {
	if e.done {
		return "", false
	}
	e.b.clear()

	for i := range e.list {
		bm := &e.list[i]
		if e.tick < bm.startAt {
			continue
		}
		bm.pos += beamSpeed
		if bm.vertical {
			if p, ok := e.colProg[bm.index]; !ok || bm.pos > p {
				e.colProg[bm.index] = bm.pos
			}
		} else {
			if p, ok := e.rowProg[bm.index]; !ok || bm.pos > p {
				e.rowProg[bm.index] = bm.pos
			}
		}
	}

	// Lit characters first, beams drawn over them.
	for _, c := range e.s.Chars {
		rp, rok := e.rowProg[c.Y]
		cp, cok := e.colProg[c.X]
		lit := (rok && rp >= float64(c.X)) || (cok && cp >= float64(c.Y))
		if !lit {
			continue
		}
		col := scaleRGB(c.Color, 0.45)
		if e.tick >= e.sweepEnd {
			t := float64(e.tick-e.sweepEnd) / beamBrighten
			col = lerpRGB(scaleRGB(c.Color, 0.45), c.Color, t)
		}
		e.b.set(c.X, c.Y, c.Ch, col)
	}

	if e.tick < e.sweepEnd {
		for i := range e.list {
			bm := &e.list[i]
			if e.tick < bm.startAt {
				continue
			}
			head := int(bm.pos)
			for k := 0; k <= beamTrail; k++ {
				p := head - k
				if p < 0 {
					break
				}
				col := beamHead
				glyph := '━'
				if k > 0 {
					col = scaleRGB(beamTail, 1-float64(k)/float64(beamTrail+1))
				}
				if bm.vertical {
					glyph = '┃'
					e.b.set(bm.index, p, glyph, col)
				} else {
					e.b.set(p, bm.index, glyph, col)
				}
			}
		}
	}

	frame := e.b.encode()
	e.tick++
	if e.tick > e.total {
		e.done = true
	}
	return frame, true
}

// colorShift holds the finished art on screen while its hues cycle, then
// settles into the final gradient.
type colorShift struct {
	s        *Scene
	b        *buf
	phase    float64
	tick     int
	shiftEnd int
	total    int
	done     bool
}

const colorShiftSettle = 40

func newColorShift(s *Scene, rng *rand.Rand) Effect {
	return &colorShift{
		s:        s,
		b:        newBuf(s.W, s.H),
		phase:    rng.Float64() * 360,
		shiftEnd: 240,
		total:    240 + colorShiftSettle,
	}
}

func (c *colorShift) Step() (string, bool) {
	if c.done {
		return "", false
	}
	c.b.clear()

	shift := c.tick
	if shift > c.shiftEnd {
		shift = c.shiftEnd
	}
	for _, ch := range c.s.Chars {
		hue := c.phase + float64(shift)*3 + float64(ch.X+ch.Y)*4
		col := hsvToRGB(hue, 0.7, 1.0)
		if c.tick >= c.shiftEnd {
			t := float64(c.tick-c.shiftEnd) / colorShiftSettle
			col = lerpRGB(col, ch.Color, t)
		}
		c.b.set(ch.X, ch.Y, ch.Ch, col)
	}

	frame := c.b.encode()
	c.tick++
	if c.tick > c.total {
		c.done = true
	}
	return frame, true
}
