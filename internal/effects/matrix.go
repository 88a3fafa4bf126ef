package effects

import (
	"math/rand"

	"github.com/limehawk/tte-screensaver/internal/ansi"
)

func init() {
	register("Matrix", newMatrix)
}

const matrixGlyphs = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ@#$%&*+=<>"

var (
	matrixGreen = ansi.RGB{R: 0, G: 255, B: 70}
	matrixHead  = ansi.RGB{R: 190, G: 255, B: 190}
)

type streamer struct {
	y      float64
	speed  float64
	length int
}

// matrix streams glyph trails down every column while the art locks in
// underneath, green at first and settling into its final colors once the
// rain stops.
type matrix struct {
	s        *Scene
	b        *buf
	rng      *rand.Rand
	cols     []streamer
	lockAt   []int
	tick     int
	settleAt int
	total    int
	done     bool
}

const matrixSettleTicks = 40

func newMatrix(s *Scene, rng *rand.Rand) Effect {
	m := &matrix{s: s, b: newBuf(s.W, s.H), rng: rng}

	m.cols = make([]streamer, s.W)
	for x := range m.cols {
		m.cols[x] = streamer{
			y:      -rng.Float64() * float64(s.H) * 2,
			speed:  0.3 + rng.Float64()*0.9,
			length: 4 + rng.Intn(10),
		}
	}

	n := len(s.Chars)
	revealStart := s.H / 2
	revealSpan := 180
	order := rng.Perm(n)
	m.lockAt = make([]int, n)
	for k, idx := range order {
		m.lockAt[idx] = revealStart + k*revealSpan/n
	}

	m.settleAt = revealStart + revealSpan + 10
	m.total = m.settleAt + matrixSettleTicks
	return m
}

func (m *matrix) Step() (string, bool) {
	if m.done {
		return "", false
	}
	m.b.clear()

	if m.tick < m.settleAt {
		for x := range m.cols {
			st := &m.cols[x]
			st.y += st.speed
			head := int(st.y)
			for k := 0; k < st.length; k++ {
				y := head - k
				if y < 0 || y >= m.s.H {
					continue
				}
				glyph := rune(matrixGlyphs[m.rng.Intn(len(matrixGlyphs))])
				if k == 0 {
					m.b.set(x, y, glyph, matrixHead)
				} else {
					fade := 1 - float64(k)/float64(st.length)
					m.b.set(x, y, glyph, scaleRGB(matrixGreen, 0.25+0.75*fade))
				}
			}
			if head-st.length > m.s.H {
				st.y = -m.rng.Float64() * float64(m.s.H)
				st.speed = 0.3 + m.rng.Float64()*0.9
			}
		}
	}

	for i, c := range m.s.Chars {
		if m.tick < m.lockAt[i] {
			continue
		}
		col := matrixGreen
		if m.tick >= m.settleAt {
			t := float64(m.tick-m.settleAt) / float64(matrixSettleTicks)
			col = lerpRGB(matrixGreen, c.Color, t)
		}
		m.b.set(c.X, c.Y, c.Ch, col)
	}

	frame := m.b.encode()
	m.tick++
	if m.tick > m.total {
		m.done = true
	}
	return frame, true
}
