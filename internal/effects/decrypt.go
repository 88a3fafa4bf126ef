package effects

import (
	"math/rand"

	"github.com/limehawk/tte-screensaver/internal/ansi"
)

func init() {
	register("Decrypt", newDecrypt)
}

const cipherGlyphs = "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[]^_abcdefghijklmnopqrstuvwxyz{|}~"

var cipherGreen = ansi.RGB{R: 0, G: 180, B: 70}

// decrypt shows the art as churning cipher glyphs that lock into the real
// characters one by one.
type decrypt struct {
	s      *Scene
	b      *buf
	rng    *rand.Rand
	lockAt []int
	glyphs []rune
	tick   int
	total  int
	done   bool
}

func newDecrypt(s *Scene, rng *rand.Rand) Effect {
	n := len(s.Chars)
	d := &decrypt{
		s:      s,
		b:      newBuf(s.W, s.H),
		rng:    rng,
		lockAt: make([]int, n),
		glyphs: make([]rune, n),
		total:  160,
	}
	for i := 0; i < n; i++ {
		d.lockAt[i] = 10 + rng.Intn(d.total-30)
		d.glyphs[i] = rune(cipherGlyphs[rng.Intn(len(cipherGlyphs))])
	}
	return d
}

func (d *decrypt) Step() (string, bool) {
	if d.done {
		return "", false
	}
	d.b.clear()

	reroll := d.tick%3 == 0
	for i, c := range d.s.Chars {
		if d.tick >= d.lockAt[i] {
			d.b.setChar(c)
			continue
		}
		if reroll {
			d.glyphs[i] = rune(cipherGlyphs[d.rng.Intn(len(cipherGlyphs))])
		}
		d.b.set(c.X, c.Y, d.glyphs[i], cipherGreen)
	}

	frame := d.b.encode()
	d.tick++
	if d.tick > d.total {
		d.done = true
	}
	return frame, true
}
