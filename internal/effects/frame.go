package effects

import (
	"strconv"
	"strings"

	"github.com/limehawk/tte-screensaver/internal/ansi"
)

// buf accumulates one frame's cells before ANSI encoding. Out-of-canvas
// writes are dropped so emitted frames always parse back in bounds.
type buf struct {
	w, h  int
	cells []ansi.Cell
}

func newBuf(w, h int) *buf {
	b := &buf{w: w, h: h, cells: make([]ansi.Cell, w*h)}
	b.clear()
	return b
}

func (b *buf) clear() {
	for i := range b.cells {
		b.cells[i] = ansi.Cell{Ch: ' '}
	}
}

func (b *buf) set(x, y int, ch rune, fg ansi.RGB) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return
	}
	b.cells[y*b.w+x] = ansi.Cell{Ch: ch, FG: fg}
}

func (b *buf) setChar(c Char) {
	b.set(c.X, c.Y, c.Ch, c.Color)
}

// encode renders the buffer as one ANSI frame: a CUP per non-empty row,
// truecolor SGR only where the run color changes, and a trailing reset.
func (b *buf) encode() string {
	var sb strings.Builder
	sb.Grow(b.w * 4)

	wrote := false
	for y := 0; y < b.h; y++ {
		row := b.cells[y*b.w : (y+1)*b.w]

		first, last := -1, -1
		for x, c := range row {
			if c.Ch != ' ' {
				if first < 0 {
					first = x
				}
				last = x
			}
		}
		if first < 0 {
			continue
		}

		writeCUP(&sb, y+1, first+1)
		var cur ansi.RGB
		haveColor := false
		for x := first; x <= last; x++ {
			c := row[x]
			if c.Ch != ' ' && (!haveColor || c.FG != cur) {
				writeFG(&sb, c.FG)
				cur, haveColor = c.FG, true
			}
			sb.WriteRune(c.Ch)
		}
		wrote = true
	}

	if wrote {
		sb.WriteString("\x1b[0m")
	}
	return sb.String()
}

func writeCUP(sb *strings.Builder, row, col int) {
	sb.WriteString("\x1b[")
	sb.WriteString(strconv.Itoa(row))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(col))
	sb.WriteByte('H')
}

func writeFG(sb *strings.Builder, c ansi.RGB) {
	sb.WriteString("\x1b[38;2;")
	sb.WriteString(strconv.Itoa(int(c.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.B)))
	sb.WriteByte('m')
}
