// Package ansi parses escape-encoded animation frames into a cell grid.
//
// Only the sequences the effects engine emits matter here: cursor
// positioning (CUP) and SGR foreground colors in truecolor, xterm-256 and
// basic forms. Everything else is skipped. This is not a terminal emulator.
package ansi

import (
	"strconv"
	"unicode/utf8"
)

// RGB is a 24-bit foreground color.
type RGB struct {
	R, G, B uint8
}

// White is the default foreground color of a fresh grid.
var White = RGB{255, 255, 255}

// Cell is one character cell of a parsed frame.
type Cell struct {
	Ch rune
	FG RGB
}

// Grid holds a parsed frame as a fixed-size cell matrix. The zero cell is a
// space in the default foreground, so untouched cells render as background.
type Grid struct {
	W, H  int
	cells []Cell
}

// NewGrid returns a cleared w by h grid.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{W: w, H: h, cells: make([]Cell, w*h)}
	g.Reset()
	return g
}

// At returns the cell at column x, row y. Out-of-range coordinates return a
// blank cell.
func (g *Grid) At(x, y int) Cell {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return Cell{Ch: ' ', FG: White}
	}
	return g.cells[y*g.W+x]
}

// Reset clears every cell back to a blank in the default foreground.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Cell{Ch: ' ', FG: White}
	}
}

// Parse interprets one frame into the grid, replacing its previous contents.
// The cursor starts at the top-left; CUP sequences are 1-indexed. Characters
// landing outside the grid are dropped but still advance the cursor.
func (g *Grid) Parse(frame string) {
	g.Reset()

	cur := White
	row, col := 0, 0

	for i := 0; i < len(frame); {
		c := frame[i]

		if c == 0x1b && i+1 < len(frame) && frame[i+1] == '[' {
			params, final, end := scanCSI(frame, i+2)
			switch final {
			case 'H':
				if r, cl, ok := cupParams(params); ok {
					row, col = r-1, cl-1
				}
				i = end
				continue
			case 'm':
				cur = sgrColor(params, cur)
				i = end
				continue
			case 0:
				// Malformed sequence, drop the introducer and rescan.
				i += 2
				continue
			default:
				i = end
				continue
			}
		}

		switch c {
		case '\n':
			row++
			col = 0
			i++
		case '\r':
			col = 0
			i++
		default:
			ch, size := utf8.DecodeRuneInString(frame[i:])
			if row >= 0 && row < g.H && col >= 0 && col < g.W {
				g.cells[row*g.W+col] = Cell{Ch: ch, FG: cur}
			}
			col++
			i += size
		}
	}
}

// scanCSI reads the parameter bytes and final letter of a CSI sequence
// starting just past "ESC[". A zero final byte means the sequence never
// terminated with a letter.
func scanCSI(s string, start int) (params string, final byte, end int) {
	i := start
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == ';' {
			i++
			continue
		}
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			return s[start:i], c, i + 1
		}
		return "", 0, i
	}
	return "", 0, i
}

// cupParams extracts "row;col" from a CUP parameter string. Both numbers
// must be present, matching the emitter's output.
func cupParams(params string) (row, col int, ok bool) {
	sep := -1
	for i := 0; i < len(params); i++ {
		if params[i] == ';' {
			sep = i
			break
		}
	}
	if sep <= 0 || sep == len(params)-1 {
		return 0, 0, false
	}
	row, err := strconv.Atoi(params[:sep])
	if err != nil {
		return 0, 0, false
	}
	col, err = strconv.Atoi(params[sep+1:])
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// sgrColor applies an SGR parameter list to the current foreground. The
// first color-bearing parameter wins; reset returns the default. Unknown
// parameters leave the color untouched.
func sgrColor(params string, cur RGB) RGB {
	if params == "" {
		return White
	}

	codes := splitCodes(params)
	for i := 0; i < len(codes); i++ {
		code, ok := codes[i].val, codes[i].ok
		if !ok {
			continue
		}
		switch {
		case code == 0:
			return White
		case code == 38:
			if i+1 >= len(codes) || !codes[i+1].ok {
				continue
			}
			switch codes[i+1].val {
			case 2:
				if i+4 < len(codes) && codes[i+2].ok && codes[i+3].ok && codes[i+4].ok {
					return RGB{clampByte(codes[i+2].val), clampByte(codes[i+3].val), clampByte(codes[i+4].val)}
				}
				i += 4
			case 5:
				if i+2 < len(codes) && codes[i+2].ok {
					return xtermToRGB(codes[i+2].val)
				}
				i += 2
			}
		case code >= 30 && code <= 37:
			return basicColor(code-30, false)
		case code >= 90 && code <= 97:
			return basicColor(code-90, true)
		}
	}
	return cur
}

type sgrCode struct {
	val int
	ok  bool
}

func splitCodes(params string) []sgrCode {
	var codes []sgrCode
	start := 0
	for i := 0; i <= len(params); i++ {
		if i == len(params) || params[i] == ';' {
			n, err := strconv.Atoi(params[start:i])
			codes = append(codes, sgrCode{val: n, ok: err == nil})
			start = i + 1
		}
	}
	return codes
}

var basicColors = [8]RGB{
	{0, 0, 0},       // black
	{170, 0, 0},     // red
	{0, 170, 0},     // green
	{170, 85, 0},    // yellow
	{0, 0, 170},     // blue
	{170, 0, 170},   // magenta
	{0, 170, 170},   // cyan
	{170, 170, 170}, // white
}

var brightColors = [8]RGB{
	{85, 85, 85},    // gray
	{255, 85, 85},   // bright red
	{85, 255, 85},   // bright green
	{255, 255, 85},  // bright yellow
	{85, 85, 255},   // bright blue
	{255, 85, 255},  // bright magenta
	{85, 255, 255},  // bright cyan
	{255, 255, 255}, // bright white
}

func basicColor(index int, bright bool) RGB {
	if index < 0 || index > 7 {
		return White
	}
	if bright {
		return brightColors[index]
	}
	return basicColors[index]
}

// xtermToRGB converts an xterm-256 palette index: 0..15 map onto the basic
// tables, 16..231 form a 6x6x6 cube with components scaled by 51, and
// 232..255 is a 24-step grayscale ramp.
func xtermToRGB(n int) RGB {
	switch {
	case n < 0 || n > 255:
		return White
	case n < 16:
		return basicColor(n%8, n >= 8)
	case n < 232:
		n -= 16
		r := (n / 36) % 6
		g := (n / 6) % 6
		b := n % 6
		return RGB{uint8(r * 51), uint8(g * 51), uint8(b * 51)}
	default:
		v := uint8((n-232)*10 + 8)
		return RGB{v, v, v}
	}
}

func clampByte(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
