package saver

import (
	"github.com/limehawk/tte-screensaver/internal/ansi"
)

// glyphRun is a horizontal stretch of one grid row drawable in a single
// call: same color, blanks only in the interior.
type glyphRun struct {
	X    int
	Text string
	FG   ansi.RGB
}

// rowRuns splits a grid row into maximal same-color runs. Interior blanks
// ride along inside a run (they advance, draw nothing); leading and
// trailing blanks are dropped and a color change starts a new run.
func rowRuns(g *ansi.Grid, y int) []glyphRun {
	var runs []glyphRun
	var text []rune
	var fg ansi.RGB
	startX := 0
	pending := 0
	active := false

	flush := func() {
		if active {
			runs = append(runs, glyphRun{X: startX, Text: string(text), FG: fg})
			text = text[:0]
			active = false
		}
	}

	for x := 0; x < g.W; x++ {
		c := g.At(x, y)
		if c.Ch == ' ' {
			if active {
				pending++
			}
			continue
		}
		if active && c.FG != fg {
			flush()
		}
		if !active {
			startX = x
			fg = c.FG
			pending = 0
			active = true
		}
		for ; pending > 0; pending-- {
			text = append(text, ' ')
		}
		text = append(text, c.Ch)
	}
	flush()
	return runs
}
