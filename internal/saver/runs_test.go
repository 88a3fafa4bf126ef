package saver

import (
	"testing"

	"github.com/limehawk/tte-screensaver/internal/ansi"
)

func parseRow(t *testing.T, frame string) *ansi.Grid {
	t.Helper()
	g := ansi.NewGrid(12, 1)
	g.Parse(frame)
	return g
}

func TestRowRunsJoinsInteriorBlanks(t *testing.T) {
	g := parseRow(t, "\x1b[1;2H\x1b[38;2;255;0;0mA B")
	runs := rowRuns(g, 0)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1: %+v", len(runs), runs)
	}
	r := runs[0]
	if r.X != 1 || r.Text != "A B" {
		t.Errorf("run = %+v, want X=1 Text=%q", r, "A B")
	}
	if r.FG != (ansi.RGB{R: 255}) {
		t.Errorf("run color = %+v, want red", r.FG)
	}
}

func TestRowRunsSplitsOnColorChange(t *testing.T) {
	g := parseRow(t, "\x1b[38;2;255;0;0mAB\x1b[38;2;0;0;255mCD")
	runs := rowRuns(g, 0)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2: %+v", len(runs), runs)
	}
	if runs[0].Text != "AB" || runs[0].X != 0 {
		t.Errorf("first run = %+v", runs[0])
	}
	if runs[1].Text != "CD" || runs[1].X != 2 {
		t.Errorf("second run = %+v", runs[1])
	}
	if runs[0].FG == runs[1].FG {
		t.Error("runs share a color, want distinct")
	}
}

func TestRowRunsDropsEdgeBlanks(t *testing.T) {
	g := parseRow(t, "\x1b[1;4HX")
	runs := rowRuns(g, 0)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1: %+v", len(runs), runs)
	}
	if runs[0].X != 3 || runs[0].Text != "X" {
		t.Errorf("run = %+v, want X=3 Text=%q", runs[0], "X")
	}
}

func TestRowRunsBlankRow(t *testing.T) {
	g := ansi.NewGrid(8, 2)
	if runs := rowRuns(g, 1); len(runs) != 0 {
		t.Errorf("blank row produced runs: %+v", runs)
	}
}

func TestRowRunsDiscardsBlanksBeforeColorChange(t *testing.T) {
	// The gap between A and B belongs to neither run once the color flips.
	g := parseRow(t, "\x1b[38;2;255;0;0mA  \x1b[38;2;0;255;0mB")
	runs := rowRuns(g, 0)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2: %+v", len(runs), runs)
	}
	if runs[0].Text != "A" {
		t.Errorf("first run text = %q, want %q", runs[0].Text, "A")
	}
	if runs[1].X != 3 || runs[1].Text != "B" {
		t.Errorf("second run = %+v, want X=3 Text=%q", runs[1], "B")
	}
}
