// Package saver owns the screensaver window: an ebiten game that pulls
// frames from the effect rotation, paints them as glyphs, and terminates
// on any user input.
package saver

import (
	"errors"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/rs/zerolog/log"

	"github.com/limehawk/tte-screensaver/internal/ansi"
	"github.com/limehawk/tte-screensaver/internal/config"
	"github.com/limehawk/tte-screensaver/internal/effects"
)

const (
	previewWidth  = 1280
	previewHeight = 720

	// Cursor travel beyond this many pixels from its first observed
	// position ends the saver.
	mouseMoveThreshold = 10
)

// Options selects how the window is presented.
type Options struct {
	// Windowed renders in a small window instead of fullscreen, used by
	// the settings preview.
	Windowed bool
	// Monitor pins the window to one monitor index; negative means the
	// primary.
	Monitor int
}

type game struct {
	cfg  config.Config
	rend *glyphRenderer
	mgr  *effects.Manager
	grid *ansi.Grid
	bg   color.RGBA
	rng  *rand.Rand

	width, height  int
	mouseX, mouseY int
	mouseSeen      bool
}

func (g *game) Update() error {
	if len(inpututil.AppendJustPressedKeys(nil)) > 0 {
		return ebiten.Termination
	}
	for _, b := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle} {
		if inpututil.IsMouseButtonJustPressed(b) {
			return ebiten.Termination
		}
	}
	x, y := ebiten.CursorPosition()
	if !g.mouseSeen {
		g.mouseX, g.mouseY, g.mouseSeen = x, y, true
	} else if abs(x-g.mouseX) > mouseMoveThreshold || abs(y-g.mouseY) > mouseMoveThreshold {
		return ebiten.Termination
	}

	if g.mgr == nil {
		if g.width == 0 || g.height == 0 {
			return nil
		}
		cols, rows := g.rend.cellGrid(g.width, g.height)
		scene := effects.NewScene(g.cfg.ASCIIArt, cols, rows)
		g.mgr = effects.NewManager(scene, g.cfg.EnabledEffects, g.cfg.Duration(), g.rng)
		g.grid = ansi.NewGrid(cols, rows)
		log.Info().Int("cols", cols).Int("rows", rows).Str("effect", g.mgr.CurrentName()).Msg("canvas ready")
	}

	g.grid.Parse(g.mgr.NextFrame())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	if g.grid == nil {
		return
	}
	for y := 0; y < g.grid.H; y++ {
		for _, run := range rowRuns(g.grid, y) {
			clr := color.RGBA{R: run.FG.R, G: run.FG.G, B: run.FG.B, A: 255}
			text.Draw(screen, run.Text, g.rend.face, run.X*g.rend.cellW, y*g.rend.cellH+g.rend.ascent, clr)
		}
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// MonitorCount reports how many monitors are attached.
func MonitorCount() int {
	return len(ebiten.AppendMonitors(nil))
}

// Run opens the saver window and blocks until user input or an error ends
// it. A clean input-triggered exit returns nil.
func Run(cfg config.Config, opts Options) error {
	rend, err := newGlyphRenderer(cfg.FontSize)
	if err != nil {
		return err
	}
	g := &game{
		cfg:  cfg,
		rend: rend,
		bg:   cfg.Background(),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	ebiten.SetWindowTitle("TTE Screensaver")
	if opts.Windowed {
		ebiten.SetWindowSize(previewWidth, previewHeight)
	} else {
		monitors := ebiten.AppendMonitors(nil)
		if opts.Monitor >= 0 && opts.Monitor < len(monitors) {
			ebiten.SetMonitor(monitors[opts.Monitor])
		} else if opts.Monitor >= len(monitors) {
			log.Warn().Int("monitor", opts.Monitor).Int("attached", len(monitors)).Msg("monitor index out of range, using primary")
		}
		ebiten.SetWindowDecorated(false)
		ebiten.SetWindowFloating(true)
		ebiten.SetFullscreen(true)
	}
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
	ebiten.SetTPS(cfg.TargetFPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
