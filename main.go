// TTE Screensaver renders ASCII art with animated terminal text effects.
//
// The binary follows the Windows screensaver argument convention: /s runs
// the saver fullscreen, /c (or no arguments) opens the settings form, /p
// acknowledges a window-handle preview request and exits. Everything else
// falls through to settings.
package main

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/limehawk/tte-screensaver/internal/config"
	"github.com/limehawk/tte-screensaver/internal/saver"
	"github.com/limehawk/tte-screensaver/internal/settings"
	"github.com/limehawk/tte-screensaver/internal/sound"
)

type mode int

const (
	modeSettings mode = iota
	modeSaver
	modePreviewStub
)

type cliArgs struct {
	mode    mode
	config  string
	monitor int
	window  bool
}

// parseArgs implements the screensaver dispatch. Mode tokens match by
// prefix in either slash or dash form, so the /c:1234 variant the OS
// passes still selects settings. The long flags are internal; the process
// passes them to itself for previews and extra monitors.
func parseArgs(args []string) cliArgs {
	out := cliArgs{monitor: -1}

	var rest []string
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "-config", "--config":
			if i+1 < len(args) {
				i++
				out.config = args[i]
			}
		case "-monitor", "--monitor":
			if i+1 < len(args) {
				i++
				if n, err := strconv.Atoi(args[i]); err == nil {
					out.monitor = n
				}
			}
		case "-window", "--window":
			out.window = true
		default:
			rest = append(rest, strings.ToLower(args[i]))
		}
	}

	var sawS, sawC, sawP bool
	for _, t := range rest {
		switch {
		case strings.HasPrefix(t, "/s") || strings.HasPrefix(t, "-s"):
			sawS = true
		case strings.HasPrefix(t, "/c") || strings.HasPrefix(t, "-c"):
			sawC = true
		case strings.HasPrefix(t, "/p") || strings.HasPrefix(t, "-p"):
			sawP = true
		}
	}
	switch {
	case sawS:
		out.mode = modeSaver
	case sawC:
		out.mode = modeSettings
	case sawP:
		out.mode = modePreviewStub
	default:
		out.mode = modeSettings
	}
	return out
}

// setupLogging writes structured logs to saver.log next to the settings
// file, plus a readable console stream when stderr is a terminal. The
// returned func closes the file sink.
func setupLogging(dir string) func() {
	var sinks []io.Writer
	var file *os.File

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "saver.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				file = f
				sinks = append(sinks, f)
			}
		}
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		sinks = append(sinks, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if len(sinks) == 0 {
		log.Logger = zerolog.Nop()
	} else {
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(sinks...)).With().Timestamp().Logger()
	}
	return func() {
		if file != nil {
			_ = file.Close()
		}
	}
}

func main() {
	args := parseArgs(os.Args[1:])

	cfgPath := args.config
	if cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			cfgPath = p
		}
	}
	var cfgDir string
	if cfgPath != "" {
		cfgDir = filepath.Dir(cfgPath)
	}
	closeLogs := setupLogging(cfgDir)
	defer closeLogs()

	switch args.mode {
	case modeSaver:
		runSaver(args, cfgPath)
	case modePreviewStub:
		// The tiny preview inside the OS dialog renders into a foreign
		// window handle; acknowledge and leave it blank.
		log.Debug().Msg("preview handle request, exiting")
	default:
		if err := settings.Run(cfgPath); err != nil {
			log.Error().Err(err).Msg("settings form failed")
			_ = zenity.Error("Could not open settings:\n"+err.Error(), zenity.Title("TTE Screensaver"))
			os.Exit(1)
		}
	}
}

func runSaver(args cliArgs, cfgPath string) {
	cfg := config.Load(cfgPath)
	log.Info().Str("config", cfgPath).Str("effects", strings.Join(cfg.EnabledEffects, ",")).
		Bool("windowed", args.window).Int("monitor", args.monitor).Msg("starting")

	if cfg.SoundPath != "" && args.monitor <= 0 {
		// Only the primary instance plays, so the track is heard once.
		player, err := sound.Start(cfg.SoundPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.SoundPath).Msg("soundtrack unavailable, running silent")
		} else {
			defer player.Close()
		}
	}

	opts := saver.Options{Windowed: args.window, Monitor: args.monitor}
	if !args.window && args.monitor < 0 && cfg.AllMonitors {
		opts.Monitor = 0
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		spawnSiblings(ctx, cfgPath)
	}

	if err := saver.Run(cfg, opts); err != nil {
		log.Error().Err(err).Msg("screensaver failed")
		_ = zenity.Error("The screensaver could not start:\n"+err.Error(), zenity.Title("TTE Screensaver"))
		os.Exit(1)
	}
}

// spawnSiblings starts one copy of this binary per extra monitor. The
// children die with the context when the parent's own window closes.
func spawnSiblings(ctx context.Context, cfgPath string) {
	n := saver.MonitorCount()
	if n <= 1 {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		log.Warn().Err(err).Msg("cannot respawn for extra monitors")
		return
	}
	for i := 1; i < n; i++ {
		argv := []string{"/s", "-monitor", strconv.Itoa(i)}
		if cfgPath != "" {
			argv = append(argv, "-config", cfgPath)
		}
		cmd := exec.CommandContext(ctx, exe, argv...)
		if err := cmd.Start(); err != nil {
			log.Warn().Err(err).Int("monitor", i).Msg("could not cover monitor")
			continue
		}
		log.Debug().Int("monitor", i).Int("pid", cmd.Process.Pid).Msg("sibling started")
		go func() { _ = cmd.Wait() }()
	}
}
