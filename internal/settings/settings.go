package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/limehawk/tte-screensaver/internal/config"
)

// Run opens the settings form for the record at cfgPath and blocks until
// the user saves or cancels. Without a terminal it falls back to a dialog
// pointing at the settings file.
func Run(cfgPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return headless(cfgPath)
	}

	p := tea.NewProgram(newModel(cfgPath), tea.WithAltScreen())
	out, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := out.(model); ok && m.saved {
		fmt.Printf("Settings saved to %s\n", cfgPath)
	}
	return nil
}

// headless covers launches from the OS settings dialog, where there is no
// terminal to draw the form in. It makes sure the file exists and tells the
// user where it lives.
func headless(cfgPath string) error {
	if _, err := os.Stat(cfgPath); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(cfgPath, config.Default()); err != nil {
			return err
		}
		log.Info().Str("path", cfgPath).Msg("wrote default settings")
	}
	err := zenity.Info(
		"Run this program from a terminal to edit settings.\nThe settings file is at:\n"+cfgPath,
		zenity.Title("TTE Screensaver Settings"),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return nil
	}
	return err
}
