package settings

import (
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ncruces/zenity"

	"github.com/limehawk/tte-screensaver/internal/config"
)

type previewDoneMsg struct{ err error }

type artPickedMsg struct {
	art string
	err error
}

type soundPickedMsg struct {
	path string
	err  error
}

// previewCmd writes the unsaved record to a temp file and runs this binary
// against it in a window. The message arrives when the preview closes.
func previewCmd(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		exe, err := os.Executable()
		if err != nil {
			return previewDoneMsg{err: err}
		}
		tmp, err := os.CreateTemp("", "tte-preview-*.json")
		if err != nil {
			return previewDoneMsg{err: err}
		}
		path := tmp.Name()
		_ = tmp.Close()
		defer func() { _ = os.Remove(path) }()

		if err := config.Save(path, cfg); err != nil {
			return previewDoneMsg{err: err}
		}
		return previewDoneMsg{err: exec.Command(exe, "/s", "-window", "-config", path).Run()}
	}
}

func pickArtCmd() tea.Msg {
	filename, err := zenity.SelectFile(
		zenity.Title("Import ASCII Art"),
		zenity.FileFilters{{
			Name:     "Text",
			Patterns: []string{"*.txt", "*.asc", "*.ans"},
		}},
	)
	if err != nil {
		return artPickedMsg{err: err}
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return artPickedMsg{err: err}
	}
	return artPickedMsg{art: string(data)}
}

func pickSoundCmd() tea.Msg {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose Sound File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		return soundPickedMsg{err: err}
	}
	return soundPickedMsg{path: filename}
}
