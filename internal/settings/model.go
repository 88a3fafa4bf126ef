// Package settings is the terminal configuration form. It edits the same
// record the saver reads: art, effect selection, timing, colors and sound.
package settings

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ncruces/zenity"

	"github.com/limehawk/tte-screensaver/internal/config"
	"github.com/limehawk/tte-screensaver/internal/effects"
)

type section int

const (
	secArt section = iota
	secEffects
	secFields
	secMonitors
	sectionCount
)

type fieldID int

const (
	fieldFontSize fieldID = iota
	fieldFPS
	fieldDuration
	fieldBackground
	fieldSoundPath
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldFontSize:   "Font Size",
	fieldFPS:        "Target FPS",
	fieldDuration:   "Effect Duration (s, 0 = run to completion)",
	fieldBackground: "Background Color",
	fieldSoundPath:  "Sound File",
}

type model struct {
	cfgPath string

	artLines    []string
	effectNames []string
	enabled     map[string]bool
	effCursor   int
	fields      [fieldCount]string
	fieldCursor fieldID
	allMonitors bool

	section   section
	status    string
	statusErr bool

	previewing bool
	spin       spinner.Model

	saved  bool
	width  int
	height int
}

func newModel(cfgPath string) model {
	cfg := config.Load(cfgPath)

	m := model{
		cfgPath:     cfgPath,
		artLines:    splitArt(cfg.ASCIIArt),
		effectNames: effects.Names(),
		enabled:     make(map[string]bool, len(cfg.EnabledEffects)),
		allMonitors: cfg.AllMonitors,
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(colorAccent)),
		),
	}
	for _, name := range cfg.EnabledEffects {
		m.enabled[name] = true
	}
	m.fields[fieldFontSize] = strconv.Itoa(cfg.FontSize)
	m.fields[fieldFPS] = strconv.Itoa(cfg.TargetFPS)
	m.fields[fieldDuration] = strconv.Itoa(cfg.EffectDuration)
	m.fields[fieldBackground] = cfg.BackgroundColor
	m.fields[fieldSoundPath] = cfg.SoundPath
	return m
}

func splitArt(art string) []string {
	art = strings.ReplaceAll(art, "\r\n", "\n")
	lines := strings.Split(art, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.previewing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case previewDoneMsg:
		m.previewing = false
		if msg.err != nil {
			m.status, m.statusErr = "Preview failed: "+msg.err.Error(), true
		} else {
			m.status, m.statusErr = "Preview closed.", false
		}
		return m, nil

	case artPickedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, zenity.ErrCanceled) {
				m.status, m.statusErr = "Import failed: "+msg.err.Error(), true
			}
			return m, nil
		}
		m.artLines = splitArt(strings.TrimRight(msg.art, " \t\r\n"))
		m.section = secArt
		m.status, m.statusErr = "Art imported.", false
		return m, nil

	case soundPickedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, zenity.ErrCanceled) {
				m.status, m.statusErr = "Sound selection failed: "+msg.err.Error(), true
			}
			return m, nil
		}
		m.fields[fieldSoundPath] = msg.path
		m.section = secFields
		m.fieldCursor = fieldSoundPath
		m.status, m.statusErr = "Sound file selected.", false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if m.previewing {
		if k == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch k {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.section = (m.section + 1) % sectionCount
		return m, nil
	case "shift+tab":
		m.section = (m.section + sectionCount - 1) % sectionCount
		return m, nil
	case "ctrl+s":
		cfg, problem := m.buildConfig()
		if problem != "" {
			m.status, m.statusErr = problem, true
			return m, nil
		}
		if err := config.Save(m.cfgPath, cfg); err != nil {
			m.status, m.statusErr = "Save failed: "+err.Error(), true
			return m, nil
		}
		m.saved = true
		return m, tea.Quit
	case "ctrl+p":
		cfg, problem := m.buildConfig()
		if problem != "" {
			m.status, m.statusErr = problem, true
			return m, nil
		}
		m.previewing = true
		m.status, m.statusErr = "", false
		return m, tea.Batch(m.spin.Tick, previewCmd(cfg))
	case "ctrl+o":
		return m, pickArtCmd
	case "ctrl+f":
		return m, pickSoundCmd
	}

	switch m.section {
	case secArt:
		return m.editArt(msg), nil
	case secEffects:
		return m.editEffects(k), nil
	case secFields:
		return m.editField(msg), nil
	case secMonitors:
		if k == " " {
			m.allMonitors = !m.allMonitors
		}
		return m, nil
	}
	return m, nil
}

func (m model) editArt(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyEnter:
		m.artLines = append(m.artLines, "")
	case tea.KeyBackspace:
		last := len(m.artLines) - 1
		switch {
		case m.artLines[last] != "":
			runes := []rune(m.artLines[last])
			m.artLines[last] = string(runes[:len(runes)-1])
		case last > 0:
			m.artLines = m.artLines[:last]
		}
	case tea.KeyRunes, tea.KeySpace:
		s := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			s = " "
		}
		// Bracketed paste arrives as one message, newlines included.
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
		for i, part := range strings.Split(s, "\n") {
			if i > 0 {
				m.artLines = append(m.artLines, "")
			}
			m.artLines[len(m.artLines)-1] += part
		}
	}
	return m
}

func (m model) editEffects(k string) model {
	switch k {
	case "up", "k":
		if m.effCursor > 0 {
			m.effCursor--
		}
	case "down", "j":
		if m.effCursor < len(m.effectNames)-1 {
			m.effCursor++
		}
	case " ":
		name := m.effectNames[m.effCursor]
		m.enabled[name] = !m.enabled[name]
	}
	return m
}

func (m model) editField(msg tea.KeyMsg) model {
	switch msg.Type {
	case tea.KeyUp:
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case tea.KeyDown:
		if m.fieldCursor < fieldCount-1 {
			m.fieldCursor++
		}
	case tea.KeyBackspace:
		v := m.fields[m.fieldCursor]
		if v != "" {
			runes := []rune(v)
			m.fields[m.fieldCursor] = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		s := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			s = " "
		}
		m.fields[m.fieldCursor] += s
	}
	return m
}

// buildConfig assembles the form contents. A non-empty problem string goes
// straight to the status line and means the record is unusable.
func (m model) buildConfig() (cfg config.Config, problem string) {
	art := strings.TrimRight(strings.Join(m.artLines, "\n"), " \t\n")
	if strings.TrimSpace(art) == "" {
		return cfg, "Please enter some ASCII art."
	}

	var enabled []string
	for _, name := range m.effectNames {
		if m.enabled[name] {
			enabled = append(enabled, name)
		}
	}
	if len(enabled) == 0 {
		return cfg, "Please select at least one effect."
	}

	fontSize, err := strconv.Atoi(strings.TrimSpace(m.fields[fieldFontSize]))
	if err != nil || fontSize < 6 || fontSize > 120 {
		return cfg, "Invalid font size. Must be a whole number from 6 to 120."
	}
	fps, err := strconv.Atoi(strings.TrimSpace(m.fields[fieldFPS]))
	if err != nil || fps < 1 || fps > 240 {
		return cfg, "Invalid FPS. Must be a whole number from 1 to 240."
	}
	duration, err := strconv.Atoi(strings.TrimSpace(m.fields[fieldDuration]))
	if err != nil || duration < 0 || duration > 3600 {
		return cfg, "Invalid effect duration. Must be a whole number of seconds, 0 to 3600."
	}

	cfg = config.Config{
		ASCIIArt:        art,
		EnabledEffects:  enabled,
		FontSize:        fontSize,
		TargetFPS:       fps,
		EffectDuration:  duration,
		BackgroundColor: strings.TrimSpace(m.fields[fieldBackground]),
		AllMonitors:     m.allMonitors,
		SoundPath:       strings.TrimSpace(m.fields[fieldSoundPath]),
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, "Invalid background color. Use #rrggbb."
	}
	return cfg, ""
}
