package settings

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/limehawk/tte-screensaver/internal/config"
	"github.com/limehawk/tte-screensaver/internal/effects"
)

func press(t *testing.T, m model, msgs ...tea.KeyMsg) model {
	t.Helper()
	for _, msg := range msgs {
		out, _ := m.Update(msg)
		m = out.(model)
	}
	return m
}

func runesMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelLoadsDefaults(t *testing.T) {
	m := newModel(filepath.Join(t.TempDir(), "config.json"))

	if m.fields[fieldFontSize] != "18" || m.fields[fieldFPS] != "120" {
		t.Errorf("default fields: font=%q fps=%q", m.fields[fieldFontSize], m.fields[fieldFPS])
	}
	if len(m.effectNames) != len(effects.Names()) {
		t.Fatalf("effect list has %d names, registry has %d", len(m.effectNames), len(effects.Names()))
	}
	for _, name := range m.effectNames {
		if !m.enabled[name] {
			t.Errorf("effect %s not enabled by default", name)
		}
	}
	if !m.allMonitors {
		t.Error("all monitors should default on")
	}
}

func TestTabCyclesSections(t *testing.T) {
	m := newModel(filepath.Join(t.TempDir(), "config.json"))
	if m.section != secArt {
		t.Fatalf("initial section = %d", m.section)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.section != secEffects {
		t.Errorf("after tab, section = %d, want effects", m.section)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if m.section != secArt {
		t.Errorf("tab should wrap back to art, got %d", m.section)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.section != secMonitors {
		t.Errorf("shift+tab should wrap to monitors, got %d", m.section)
	}
}

func TestEffectToggle(t *testing.T) {
	m := newModel(filepath.Join(t.TempDir(), "config.json"))
	m.section = secEffects

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})
	second := m.effectNames[1]
	if m.enabled[second] {
		t.Errorf("%s should be toggled off", second)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.enabled[second] {
		t.Errorf("%s should be toggled back on", second)
	}

	m.effCursor = 0
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.effCursor != 0 {
		t.Error("cursor moved above the first entry")
	}
}

func TestArtEditing(t *testing.T) {
	m := newModel(filepath.Join(t.TempDir(), "config.json"))
	m.artLines = []string{""}

	m = press(t, m, runesMsg("ab"), tea.KeyMsg{Type: tea.KeyEnter}, runesMsg("cd"))
	if got := strings.Join(m.artLines, "\n"); got != "ab\ncd" {
		t.Fatalf("art = %q, want %q", got, "ab\ncd")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := strings.Join(m.artLines, "\n"); got != "ab" {
		t.Fatalf("after backspaces art = %q, want %q", got, "ab")
	}

	// A paste carries its newlines in one message.
	m = press(t, m, runesMsg("c\nde"))
	if got := strings.Join(m.artLines, "\n"); got != "abc\nde" {
		t.Fatalf("after paste art = %q, want %q", got, "abc\nde")
	}
}

func TestFieldEditing(t *testing.T) {
	m := newModel(filepath.Join(t.TempDir(), "config.json"))
	m.section = secFields

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, runesMsg("24"))
	if m.fields[fieldFontSize] != "24" {
		t.Errorf("font field = %q, want %q", m.fields[fieldFontSize], "24")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.fieldCursor != fieldFPS {
		t.Errorf("cursor = %d, want fps field", m.fieldCursor)
	}
}

func TestBuildConfigValidation(t *testing.T) {
	base := newModel(filepath.Join(t.TempDir(), "config.json"))

	cases := []struct {
		name    string
		mutate  func(*model)
		problem string
	}{
		{
			name:    "empty art",
			mutate:  func(m *model) { m.artLines = []string{"   ", ""} },
			problem: "ASCII art",
		},
		{
			name: "no effects",
			mutate: func(m *model) {
				for name := range m.enabled {
					m.enabled[name] = false
				}
			},
			problem: "at least one effect",
		},
		{
			name:    "bad font size",
			mutate:  func(m *model) { m.fields[fieldFontSize] = "huge" },
			problem: "font size",
		},
		{
			name:    "font size out of range",
			mutate:  func(m *model) { m.fields[fieldFontSize] = "500" },
			problem: "font size",
		},
		{
			name:    "bad fps",
			mutate:  func(m *model) { m.fields[fieldFPS] = "0" },
			problem: "FPS",
		},
		{
			name:    "negative duration",
			mutate:  func(m *model) { m.fields[fieldDuration] = "-5" },
			problem: "duration",
		},
		{
			name:    "bad background",
			mutate:  func(m *model) { m.fields[fieldBackground] = "black" },
			problem: "background color",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := base
			m.enabled = make(map[string]bool, len(base.enabled))
			for k, v := range base.enabled {
				m.enabled[k] = v
			}
			tc.mutate(&m)
			if _, problem := m.buildConfig(); !strings.Contains(problem, tc.problem) {
				t.Errorf("problem = %q, want mention of %q", problem, tc.problem)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := newModel(path)
	m.fields[fieldFontSize] = "32"
	m.fields[fieldDuration] = "0"
	m.section = secMonitors
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyCtrlS})

	if !m.saved {
		t.Fatalf("save did not complete, status %q", m.status)
	}
	got := config.Load(path)
	if got.FontSize != 32 || got.EffectDuration != 0 || got.AllMonitors {
		t.Errorf("saved config = fontsize %d, duration %d, allmonitors %v", got.FontSize, got.EffectDuration, got.AllMonitors)
	}
}

func TestBuildConfigTrimsArt(t *testing.T) {
	m := newModel(filepath.Join(t.TempDir(), "config.json"))
	m.artLines = []string{"ART", "", ""}
	cfg, problem := m.buildConfig()
	if problem != "" {
		t.Fatalf("unexpected problem %q", problem)
	}
	if cfg.ASCIIArt != "ART" {
		t.Errorf("art = %q, want trailing blank lines trimmed", cfg.ASCIIArt)
	}
}
