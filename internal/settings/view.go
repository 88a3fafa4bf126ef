package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorAccent = lipgloss.Color("#7dd3fc")
	colorWhite  = lipgloss.Color("#e5e7eb")
	colorGray   = lipgloss.Color("#9ca3af")
	colorDim    = lipgloss.Color("#4b5563")
	colorGreen  = lipgloss.Color("#4ade80")
	colorRed    = lipgloss.Color("#f87171")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	hintStyle    = lipgloss.NewStyle().Foreground(colorGray)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	errStyle     = lipgloss.NewStyle().Foreground(colorRed)
)

const artViewRows = 12

func (m model) View() string {
	if m.previewing {
		return "\n " + m.spin.View() + "Previewing. Any input in the preview window closes it.\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("TTE Screensaver Settings"))
	b.WriteString("\n\n")

	m.renderArt(&b)
	m.renderEffects(&b)
	m.renderFields(&b)
	m.renderMonitors(&b)

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errStyle.Render(m.status))
		} else {
			b.WriteString(okStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("[Tab] section  [Space] toggle  [Ctrl+S] save  [Ctrl+P] preview  [Ctrl+O] import art  [Ctrl+F] sound file  [Esc] cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m model) sectionHeader(s section, label string) string {
	if m.section == s {
		return focusStyle.Render("» " + label)
	}
	return sectionStyle.Render("  " + label)
}

func (m model) renderArt(b *strings.Builder) {
	b.WriteString(m.sectionHeader(secArt, "ASCII Art"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("  Paste your art below. Generate at: patorjk.com/software/taag"))
	b.WriteString("\n")

	lines := m.artLines
	if len(lines) > artViewRows {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d lines above", len(lines)-artViewRows)))
		b.WriteString("\n")
		lines = lines[len(lines)-artViewRows:]
	}
	for i, line := range lines {
		b.WriteString("  " + line)
		if m.section == secArt && i == len(lines)-1 {
			b.WriteString(focusStyle.Render("▌"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m model) renderEffects(b *strings.Builder) {
	b.WriteString(m.sectionHeader(secEffects, "Enabled Effects"))
	b.WriteString("\n")
	for i, name := range m.effectNames {
		cursor := "  "
		if m.section == secEffects && i == m.effCursor {
			cursor = focusStyle.Render("> ")
		}
		mark := dimStyle.Render("[ ]")
		if m.enabled[name] {
			mark = okStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("  %s%s %s\n", cursor, mark, name))
	}
	b.WriteString("\n")
}

func (m model) renderFields(b *strings.Builder) {
	b.WriteString(m.sectionHeader(secFields, "Settings"))
	b.WriteString("\n")
	for id := fieldID(0); id < fieldCount; id++ {
		cursor := "  "
		focused := m.section == secFields && id == m.fieldCursor
		if focused {
			cursor = focusStyle.Render("> ")
		}
		value := m.fields[id]
		if value == "" && !focused {
			value = dimStyle.Render("(none)")
		}
		b.WriteString(fmt.Sprintf("  %s%s: %s", cursor, fieldLabels[id], value))
		if focused {
			b.WriteString(focusStyle.Render("▌"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m model) renderMonitors(b *strings.Builder) {
	b.WriteString(m.sectionHeader(secMonitors, "Monitors"))
	b.WriteString("\n")
	mark := dimStyle.Render("[ ]")
	if m.allMonitors {
		mark = okStyle.Render("[x]")
	}
	b.WriteString(fmt.Sprintf("  %s Cover all monitors\n\n", mark))
}
