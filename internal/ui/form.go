package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jii-iin/weathermix/internal/tasks"
)

// Form field focus order. focusParam is the mode-specific field (min BPM for
// Tempo, keywords for Custom) and is skipped entirely in Basic mode.
const (
	focusCity = iota
	focusMode
	focusLimit
	focusParam
	focusPublish
	focusRun
	focusCount
)

var modes = []tasks.Mode{tasks.ModeBasic, tasks.ModeTempo, tasks.ModeCustom}

func newCityInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Seoul"
	ti.SetValue("Seoul")
	ti.CharLimit = 64
	ti.Width = 24
	ti.Focus()
	return ti
}

func newKeywordsInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "extra keywords"
	ti.CharLimit = 64
	ti.Width = 24
	return ti
}

func (m *Model) mode() tasks.Mode {
	return modes[m.modeIdx]
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text inputs consume printable keys, so only navigation and control
	// keys are intercepted while one has focus.
	typing := (m.focus == focusCity || m.focus == focusParam && m.mode() == tasks.ModeCustom)

	switch {
	case key.Matches(msg, m.keys.quit):
		if !typing || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case msg.String() == "tab", key.Matches(msg, m.keys.down):
		if !typing || msg.String() != "j" {
			m.moveFocus(1)
			return m, nil
		}
	case msg.String() == "shift+tab", key.Matches(msg, m.keys.up):
		if !typing || msg.String() != "k" {
			m.moveFocus(-1)
			return m, nil
		}
	case key.Matches(msg, m.keys.enter):
		if m.focus == focusRun {
			return m, m.startRun()
		}
		m.moveFocus(1)
		return m, nil
	}

	if typing {
		var cmd tea.Cmd
		if m.focus == focusCity {
			m.city, cmd = m.city.Update(msg)
		} else {
			m.keywords, cmd = m.keywords.Update(msg)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.left):
		m.adjustField(-1)
	case key.Matches(msg, m.keys.right):
		m.adjustField(1)
	case key.Matches(msg, m.keys.toggle):
		if m.focus == focusPublish && m.canPublish {
			m.publish = !m.publish
		}
	}

	return m, nil
}

// moveFocus advances focus by delta, wrapping around and skipping focusParam
// when the current mode has no parameter field.
func (m *Model) moveFocus(delta int) {
	for {
		m.focus = (m.focus + delta + focusCount) % focusCount
		if m.focus == focusParam && m.mode() == tasks.ModeBasic {
			continue
		}
		break
	}

	if m.focus == focusCity {
		m.city.Focus()
	} else {
		m.city.Blur()
	}
	if m.focus == focusParam && m.mode() == tasks.ModeCustom {
		m.keywords.Focus()
	} else {
		m.keywords.Blur()
	}
}

func (m *Model) adjustField(delta int) {
	switch m.focus {
	case focusMode:
		m.modeIdx = (m.modeIdx + delta + len(modes)) % len(modes)
	case focusLimit:
		m.limit = clamp(m.limit+delta, tasks.MinTrackLimit, tasks.MaxTrackLimit)
	case focusParam:
		if m.mode() == tasks.ModeTempo {
			m.minBPM = clamp(m.minBPM+delta*5, tasks.MinBPM, tasks.MaxBPM)
		}
	case focusPublish:
		if m.canPublish {
			m.publish = !m.publish
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *Model) renderForm() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Weather Mix"))
	b.WriteString("\n\n")

	b.WriteString(m.formRow(focusCity, "City", m.city.View()))
	b.WriteString(m.formRow(focusMode, "Mode", fmt.Sprintf("‹ %s ›", m.mode())))
	b.WriteString(m.formRow(focusLimit, "Tracks", fmt.Sprintf("%d", m.limit)))

	switch m.mode() {
	case tasks.ModeTempo:
		b.WriteString(m.formRow(focusParam, "Min BPM", fmt.Sprintf("%d", m.minBPM)))
	case tasks.ModeCustom:
		b.WriteString(m.formRow(focusParam, "Keywords", m.keywords.View()))
	}

	publishLabel := checkbox(m.publish)
	if !m.canPublish {
		publishLabel = styles.help.Render("login required")
	}
	b.WriteString(m.formRow(focusPublish, "Publish", publishLabel))

	b.WriteString("\n")
	run := "▶ Generate"
	if m.focus == focusRun {
		run = styles.focused.Render("▶ Generate")
	}
	b.WriteString(fmt.Sprintf("  %s\n", run))

	if m.status != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", styles.warn.Render(m.status)))
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.left, m.keys.right, m.keys.enter, m.keys.quit}
	b.WriteString(fmt.Sprintf("\n%s", m.help.ShortHelpView(helpKeys)))

	return b.String()
}

func (m *Model) formRow(focus int, label, value string) string {
	cursor := "  "
	rendered := fmt.Sprintf("%-10s", label+":")
	if m.focus == focus {
		cursor = styles.focused.Render("▸ ")
		rendered = styles.focused.Render(rendered)
	}
	return fmt.Sprintf("%s%s %s\n", cursor, rendered, value)
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
