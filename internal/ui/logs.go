package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shutter/internal/logtail"
)

var logLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

func nextLogLevel(current slog.Level) slog.Level {
	for i, lvl := range logLevels {
		if lvl == current {
			return logLevels[(i+1)%len(logLevels)]
		}
	}
	return slog.LevelInfo
}

// readLogsCmd tails the client log file.
func readLogsCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogBufferLimit)
		return logLinesMsg{lines: lines, err: err}
	}
}

// updateLogViewport re-renders the filtered log lines.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) renderLogContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	if m.logErr != nil {
		return styles.DangerText.Render(m.logErr.Error())
	}
	lines := logtail.Filter(m.logLines, m.logLevel)
	if len(lines) == 0 {
		return styles.MutedText.Render("No log lines at this level yet")
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, m.colorizeLine(line, styles))
	}
	return strings.Join(out, "\n")
}

// colorizeLine tints a line by its level; continuation lines stay plain.
func (m *Model) colorizeLine(line string, styles Styles) string {
	level, ok := logtail.LineLevel(line)
	if !ok {
		return styles.MutedText.Render(line)
	}
	switch {
	case level >= slog.LevelError:
		return styles.DangerText.Render(line)
	case level >= slog.LevelWarn:
		return styles.WarningText.Render(line)
	case level >= slog.LevelInfo:
		return styles.Text.Render(line)
	default:
		return styles.FaintText.Render(line)
	}
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	contentHeight := m.height - chromeHeight
	title := fmt.Sprintf("Client Log  %s+", strings.ToUpper(m.logLevel.String()))
	if m.logPath != "" {
		title += "  " + truncateMiddle(m.logPath, 40)
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, contentHeight, true)
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logFollow = !m.logFollow
		m.updateLogViewport()

	case key.Matches(msg, m.keys.CycleLevel):
		m.logLevel = nextLogLevel(m.logLevel)
		m.updateLogViewport()

	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logFollow = false

	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logFollow = true

	case key.Matches(msg, m.keys.Down):
		m.logViewport.LineDown(1)
		m.logFollow = false

	case key.Matches(msg, m.keys.Up):
		m.logViewport.LineUp(1)
		m.logFollow = false

	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfViewDown()
		m.logFollow = false

	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfViewUp()
		m.logFollow = false
	}
	return m, nil
}
