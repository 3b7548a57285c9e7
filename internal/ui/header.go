package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = "shutter"

// renderHeader renders the status line: sync badge, cache counts and the
// time of the last publish.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	snap := m.snapshot
	status := syncStatus(snap, m.pending)

	parts := []string{
		bg.Render(logo, styles.Logo),
		styles.StatusStyle(status).Render(statusLabel(status)),
	}

	counts := fmt.Sprintf("%d photos  %d albums", len(snap.Photos.All), len(snap.Albums.All))
	if compact {
		counts = fmt.Sprintf("%dp %da", len(snap.Photos.All), len(snap.Albums.All))
	}
	parts = append(parts, bg.Render(counts, styles.Text))

	if m.pending > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d in flight", m.pending), styles.InfoText))
	}
	if snap.LastError != nil {
		msg := truncate(errorText(snap.LastError), 40)
		if snap.IsOffline() {
			msg = fmt.Sprintf("%s (%d failures)", msg, snap.ConsecutiveFailures)
		}
		parts = append(parts, bg.Render(msg, styles.DangerText))
	}
	if !snap.LastUpdated.IsZero() && !compact {
		parts = append(parts,
			bg.Render("updated", styles.FaintText)+bg.Space()+
				bg.Render(snap.LastUpdated.Local().Format("15:04:05"), styles.MutedText))
	}
	if m.userID > 0 && !compact {
		parts = append(parts, bg.Render(fmt.Sprintf("user #%d", m.userID), styles.MutedText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewLogs:
		followLabel := "Pause"
		if !m.logFollow {
			followLabel = "Follow"
		}
		commands = []cmd{
			{"Space", followLabel},
			{"v", "Level"},
			{"j/k", "Scroll"},
			{"f", "Feed"},
			{"?", "More"},
		}
	case ViewPhoto:
		commands = []cmd{
			{"j/k", "Comments"},
			{"m", "Comment"},
			{"R", "Reply"},
			{"C", "Edit"},
			{"x", "Delete"},
			{"X", "Del reply"},
			{"c", "Caption"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case ViewAlbums:
		commands = []cmd{
			{"enter", "Load"},
			{"N", "New"},
			{"c", "Edit"},
			{"d", "Delete"},
			{"r", "Refresh"},
			{"Tab", "Next"},
			{"?", "More"},
		}
	case ViewUser:
		commands = []cmd{
			{"t", "Photos/Albums"},
			{"enter", "Open"},
			{"n", "Upload"},
			{"c", "Edit"},
			{"d", "Delete"},
			{"r", "Refresh"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"enter", "Open"},
			{"n", "Upload"},
			{"N", "Album"},
			{"c", "Caption"},
			{"d", "Delete"},
			{"r", "Refresh"},
			{"Tab", "Next"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderStatusLine shows the outcome of the latest operation.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	if m.flash == "" {
		return styles.FaintText.Width(m.width).Render(m.viewName())
	}
	style := styles.DangerText
	if m.flashOK {
		style = styles.SuccessText
	}
	return style.Width(m.width).Render(truncate(m.flash, m.width))
}

func (m Model) viewName() string {
	switch m.currentView {
	case ViewUser:
		return "user"
	case ViewAlbums:
		return "albums"
	case ViewLogs:
		return "logs"
	case ViewPhoto:
		return "photo"
	default:
		return "feed"
	}
}
