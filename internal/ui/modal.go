package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// action identifies what a submitted modal asks the model to do.
type action int

const (
	actionUploadPhoto action = iota
	actionEditPhoto
	actionDeletePhoto
	actionNewAlbum
	actionEditAlbum
	actionDeleteAlbum
	actionComment
	actionEditComment
	actionReply
	actionDeleteComment
	actionDeleteReply
)

// target names the entities an action applies to.
type target struct {
	photoID   int64
	albumID   int64
	commentID int64
}

// submitMsg is emitted when a modal is confirmed.
type submitMsg struct {
	action action
	target target
	values []string
}

func submitCmd(a action, t target, values []string) tea.Cmd {
	return func() tea.Msg {
		return submitMsg{action: a, target: t, values: values}
	}
}

// confirmModal asks a yes/no question.
type confirmModal struct {
	title  string
	prompt string
	action action
	target target
}

func newConfirmModal(title, prompt string, a action, t target) confirmModal {
	return confirmModal{title: title, prompt: prompt, action: a, target: t}
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case keyMsg.String() == "y", key.Matches(keyMsg, keys.Confirm):
		return c, submitCmd(c.action, c.target, nil), true
	case keyMsg.String() == "n", key.Matches(keyMsg, keys.Escape):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.prompt))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y/enter") + styles.MutedText.Render(" confirm  "))
	b.WriteString(styles.AccentText.Render("n/esc") + styles.MutedText.Render(" cancel"))
	return placeModal(theme, width, height, 50, b.String())
}

// formField describes one input of a formModal.
type formField struct {
	label       string
	value       string
	placeholder string
	required    bool
}

// formModal collects one or more text values.
type formModal struct {
	title  string
	action action
	target target
	labels []string
	req    []bool
	inputs []textinput.Model
	focus  int
	err    string
}

func newFormModal(title string, a action, t target, fields ...formField) formModal {
	f := formModal{title: title, action: a, target: t}
	for i, field := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 2000
		in.Width = 44
		in.Placeholder = field.placeholder
		in.SetValue(field.value)
		if i == 0 {
			in.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.req = append(f.req, field.required)
		f.inputs = append(f.inputs, in)
	}
	return f
}

// values returns the trimmed input values in field order.
func (f formModal) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f formModal) setFocus(idx int) formModal {
	if len(f.inputs) == 0 {
		return f
	}
	idx = (idx + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = idx
	f.inputs[f.focus].Focus()
	return f
}

func (f formModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Escape):
			return f, nil, true
		case key.Matches(keyMsg, keys.Confirm):
			values := f.values()
			for i, v := range values {
				if f.req[i] && v == "" {
					f.err = f.labels[i] + " is required"
					return f.setFocus(i), nil, false
				}
			}
			return f, submitCmd(f.action, f.target, values), true
		case key.Matches(keyMsg, keys.Tab), keyMsg.String() == "down":
			return f.setFocus(f.focus + 1), nil, false
		case key.Matches(keyMsg, keys.ShiftTab), keyMsg.String() == "up":
			return f.setFocus(f.focus - 1), nil, false
		}
	}
	if len(f.inputs) == 0 {
		return f, nil, false
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f formModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := f.labels[i]
		if f.req[i] {
			label += " *"
		}
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	if f.err != "" {
		b.WriteString(styles.DangerText.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("tab next field  enter submit  esc cancel"))
	return placeModal(theme, width, height, 52, b.String())
}

// placeModal centers a rounded box on the screen.
func placeModal(theme Theme, width, height, boxWidth int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(boxWidth).
		Render(content)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
