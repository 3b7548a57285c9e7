package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// View switching
	ViewFeed   key.Binding
	ViewUser   key.Binding
	ViewAlbums key.Binding
	ViewLogs   key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Open         key.Binding

	// Entity actions
	EditCaption key.Binding
	Delete      key.Binding
	Comment     key.Binding
	Reply       key.Binding
	EditComment key.Binding
	DelComment  key.Binding
	DelReply    key.Binding
	NewPhoto    key.Binding
	NewAlbum    key.Binding
	ToggleTab   key.Binding

	// Logs
	ToggleFollow key.Binding
	CycleLevel   key.Binding

	// Modal input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle views (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh view"),
		),

		ViewFeed: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Feed"),
		),
		ViewUser: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "User page"),
		),
		ViewAlbums: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Albums"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Client log"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),

		EditCaption: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Edit caption"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete"),
		),
		Comment: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Comment"),
		),
		Reply: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reply to comment"),
		),
		EditComment: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Edit comment"),
		),
		DelComment: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete comment"),
		),
		DelReply: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Delete reply"),
		),
		NewPhoto: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Upload photo"),
		),
		NewAlbum: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "New album"),
		),
		ToggleTab: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Photos/Albums tab"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
		CycleLevel: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Cycle level filter"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, grouped by section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewFeed, k.ViewUser, k.ViewAlbums, k.ViewLogs, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageUp, k.HalfPageDown, k.Open, k.Refresh},
		{k.EditCaption, k.Delete, k.NewPhoto, k.NewAlbum, k.ToggleTab, k.Comment, k.Reply, k.EditComment, k.DelComment, k.DelReply},
		{k.ToggleFollow, k.CycleLevel},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
