// Package ui provides the Bubble Tea terminal interface for shutter.
//
// # Architecture Overview
//
// The UI renders snapshots published by store.Store and starts catalog
// operations in response to keys. It never mutates cached data directly: an
// operation runs as a tea.Cmd, the catalog merges the response into the
// store, and the store's publish signal wakes the model, which re-reads the
// latest snapshot. Operation outcomes arrive separately as opDoneMsg and are
// shown in the status line.
//
// # Package Structure
//
//   - app.go: Model, messages, Init/Update/View and Run
//   - lists.go: Feed, user page and album list views with preview panes
//   - photo.go: Photo view with the comment thread
//   - logs.go: Client log viewer backed by logtail
//   - actions.go: Catalog operations and the modal forms that trigger them
//   - modal.go: Confirmation and form dialogs
//   - selectors.go: Pure functions deriving view data from a snapshot
//   - header.go, help.go, box.go, theme.go: Chrome and styling
//
// # Views
//
//   - Feed: Every cached photo, newest first
//   - User: The configured user's photos or albums (t toggles, remembered in prefs)
//   - Albums: Every cached album with the selected album's photos
//   - Photo: One photo, its comments and their replies
//   - Logs: The client's own log file filtered by level
//
// # Key Bindings
//
//   - f/u/a/l: Feed, user page, albums, logs
//   - Tab: Cycle views
//   - enter: Open photo or load album
//   - n/N: Upload photo, new album
//   - c/d: Edit or delete the selection
//   - m/R/C/x: Comment, reply, edit comment, delete comment (photo view)
//   - r: Refresh the current view
//   - T: Cycle theme
//   - e or Ctrl+C: Exit
package ui
