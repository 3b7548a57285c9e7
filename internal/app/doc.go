// Package app is the composition root for shutter.
//
// # Overview
//
// Run loads configuration, opens the log file, builds the API client, the
// store and the catalog, performs a bounded initial load, starts the feed
// poller and hands control to the Bubble Tea UI until the user quits or the
// context is cancelled.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        TOML, .env and SHUTTER_* overrides
//	       ├─────> logging.New()        slog to the log file
//	       ├─────> metrics.Serve()      optional /metrics endpoint
//	       ├─────> api.NewClient()      HTTP client for the photo API
//	       ├─────> store.New()          Published snapshots
//	       ├─────> catalog.New()        One round trip, one dispatch
//	       ├─────> initialLoad()        Feed, albums, user photos in parallel
//	       ├─────> StartPoller()        Periodic feed refresh
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Polling Behavior
//
// The poller refreshes the feed every RefreshEvery. Each failure is recorded
// on the store, which reports offline after repeated failures; the wait
// doubles per consecutive failure up to five minutes. The first success
// after a failure clears the failure state. Cached entities are never
// dropped on failure.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration or merge policy names
//   - Unwritable log file
//   - Metrics address that cannot be bound
//   - Unparseable API URL
//
// Recoverable errors are logged and surfaced in the UI header.
package app
