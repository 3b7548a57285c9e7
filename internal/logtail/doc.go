// Package logtail reads the end of shutter's own log file for the Logs view.
//
// Read keeps a ring buffer of the last N lines so large files are never held
// in memory whole. Filter drops records below a minimum slog level; it
// understands both the text ("level=WARN") and JSON ("level":"WARN") handler
// formats, and lines without a level stay with the record above them.
package logtail
