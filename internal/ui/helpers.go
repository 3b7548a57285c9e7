package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/shutter/internal/api"
)

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// relativeTime renders ts as "3h ago", or "-" when unknown.
func relativeTime(ts, now time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	d := now.Sub(ts)
	if d < time.Second {
		return "now"
	}
	return humanizeDuration(d) + " ago"
}

// truncate cuts s to max runes, ending with an ellipsis when shortened.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// truncateMiddle keeps the start and end of value, eliding the middle.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// oneLine collapses whitespace so free text fits a table row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func authorName(u *api.User, fallbackID int64) string {
	if u != nil {
		return u.DisplayName()
	}
	return api.User{ID: fallbackID}.DisplayName()
}

// errorText returns the message a user should see for err. Server-side
// rejections show the server's own message.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	if respErr, ok := api.AsResponseError(err); ok {
		if msg := respErr.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}

// parseIDList parses "3, 5 8" into ids, rejecting anything non-numeric.
func parseIDList(value string) ([]int64, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid photo id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
