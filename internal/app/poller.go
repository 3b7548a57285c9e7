package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/shutter/internal/catalog"
	"github.com/five82/shutter/internal/logging"
	"github.com/five82/shutter/internal/store"
)

// maxBackoff caps the wait between refreshes while the API keeps failing.
const maxBackoff = 5 * time.Minute

// StartPoller launches a background goroutine that refreshes the photo feed
// every interval, backing off while refreshes fail. An interval of zero or
// less disables it. It returns immediately.
func StartPoller(ctx context.Context, cat *catalog.Catalog, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	logger = logging.OrDiscard(logger)
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if err := refresh(ctx, cat, logger); err != nil {
				failures++
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// refresh reloads the feed and records the outcome in the sync state.
func refresh(ctx context.Context, cat *catalog.Catalog, logger *slog.Logger) error {
	_, err := cat.FetchPhotos(ctx)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	recordFeed(cat.Store(), err)
	if err != nil {
		logger.Warn("feed refresh failed", "error", err)
	}
	return err
}

// recordFeed publishes a feed failure, or clears a previous one. A success
// after a success publishes nothing.
func recordFeed(st *store.Store, err error) {
	if err != nil {
		st.RecordFailure(err)
		return
	}
	if snap := st.Snapshot(); snap.ConsecutiveFailures > 0 || snap.LastError != nil {
		st.RecordSuccess()
	}
}

// calculateBackoff doubles the interval per consecutive failure up to
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
