package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/catalog"
	"github.com/five82/shutter/internal/config"
	"github.com/five82/shutter/internal/logging"
	"github.com/five82/shutter/internal/store"
)

type feedService struct {
	api.Service

	mu    sync.Mutex
	calls int
	err   error
}

func (f *feedService) FetchPhotos(context.Context) ([]api.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []api.Photo{{ID: int64(f.calls)}}, nil
}

func (f *feedService) FetchAlbums(context.Context) ([]api.Album, error) {
	return []api.Album{{ID: 1, Title: "Trip"}}, nil
}

func (f *feedService) FetchUserPhotos(_ context.Context, userID int64) ([]api.Photo, error) {
	return []api.Photo{{ID: 100, AuthorID: userID}}, nil
}

func (f *feedService) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *feedService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, 5 * time.Minute},
		{"many failures capped", 40, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestStartPoller_RecordsFailuresAndRecovery(t *testing.T) {
	svc := &feedService{err: errors.New("connection refused")}
	st := store.New(store.Options{})
	cat := catalog.New(svc, st, catalog.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPoller(ctx, cat, 5*time.Millisecond, logging.Discard())

	waitFor(t, func() bool { return st.Snapshot().IsOffline() })

	svc.setErr(nil)
	waitFor(t, func() bool {
		snap := st.Snapshot()
		return snap.ConsecutiveFailures == 0 && snap.LastError == nil && len(snap.Photos.All) > 0
	})
}

func TestStartPoller_DisabledForZeroInterval(t *testing.T) {
	svc := &feedService{}
	cat := catalog.New(svc, store.New(store.Options{}), catalog.Options{})

	StartPoller(context.Background(), cat, 0, nil)
	time.Sleep(20 * time.Millisecond)
	if n := svc.callCount(); n != 0 {
		t.Fatalf("disabled poller fetched %d times", n)
	}
}

func TestStartPoller_StopsOnCancel(t *testing.T) {
	svc := &feedService{}
	cat := catalog.New(svc, store.New(store.Options{}), catalog.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	StartPoller(ctx, cat, 5*time.Millisecond, nil)
	waitFor(t, func() bool { return svc.callCount() > 0 })
	cancel()
	time.Sleep(20 * time.Millisecond)

	stopped := svc.callCount()
	time.Sleep(30 * time.Millisecond)
	if n := svc.callCount(); n != stopped {
		t.Fatalf("poller kept fetching after cancel: %d then %d", stopped, n)
	}
}

func TestRecordFeed_SuccessOnlyPublishesAfterFailure(t *testing.T) {
	st := store.New(store.Options{})
	recordFeed(st, nil)
	if v := st.Snapshot().Version; v != 0 {
		t.Fatalf("success with no prior failure published version %d", v)
	}
	recordFeed(st, errors.New("boom"))
	recordFeed(st, nil)
	snap := st.Snapshot()
	if snap.Version != 2 || snap.ConsecutiveFailures != 0 {
		t.Fatalf("snapshot = v%d failures %d, want v2 with failures cleared", snap.Version, snap.ConsecutiveFailures)
	}
}

func TestInitialLoad_FillsEverySlot(t *testing.T) {
	st := store.New(store.Options{})
	cat := catalog.New(&feedService{}, st, catalog.Options{})

	initialLoad(context.Background(), cat, 7, time.Second, logging.Discard())

	snap := st.Snapshot()
	if len(snap.Photos.All) != 1 || len(snap.Albums.All) != 1 {
		t.Fatalf("snapshot = %d photos %d albums, want 1 each", len(snap.Photos.All), len(snap.Albums.All))
	}
	if snap.Photos.ScopeID != 7 || len(snap.Photos.Scoped) != 1 {
		t.Fatalf("scoped photos = %v for %d, want user 7's photo", snap.Photos.Scoped, snap.Photos.ScopeID)
	}
}

// slowFeed holds the feed response until release is closed.
type slowFeed struct {
	feedService
	release chan struct{}
}

func (f *slowFeed) FetchPhotos(ctx context.Context) ([]api.Photo, error) {
	<-f.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.feedService.FetchPhotos(ctx)
}

func TestInitialLoad_SlowFeedStillMerges(t *testing.T) {
	svc := &slowFeed{release: make(chan struct{})}
	st := store.New(store.Options{})
	cat := catalog.New(svc, st, catalog.Options{})

	start := time.Now()
	initialLoad(context.Background(), cat, 0, 20*time.Millisecond, logging.Discard())
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("initialLoad waited %v for a slow feed", elapsed)
	}
	if snap := st.Snapshot(); len(snap.Photos.All) != 0 || snap.ConsecutiveFailures != 0 {
		t.Fatalf("before the response: photos %d failures %d, want 0 and 0", len(snap.Photos.All), snap.ConsecutiveFailures)
	}

	close(svc.release)
	waitFor(t, func() bool { return len(st.Snapshot().Photos.All) == 1 })

	snap := st.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("late feed recorded failure %d %v, want none", snap.ConsecutiveFailures, snap.LastError)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	applyOverrides(&cfg, Options{UserID: 4, RefreshEvery: time.Second, LogLevel: "debug"})
	if cfg.UserID != 4 || cfg.RefreshEvery != time.Second || cfg.LogLevel != "debug" {
		t.Fatalf("cfg = %+v, want overrides applied", cfg)
	}
	if cfg.APIURL != config.Default().APIURL {
		t.Fatalf("empty APIURL override changed %q", cfg.APIURL)
	}
}
