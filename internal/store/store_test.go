package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/shutter/internal/api"
)

type recordingObserver struct {
	mu     sync.Mutex
	merges []string
}

func (r *recordingObserver) ObserveMerge(kind, event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.merges = append(r.merges, kind+"/"+event)
}

func TestStore_ZeroValueSnapshotIsEmpty(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap.Version != 0 || len(snap.Photos.All) != 0 || snap.Photos.Single != nil {
		t.Fatalf("zero snapshot = %+v, want empty", snap)
	}
}

func TestStore_DispatchPublishesNewSnapshotWithoutTouchingOld(t *testing.T) {
	var s Store

	first := s.DispatchPhotos(LoadedAll[api.Photo]{Items: []api.Photo{{ID: 1, Caption: "A"}}})
	if first.Version != 1 {
		t.Fatalf("Version = %d, want 1", first.Version)
	}
	if got := first.Photos.All[1].Caption; got != "A" {
		t.Fatalf("Photos.All[1] = %q, want A", got)
	}

	second := s.DispatchPhotos(Updated[api.Photo]{Item: api.Photo{ID: 1, Caption: "B"}})
	if second.Photos.All[1].Caption != "B" {
		t.Fatalf("after update Photos.All[1] = %q, want B", second.Photos.All[1].Caption)
	}
	if first.Photos.All[1].Caption != "A" {
		t.Fatalf("earlier snapshot changed to %q, want A", first.Photos.All[1].Caption)
	}

	third := s.DispatchPhotos(Updated[api.Photo]{Item: api.Photo{ID: 2, Caption: "C"}})
	if len(third.Photos.All) != 1 {
		t.Fatalf("update of absent id inserted: %v", third.Photos.All)
	}
	if s.Snapshot().Version != 3 {
		t.Fatalf("Version = %d, want 3", s.Snapshot().Version)
	}
}

func TestStore_KindsAreIndependent(t *testing.T) {
	var s Store
	s.DispatchPhotos(LoadedAll[api.Photo]{Items: []api.Photo{{ID: 1}}})
	s.DispatchAlbums(LoadedAll[api.Album]{Items: []api.Album{{ID: 1, Title: "Trip"}}})
	s.DispatchComments(LoadedScoped[api.Comment]{ScopeID: 1, Items: []api.Comment{{ID: 3}}})

	snap := s.Snapshot()
	if len(snap.Photos.All) != 1 || len(snap.Albums.All) != 1 || len(snap.Comments.Scoped) != 1 {
		t.Fatalf("snapshot = %+v, want one entry per kind", snap)
	}
	if snap.Comments.ScopeID != 1 {
		t.Fatalf("Comments.ScopeID = %d, want 1", snap.Comments.ScopeID)
	}
}

func TestStore_PoliciesApplyPerKind(t *testing.T) {
	s := New(Options{Policies: Policies{Albums: Policy{Scoped: MergeUnion}}})

	s.DispatchAlbums(LoadedScoped[api.Album]{ScopeID: 1, Items: []api.Album{{ID: 1}}})
	s.DispatchAlbums(LoadedScoped[api.Album]{ScopeID: 1, Items: []api.Album{{ID: 2}}})
	s.DispatchPhotos(LoadedScoped[api.Photo]{ScopeID: 1, Items: []api.Photo{{ID: 1}}})
	s.DispatchPhotos(LoadedScoped[api.Photo]{ScopeID: 1, Items: []api.Photo{{ID: 2}}})

	snap := s.Snapshot()
	if len(snap.Albums.Scoped) != 2 {
		t.Fatalf("Albums.Scoped = %v, want union of both responses", snap.Albums.Scoped)
	}
	if len(snap.Photos.Scoped) != 1 {
		t.Fatalf("Photos.Scoped = %v, want replace", snap.Photos.Scoped)
	}
}

func TestStore_ObserverAndClock(t *testing.T) {
	obs := &recordingObserver{}
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := New(Options{Observer: obs, Now: func() time.Time { return fixed }})

	snap := s.DispatchComments(Created[api.Comment]{Item: api.Comment{ID: 1}})
	if !snap.LastUpdated.Equal(fixed) {
		t.Fatalf("LastUpdated = %v, want %v", snap.LastUpdated, fixed)
	}
	s.RecordSuccess()

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.merges) != 1 || obs.merges[0] != "comments/created" {
		t.Fatalf("observed merges = %v, want [comments/created]", obs.merges)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store
	s.DispatchPhotos(LoadedAll[api.Photo]{Items: []api.Photo{{ID: 1}}})

	snap := s.RecordFailure(errors.New("fail 1"))
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure = %d offline=%v, want 1 false", snap.ConsecutiveFailures, snap.IsOffline())
	}
	if len(snap.Photos.All) != 1 {
		t.Fatalf("failure dropped cached photos: %v", snap.Photos.All)
	}

	snap = s.RecordFailure(errors.New("fail 2"))
	if !snap.IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}
	if snap.LastError == nil || snap.LastError.Error() != "fail 2" {
		t.Fatalf("LastError = %v, want fail 2", snap.LastError)
	}

	before := s.Snapshot().Version
	if got := s.RecordFailure(nil); got.Version != before {
		t.Fatalf("RecordFailure(nil) published a snapshot")
	}

	snap = s.RecordSuccess()
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil || snap.IsOffline() {
		t.Fatalf("after success = %+v, want cleared failure state", snap)
	}
}

func TestStore_SubscribeCoalescesAndCancels(t *testing.T) {
	var s Store
	ch, cancel := s.Subscribe()

	s.DispatchPhotos(LoadedAll[api.Photo]{Items: []api.Photo{{ID: 1}}})
	s.DispatchPhotos(LoadedAll[api.Photo]{Items: []api.Photo{{ID: 2}}})

	select {
	case <-ch:
	default:
		t.Fatal("expected a publish signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce into one")
	default:
	}

	cancel()
	cancel()
	s.DispatchPhotos(LoadedAll[api.Photo]{Items: []api.Photo{{ID: 3}}})
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("cancelled subscription still signalled")
		}
	default:
		t.Fatal("cancel left the channel open")
	}
}

func TestStore_NilEventPublishesNothing(t *testing.T) {
	var s Store
	s.DispatchPhotos(LoadedAll[api.Photo]{Items: []api.Photo{{ID: 1}}})

	s.DispatchPhotos(nil)
	s.DispatchAlbums(nil)
	snap := s.DispatchComments(nil)
	if snap.Version != 1 || len(snap.Photos.All) != 1 {
		t.Fatalf("after nil events = v%d with %d photos, want v1 with 1", snap.Version, len(snap.Photos.All))
	}
}

func TestStore_ConcurrentDispatchesAllApply(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.DispatchPhotos(Created[api.Photo]{Item: api.Photo{ID: id}})
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	if len(snap.Photos.All) != 50 {
		t.Fatalf("Photos.All has %d entries, want 50", len(snap.Photos.All))
	}
	if snap.Version != 50 {
		t.Fatalf("Version = %d, want 50", snap.Version)
	}
}

func TestStore_PhotoDeletedDropsEmptiedAlbums(t *testing.T) {
	var s Store
	s.DispatchPhotos(LoadedAll[api.Photo]{Items: []api.Photo{{ID: 1}, {ID: 2}}})
	s.DispatchAlbums(LoadedAll[api.Album]{Items: []api.Album{
		{ID: 10, Pics: []api.Photo{{ID: 1}}},
		{ID: 11, Pics: []api.Photo{{ID: 1}, {ID: 2}}},
		{ID: 12, Pics: []api.Photo{{ID: 2}}},
	}})
	s.DispatchAlbums(LoadedOne[api.Album]{Item: api.Album{ID: 10, Pics: []api.Photo{{ID: 1}}}})
	before := s.Snapshot().Version

	snap := s.DispatchPhotoDeleted(1)
	if snap.Version != before+1 {
		t.Fatalf("Version = %d, want one publish after %d", snap.Version, before)
	}
	if _, ok := snap.Photos.Get(1); ok {
		t.Fatal("photo 1 still cached")
	}
	if _, ok := snap.Albums.Get(10); ok || snap.Albums.Single != nil {
		t.Fatalf("album 10 held only photo 1 and is still cached: %+v", snap.Albums)
	}
	if _, ok := snap.Albums.Get(11); !ok {
		t.Fatal("album 11 still has photo 2 and was dropped")
	}
	if _, ok := snap.Albums.Get(12); !ok {
		t.Fatal("unrelated album 12 was dropped")
	}
}
