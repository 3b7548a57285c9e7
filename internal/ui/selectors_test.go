package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/store"
)

func ts(day int) api.Timestamp {
	return api.Timestamp{Time: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)}
}

func TestFeedPhotos_NewestFirstThenHigherID(t *testing.T) {
	var st store.Store
	snap := st.DispatchPhotos(store.LoadedAll[api.Photo]{Items: []api.Photo{
		{ID: 1, CreatedAt: ts(1)},
		{ID: 2, CreatedAt: ts(3)},
		{ID: 3, CreatedAt: ts(3)},
		{ID: 4},
	}})
	got := feedPhotos(snap)
	want := []int64{3, 2, 1, 4}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("feed order = %v, want %v", photoIDs(got), want)
		}
	}
}

func TestUserPhotos_OnlyForMatchingScope(t *testing.T) {
	var st store.Store
	snap := st.DispatchPhotos(store.LoadedScoped[api.Photo]{ScopeID: 7, Items: []api.Photo{{ID: 1}}})
	if got := userPhotos(snap, 7); len(got) != 1 {
		t.Fatalf("userPhotos(7) = %v, want one photo", got)
	}
	if got := userPhotos(snap, 8); got != nil {
		t.Fatalf("userPhotos(8) = %v, want nil for another user's scope", got)
	}
}

func TestLookupPhoto_PrefersSingle(t *testing.T) {
	var st store.Store
	st.DispatchPhotos(store.LoadedAll[api.Photo]{Items: []api.Photo{{ID: 1, Caption: "list"}, {ID: 2, Caption: "other"}}})
	snap := st.DispatchPhotos(store.LoadedOne[api.Photo]{Item: api.Photo{ID: 1, Caption: "full"}})

	if p, ok := lookupPhoto(snap, 1); !ok || p.Caption != "full" {
		t.Fatalf("lookupPhoto(1) = %+v %v, want single payload", p, ok)
	}
	if p, ok := lookupPhoto(snap, 2); !ok || p.Caption != "other" {
		t.Fatalf("lookupPhoto(2) = %+v %v, want All entry", p, ok)
	}
	if _, ok := lookupPhoto(snap, 3); ok {
		t.Fatalf("lookupPhoto(3) found a photo that is not cached")
	}
}

func TestPhotoComments_MergesEverySource(t *testing.T) {
	var st store.Store
	st.DispatchPhotos(store.LoadedOne[api.Photo]{Item: api.Photo{ID: 5, Comments: []api.Comment{
		{ID: 1, Content: "embedded"},
		{ID: 2, Content: "stale"},
	}}})
	st.DispatchComments(store.LoadedScoped[api.Comment]{ScopeID: 5, Items: []api.Comment{{ID: 2, PhotoID: 5, Content: "fresh"}}})
	st.DispatchComments(store.Created[api.Comment]{Item: api.Comment{ID: 3, PhotoID: 5, Content: "new"}})
	snap := st.DispatchComments(store.Created[api.Comment]{Item: api.Comment{ID: 4, PhotoID: 6, Content: "elsewhere"}})

	got := photoComments(snap, 5)
	if len(got) != 3 {
		t.Fatalf("photoComments = %v, want ids 1,2,3", got)
	}
	if got[1].Content != "fresh" {
		t.Fatalf("comment 2 = %q, want scoped payload to win", got[1].Content)
	}
	if photoComments(snap, 9) != nil {
		t.Fatalf("photoComments for an unknown photo should be nil")
	}
}

func TestPhotoComments_IgnoresScopeOfAnotherPhoto(t *testing.T) {
	var st store.Store
	snap := st.DispatchComments(store.LoadedScoped[api.Comment]{ScopeID: 8, Items: []api.Comment{{ID: 1}}})
	if got := photoComments(snap, 5); got != nil {
		t.Fatalf("photoComments(5) = %v, want nil", got)
	}
}

func TestSyncStatus(t *testing.T) {
	var st store.Store
	if got := syncStatus(st.Snapshot(), 0); got != StatusConnecting {
		t.Fatalf("empty store = %s, want connecting", got)
	}
	if got := syncStatus(st.Snapshot(), 1); got != StatusBusy {
		t.Fatalf("pending op = %s, want busy", got)
	}
	st.DispatchPhotos(store.LoadedAll[api.Photo]{})
	if got := syncStatus(st.Snapshot(), 0); got != StatusOnline {
		t.Fatalf("after load = %s, want online", got)
	}
	st.RecordFailure(errors.New("boom"))
	if got := syncStatus(st.Snapshot(), 0); got != StatusDegraded {
		t.Fatalf("one failure = %s, want degraded", got)
	}
	st.RecordFailure(errors.New("boom"))
	if got := syncStatus(st.Snapshot(), 0); got != StatusOffline {
		t.Fatalf("two failures = %s, want offline", got)
	}
	if statusLabel(StatusOffline) != "OFFLINE" {
		t.Fatalf("statusLabel(offline) = %q", statusLabel(StatusOffline))
	}
}

func photoIDs(photos []api.Photo) []int64 {
	out := make([]int64, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.ID)
	}
	return out
}
