package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/shutter/internal/api"
)

// Entity kind labels used for metrics and logs.
const (
	KindPhotos   = "photos"
	KindAlbums   = "albums"
	KindComments = "comments"
)

// offlineAfter is the number of consecutive feed failures after which the
// client reports itself offline.
const offlineAfter = 2

// Snapshot is the full client state at one instant. A published Snapshot is
// never modified; callers must treat its maps as read-only.
type Snapshot struct {
	Photos   Slice[api.Photo]
	Albums   Slice[api.Album]
	Comments Slice[api.Comment]

	// Version increases by one on every publish.
	Version uint64

	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // consecutive feed refresh failures
}

// IsOffline returns true when the feed has failed to refresh repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= offlineAfter
}

// Policies holds the merge policy for every entity kind.
type Policies struct {
	Photos   Policy
	Albums   Policy
	Comments Policy
}

// MergeObserver is told about every applied merge.
type MergeObserver interface {
	ObserveMerge(kind, event string)
}

// Options configure a Store.
type Options struct {
	Policies Policies
	Observer MergeObserver
	Now      func() time.Time
}

// Store owns the published Snapshot. Merges are serialized; reads never
// block on them. The zero value is ready to use with default policies.
type Store struct {
	mu       sync.Mutex // serializes writers
	current  atomic.Pointer[Snapshot]
	policies Policies
	observer MergeObserver
	now      func() time.Time

	subsMu sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

// New returns an empty Store.
func New(opts Options) *Store {
	return &Store{
		policies: opts.Policies,
		observer: opts.Observer,
		now:      opts.Now,
	}
}

// Policies returns the merge policies in effect.
func (s *Store) Policies() Policies {
	return s.policies
}

// Snapshot returns the latest published snapshot.
func (s *Store) Snapshot() Snapshot {
	if snap := s.current.Load(); snap != nil {
		return *snap
	}
	return Snapshot{}
}

// DispatchPhotos applies a photo event and publishes the result. A nil event
// publishes nothing.
func (s *Store) DispatchPhotos(ev Event[api.Photo]) Snapshot {
	if ev == nil {
		return s.Snapshot()
	}
	return s.publish(KindPhotos, ev.Kind(), func(next *Snapshot) {
		next.Photos = Reduce(next.Photos, ev, s.policies.Photos)
	})
}

// DispatchAlbums applies an album event and publishes the result.
func (s *Store) DispatchAlbums(ev Event[api.Album]) Snapshot {
	if ev == nil {
		return s.Snapshot()
	}
	return s.publish(KindAlbums, ev.Kind(), func(next *Snapshot) {
		next.Albums = Reduce(next.Albums, ev, s.policies.Albums)
	})
}

// DispatchComments applies a comment event and publishes the result.
func (s *Store) DispatchComments(ev Event[api.Comment]) Snapshot {
	if ev == nil {
		return s.Snapshot()
	}
	return s.publish(KindComments, ev.Kind(), func(next *Snapshot) {
		next.Comments = Reduce(next.Comments, ev, s.policies.Comments)
	})
}

// DispatchPhotoDeleted removes a photo and, in the same publish, every
// cached album whose only picture it was. The server deletes such albums
// together with the photo.
func (s *Store) DispatchPhotoDeleted(photoID int64) Snapshot {
	ev := Deleted[api.Photo]{ID: photoID}
	return s.publish(KindPhotos, ev.Kind(), func(next *Snapshot) {
		next.Photos = Reduce(next.Photos, Event[api.Photo](ev), s.policies.Photos)
		for _, id := range emptiedAlbums(next.Albums, photoID) {
			next.Albums = Reduce(next.Albums, Event[api.Album](Deleted[api.Album]{ID: id}), s.policies.Albums)
		}
	})
}

// emptiedAlbums lists the albums in any slot that hold photoID and nothing
// else.
func emptiedAlbums(albums Slice[api.Album], photoID int64) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	check := func(a api.Album) {
		pics := a.PhotoIDs()
		if len(pics) == 1 && pics[0] == photoID && !seen[a.ID] {
			seen[a.ID] = true
			ids = append(ids, a.ID)
		}
	}
	for _, a := range albums.All {
		check(a)
	}
	for _, a := range albums.Scoped {
		check(a)
	}
	if albums.Single != nil {
		check(*albums.Single)
	}
	return ids
}

// RecordSuccess clears the failure state after a successful feed refresh.
func (s *Store) RecordSuccess() Snapshot {
	return s.publish("", "", func(next *Snapshot) {
		next.LastError = nil
		next.ConsecutiveFailures = 0
	})
}

// RecordFailure keeps all cached data and records err for display.
func (s *Store) RecordFailure(err error) Snapshot {
	if err == nil {
		return s.Snapshot()
	}
	return s.publish("", "", func(next *Snapshot) {
		next.LastError = err
		next.ConsecutiveFailures++
	})
}

// Subscribe returns a channel that receives a signal after each publish.
// Signals coalesce: a slow reader sees at most one pending signal and should
// read Snapshot for the latest state. Call cancel to stop receiving; it
// closes the channel.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.subsMu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]chan struct{})
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			close(ch)
			s.subsMu.Unlock()
		})
	}
}

func (s *Store) publish(kind, event string, mutate func(next *Snapshot)) Snapshot {
	s.mu.Lock()
	var next Snapshot
	if prev := s.current.Load(); prev != nil {
		next = *prev
	}
	mutate(&next)
	next.Version++
	next.LastUpdated = s.clock()
	s.current.Store(&next)
	s.mu.Unlock()

	if kind != "" && s.observer != nil {
		s.observer.ObserveMerge(kind, event)
	}
	s.notify()
	return next
}

func (s *Store) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
