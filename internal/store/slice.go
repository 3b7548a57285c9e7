package store

import (
	"fmt"
	"sort"
	"strings"
)

// Entity is anything the store can key by identifier.
type Entity interface {
	Key() int64
}

// MergePolicy decides how a list response lands in a keyed slot.
type MergePolicy int

const (
	// MergeDefault uses the slot's default: union for All, replace for Scoped.
	MergeDefault MergePolicy = iota
	// MergeUnion keeps previous entries and overlays the response (last write wins).
	MergeUnion
	// MergeReplace discards previous entries.
	MergeReplace
)

// ParseMergePolicy parses "union", "replace" or "" (default).
func ParseMergePolicy(value string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default":
		return MergeDefault, nil
	case "union", "merge":
		return MergeUnion, nil
	case "replace":
		return MergeReplace, nil
	}
	return MergeDefault, fmt.Errorf("unknown merge policy %q", value)
}

func (p MergePolicy) String() string {
	switch p {
	case MergeUnion:
		return "union"
	case MergeReplace:
		return "replace"
	default:
		return "default"
	}
}

// Policy holds the list merge policy for the All and Scoped slots of one
// entity kind.
type Policy struct {
	All    MergePolicy
	Scoped MergePolicy
}

func (p Policy) all() MergePolicy {
	if p.All == MergeDefault {
		return MergeUnion
	}
	return p.All
}

func (p Policy) scoped() MergePolicy {
	if p.Scoped == MergeDefault {
		return MergeReplace
	}
	return p.Scoped
}

// Slice is the cached state of one entity kind. Maps held by a published
// Slice are never written again; reducers allocate new ones.
type Slice[T Entity] struct {
	All     map[int64]T
	Scoped  map[int64]T
	ScopeID int64
	Single  *T
}

// Get looks id up in the All slot.
func (s Slice[T]) Get(id int64) (T, bool) {
	v, ok := s.All[id]
	return v, ok
}

// GetScoped looks id up in the Scoped slot.
func (s Slice[T]) GetScoped(id int64) (T, bool) {
	v, ok := s.Scoped[id]
	return v, ok
}

// AllValues returns the All slot ordered by id.
func (s Slice[T]) AllValues() []T {
	return sortedValues(s.All)
}

// ScopedValues returns the Scoped slot ordered by id.
func (s Slice[T]) ScopedValues() []T {
	return sortedValues(s.Scoped)
}

func sortedValues[T Entity](m map[int64]T) []T {
	if len(m) == 0 {
		return nil
	}
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func cloneSlot[T Entity](m map[int64]T, extra int) map[int64]T {
	out := make(map[int64]T, len(m)+extra)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mergeList[T Entity](prev map[int64]T, items []T, policy MergePolicy) map[int64]T {
	var out map[int64]T
	if policy == MergeReplace {
		out = make(map[int64]T, len(items))
	} else {
		out = cloneSlot(prev, len(items))
	}
	for _, item := range items {
		out[item.Key()] = item
	}
	return out
}

// Event is one merge operation. The set of events is closed: the apply
// method is unexported, so only this package can define new kinds, and each
// kind carries its own merge.
type Event[T Entity] interface {
	// Kind names the event for logs and metrics.
	Kind() string
	apply(s Slice[T], p Policy) Slice[T]
}

// LoadedAll is a successful fetch of the whole collection.
type LoadedAll[T Entity] struct {
	Items []T
}

// LoadedScoped is a successful fetch of one query context, such as one
// user's photos.
type LoadedScoped[T Entity] struct {
	ScopeID int64
	Items   []T
}

// LoadedOne is a successful fetch of a single entity.
type LoadedOne[T Entity] struct {
	Item T
}

// Created is a successful create.
type Created[T Entity] struct {
	Item T
}

// Updated is a successful update.
type Updated[T Entity] struct {
	Item T
}

// Deleted is a successful delete.
type Deleted[T Entity] struct {
	ID int64
}

func (LoadedAll[T]) Kind() string    { return "loaded_all" }
func (LoadedScoped[T]) Kind() string { return "loaded_scoped" }
func (LoadedOne[T]) Kind() string    { return "loaded_one" }
func (Created[T]) Kind() string      { return "created" }
func (Updated[T]) Kind() string      { return "updated" }
func (Deleted[T]) Kind() string      { return "deleted" }

func (e LoadedAll[T]) apply(s Slice[T], p Policy) Slice[T] {
	s.All = mergeList(s.All, e.Items, p.all())
	return s
}

func (e LoadedScoped[T]) apply(s Slice[T], p Policy) Slice[T] {
	s.Scoped = mergeList(s.Scoped, e.Items, p.scoped())
	s.ScopeID = e.ScopeID
	return s
}

func (e LoadedOne[T]) apply(s Slice[T], _ Policy) Slice[T] {
	item := e.Item
	s.Single = &item
	return s
}

func (e Created[T]) apply(s Slice[T], _ Policy) Slice[T] {
	all := cloneSlot(s.All, 1)
	all[e.Item.Key()] = e.Item
	s.All = all
	return s
}

// Updated never inserts: each slot is rewritten only when it already holds
// the key.
func (e Updated[T]) apply(s Slice[T], _ Policy) Slice[T] {
	id := e.Item.Key()
	if _, ok := s.All[id]; ok {
		all := cloneSlot(s.All, 0)
		all[id] = e.Item
		s.All = all
	}
	if _, ok := s.Scoped[id]; ok {
		scoped := cloneSlot(s.Scoped, 0)
		scoped[id] = e.Item
		s.Scoped = scoped
	}
	if s.Single != nil && (*s.Single).Key() == id {
		item := e.Item
		s.Single = &item
	}
	return s
}

func (e Deleted[T]) apply(s Slice[T], _ Policy) Slice[T] {
	if _, ok := s.All[e.ID]; ok {
		all := cloneSlot(s.All, 0)
		delete(all, e.ID)
		s.All = all
	}
	if _, ok := s.Scoped[e.ID]; ok {
		scoped := cloneSlot(s.Scoped, 0)
		delete(scoped, e.ID)
		s.Scoped = scoped
	}
	if s.Single != nil && (*s.Single).Key() == e.ID {
		s.Single = nil
	}
	return s
}

// Reduce applies ev to s and returns the next Slice. s is not modified.
func Reduce[T Entity](s Slice[T], ev Event[T], p Policy) Slice[T] {
	if ev == nil {
		return s
	}
	return ev.apply(s, p)
}
