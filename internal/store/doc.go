// Package store holds the client-side normalized entity cache.
//
// # Overview
//
// Every entity kind (photos, albums, comments) is cached in a Slice with
// three slots:
//
//   - All: every entity of the kind seen so far, keyed by id
//   - Scoped: the entities of one query context (one user's photos, one
//     photo's comments) plus the ScopeID of that context
//   - Single: the most recently fetched individual entity, or nil
//
// Slots only change through Reduce, which applies one Event to a Slice and
// returns a new Slice. Reduce never writes to the maps it was given; any slot
// it changes is a freshly allocated map. Slots it does not change are shared
// with the previous Slice.
//
// # Events
//
// The event set is closed:
//
//	LoadedAll     union (or replace) the response into All
//	LoadedScoped  replace (or union) Scoped and record ScopeID
//	LoadedOne     overwrite Single
//	Created       insert into All
//	Updated       overwrite the key in each slot that already holds it
//	Deleted       remove the key from every slot
//
// Each event type carries its own merge through an unexported method, so an
// event without a merge does not compile and no other package can add one.
//
// # Merge Policy
//
// List responses land according to a Policy. All defaults to MergeUnion and
// Scoped defaults to MergeReplace. Both can be set per kind through
// Options.Policies. With MergeUnion a scope change keeps the entries of the
// previous scope.
//
// # Publishing
//
// Store owns the current Snapshot. Dispatch runs the reducer under a writer
// mutex and publishes the result with a single pointer swap, so readers
// either see the whole merge or none of it. Snapshot never blocks on writers.
// Each publish bumps Version and wakes Subscribe channels; signals coalesce
// and subscribers should re-read Snapshot.
//
// Merges apply in the order responses arrive. Two concurrent fetches of the
// same collection both land: under union the later one wins on shared keys.
//
// # Usage Example
//
//	st := store.New(store.Options{})
//	photos, err := client.FetchPhotos(ctx)
//	if err != nil {
//		return err // store unchanged
//	}
//	snap := st.DispatchPhotos(store.LoadedAll[api.Photo]{Items: photos})
//	for _, p := range snap.Photos.AllValues() {
//		fmt.Println(p.ID, p.Caption)
//	}
//
// The zero Store is ready to use with default policies.
package store
