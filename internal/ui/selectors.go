package ui

import (
	"sort"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/store"
)

// newestPhotosFirst orders photos by creation time, newest first, breaking
// ties by id.
func newestPhotosFirst(photos []api.Photo) []api.Photo {
	sort.SliceStable(photos, func(i, j int) bool {
		ti, tj := photos[i].CreatedAt.Time, photos[j].CreatedAt.Time
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return photos[i].ID > photos[j].ID
	})
	return photos
}

func newestAlbumsFirst(albums []api.Album) []api.Album {
	sort.SliceStable(albums, func(i, j int) bool {
		ti, tj := albums[i].CreatedAt.Time, albums[j].CreatedAt.Time
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return albums[i].ID > albums[j].ID
	})
	return albums
}

// feedPhotos returns the global feed.
func feedPhotos(snap store.Snapshot) []api.Photo {
	return newestPhotosFirst(snap.Photos.AllValues())
}

// userPhotos returns the scoped photo list when it belongs to userID.
func userPhotos(snap store.Snapshot, userID int64) []api.Photo {
	if snap.Photos.ScopeID != userID {
		return nil
	}
	return newestPhotosFirst(snap.Photos.ScopedValues())
}

// userAlbums returns the scoped album list when it belongs to userID.
func userAlbums(snap store.Snapshot, userID int64) []api.Album {
	if snap.Albums.ScopeID != userID {
		return nil
	}
	return newestAlbumsFirst(snap.Albums.ScopedValues())
}

func allAlbums(snap store.Snapshot) []api.Album {
	return newestAlbumsFirst(snap.Albums.AllValues())
}

// lookupPhoto prefers the single slot, which holds the fullest payload.
func lookupPhoto(snap store.Snapshot, id int64) (api.Photo, bool) {
	if single := snap.Photos.Single; single != nil && single.ID == id {
		return *single, true
	}
	if p, ok := snap.Photos.Get(id); ok {
		return p, true
	}
	return snap.Photos.GetScoped(id)
}

func lookupAlbum(snap store.Snapshot, id int64) (api.Album, bool) {
	if single := snap.Albums.Single; single != nil && single.ID == id {
		return *single, true
	}
	if a, ok := snap.Albums.Get(id); ok {
		return a, true
	}
	return snap.Albums.GetScoped(id)
}

// photoComments gathers every cached comment on photoID: those embedded in
// the photo payload, created ones in the All slot, and the scoped list when
// it was fetched for this photo. Later sources win.
func photoComments(snap store.Snapshot, photoID int64) []api.Comment {
	byID := make(map[int64]api.Comment)
	if photo, ok := lookupPhoto(snap, photoID); ok {
		for _, c := range photo.Comments {
			if c.PhotoID == 0 {
				c.PhotoID = photoID
			}
			byID[c.ID] = c
		}
	}
	for _, c := range snap.Comments.All {
		if c.ParentPhotoID() == photoID {
			byID[c.ID] = c
		}
	}
	if snap.Comments.ScopeID == photoID {
		for _, c := range snap.Comments.Scoped {
			byID[c.ID] = c
		}
	}
	if len(byID) == 0 {
		return nil
	}
	out := make([]api.Comment, 0, len(byID))
	for _, c := range byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// syncStatus derives the header badge from the snapshot and in-flight work.
func syncStatus(snap store.Snapshot, pending int) string {
	switch {
	case snap.IsOffline():
		return StatusOffline
	case snap.LastError != nil:
		return StatusDegraded
	case pending > 0:
		return StatusBusy
	case snap.Version == 0:
		return StatusConnecting
	default:
		return StatusOnline
	}
}

func statusLabel(status string) string {
	switch status {
	case StatusOnline:
		return "ONLINE"
	case StatusOffline:
		return "OFFLINE"
	case StatusDegraded:
		return "RETRYING"
	case StatusBusy:
		return "SYNCING"
	default:
		return "CONNECTING"
	}
}
