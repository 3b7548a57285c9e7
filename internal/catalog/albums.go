package catalog

import (
	"context"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/store"
)

// FetchAlbums loads every album and unions it into Albums.All.
func (c *Catalog) FetchAlbums(ctx context.Context) ([]api.Album, error) {
	albums, err := call(ctx, c, "albums.fetch_all", c.client.FetchAlbums)
	if err != nil {
		return nil, err
	}
	c.store.DispatchAlbums(store.LoadedAll[api.Album]{Items: albums})
	return albums, nil
}

// FetchUserAlbums loads one user's albums into Albums.Scoped.
func (c *Catalog) FetchUserAlbums(ctx context.Context, userID int64) ([]api.Album, error) {
	albums, err := call(ctx, c, "albums.fetch_user", func(ctx context.Context) ([]api.Album, error) {
		return c.client.FetchUserAlbums(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	c.store.DispatchAlbums(store.LoadedScoped[api.Album]{ScopeID: userID, Items: albums})
	return albums, nil
}

// FetchAlbum loads one album into Albums.Single.
func (c *Catalog) FetchAlbum(ctx context.Context, albumID int64) (api.Album, error) {
	album, err := call(ctx, c, "albums.fetch_one", func(ctx context.Context) (*api.Album, error) {
		return c.client.FetchAlbum(ctx, albumID)
	})
	if err != nil {
		return api.Album{}, err
	}
	c.store.DispatchAlbums(store.LoadedOne[api.Album]{Item: *album})
	return *album, nil
}

// CreateAlbum creates an album. The API answers with the new id only, so the
// inserted album is built from that id and the submitted form, with pictures
// resolved from the photos already cached.
func (c *Catalog) CreateAlbum(ctx context.Context, form api.AlbumForm) (api.Album, error) {
	id, err := call(ctx, c, "albums.create", func(ctx context.Context) (int64, error) {
		return c.client.CreateAlbum(ctx, form)
	})
	if err != nil {
		return api.Album{}, err
	}
	album := c.albumFromForm(id, form)
	c.store.DispatchAlbums(store.Created[api.Album]{Item: album})
	return album, nil
}

// UpdateAlbum edits an album and overwrites it wherever it is already cached.
func (c *Catalog) UpdateAlbum(ctx context.Context, albumID int64, form api.AlbumForm) (api.Album, error) {
	album, err := call(ctx, c, "albums.update", func(ctx context.Context) (*api.Album, error) {
		return c.client.UpdateAlbum(ctx, albumID, form)
	})
	if err != nil {
		return api.Album{}, err
	}
	c.store.DispatchAlbums(store.Updated[api.Album]{Item: *album})
	return *album, nil
}

// DeleteAlbum removes an album from the server and from every slot.
func (c *Catalog) DeleteAlbum(ctx context.Context, albumID int64) error {
	err := exec(ctx, c, "albums.delete", func(ctx context.Context) error {
		return c.client.DeleteAlbum(ctx, albumID)
	})
	if err != nil {
		return err
	}
	c.store.DispatchAlbums(store.Deleted[api.Album]{ID: albumID})
	return nil
}

func (c *Catalog) albumFromForm(id int64, form api.AlbumForm) api.Album {
	photos := c.store.Snapshot().Photos
	album := api.Album{
		ID:          id,
		AuthorID:    form.AuthorID,
		Title:       form.Title,
		Description: form.Description,
	}
	for _, pid := range form.PhotoIDs {
		pic, ok := photos.Get(pid)
		if !ok {
			pic = api.Photo{ID: pid}
		}
		album.Pics = append(album.Pics, pic)
	}
	if len(album.Pics) > 0 {
		album.CoverPhoto = album.Pics[0].URL
	}
	return album
}
