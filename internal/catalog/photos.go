package catalog

import (
	"context"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/store"
)

// FetchPhotos loads the feed and unions it into Photos.All.
func (c *Catalog) FetchPhotos(ctx context.Context) ([]api.Photo, error) {
	photos, err := call(ctx, c, "photos.fetch_all", c.client.FetchPhotos)
	if err != nil {
		return nil, err
	}
	c.store.DispatchPhotos(store.LoadedAll[api.Photo]{Items: photos})
	return photos, nil
}

// FetchUserPhotos loads one user's photos into Photos.Scoped.
func (c *Catalog) FetchUserPhotos(ctx context.Context, userID int64) ([]api.Photo, error) {
	photos, err := call(ctx, c, "photos.fetch_user", func(ctx context.Context) ([]api.Photo, error) {
		return c.client.FetchUserPhotos(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	c.store.DispatchPhotos(store.LoadedScoped[api.Photo]{ScopeID: userID, Items: photos})
	return photos, nil
}

// FetchPhoto loads one photo into Photos.Single.
func (c *Catalog) FetchPhoto(ctx context.Context, photoID int64) (api.Photo, error) {
	photo, err := call(ctx, c, "photos.fetch_one", func(ctx context.Context) (*api.Photo, error) {
		return c.client.FetchPhoto(ctx, photoID)
	})
	if err != nil {
		return api.Photo{}, err
	}
	c.store.DispatchPhotos(store.LoadedOne[api.Photo]{Item: *photo})
	return *photo, nil
}

// CreatePhoto uploads a photo and inserts it into Photos.All.
func (c *Catalog) CreatePhoto(ctx context.Context, form api.PhotoForm) (api.Photo, error) {
	photo, err := call(ctx, c, "photos.create", func(ctx context.Context) (*api.Photo, error) {
		return c.client.CreatePhoto(ctx, form)
	})
	if err != nil {
		return api.Photo{}, err
	}
	c.store.DispatchPhotos(store.Created[api.Photo]{Item: *photo})
	return *photo, nil
}

// UpdatePhoto edits a photo and overwrites it wherever it is already cached.
func (c *Catalog) UpdatePhoto(ctx context.Context, photoID int64, form api.PhotoForm) (api.Photo, error) {
	photo, err := call(ctx, c, "photos.update", func(ctx context.Context) (*api.Photo, error) {
		return c.client.UpdatePhoto(ctx, photoID, form)
	})
	if err != nil {
		return api.Photo{}, err
	}
	c.store.DispatchPhotos(store.Updated[api.Photo]{Item: *photo})
	return *photo, nil
}

// DeletePhoto removes a photo from the server and from every slot, along
// with any cached album that held only this photo.
func (c *Catalog) DeletePhoto(ctx context.Context, photoID int64) error {
	err := exec(ctx, c, "photos.delete", func(ctx context.Context) error {
		return c.client.DeletePhoto(ctx, photoID)
	})
	if err != nil {
		return err
	}
	c.store.DispatchPhotoDeleted(photoID)
	return nil
}
