package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// AlbumForm is the body for album create and edit. PhotoIDs is sent as the
// comma-separated "photos" field.
type AlbumForm struct {
	AuthorID    int64
	Title       string
	Description string
	PhotoIDs    []int64
}

func (f AlbumForm) encode() (*requestBody, error) {
	ids := make([]string, 0, len(f.PhotoIDs))
	for _, id := range f.PhotoIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	fields := []formField{
		{name: "title", value: f.Title},
		{name: "description", value: f.Description},
		{name: "photos", value: strings.Join(ids, ",")},
	}
	if f.AuthorID > 0 {
		fields = append(fields, formField{name: "author_id", value: strconv.FormatInt(f.AuthorID, 10)})
	}
	return encodeMultipart(fields, "", nil)
}

// FetchAlbums retrieves every album.
func (c *Client) FetchAlbums(ctx context.Context) ([]Album, error) {
	var payload []Album
	if err := c.do(ctx, http.MethodGet, "/photos/albums/all", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchUserAlbums retrieves the albums authored by one user.
func (c *Client) FetchUserAlbums(ctx context.Context, userID int64) ([]Album, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id required")
	}
	var payload []Album
	if err := c.doList(ctx, fmt.Sprintf("/photos/albums/user/%d", userID), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchAlbum retrieves one album with its photos.
func (c *Client) FetchAlbum(ctx context.Context, albumID int64) (*Album, error) {
	if albumID <= 0 {
		return nil, fmt.Errorf("album id required")
	}
	var payload Album
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/photos/albums/%d", albumID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateAlbum creates an album and returns its new id. The API answers
// with the id only.
func (c *Client) CreateAlbum(ctx context.Context, form AlbumForm) (int64, error) {
	if strings.TrimSpace(form.Title) == "" {
		return 0, fmt.Errorf("album title required")
	}
	if len(form.PhotoIDs) == 0 {
		return 0, fmt.Errorf("album needs at least one photo")
	}
	body, err := form.encode()
	if err != nil {
		return 0, err
	}
	var payload createdAlbumResponse
	if err := c.do(ctx, http.MethodPost, "/photos/album/new", body, &payload); err != nil {
		return 0, err
	}
	if payload.NewAlbumID <= 0 {
		return 0, fmt.Errorf("decode response: missing newAlbumId")
	}
	return payload.NewAlbumID, nil
}

// UpdateAlbum edits title, description and photo membership.
func (c *Client) UpdateAlbum(ctx context.Context, albumID int64, form AlbumForm) (*Album, error) {
	if albumID <= 0 {
		return nil, fmt.Errorf("album id required")
	}
	body, err := form.encode()
	if err != nil {
		return nil, err
	}
	var payload Album
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/photos/albums/%d/edit", albumID), body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteAlbum removes an album. Its photos are kept.
func (c *Client) DeleteAlbum(ctx context.Context, albumID int64) error {
	if albumID <= 0 {
		return fmt.Errorf("album id required")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/photos/albums/%d/delete", albumID), nil, nil)
}
