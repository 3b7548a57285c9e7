package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// PhotoForm is the multipart body for photo create and edit. File is
// required on create and optional on edit, where it replaces the image.
type PhotoForm struct {
	AuthorID    int64
	Caption     string
	Description string
	File        *File
}

func (f PhotoForm) encode() (*requestBody, error) {
	fields := []formField{
		{name: "caption", value: f.Caption},
		{name: "description", value: f.Description},
	}
	if f.AuthorID > 0 {
		fields = append(fields, formField{name: "author_id", value: strconv.FormatInt(f.AuthorID, 10)})
	}
	return encodeMultipart(fields, "photo", f.File)
}

// FetchPhotos retrieves the home feed.
func (c *Client) FetchPhotos(ctx context.Context) ([]Photo, error) {
	var payload []Photo
	if err := c.do(ctx, http.MethodGet, "/photos/all", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchUserPhotos retrieves one user's photo stream.
func (c *Client) FetchUserPhotos(ctx context.Context, userID int64) ([]Photo, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id required")
	}
	var payload []Photo
	if err := c.doList(ctx, fmt.Sprintf("/photos/user/%d", userID), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchPhoto retrieves a single photo with its comments and albums.
func (c *Client) FetchPhoto(ctx context.Context, photoID int64) (*Photo, error) {
	if photoID <= 0 {
		return nil, fmt.Errorf("photo id required")
	}
	var payload Photo
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/photos/%d", photoID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreatePhoto uploads a new photo.
func (c *Client) CreatePhoto(ctx context.Context, form PhotoForm) (*Photo, error) {
	if form.File == nil || len(form.File.Data) == 0 {
		return nil, fmt.Errorf("photo file required")
	}
	body, err := form.encode()
	if err != nil {
		return nil, err
	}
	var payload Photo
	if err := c.do(ctx, http.MethodPost, "/photos/new", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdatePhoto edits caption/description and optionally replaces the image.
func (c *Client) UpdatePhoto(ctx context.Context, photoID int64, form PhotoForm) (*Photo, error) {
	if photoID <= 0 {
		return nil, fmt.Errorf("photo id required")
	}
	body, err := form.encode()
	if err != nil {
		return nil, err
	}
	var payload Photo
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/photos/%d/edit", photoID), body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeletePhoto removes a photo. The server also drops albums left empty.
func (c *Client) DeletePhoto(ctx context.Context, photoID int64) error {
	if photoID <= 0 {
		return fmt.Errorf("photo id required")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/photos/%d/delete", photoID), nil, nil)
}
