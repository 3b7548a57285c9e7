package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// User mirrors the author object embedded in most payloads.
type User struct {
	ID                int64  `json:"id"`
	Username          string `json:"username"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// DisplayName returns "First Last", falling back to the username.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	if u.ID > 0 {
		return fmt.Sprintf("user #%d", u.ID)
	}
	return "unknown"
}

// Photo mirrors Photo.to_dict().
type Photo struct {
	ID          int64          `json:"id"`
	AuthorID    int64          `json:"author_id,omitempty"`
	Author      *User          `json:"author,omitempty"`
	URL         string         `json:"aws_url"`
	Caption     string         `json:"caption"`
	Description string         `json:"description"`
	CreatedAt   Timestamp      `json:"created_at"`
	Comments    []Comment      `json:"comments,omitempty"`
	Albums      []AlbumSummary `json:"albums,omitempty"`
}

// Key returns the photo identifier.
func (p Photo) Key() int64 { return p.ID }

// OwnerID returns the author id from either the embedded author or author_id.
func (p Photo) OwnerID() int64 {
	if p.Author != nil && p.Author.ID > 0 {
		return p.Author.ID
	}
	return p.AuthorID
}

// Album mirrors Album.to_dict().
type Album struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id,omitempty"`
	Author      *User     `json:"author,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverPhoto  string    `json:"cover_photo"`
	Pics        []Photo   `json:"pics,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
}

// Key returns the album identifier.
func (a Album) Key() int64 { return a.ID }

// OwnerID returns the author id from either the embedded author or author_id.
func (a Album) OwnerID() int64 {
	if a.Author != nil && a.Author.ID > 0 {
		return a.Author.ID
	}
	return a.AuthorID
}

// PhotoIDs returns the ordered photo references of the album.
func (a Album) PhotoIDs() []int64 {
	if len(a.Pics) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(a.Pics))
	for _, p := range a.Pics {
		ids = append(ids, p.ID)
	}
	return ids
}

// AlbumSummary mirrors Album.to_dict_no_pics_no_author(), embedded in photos.
type AlbumSummary struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	CoverPhoto string    `json:"cover_photo"`
	Length     int       `json:"length"`
	CreatedAt  Timestamp `json:"created_at"`
}

// Comment mirrors Comment.to_dict().
type Comment struct {
	ID       int64   `json:"id"`
	AuthorID int64   `json:"author_id,omitempty"`
	Author   *User   `json:"author,omitempty"`
	PhotoID  int64   `json:"photo_id,omitempty"`
	Photo    *Photo  `json:"photo,omitempty"`
	Content  string  `json:"content"`
	Replies  []Reply `json:"replies,omitempty"`
}

// Key returns the comment identifier.
func (c Comment) Key() int64 { return c.ID }

// ParentPhotoID returns the photo the comment belongs to.
func (c Comment) ParentPhotoID() int64 {
	if c.Photo != nil && c.Photo.ID > 0 {
		return c.Photo.ID
	}
	return c.PhotoID
}

// Reply mirrors Reply.to_dict().
type Reply struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id,omitempty"`
	Author    *User     `json:"author,omitempty"`
	ParentID  int64     `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}

// Key returns the reply identifier.
func (r Reply) Key() int64 { return r.ID }

// createdAlbumResponse mirrors POST /photos/album/new.
type createdAlbumResponse struct {
	NewAlbumID int64 `json:"newAlbumId"`
}

// Timestamp accepts the date encodings the API emits: RFC 1123 (Flask's
// default date serialization), bare dates and RFC 3339.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	http.TimeFormat,
	time.RFC1123,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// ParseTimestamp parses a timestamp string in any supported layout.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp: unsupported format %q", value)
}
