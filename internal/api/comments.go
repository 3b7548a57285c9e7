package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// CommentForm is the body for comment and reply create/edit.
type CommentForm struct {
	AuthorID int64
	Content  string
}

func (f CommentForm) encode() (*requestBody, error) {
	if strings.TrimSpace(f.Content) == "" {
		return nil, fmt.Errorf("content required")
	}
	fields := []formField{{name: "content", value: f.Content}}
	if f.AuthorID > 0 {
		fields = append(fields, formField{name: "author_id", value: strconv.FormatInt(f.AuthorID, 10)})
	}
	return encodeMultipart(fields, "", nil)
}

func commentPath(photoID, commentID int64, suffix string) string {
	return fmt.Sprintf("/photos/%d/comments/%d/%s", photoID, commentID, suffix)
}

// FetchComments retrieves the comments on one photo.
func (c *Client) FetchComments(ctx context.Context, photoID int64) ([]Comment, error) {
	if photoID <= 0 {
		return nil, fmt.Errorf("photo id required")
	}
	var payload []Comment
	if err := c.doList(ctx, fmt.Sprintf("/photos/%d/comments", photoID), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateComment posts a comment on a photo.
func (c *Client) CreateComment(ctx context.Context, photoID int64, form CommentForm) (*Comment, error) {
	if photoID <= 0 {
		return nil, fmt.Errorf("photo id required")
	}
	body, err := form.encode()
	if err != nil {
		return nil, err
	}
	var payload Comment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/photos/%d/comments/new", photoID), body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateComment edits a comment's content.
func (c *Client) UpdateComment(ctx context.Context, photoID, commentID int64, form CommentForm) (*Comment, error) {
	if photoID <= 0 || commentID <= 0 {
		return nil, fmt.Errorf("photo and comment id required")
	}
	body, err := form.encode()
	if err != nil {
		return nil, err
	}
	var payload Comment
	if err := c.do(ctx, http.MethodPut, commentPath(photoID, commentID, "edit"), body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteComment removes a comment and its replies.
func (c *Client) DeleteComment(ctx context.Context, photoID, commentID int64) error {
	if photoID <= 0 || commentID <= 0 {
		return fmt.Errorf("photo and comment id required")
	}
	return c.do(ctx, http.MethodDelete, commentPath(photoID, commentID, "delete"), nil, nil)
}

// CreateReply posts a reply and returns the updated parent comment.
func (c *Client) CreateReply(ctx context.Context, photoID, commentID int64, form CommentForm) (*Comment, error) {
	if photoID <= 0 || commentID <= 0 {
		return nil, fmt.Errorf("photo and comment id required")
	}
	body, err := form.encode()
	if err != nil {
		return nil, err
	}
	var payload Comment
	if err := c.do(ctx, http.MethodPost, commentPath(photoID, commentID, "replies/new"), body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteReply removes a reply and returns the updated parent comment.
func (c *Client) DeleteReply(ctx context.Context, photoID, commentID, replyID int64) (*Comment, error) {
	if photoID <= 0 || commentID <= 0 || replyID <= 0 {
		return nil, fmt.Errorf("photo, comment and reply id required")
	}
	var payload Comment
	path := commentPath(photoID, commentID, fmt.Sprintf("replies/%d/delete", replyID))
	if err := c.do(ctx, http.MethodDelete, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
