package catalog

import (
	"context"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/store"
)

// FetchComments loads one photo's comments into Comments.Scoped.
func (c *Catalog) FetchComments(ctx context.Context, photoID int64) ([]api.Comment, error) {
	comments, err := call(ctx, c, "comments.fetch_photo", func(ctx context.Context) ([]api.Comment, error) {
		return c.client.FetchComments(ctx, photoID)
	})
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i] = withParent(comments[i], photoID)
	}
	c.store.DispatchComments(store.LoadedScoped[api.Comment]{ScopeID: photoID, Items: comments})
	return comments, nil
}

// CreateComment posts a comment and inserts it into Comments.All.
func (c *Catalog) CreateComment(ctx context.Context, photoID int64, form api.CommentForm) (api.Comment, error) {
	comment, err := call(ctx, c, "comments.create", func(ctx context.Context) (*api.Comment, error) {
		return c.client.CreateComment(ctx, photoID, form)
	})
	if err != nil {
		return api.Comment{}, err
	}
	created := withParent(*comment, photoID)
	c.store.DispatchComments(store.Created[api.Comment]{Item: created})
	return created, nil
}

// UpdateComment edits a comment and overwrites it wherever it is cached.
func (c *Catalog) UpdateComment(ctx context.Context, photoID, commentID int64, form api.CommentForm) (api.Comment, error) {
	comment, err := call(ctx, c, "comments.update", func(ctx context.Context) (*api.Comment, error) {
		return c.client.UpdateComment(ctx, photoID, commentID, form)
	})
	if err != nil {
		return api.Comment{}, err
	}
	updated := withParent(*comment, photoID)
	c.store.DispatchComments(store.Updated[api.Comment]{Item: updated})
	return updated, nil
}

// DeleteComment removes a comment from the server and from every slot.
func (c *Catalog) DeleteComment(ctx context.Context, photoID, commentID int64) error {
	err := exec(ctx, c, "comments.delete", func(ctx context.Context) error {
		return c.client.DeleteComment(ctx, photoID, commentID)
	})
	if err != nil {
		return err
	}
	c.store.DispatchComments(store.Deleted[api.Comment]{ID: commentID})
	return nil
}

// CreateReply posts a reply. The API returns the parent comment, which is
// merged as an update.
func (c *Catalog) CreateReply(ctx context.Context, photoID, commentID int64, form api.CommentForm) (api.Comment, error) {
	comment, err := call(ctx, c, "replies.create", func(ctx context.Context) (*api.Comment, error) {
		return c.client.CreateReply(ctx, photoID, commentID, form)
	})
	if err != nil {
		return api.Comment{}, err
	}
	parent := withParent(*comment, photoID)
	c.store.DispatchComments(store.Updated[api.Comment]{Item: parent})
	return parent, nil
}

// DeleteReply removes a reply and merges the returned parent comment.
func (c *Catalog) DeleteReply(ctx context.Context, photoID, commentID, replyID int64) (api.Comment, error) {
	comment, err := call(ctx, c, "replies.delete", func(ctx context.Context) (*api.Comment, error) {
		return c.client.DeleteReply(ctx, photoID, commentID, replyID)
	})
	if err != nil {
		return api.Comment{}, err
	}
	parent := withParent(*comment, photoID)
	c.store.DispatchComments(store.Updated[api.Comment]{Item: parent})
	return parent, nil
}

// withParent fills PhotoID when the payload did not carry its parent photo.
func withParent(comment api.Comment, photoID int64) api.Comment {
	if comment.ParentPhotoID() == 0 {
		comment.PhotoID = photoID
	}
	return comment
}
