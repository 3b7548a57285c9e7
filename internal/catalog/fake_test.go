package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/five82/shutter/internal/api"
)

// fakeService answers from function fields; unset fields return zero values.
type fakeService struct {
	fetchPhotos     func(ctx context.Context) ([]api.Photo, error)
	fetchUserPhotos func(ctx context.Context, userID int64) ([]api.Photo, error)
	fetchPhoto      func(ctx context.Context, id int64) (*api.Photo, error)
	createPhoto     func(ctx context.Context, form api.PhotoForm) (*api.Photo, error)
	updatePhoto     func(ctx context.Context, id int64, form api.PhotoForm) (*api.Photo, error)
	deletePhoto     func(ctx context.Context, id int64) error

	fetchAlbums     func(ctx context.Context) ([]api.Album, error)
	fetchUserAlbums func(ctx context.Context, userID int64) ([]api.Album, error)
	fetchAlbum      func(ctx context.Context, id int64) (*api.Album, error)
	createAlbum     func(ctx context.Context, form api.AlbumForm) (int64, error)
	updateAlbum     func(ctx context.Context, id int64, form api.AlbumForm) (*api.Album, error)
	deleteAlbum     func(ctx context.Context, id int64) error

	fetchComments func(ctx context.Context, photoID int64) ([]api.Comment, error)
	createComment func(ctx context.Context, photoID int64, form api.CommentForm) (*api.Comment, error)
	updateComment func(ctx context.Context, photoID, commentID int64, form api.CommentForm) (*api.Comment, error)
	deleteComment func(ctx context.Context, photoID, commentID int64) error
	createReply   func(ctx context.Context, photoID, commentID int64, form api.CommentForm) (*api.Comment, error)
	deleteReply   func(ctx context.Context, photoID, commentID, replyID int64) (*api.Comment, error)
}

var _ api.Service = (*fakeService)(nil)

func (f *fakeService) FetchPhotos(ctx context.Context) ([]api.Photo, error) {
	if f.fetchPhotos == nil {
		return nil, nil
	}
	return f.fetchPhotos(ctx)
}

func (f *fakeService) FetchUserPhotos(ctx context.Context, userID int64) ([]api.Photo, error) {
	if f.fetchUserPhotos == nil {
		return nil, nil
	}
	return f.fetchUserPhotos(ctx, userID)
}

func (f *fakeService) FetchPhoto(ctx context.Context, id int64) (*api.Photo, error) {
	if f.fetchPhoto == nil {
		return &api.Photo{ID: id}, nil
	}
	return f.fetchPhoto(ctx, id)
}

func (f *fakeService) CreatePhoto(ctx context.Context, form api.PhotoForm) (*api.Photo, error) {
	if f.createPhoto == nil {
		return &api.Photo{ID: 1, Caption: form.Caption}, nil
	}
	return f.createPhoto(ctx, form)
}

func (f *fakeService) UpdatePhoto(ctx context.Context, id int64, form api.PhotoForm) (*api.Photo, error) {
	if f.updatePhoto == nil {
		return &api.Photo{ID: id, Caption: form.Caption}, nil
	}
	return f.updatePhoto(ctx, id, form)
}

func (f *fakeService) DeletePhoto(ctx context.Context, id int64) error {
	if f.deletePhoto == nil {
		return nil
	}
	return f.deletePhoto(ctx, id)
}

func (f *fakeService) FetchAlbums(ctx context.Context) ([]api.Album, error) {
	if f.fetchAlbums == nil {
		return nil, nil
	}
	return f.fetchAlbums(ctx)
}

func (f *fakeService) FetchUserAlbums(ctx context.Context, userID int64) ([]api.Album, error) {
	if f.fetchUserAlbums == nil {
		return nil, nil
	}
	return f.fetchUserAlbums(ctx, userID)
}

func (f *fakeService) FetchAlbum(ctx context.Context, id int64) (*api.Album, error) {
	if f.fetchAlbum == nil {
		return &api.Album{ID: id}, nil
	}
	return f.fetchAlbum(ctx, id)
}

func (f *fakeService) CreateAlbum(ctx context.Context, form api.AlbumForm) (int64, error) {
	if f.createAlbum == nil {
		return 1, nil
	}
	return f.createAlbum(ctx, form)
}

func (f *fakeService) UpdateAlbum(ctx context.Context, id int64, form api.AlbumForm) (*api.Album, error) {
	if f.updateAlbum == nil {
		return &api.Album{ID: id, Title: form.Title}, nil
	}
	return f.updateAlbum(ctx, id, form)
}

func (f *fakeService) DeleteAlbum(ctx context.Context, id int64) error {
	if f.deleteAlbum == nil {
		return nil
	}
	return f.deleteAlbum(ctx, id)
}

func (f *fakeService) FetchComments(ctx context.Context, photoID int64) ([]api.Comment, error) {
	if f.fetchComments == nil {
		return nil, nil
	}
	return f.fetchComments(ctx, photoID)
}

func (f *fakeService) CreateComment(ctx context.Context, photoID int64, form api.CommentForm) (*api.Comment, error) {
	if f.createComment == nil {
		return &api.Comment{ID: 1, Content: form.Content}, nil
	}
	return f.createComment(ctx, photoID, form)
}

func (f *fakeService) UpdateComment(ctx context.Context, photoID, commentID int64, form api.CommentForm) (*api.Comment, error) {
	if f.updateComment == nil {
		return &api.Comment{ID: commentID, Content: form.Content}, nil
	}
	return f.updateComment(ctx, photoID, commentID, form)
}

func (f *fakeService) DeleteComment(ctx context.Context, photoID, commentID int64) error {
	if f.deleteComment == nil {
		return nil
	}
	return f.deleteComment(ctx, photoID, commentID)
}

func (f *fakeService) CreateReply(ctx context.Context, photoID, commentID int64, form api.CommentForm) (*api.Comment, error) {
	if f.createReply == nil {
		return &api.Comment{ID: commentID}, nil
	}
	return f.createReply(ctx, photoID, commentID, form)
}

func (f *fakeService) DeleteReply(ctx context.Context, photoID, commentID, replyID int64) (*api.Comment, error) {
	if f.deleteReply == nil {
		return &api.Comment{ID: commentID}, nil
	}
	return f.deleteReply(ctx, photoID, commentID, replyID)
}

type recordedRequest struct {
	op  string
	err error
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []recordedRequest
}

func (r *fakeRecorder) ObserveRequest(op string, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, recordedRequest{op: op, err: err})
}
