package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/catalog"
	"github.com/five82/shutter/internal/prefs"
	"github.com/five82/shutter/internal/upload"
)

// opDoneMsg reports the end of one catalog operation.
type opDoneMsg struct {
	label string
	quiet bool
	err   error
}

// startOp runs fn off the UI goroutine. The catalog merges results into the
// store, which signals the model; the message only carries the outcome.
func (m *Model) startOp(label string, quiet bool, fn func(ctx context.Context, cat *catalog.Catalog) error) tea.Cmd {
	if m.catalog == nil {
		return nil
	}
	m.pending++
	ctx, cat := m.ctx, m.catalog
	return func() tea.Msg {
		return opDoneMsg{label: label, quiet: quiet, err: fn(ctx, cat)}
	}
}

func (m *Model) finishOp(msg opDoneMsg) {
	if m.pending > 0 {
		m.pending--
	}
	switch {
	case msg.err != nil:
		m.setFlash(fmt.Sprintf("%s failed: %s", msg.label, errorText(msg.err)), false)
	case !msg.quiet:
		m.setFlash(msg.label+" done", true)
	}
}

func (m *Model) setFlash(text string, ok bool) {
	m.flash = text
	m.flashOK = ok
	m.flashAt = m.now()
}

func (m *Model) fetchFeed() tea.Cmd {
	return m.startOp("Refresh feed", true, func(ctx context.Context, cat *catalog.Catalog) error {
		_, err := cat.FetchPhotos(ctx)
		return err
	})
}

func (m *Model) fetchUserPhotos() tea.Cmd {
	userID := m.userID
	return m.startOp("Load user photos", true, func(ctx context.Context, cat *catalog.Catalog) error {
		_, err := cat.FetchUserPhotos(ctx, userID)
		return err
	})
}

func (m *Model) fetchUserAlbums() tea.Cmd {
	userID := m.userID
	return m.startOp("Load user albums", true, func(ctx context.Context, cat *catalog.Catalog) error {
		_, err := cat.FetchUserAlbums(ctx, userID)
		return err
	})
}

func (m *Model) fetchAlbums() tea.Cmd {
	return m.startOp("Load albums", true, func(ctx context.Context, cat *catalog.Catalog) error {
		_, err := cat.FetchAlbums(ctx)
		return err
	})
}

func (m *Model) fetchAlbum(id int64) tea.Cmd {
	return m.startOp("Load album", true, func(ctx context.Context, cat *catalog.Catalog) error {
		_, err := cat.FetchAlbum(ctx, id)
		return err
	})
}

func (m *Model) fetchPhoto(id int64) tea.Cmd {
	return m.startOp("Load photo", true, func(ctx context.Context, cat *catalog.Catalog) error {
		_, err := cat.FetchPhoto(ctx, id)
		return err
	})
}

func (m *Model) fetchComments(photoID int64) tea.Cmd {
	return m.startOp("Load comments", true, func(ctx context.Context, cat *catalog.Catalog) error {
		_, err := cat.FetchComments(ctx, photoID)
		return err
	})
}

// refreshView reloads whatever the current view shows.
func (m *Model) refreshView() tea.Cmd {
	switch m.currentView {
	case ViewUser:
		if m.userTab == prefs.TabAlbums {
			return m.fetchUserAlbums()
		}
		return m.fetchUserPhotos()
	case ViewAlbums:
		cmds := []tea.Cmd{m.fetchAlbums()}
		if album, ok := m.selectedAlbum(); ok {
			cmds = append(cmds, m.fetchAlbum(album.ID))
		}
		return tea.Batch(cmds...)
	case ViewPhoto:
		return tea.Batch(m.fetchPhoto(m.photoID), m.fetchComments(m.photoID))
	case ViewLogs:
		return readLogsCmd(m.logPath)
	default:
		return m.fetchFeed()
	}
}

// submit turns a confirmed modal into a catalog operation.
func (m *Model) submit(msg submitMsg) tea.Cmd {
	t := msg.target
	v := msg.values
	userID := m.userID

	switch msg.action {
	case actionUploadPhoto:
		opts := m.uploadOpt
		return m.startOp("Upload photo", false, func(ctx context.Context, cat *catalog.Catalog) error {
			file, err := upload.Prepare(v[0], opts)
			if err != nil {
				return err
			}
			_, err = cat.CreatePhoto(ctx, api.PhotoForm{
				AuthorID:    userID,
				Caption:     v[1],
				Description: v[2],
				File:        &file,
			})
			return err
		})

	case actionEditPhoto:
		return m.startOp("Update photo", false, func(ctx context.Context, cat *catalog.Catalog) error {
			_, err := cat.UpdatePhoto(ctx, t.photoID, api.PhotoForm{
				AuthorID:    userID,
				Caption:     v[0],
				Description: v[1],
			})
			return err
		})

	case actionDeletePhoto:
		if m.currentView == ViewPhoto && m.photoID == t.photoID {
			m.currentView = m.returnView
		}
		return m.startOp("Delete photo", false, func(ctx context.Context, cat *catalog.Catalog) error {
			return cat.DeletePhoto(ctx, t.photoID)
		})

	case actionNewAlbum, actionEditAlbum:
		ids, err := parseIDList(v[2])
		if err != nil {
			m.setFlash(err.Error(), false)
			return nil
		}
		form := api.AlbumForm{AuthorID: userID, Title: v[0], Description: v[1], PhotoIDs: ids}
		if msg.action == actionNewAlbum {
			return m.startOp("Create album", false, func(ctx context.Context, cat *catalog.Catalog) error {
				_, err := cat.CreateAlbum(ctx, form)
				return err
			})
		}
		return m.startOp("Update album", false, func(ctx context.Context, cat *catalog.Catalog) error {
			_, err := cat.UpdateAlbum(ctx, t.albumID, form)
			return err
		})

	case actionDeleteAlbum:
		return m.startOp("Delete album", false, func(ctx context.Context, cat *catalog.Catalog) error {
			return cat.DeleteAlbum(ctx, t.albumID)
		})

	case actionComment:
		return m.startOp("Post comment", false, func(ctx context.Context, cat *catalog.Catalog) error {
			_, err := cat.CreateComment(ctx, t.photoID, api.CommentForm{AuthorID: userID, Content: v[0]})
			return err
		})

	case actionEditComment:
		return m.startOp("Edit comment", false, func(ctx context.Context, cat *catalog.Catalog) error {
			_, err := cat.UpdateComment(ctx, t.photoID, t.commentID, api.CommentForm{AuthorID: userID, Content: v[0]})
			return err
		})

	case actionReply:
		return m.startOp("Post reply", false, func(ctx context.Context, cat *catalog.Catalog) error {
			_, err := cat.CreateReply(ctx, t.photoID, t.commentID, api.CommentForm{AuthorID: userID, Content: v[0]})
			return err
		})

	case actionDeleteComment:
		return m.startOp("Delete comment", false, func(ctx context.Context, cat *catalog.Catalog) error {
			return cat.DeleteComment(ctx, t.photoID, t.commentID)
		})

	case actionDeleteReply:
		replyID, err := strconv.ParseInt(strings.TrimSpace(v[0]), 10, 64)
		if err != nil || replyID <= 0 {
			m.setFlash(fmt.Sprintf("invalid reply id %q", v[0]), false)
			return nil
		}
		return m.startOp("Delete reply", false, func(ctx context.Context, cat *catalog.Catalog) error {
			_, err := cat.DeleteReply(ctx, t.photoID, t.commentID, replyID)
			return err
		})
	}
	return nil
}

// Modal openers

func (m *Model) openUploadForm() {
	m.modal = newFormModal("Upload photo", actionUploadPhoto, target{},
		formField{label: "File", placeholder: "~/Pictures/photo.jpg", required: true},
		formField{label: "Caption"},
		formField{label: "Description"},
	)
}

func (m *Model) openEditPhotoForm(p api.Photo) {
	m.modal = newFormModal(fmt.Sprintf("Edit photo #%d", p.ID), actionEditPhoto, target{photoID: p.ID},
		formField{label: "Caption", value: p.Caption},
		formField{label: "Description", value: p.Description},
	)
}

func (m *Model) openDeletePhoto(p api.Photo) {
	m.modal = newConfirmModal("Delete photo",
		fmt.Sprintf("Delete photo #%d %q?", p.ID, truncate(oneLine(p.Caption), 30)),
		actionDeletePhoto, target{photoID: p.ID})
}

func (m *Model) openAlbumForm(a *api.Album) {
	if a == nil {
		m.modal = newFormModal("New album", actionNewAlbum, target{},
			formField{label: "Title", required: true},
			formField{label: "Description"},
			formField{label: "Photo ids", placeholder: "1, 2, 3"},
		)
		return
	}
	m.modal = newFormModal(fmt.Sprintf("Edit album #%d", a.ID), actionEditAlbum, target{albumID: a.ID},
		formField{label: "Title", value: a.Title, required: true},
		formField{label: "Description", value: a.Description},
		formField{label: "Photo ids", value: joinIDs(a.PhotoIDs())},
	)
}

func (m *Model) openDeleteAlbum(a api.Album) {
	m.modal = newConfirmModal("Delete album",
		fmt.Sprintf("Delete album #%d %q?", a.ID, truncate(a.Title, 30)),
		actionDeleteAlbum, target{albumID: a.ID})
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
