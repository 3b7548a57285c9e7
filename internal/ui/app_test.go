package ui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/catalog"
	"github.com/five82/shutter/internal/prefs"
	"github.com/five82/shutter/internal/store"
)

// fakeService implements the handful of endpoints these tests touch; any
// other call panics through the nil embedded interface.
type fakeService struct {
	api.Service

	mu             sync.Mutex
	comments       []api.CommentForm
	deletedReplies []int64
	deleteErr      error
}

func (f *fakeService) FetchPhoto(_ context.Context, id int64) (*api.Photo, error) {
	return &api.Photo{ID: id, Caption: "full payload"}, nil
}

func (f *fakeService) FetchComments(_ context.Context, photoID int64) ([]api.Comment, error) {
	return []api.Comment{{ID: 10, Content: "first!", Replies: []api.Reply{{ID: 20, Content: "thanks"}}}}, nil
}

func (f *fakeService) DeleteReply(_ context.Context, photoID, commentID, replyID int64) (*api.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedReplies = append(f.deletedReplies, replyID)
	return &api.Comment{ID: commentID, Content: "first!"}, nil
}

func (f *fakeService) CreateComment(_ context.Context, photoID int64, form api.CommentForm) (*api.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, form)
	return &api.Comment{ID: 11, AuthorID: form.AuthorID, Content: form.Content}, nil
}

func (f *fakeService) DeletePhoto(context.Context, int64) error {
	return f.deleteErr
}

func newTestModel(t *testing.T, svc api.Service, photos ...api.Photo) (Model, *store.Store) {
	t.Helper()
	st := store.New(store.Options{})
	if len(photos) > 0 {
		st.DispatchPhotos(store.LoadedAll[api.Photo]{Items: photos})
	}
	m := New(Options{
		Catalog: catalog.New(svc, st, catalog.Options{}),
		UserID:  3,
	})
	t.Cleanup(m.unsubscribe)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40}), st
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// run executes cmd, feeds every resulting message back into the model and
// returns the final model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range drain(cmd) {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
		m = run(t, m, cmd)
	}
	return m
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func TestModel_TabCyclesViews(t *testing.T) {
	m := update(t, New(Options{}), tea.WindowSizeMsg{Width: 100, Height: 30})

	want := []View{ViewUser, ViewAlbums, ViewLogs, ViewFeed}
	for _, v := range want {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.currentView != v {
			t.Fatalf("after tab view = %d, want %d", m.currentView, v)
		}
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.currentView != ViewLogs {
		t.Fatalf("after shift+tab view = %d, want logs", m.currentView)
	}
	m, _ = press(t, m, keyRunes("a"))
	if m.currentView != ViewAlbums {
		t.Fatalf("after a view = %d, want albums", m.currentView)
	}
}

func TestModel_OpenPhotoLoadsDetailAndComments(t *testing.T) {
	m, st := newTestModel(t, &fakeService{}, api.Photo{ID: 5, Caption: "list"})

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.currentView != ViewPhoto || m.photoID != 5 {
		t.Fatalf("enter opened view %d photo %d, want photo view for 5", m.currentView, m.photoID)
	}
	if m.pending != 2 {
		t.Fatalf("pending = %d, want 2 in-flight loads", m.pending)
	}

	m = run(t, m, cmd)
	if m.pending != 0 {
		t.Fatalf("pending = %d after completion, want 0", m.pending)
	}
	m = update(t, m, storeChangedMsg{})

	if m.snapshot.Version != st.Snapshot().Version {
		t.Fatalf("model snapshot version %d, want store version %d", m.snapshot.Version, st.Snapshot().Version)
	}
	photo, ok := m.currentPhoto()
	if !ok || photo.Caption != "full payload" {
		t.Fatalf("current photo = %+v, want full payload from single slot", photo)
	}
	if comments := photoComments(m.snapshot, 5); len(comments) != 1 {
		t.Fatalf("comments = %v, want the fetched one", comments)
	}
	if view := m.View(); !strings.Contains(view, "first!") {
		t.Fatalf("photo view does not show the comment")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentView != ViewFeed {
		t.Fatalf("esc went to %d, want back to feed", m.currentView)
	}
}

func TestModel_CommentFormPostsThroughCatalog(t *testing.T) {
	svc := &fakeService{}
	m, st := newTestModel(t, svc, api.Photo{ID: 5})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	m, _ = press(t, m, keyRunes("m"))
	if _, ok := m.modal.(formModal); !ok {
		t.Fatalf("modal = %T, want comment form", m.modal)
	}
	m, _ = press(t, m, keyRunes("nice shot"))
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != nil {
		t.Fatalf("form still open after submit")
	}
	m = run(t, m, cmd)

	svc.mu.Lock()
	posted := svc.comments
	svc.mu.Unlock()
	if len(posted) != 1 || posted[0].Content != "nice shot" || posted[0].AuthorID != 3 {
		t.Fatalf("posted = %+v, want one comment by user 3", posted)
	}
	created, ok := st.Snapshot().Comments.Get(11)
	if !ok || created.ParentPhotoID() != 5 {
		t.Fatalf("created comment = %+v %v, want it cached under photo 5", created, ok)
	}
	if m.flash != "Post comment done" || !m.flashOK {
		t.Fatalf("flash = %q ok=%v, want success", m.flash, m.flashOK)
	}
}

func TestModel_DeleteReplyFromPhotoView(t *testing.T) {
	svc := &fakeService{}
	m, st := newTestModel(t, svc, api.Photo{ID: 5})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)
	m = update(t, m, storeChangedMsg{})

	m, _ = press(t, m, keyRunes("X"))
	form, ok := m.modal.(formModal)
	if !ok {
		t.Fatalf("modal = %T, want reply id form", m.modal)
	}
	if got := form.inputs[0].Value(); got != "20" {
		t.Fatalf("reply id prefilled with %q, want 20", got)
	}
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	svc.mu.Lock()
	deleted := svc.deletedReplies
	svc.mu.Unlock()
	if len(deleted) != 1 || deleted[0] != 20 {
		t.Fatalf("deleted replies = %v, want [20]", deleted)
	}
	comment, ok := st.Snapshot().Comments.GetScoped(10)
	if !ok || len(comment.Replies) != 0 {
		t.Fatalf("comment 10 = %+v, want it updated without replies", comment)
	}
	if m.flash != "Delete reply done" {
		t.Fatalf("flash = %q, want success", m.flash)
	}
}

func TestModel_EmptyRequiredFieldKeepsFormOpen(t *testing.T) {
	m, _ := newTestModel(t, &fakeService{}, api.Photo{ID: 5})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	m, _ = press(t, m, keyRunes("m"))
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("empty comment produced a command")
	}
	form, ok := m.modal.(formModal)
	if !ok || form.err == "" {
		t.Fatalf("modal = %#v, want form with validation error", m.modal)
	}
}

func TestModel_FailedDeleteShowsServerMessage(t *testing.T) {
	svc := &fakeService{deleteErr: &api.ResponseError{
		StatusCode: 403,
		Payload:    &api.ErrorPayload{Err: "not your photo"},
	}}
	m, st := newTestModel(t, svc, api.Photo{ID: 5})
	before := st.Snapshot().Version

	m, _ = press(t, m, keyRunes("d"))
	if _, ok := m.modal.(confirmModal); !ok {
		t.Fatalf("modal = %T, want confirmation", m.modal)
	}
	m, cmd := press(t, m, keyRunes("y"))
	m = run(t, m, cmd)

	if !strings.Contains(m.flash, "not your photo") || m.flashOK {
		t.Fatalf("flash = %q ok=%v, want server message as failure", m.flash, m.flashOK)
	}
	if st.Snapshot().Version != before {
		t.Fatalf("failed delete published a snapshot")
	}
	if _, ok := st.Snapshot().Photos.Get(5); !ok {
		t.Fatalf("failed delete removed the cached photo")
	}
}

func TestModel_ConfirmCancelDoesNothing(t *testing.T) {
	m, _ := newTestModel(t, &fakeService{}, api.Photo{ID: 5})
	m, _ = press(t, m, keyRunes("d"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != nil || cmd != nil {
		t.Fatalf("esc left modal %T and cmd %v", m.modal, cmd)
	}
}

func TestModel_ThemeAndTabPersistToPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := update(t, New(Options{PrefsPath: path}), tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = press(t, m, keyRunes("T"))
	m, _ = press(t, m, keyRunes("u"))
	m, _ = press(t, m, keyRunes("t"))

	got, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load returned error: %v", err)
	}
	if got.Theme != "Kanagawa" || got.UserTab != prefs.TabAlbums {
		t.Fatalf("prefs = %+v, want Kanagawa and albums tab", got)
	}
	if m.userTab != prefs.TabAlbums {
		t.Fatalf("userTab = %q, want albums", m.userTab)
	}
}

func TestModel_IgnoresOlderSnapshots(t *testing.T) {
	m, st := newTestModel(t, &fakeService{}, api.Photo{ID: 1})
	m = update(t, m, storeChangedMsg{})
	old := m.snapshot

	st.DispatchPhotos(store.Created[api.Photo]{Item: api.Photo{ID: 2}})
	m = update(t, m, storeChangedMsg{})
	m = update(t, m, snapshotMsg(old))
	if len(m.snapshot.Photos.All) != 2 {
		t.Fatalf("older snapshot replaced newer one: %v", m.snapshot.Photos.All)
	}
}

func TestModel_ViewsRender(t *testing.T) {
	m, _ := newTestModel(t, &fakeService{}, api.Photo{ID: 1, Caption: "sunset over the bay"})
	if !strings.Contains(m.View(), "sunset over the bay") {
		t.Fatalf("feed view does not list the photo")
	}
	for _, k := range []string{"u", "a", "l", "?"} {
		m, _ = press(t, m, keyRunes(k))
		if out := m.View(); out == "" {
			t.Fatalf("view after %q rendered nothing", k)
		}
	}
}

func TestWaitForStoreCmd_ReturnsWhenUnsubscribed(t *testing.T) {
	st := store.New(store.Options{})
	ch, cancel := st.Subscribe()

	done := make(chan tea.Msg, 1)
	go func() { done <- waitForStoreCmd(ch)() }()
	cancel()

	select {
	case msg := <-done:
		if msg != nil {
			t.Fatalf("msg = %#v after unsubscribe, want nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("store wait still blocked after unsubscribe")
	}
}
