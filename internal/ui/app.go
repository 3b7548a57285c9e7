package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shutter/internal/catalog"
	"github.com/five82/shutter/internal/logging"
	"github.com/five82/shutter/internal/prefs"
	"github.com/five82/shutter/internal/store"
	"github.com/five82/shutter/internal/upload"
)

// View represents the current active view.
type View int

const (
	ViewFeed View = iota
	ViewUser
	ViewAlbums
	ViewLogs
	ViewPhoto
)

// cycle is the tab order; the photo view is entered, not cycled to.
var cycle = []View{ViewFeed, ViewUser, ViewAlbums, ViewLogs}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   *catalog.Catalog
	Logger    *slog.Logger
	UserID    int64
	Upload    upload.Options
	LogPath   string
	Tick      time.Duration
	ThemeName string
	UserTab   string
	PrefsPath string
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	catalog   *catalog.Catalog
	store     *store.Store
	logger    *slog.Logger
	userID    int64
	uploadOpt upload.Options
	logPath   string
	prefsPath string
	tick      time.Duration
	now       func() time.Time
	keys      keyMap

	storeCh     <-chan struct{}
	unsubscribe func()

	// UI state
	theme       Theme
	currentView View
	returnView  View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot store.Snapshot

	// Selection
	feedRow    int
	userRow    int
	userTab    string
	albumRow   int
	photoID    int64
	commentRow int

	detailViewport viewport.Model

	// Log state
	logViewport viewport.Model
	logLines    []string
	logFollow   bool
	logLevel    slog.Level
	logErr      error

	// Operations
	pending int
	flash   string
	flashOK bool
	flashAt time.Time

	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	userTab := opts.UserTab
	if userTab != prefs.TabAlbums {
		userTab = prefs.TabPhotos
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	m := Model{
		ctx:         ctx,
		catalog:     opts.Catalog,
		logger:      logging.OrDiscard(opts.Logger),
		userID:      opts.UserID,
		uploadOpt:   opts.Upload,
		logPath:     opts.LogPath,
		prefsPath:   opts.PrefsPath,
		tick:        tick,
		now:         now,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewFeed,
		userTab:     userTab,
		logFollow:   true,
		logLevel:    slog.LevelInfo,
		unsubscribe: func() {},
	}
	if opts.Catalog != nil {
		m.store = opts.Catalog.Store()
		m.snapshot = m.store.Snapshot()
		m.storeCh, m.unsubscribe = m.store.Subscribe()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitForStoreCmd(m.storeCh))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
			m.logViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(store.Snapshot(msg))
		return m, nil

	case storeChangedMsg:
		if m.store != nil {
			m.applySnapshot(m.store.Snapshot())
		}
		return m, waitForStoreCmd(m.storeCh)

	case opDoneMsg:
		m.finishOp(msg)
		return m, nil

	case submitMsg:
		cmd := m.submit(msg)
		return m, cmd

	case logLinesMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m *Model) applySnapshot(snap store.Snapshot) {
	if snap.Version < m.snapshot.Version {
		return
	}
	m.snapshot = snap
	m.clampSelections()
	m.updateDetailViewport()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		cmd := m.switchView(m.nextView(1))
		return m, cmd

	case key.Matches(msg, m.keys.ShiftTab):
		cmd := m.switchView(m.nextView(-1))
		return m, cmd

	case key.Matches(msg, m.keys.ViewFeed):
		cmd := m.switchView(ViewFeed)
		return m, cmd

	case key.Matches(msg, m.keys.ViewUser):
		cmd := m.switchView(ViewUser)
		return m, cmd

	case key.Matches(msg, m.keys.ViewAlbums):
		cmd := m.switchView(ViewAlbums)
		return m, cmd

	case key.Matches(msg, m.keys.ViewLogs):
		cmd := m.switchView(ViewLogs)
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		if m.currentView == ViewPhoto {
			m.currentView = m.returnView
		} else {
			m.currentView = ViewFeed
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refreshView()
		return m, cmd
	}

	switch m.currentView {
	case ViewFeed:
		return m.handleFeedKey(msg)
	case ViewUser:
		return m.handleUserKey(msg)
	case ViewAlbums:
		return m.handleAlbumsKey(msg)
	case ViewPhoto:
		return m.handlePhotoKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m Model) nextView(step int) View {
	current := m.currentView
	if current == ViewPhoto {
		current = m.returnView
	}
	for i, v := range cycle {
		if v == current {
			return cycle[(i+step+len(cycle))%len(cycle)]
		}
	}
	return ViewFeed
}

// switchView moves to v and loads what it shows.
func (m *Model) switchView(v View) tea.Cmd {
	m.currentView = v
	switch v {
	case ViewUser:
		if m.userTab == prefs.TabAlbums {
			if m.snapshot.Albums.ScopeID != m.userID {
				return m.fetchUserAlbums()
			}
		} else if m.snapshot.Photos.ScopeID != m.userID {
			return m.fetchUserPhotos()
		}
	case ViewAlbums:
		if len(m.snapshot.Albums.All) == 0 {
			return m.fetchAlbums()
		}
	case ViewLogs:
		return readLogsCmd(m.logPath)
	}
	return nil
}

// openPhoto shows one photo and loads its full payload and comments.
func (m *Model) openPhoto(id int64) tea.Cmd {
	if id == 0 {
		return nil
	}
	if m.currentView != ViewPhoto {
		m.returnView = m.currentView
	}
	m.currentView = ViewPhoto
	m.photoID = id
	m.commentRow = 0
	m.updateDetailViewport()
	return tea.Batch(m.fetchPhoto(id), m.fetchComments(id))
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, UserTab: m.userTab}); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// handleTick processes the periodic tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.flash != "" && m.now().Sub(m.flashAt) > FlashDuration {
		m.flash = ""
	}
	if m.currentView == ViewLogs && m.logFollow {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) resizeViewports() {
	contentHeight := m.height - chromeHeight
	m.detailViewport.Width = m.width - 2
	m.detailViewport.Height = contentHeight - 2
	m.logViewport.Width = m.width - 2
	m.logViewport.Height = contentHeight - 2
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewFeed:
		return m.renderFeed()
	case ViewUser:
		return m.renderUser()
	case ViewAlbums:
		return m.renderAlbums()
	case ViewPhoto:
		return m.renderPhoto()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg store.Snapshot

type storeChangedMsg struct{}

type logLinesMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(st.Snapshot())
	}
}

// waitForStoreCmd blocks until the store publishes again.
func waitForStoreCmd(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.unsubscribe()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
