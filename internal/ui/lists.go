package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shutter/internal/api"
	"github.com/five82/shutter/internal/prefs"
)

// moveSelection applies a navigation key to row within n entries. It reports
// whether the key was a navigation key.
func (m Model) moveSelection(msg tea.KeyMsg, row *int, n int) bool {
	page := (m.height - chromeHeight) / 2
	if page < 1 {
		page = 1
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		*row++
	case key.Matches(msg, m.keys.Up):
		*row--
	case key.Matches(msg, m.keys.Top):
		*row = 0
	case key.Matches(msg, m.keys.Bottom):
		*row = n - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		*row += page
	case key.Matches(msg, m.keys.HalfPageUp):
		*row -= page
	default:
		return false
	}
	*row = clamp(*row, n)
	return true
}

func clamp(row, n int) int {
	if row >= n {
		row = n - 1
	}
	if row < 0 {
		row = 0
	}
	return row
}

func (m *Model) clampSelections() {
	m.feedRow = clamp(m.feedRow, len(m.snapshot.Photos.All))
	m.albumRow = clamp(m.albumRow, len(m.snapshot.Albums.All))
	if m.userTab == prefs.TabAlbums {
		m.userRow = clamp(m.userRow, len(userAlbums(m.snapshot, m.userID)))
	} else {
		m.userRow = clamp(m.userRow, len(userPhotos(m.snapshot, m.userID)))
	}
	m.commentRow = clamp(m.commentRow, len(photoComments(m.snapshot, m.photoID)))
}

func (m Model) selectedFeedPhoto() (api.Photo, bool) {
	photos := feedPhotos(m.snapshot)
	if m.feedRow < len(photos) {
		return photos[m.feedRow], true
	}
	return api.Photo{}, false
}

func (m Model) selectedUserPhoto() (api.Photo, bool) {
	photos := userPhotos(m.snapshot, m.userID)
	if m.userTab == prefs.TabPhotos && m.userRow < len(photos) {
		return photos[m.userRow], true
	}
	return api.Photo{}, false
}

func (m Model) selectedUserAlbum() (api.Album, bool) {
	albums := userAlbums(m.snapshot, m.userID)
	if m.userTab == prefs.TabAlbums && m.userRow < len(albums) {
		return albums[m.userRow], true
	}
	return api.Album{}, false
}

func (m Model) selectedAlbum() (api.Album, bool) {
	albums := allAlbums(m.snapshot)
	if m.albumRow < len(albums) {
		// The single slot carries the full photo list once loaded.
		if full, ok := lookupAlbum(m.snapshot, albums[m.albumRow].ID); ok {
			return full, true
		}
		return albums[m.albumRow], true
	}
	return api.Album{}, false
}

// photoActions handles keys shared by every view that has a selected photo.
func (m Model) photoActions(msg tea.KeyMsg, photo api.Photo, ok bool) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NewPhoto):
		m.openUploadForm()
	case key.Matches(msg, m.keys.NewAlbum):
		m.openAlbumForm(nil)
	case !ok:
	case key.Matches(msg, m.keys.Open):
		cmd := m.openPhoto(photo.ID)
		return m, cmd
	case key.Matches(msg, m.keys.EditCaption):
		m.openEditPhotoForm(photo)
	case key.Matches(msg, m.keys.Delete):
		m.openDeletePhoto(photo)
	}
	return m, nil
}

// handleFeedKey processes keyboard input for the feed view.
func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveSelection(msg, &m.feedRow, len(m.snapshot.Photos.All)) {
		return m, nil
	}
	photo, ok := m.selectedFeedPhoto()
	return m.photoActions(msg, photo, ok)
}

// handleUserKey processes keyboard input for the user page.
func (m Model) handleUserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ToggleTab) {
		if m.userTab == prefs.TabAlbums {
			m.userTab = prefs.TabPhotos
		} else {
			m.userTab = prefs.TabAlbums
		}
		m.userRow = 0
		m.savePrefs()
		cmd := m.switchView(ViewUser)
		return m, cmd
	}

	if m.userTab == prefs.TabAlbums {
		albums := userAlbums(m.snapshot, m.userID)
		if m.moveSelection(msg, &m.userRow, len(albums)) {
			return m, nil
		}
		album, ok := m.selectedUserAlbum()
		switch {
		case key.Matches(msg, m.keys.NewAlbum):
			m.openAlbumForm(nil)
		case !ok:
		case key.Matches(msg, m.keys.Open):
			cmd := m.fetchAlbum(album.ID)
			return m, cmd
		case key.Matches(msg, m.keys.EditCaption):
			full, _ := lookupAlbum(m.snapshot, album.ID)
			m.openAlbumForm(&full)
		case key.Matches(msg, m.keys.Delete):
			m.openDeleteAlbum(album)
		}
		return m, nil
	}

	if m.moveSelection(msg, &m.userRow, len(userPhotos(m.snapshot, m.userID))) {
		return m, nil
	}
	photo, ok := m.selectedUserPhoto()
	return m.photoActions(msg, photo, ok)
}

// handleAlbumsKey processes keyboard input for the albums view.
func (m Model) handleAlbumsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveSelection(msg, &m.albumRow, len(m.snapshot.Albums.All)) {
		return m, nil
	}
	album, ok := m.selectedAlbum()
	switch {
	case key.Matches(msg, m.keys.NewAlbum):
		m.openAlbumForm(nil)
	case !ok:
	case key.Matches(msg, m.keys.Open):
		cmd := m.fetchAlbum(album.ID)
		return m, cmd
	case key.Matches(msg, m.keys.EditCaption):
		m.openAlbumForm(&album)
	case key.Matches(msg, m.keys.Delete):
		m.openDeleteAlbum(album)
	}
	return m, nil
}

// Rendering

func photoRow(p api.Photo, now time.Time) string {
	caption := oneLine(p.Caption)
	if caption == "" {
		caption = "(no caption)"
	}
	return fmt.Sprintf("#%-5d %-28s %-16s %8s  %d comments",
		p.ID,
		truncate(caption, 28),
		truncate(authorName(p.Author, p.OwnerID()), 16),
		relativeTime(p.CreatedAt.Time, now),
		len(p.Comments))
}

func albumRow(a api.Album, now time.Time) string {
	return fmt.Sprintf("#%-5d %-28s %-16s %8s",
		a.ID,
		truncate(oneLine(a.Title), 28),
		truncate(authorName(a.Author, a.OwnerID()), 16),
		relativeTime(a.CreatedAt.Time, now))
}

// photoSummary renders the preview of one photo.
func (m Model) photoSummary(p api.Photo) string {
	styles := m.theme.Styles()
	now := m.now()
	var b strings.Builder

	caption := oneLine(p.Caption)
	if caption == "" {
		caption = "(no caption)"
	}
	b.WriteString(styles.Text.Bold(true).Render(caption))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("by %s  %s", authorName(p.Author, p.OwnerID()), relativeTime(p.CreatedAt.Time, now))))
	b.WriteString("\n\n")
	writeField(&b, styles, "ID", fmt.Sprintf("%d", p.ID))
	if p.URL != "" {
		writeField(&b, styles, "URL", p.URL)
	}
	if !p.CreatedAt.IsZero() {
		writeField(&b, styles, "Created", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if len(p.Albums) > 0 {
		titles := make([]string, 0, len(p.Albums))
		for _, a := range p.Albums {
			titles = append(titles, a.Title)
		}
		writeField(&b, styles, "Albums", strings.Join(titles, ", "))
	}
	writeField(&b, styles, "Comments", fmt.Sprintf("%d", len(photoComments(m.snapshot, p.ID))))
	if desc := strings.TrimSpace(p.Description); desc != "" {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(desc))
		b.WriteString("\n")
	}
	return b.String()
}

// albumSummary renders the preview of one album.
func (m Model) albumSummary(a api.Album) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(oneLine(a.Title)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("by " + authorName(a.Author, a.OwnerID())))
	b.WriteString("\n\n")
	writeField(&b, styles, "ID", fmt.Sprintf("%d", a.ID))
	if a.CoverPhoto != "" {
		writeField(&b, styles, "Cover", a.CoverPhoto)
	}
	if !a.CreatedAt.IsZero() {
		writeField(&b, styles, "Created", a.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if desc := strings.TrimSpace(a.Description); desc != "" {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if len(a.Pics) == 0 {
		b.WriteString(styles.FaintText.Render("No photos loaded (enter to load)"))
		return b.String()
	}
	b.WriteString(styles.AccentText.Render(fmt.Sprintf("%d photos", len(a.Pics))))
	b.WriteString("\n")
	for _, p := range a.Pics {
		b.WriteString(styles.Text.Render(fmt.Sprintf("  #%-5d %s", p.ID, oneLine(p.Caption))))
		b.WriteString("\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, styles Styles, label, value string) {
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%-9s", label)))
	b.WriteString(styles.Text.Render(value))
	b.WriteString("\n")
}

// renderSplit renders a list pane beside a preview pane.
func (m Model) renderSplit(listTitle string, rows []string, selected int, empty, previewTitle, preview string) string {
	contentHeight := m.height - chromeHeight
	listWidth, previewWidth := splitWidths(m.width)

	var list string
	if len(rows) == 0 {
		list = m.theme.Styles().MutedText.Render(empty)
	} else {
		list = m.renderList(rows, selected, listWidth-2, contentHeight-2)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTitledBox(listTitle, list, listWidth, contentHeight, true),
		m.renderTitledBox(previewTitle, preview, previewWidth, contentHeight, false),
	)
}

// renderFeed renders the global photo feed.
func (m Model) renderFeed() string {
	photos := feedPhotos(m.snapshot)
	now := m.now()
	rows := make([]string, 0, len(photos))
	for _, p := range photos {
		rows = append(rows, photoRow(p, now))
	}
	preview := ""
	if p, ok := m.selectedFeedPhoto(); ok {
		if full, found := lookupPhoto(m.snapshot, p.ID); found {
			p = full
		}
		preview = m.photoSummary(p)
	}
	return m.renderSplit(fmt.Sprintf("Feed (%d)", len(photos)), rows, m.feedRow,
		"No photos yet (r to refresh, n to upload)", "Photo", preview)
}

// renderUser renders the signed-in user's photos or albums.
func (m Model) renderUser() string {
	now := m.now()
	title := fmt.Sprintf("User #%d  [Photos] Albums", m.userID)
	var rows []string
	preview := ""
	if m.userTab == prefs.TabAlbums {
		title = fmt.Sprintf("User #%d  Photos [Albums]", m.userID)
		for _, a := range userAlbums(m.snapshot, m.userID) {
			rows = append(rows, albumRow(a, now))
		}
		if a, ok := m.selectedUserAlbum(); ok {
			if full, found := lookupAlbum(m.snapshot, a.ID); found {
				a = full
			}
			preview = m.albumSummary(a)
		}
	} else {
		for _, p := range userPhotos(m.snapshot, m.userID) {
			rows = append(rows, photoRow(p, now))
		}
		if p, ok := m.selectedUserPhoto(); ok {
			preview = m.photoSummary(p)
		}
	}
	return m.renderSplit(title, rows, m.userRow, "Nothing here yet (t to switch tab)", "Preview", preview)
}

// renderAlbums renders every album with the selected one's details.
func (m Model) renderAlbums() string {
	albums := allAlbums(m.snapshot)
	now := m.now()
	rows := make([]string, 0, len(albums))
	for _, a := range albums {
		rows = append(rows, albumRow(a, now))
	}
	preview := ""
	if a, ok := m.selectedAlbum(); ok {
		preview = m.albumSummary(a)
	}
	return m.renderSplit(fmt.Sprintf("Albums (%d)", len(albums)), rows, m.albumRow,
		"No albums yet (N to create one)", "Album", preview)
}
