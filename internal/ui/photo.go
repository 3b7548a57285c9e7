package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shutter/internal/api"
)

func (m Model) currentPhoto() (api.Photo, bool) {
	return lookupPhoto(m.snapshot, m.photoID)
}

func (m Model) selectedComment() (api.Comment, bool) {
	comments := photoComments(m.snapshot, m.photoID)
	if m.commentRow < len(comments) {
		return comments[m.commentRow], true
	}
	return api.Comment{}, false
}

// handlePhotoKey processes keyboard input for the photo view.
func (m Model) handlePhotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	comments := photoComments(m.snapshot, m.photoID)
	if m.moveSelection(msg, &m.commentRow, len(comments)) {
		m.updateDetailViewport()
		return m, nil
	}

	photo, hasPhoto := m.currentPhoto()
	comment, hasComment := m.selectedComment()
	t := target{photoID: m.photoID, commentID: comment.ID}

	switch {
	case key.Matches(msg, m.keys.Comment):
		m.modal = newFormModal(fmt.Sprintf("Comment on photo #%d", m.photoID), actionComment, t,
			formField{label: "Comment", required: true})
	case key.Matches(msg, m.keys.EditCaption) && hasPhoto:
		m.openEditPhotoForm(photo)
	case key.Matches(msg, m.keys.Delete) && hasPhoto:
		m.openDeletePhoto(photo)
	case !hasComment:
	case key.Matches(msg, m.keys.Reply):
		m.modal = newFormModal(fmt.Sprintf("Reply to comment #%d", comment.ID), actionReply, t,
			formField{label: "Reply", required: true})
	case key.Matches(msg, m.keys.EditComment):
		m.modal = newFormModal(fmt.Sprintf("Edit comment #%d", comment.ID), actionEditComment, t,
			formField{label: "Comment", value: comment.Content, required: true})
	case key.Matches(msg, m.keys.DelComment):
		m.modal = newConfirmModal("Delete comment",
			fmt.Sprintf("Delete comment #%d by %s?", comment.ID, authorName(comment.Author, comment.AuthorID)),
			actionDeleteComment, t)
	case key.Matches(msg, m.keys.DelReply) && len(comment.Replies) > 0:
		last := comment.Replies[len(comment.Replies)-1]
		m.modal = newFormModal(fmt.Sprintf("Delete reply on comment #%d", comment.ID), actionDeleteReply, t,
			formField{label: "Reply id", value: strconv.FormatInt(last.ID, 10), required: true})
	}
	return m, nil
}

// photoDetail renders the photo and its comment thread. It also returns the
// line on which the selected comment starts.
func (m Model) photoDetail() (string, int) {
	styles := m.theme.Styles()
	photo, ok := m.currentPhoto()
	if !ok {
		return styles.MutedText.Render(fmt.Sprintf("Loading photo #%d...", m.photoID)), 0
	}

	var b strings.Builder
	b.WriteString(m.photoSummary(photo))
	b.WriteString("\n")

	comments := photoComments(m.snapshot, m.photoID)
	b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("Comments (%d)", len(comments))))
	b.WriteString("\n")
	if len(comments) == 0 {
		b.WriteString(styles.FaintText.Render("No comments yet (m to comment)"))
		return b.String(), 0
	}

	selectedLine := 0
	now := m.now()
	for i, c := range comments {
		if i == m.commentRow {
			selectedLine = strings.Count(b.String(), "\n")
		}
		marker := "  "
		nameStyle := styles.InfoText
		if i == m.commentRow {
			marker = "> "
			nameStyle = styles.WarningText
		}
		b.WriteString(styles.AccentText.Render(marker))
		b.WriteString(nameStyle.Render(authorName(c.Author, c.AuthorID)))
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("  #%d", c.ID)))
		b.WriteString("\n")
		b.WriteString(styles.Text.Render("    " + oneLine(c.Content)))
		b.WriteString("\n")
		for _, r := range c.Replies {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("      ↳ %s: %s  %s",
				authorName(r.Author, r.AuthorID), oneLine(r.Content), relativeTime(r.CreatedAt.Time, now))))
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("  #%d", r.ID)))
			b.WriteString("\n")
		}
	}
	return b.String(), selectedLine
}

// updateDetailViewport refreshes the photo view content, keeping the
// selected comment on screen.
func (m *Model) updateDetailViewport() {
	if !m.ready || m.currentView != ViewPhoto {
		return
	}
	content, selectedLine := m.photoDetail()
	m.detailViewport.SetContent(content)
	h := m.detailViewport.Height
	switch {
	case h <= 0:
	case selectedLine < m.detailViewport.YOffset:
		m.detailViewport.SetYOffset(selectedLine)
	case selectedLine >= m.detailViewport.YOffset+h-2:
		m.detailViewport.SetYOffset(selectedLine - h + 3)
	}
}

// renderPhoto renders the photo view.
func (m Model) renderPhoto() string {
	contentHeight := m.height - chromeHeight
	title := fmt.Sprintf("Photo #%d", m.photoID)
	return m.renderTitledBox(title, m.detailViewport.View(), m.width, contentHeight, true)
}
