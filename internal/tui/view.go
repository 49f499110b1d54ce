package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvelez/slate/internal/remote"
	"github.com/nvelez/slate/internal/schedule"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "loading board..."
	}

	switch m.mode {
	case ModeEdit, ModeAdd:
		return m.overlay(m.formView())
	case ModeConfirmDelete:
		return m.overlay(m.confirmView())
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(termTitle(m.store.Term())))
	b.WriteString("\n\n")
	b.WriteString(m.boardView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.helpText()))
	return b.String()
}

func termTitle(t schedule.Term) string {
	if t == schedule.TermSpring {
		return "Spring Schedule"
	}
	return "Fall Schedule"
}

func (m *Model) boardView() string {
	visible := m.visibleCols()
	end := m.scroll + visible
	if end > len(m.cols) {
		end = len(m.cols)
	}

	rendered := make([]string, 0, end-m.scroll)
	for i := m.scroll; i < end; i++ {
		rendered = append(rendered, m.columnView(i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) columnView(i int) string {
	col := m.cols[i]

	header := m.styles.ColumnHeader
	if i == m.cursor.Col || (m.mode == ModeMove && i == m.moveCol) {
		header = m.styles.ColumnHeaderActive
	}
	title := col.title
	if len(col.courses) > 0 {
		title = fmt.Sprintf("%s (%d)", col.title, len(col.courses))
	}

	parts := []string{header.Render(title)}
	for ri, c := range col.courses {
		style := m.styles.Card
		switch {
		case m.mode == ModeMove && c.ID == m.movingID:
			style = m.styles.CardMoving
		case i == m.cursor.Col && ri == m.cursor.Row:
			style = m.styles.CardSelected
		}
		parts = append(parts, style.Render(cardText(c)), "")
	}
	if len(col.courses) == 0 {
		parts = append(parts, m.styles.CardDetail.Render("  (empty)"))
	}

	colStyle := lipgloss.NewStyle().Width(colWidth).PaddingRight(1)
	return colStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// cardText is the two line card body: label on top, instructor and room
// below.
func cardText(c *schedule.Course) string {
	detail := c.Instructor
	if detail == "" {
		detail = "TBA"
	}
	if c.Room != "" {
		detail += " " + c.Room
	}
	if c.Bimodal {
		detail += " [bi]"
	}
	return c.Label() + "\n" + detail
}

func (m *Model) statusView() string {
	var conn string
	switch m.status {
	case remote.StatusConnected:
		conn = m.styles.StatusConnected.Render("connected")
	case remote.StatusConnecting:
		conn = m.styles.StatusWarn.Render("connecting")
	default:
		conn = m.styles.StatusDegraded.Render("offline")
	}

	left := fmt.Sprintf("%s  %s  undo:%d", conn, m.store.Term(), m.store.UndoLen())
	if m.flash != "" {
		style := m.styles.StatusWarn
		if !m.flashWarn {
			style = m.styles.StatusConnected
		}
		left += "  " + style.Render(m.flash)
	}
	return m.styles.StatusBar.Width(m.width).Render(left)
}

func (m *Model) helpText() string {
	switch m.mode {
	case ModeMove:
		return "h/l pick slot  enter drop  esc cancel"
	default:
		return "h/j/k/l navigate  m move  e edit  a add  d delete  u undo  t term  r resync  q quit"
	}
}

func (m *Model) formView() string {
	f := m.form
	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		b.WriteString(m.styles.FormLabel.Render(f.labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab next  enter save  esc cancel"))
	return m.styles.Modal.Render(b.String())
}

func (m *Model) confirmView() string {
	label := m.deleteID
	if c := m.store.Course(m.deleteID); c != nil {
		label = c.Label()
	}
	body := m.styles.ModalTitle.Render("Remove "+label+"?") + "\n\n" +
		m.styles.Help.Render("y remove  n keep")
	return m.styles.Modal.Render(body)
}

func (m *Model) overlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
