// Package tui provides the interactive schedule board.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	colWidth   = 24
	cardHeight = 2
)

// Styles holds all lipgloss styles for the board, derived from a theme.
type Styles struct {
	Title lipgloss.Style

	ColumnHeader       lipgloss.Style
	ColumnHeaderActive lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardMoving   lipgloss.Style
	CardDetail   lipgloss.Style

	StatusBar       lipgloss.Style
	StatusConnected lipgloss.Style
	StatusDegraded  lipgloss.Style
	StatusWarn      lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	FormLabel  lipgloss.Style

	Help lipgloss.Style
}

type palette struct {
	accent   lipgloss.Color
	fg       lipgloss.Color
	muted    lipgloss.Color
	selBg    lipgloss.Color
	moveBg   lipgloss.Color
	warn     lipgloss.Color
	ok       lipgloss.Color
	statusBg lipgloss.Color
}

var palettes = map[string]palette{
	"dark": {
		accent:   lipgloss.Color("39"),
		fg:       lipgloss.Color("252"),
		muted:    lipgloss.Color("243"),
		selBg:    lipgloss.Color("24"),
		moveBg:   lipgloss.Color("58"),
		warn:     lipgloss.Color("214"),
		ok:       lipgloss.Color("42"),
		statusBg: lipgloss.Color("236"),
	},
	"light": {
		accent:   lipgloss.Color("26"),
		fg:       lipgloss.Color("235"),
		muted:    lipgloss.Color("245"),
		selBg:    lipgloss.Color("153"),
		moveBg:   lipgloss.Color("187"),
		warn:     lipgloss.Color("130"),
		ok:       lipgloss.Color("28"),
		statusBg: lipgloss.Color("254"),
	},
}

// NewStyles builds the style set for a theme name. Unknown themes fall back
// to dark.
func NewStyles(theme string) *Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["dark"]
	}

	return &Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(p.accent),

		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.muted).
			Width(colWidth).
			Align(lipgloss.Center),
		ColumnHeaderActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			Width(colWidth).
			Align(lipgloss.Center),

		Card: lipgloss.NewStyle().
			Foreground(p.fg).
			Width(colWidth - 2).
			MaxHeight(cardHeight),
		CardSelected: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.selBg).
			Bold(true).
			Width(colWidth - 2).
			MaxHeight(cardHeight),
		CardMoving: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.moveBg).
			Bold(true).
			Width(colWidth - 2).
			MaxHeight(cardHeight),
		CardDetail: lipgloss.NewStyle().Foreground(p.muted),

		StatusBar:       lipgloss.NewStyle().Background(p.statusBg).Foreground(p.fg).Padding(0, 1),
		StatusConnected: lipgloss.NewStyle().Foreground(p.ok).Bold(true),
		StatusDegraded:  lipgloss.NewStyle().Foreground(p.warn).Bold(true),
		StatusWarn:      lipgloss.NewStyle().Foreground(p.warn),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		FormLabel:  lipgloss.NewStyle().Foreground(p.muted).Width(12),

		Help: lipgloss.NewStyle().Foreground(p.muted),
	}
}
