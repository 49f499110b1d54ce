package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvelez/slate/internal/config"
	"github.com/nvelez/slate/internal/db"
	"github.com/nvelez/slate/internal/remote"
	"github.com/nvelez/slate/internal/schedule"
)

// Mode selects the active key map and, for the modal modes, what the board
// renders on top of the grid.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeEdit
	ModeAdd
	ModeConfirmDelete
)

const flashDuration = 4 * time.Second

// Model is the bubbletea model for the schedule board. It is the only
// consumer of the events channel; the store and adapter are shared with the
// background sync goroutines.
type Model struct {
	cfg     *config.Config
	store   *schedule.Store
	adapter *remote.Adapter
	cache   *db.Cache
	events  <-chan tea.Msg
	styles  *Styles

	mode   Mode
	cols   []column
	cursor position
	scroll int

	// Move mode state: the card being carried and the column it hovers over.
	movingID string
	moveCol  int

	form     *form
	deleteID string

	status    remote.Status
	flash     string
	flashWarn bool

	width  int
	height int
}

func newModel(cfg *config.Config, store *schedule.Store, adapter *remote.Adapter, cache *db.Cache, events <-chan tea.Msg) *Model {
	m := &Model{
		cfg:     cfg,
		store:   store,
		adapter: adapter,
		cache:   cache,
		events:  events,
		styles:  NewStyles(cfg.UI.Theme),
		status:  remote.StatusConnecting,
	}
	m.refresh()
	return m
}

// Init starts the event pump.
func (m *Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// refresh rebuilds the column layout from the store and keeps the cursor on
// a card.
func (m *Model) refresh() {
	m.cols = buildColumns(m.store.Courses())
	m.cursor = clamp(m.cols, m.cursor)
	if m.mode == ModeMove {
		if pos, ok := findCourse(m.cols, m.movingID); ok {
			m.cursor = pos
		} else {
			// The carried card vanished under a broadcast.
			m.mode = ModeNormal
			m.movingID = ""
		}
	}
}

// selected returns the card under the cursor, or nil.
func (m *Model) selected() *schedule.Course {
	return courseAt(m.cols, m.cursor)
}

func (m *Model) setFlash(text string, warn bool) tea.Cmd {
	m.flash = text
	m.flashWarn = warn
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashClearMsg{} })
}
