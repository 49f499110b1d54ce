package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nvelez/slate/internal/config"
	"github.com/nvelez/slate/internal/db"
	"github.com/nvelez/slate/internal/remote"
	"github.com/nvelez/slate/internal/schedule"
)

// adapterPublisher lets the store publish through an adapter that is
// constructed after the store. The adapter field is set once during wiring,
// before any mutation can run.
type adapterPublisher struct {
	adapter *remote.Adapter
}

var _ schedule.Publisher = (*adapterPublisher)(nil)

func (p *adapterPublisher) PublishMove(term schedule.Term, courseID, slotID string) error {
	return p.adapter.PublishMove(term, courseID, slotID)
}

func (p *adapterPublisher) PublishUpdate(term schedule.Term, courseID string, fields schedule.Fields) error {
	return p.adapter.PublishUpdate(term, courseID, fields)
}

func (p *adapterPublisher) PublishAdd(term schedule.Term, course *schedule.Course) error {
	return p.adapter.PublishAdd(term, course)
}

func (p *adapterPublisher) PublishDelete(term schedule.Term, courseID string) error {
	return p.adapter.PublishDelete(term, courseID)
}

func (p *adapterPublisher) PublishFacultyAdd(term schedule.Term, name string) error {
	return p.adapter.PublishFacultyAdd(term, name)
}

func (p *adapterPublisher) PublishFacultyDelete(term schedule.Term, name string) error {
	return p.adapter.PublishFacultyDelete(term, name)
}

// Run wires the board against the configured authority and blocks until the
// user quits. The cached snapshot renders immediately; the live connection
// replaces it as soon as the first full sync lands.
func Run(cfg *config.Config, debug bool) error {
	log := zerolog.Nop()
	if debug {
		f, err := tea.LogToFile("slate-debug.log", "slate")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		log = zerolog.New(f).With().Timestamp().Logger()
	}

	cache, err := openCache(cfg.Storage.DBPath)
	if err != nil {
		log.Warn().Err(err).Msg("local cache unavailable, running without it")
		cache = nil
	} else {
		defer cache.Close()
	}

	pub := &adapterPublisher{}
	store := schedule.NewStore(cfg.Term(), pub)
	authority := remote.NewAuthority(cfg.Server.URL, log)
	client := remote.NewClient(cfg.SocketURL(), log)
	adapter := remote.NewAdapter(store, authority, client, log)
	pub.adapter = adapter

	if cache != nil {
		seedFromCache(cache, store, log)
	}

	events := make(chan tea.Msg, 64)
	client.OnEvent(adapter.Apply)
	client.OnStatus(func(s remote.Status) { events <- statusMsg{s} })
	adapter.OnApplied(func(ev remote.Event) { events <- eventMsg{ev} })
	adapter.OnError(func(err error) { events <- errMsg{err} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := client.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("connection loop ended")
		}
	}()

	model := newModel(cfg, store, adapter, cache, events)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}

	if cache != nil {
		saveToCache(cache, store, log)
	}
	return nil
}

func openCache(path string) (*db.Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return db.New(path)
}

func seedFromCache(cache *db.Cache, store *schedule.Store, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	courses, faculty, err := cache.LoadSnapshot(ctx, store.Term())
	if err != nil {
		log.Warn().Err(err).Msg("load cached snapshot")
		return
	}
	if len(courses) > 0 || len(faculty) > 0 {
		store.ReplaceAll(courses, faculty)
	}
}

func saveToCache(cache *db.Cache, store *schedule.Store, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := cache.SaveSnapshot(ctx, store.Term(), store.Courses(), store.Faculty()); err != nil {
		log.Warn().Err(err).Msg("save snapshot on exit")
	}
}
