// Package db provides the SQLite offline cache: the last known schedule per
// term, so the board can render before the first successful connect.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nvelez/slate/internal/schedule"
)

// Cache stores per-term schedule snapshots in SQLite.
type Cache struct {
	db *sql.DB
}

// New opens the cache at path and runs migrations.
func New(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// SaveSnapshot replaces the cached schedule for a term. The snapshot is
// written atomically; a failed save leaves the previous one intact.
func (c *Cache) SaveSnapshot(ctx context.Context, term schedule.Term, courses []*schedule.Course, faculty []string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE term = ?`, term); err != nil {
		return fmt.Errorf("clearing cached courses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM faculty WHERE term = ?`, term); err != nil {
		return fmt.Errorf("clearing cached faculty: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO courses (term, id, code, number, section, name, instructor, room, slot_id, bimodal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, course := range courses {
		_, err := stmt.ExecContext(ctx,
			term,
			course.ID,
			course.Code,
			course.Number,
			course.Section,
			course.Name,
			course.Instructor,
			course.Room,
			course.SlotID,
			course.Bimodal,
		)
		if err != nil {
			return fmt.Errorf("inserting course %s: %w", course.ID, err)
		}
	}

	for _, name := range faculty {
		if _, err := tx.ExecContext(ctx, `INSERT INTO faculty (term, name) VALUES (?, ?)`, term, name); err != nil {
			return fmt.Errorf("inserting faculty %q: %w", name, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (term, saved_at) VALUES (?, ?)
		ON CONFLICT(term) DO UPDATE SET saved_at = excluded.saved_at
	`, term, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording snapshot time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LoadSnapshot returns the cached schedule for a term. A term that has
// never been cached returns empty slices, not an error.
func (c *Cache) LoadSnapshot(ctx context.Context, term schedule.Term) ([]*schedule.Course, []string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, code, number, section, name, instructor, room, slot_id, bimodal
		FROM courses
		WHERE term = ?
		ORDER BY code, number, section
	`, term)
	if err != nil {
		return nil, nil, fmt.Errorf("querying cached courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []*schedule.Course
	for rows.Next() {
		var course schedule.Course
		err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Number,
			&course.Section,
			&course.Name,
			&course.Instructor,
			&course.Room,
			&course.SlotID,
			&course.Bimodal,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating courses: %w", err)
	}

	frows, err := c.db.QueryContext(ctx, `SELECT name FROM faculty WHERE term = ? ORDER BY name`, term)
	if err != nil {
		return nil, nil, fmt.Errorf("querying cached faculty: %w", err)
	}
	defer func() { _ = frows.Close() }()

	var faculty []string
	for frows.Next() {
		var name string
		if err := frows.Scan(&name); err != nil {
			return nil, nil, fmt.Errorf("scanning faculty: %w", err)
		}
		faculty = append(faculty, name)
	}
	if err := frows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating faculty: %w", err)
	}

	return courses, faculty, nil
}

// SavedAt returns when a term's snapshot was last written.
func (c *Cache) SavedAt(ctx context.Context, term schedule.Term) (time.Time, bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, `SELECT saved_at FROM snapshots WHERE term = ?`, term).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("querying snapshot time: %w", err)
	}

	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing snapshot time: %w", err)
	}
	return at, true, nil
}

// Close releases database resources.
func (c *Cache) Close() error {
	return c.db.Close()
}
