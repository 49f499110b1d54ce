package db

import "fmt"

// migrate runs database migrations.
func (c *Cache) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS courses (
			term       TEXT NOT NULL CHECK(term IN ('fall', 'spring')),
			id         TEXT NOT NULL,
			code       TEXT NOT NULL,
			number     TEXT NOT NULL,
			section    TEXT,
			name       TEXT,
			instructor TEXT,
			room       TEXT,
			slot_id    TEXT,
			bimodal    INTEGER DEFAULT 0,
			PRIMARY KEY (term, id)
		);

		CREATE TABLE IF NOT EXISTS faculty (
			term TEXT NOT NULL CHECK(term IN ('fall', 'spring')),
			name TEXT NOT NULL,
			PRIMARY KEY (term, name)
		);

		CREATE TABLE IF NOT EXISTS snapshots (
			term     TEXT PRIMARY KEY,
			saved_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_courses_slot ON courses(term, slot_id);
	`

	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("creating cache tables: %w", err)
	}

	return nil
}
