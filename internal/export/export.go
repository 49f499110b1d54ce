// Package export renders schedule snapshots to downloadable formats, the
// same layouts the authority serves from its own export endpoints.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nvelez/slate/internal/schedule"
)

// Filename builds a timestamped export filename such as
// "schedule_20260825_153000.json".
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("schedule_%s.%s", now.Format("20060102_150405"), ext)
}

// snapshot is the JSON export shape, matching the authority's data file.
type snapshot struct {
	Term    schedule.Term      `json:"term"`
	Courses []*schedule.Course `json:"courses"`
	Faculty []string           `json:"faculty"`
}

// WriteJSON writes the schedule as indented JSON.
func WriteJSON(w io.Writer, term schedule.Term, courses []*schedule.Course, faculty []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot{Term: term, Courses: courses, Faculty: faculty}); err != nil {
		return fmt.Errorf("encoding schedule export: %w", err)
	}
	return nil
}
