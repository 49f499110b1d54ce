// Package history holds the read-only course archive: what each course is,
// when it has run, and who taught it. The archive feeds advisory output and
// is never touched by schedule edits.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Offering is one past run of a course.
type Offering struct {
	Year       int    `json:"year"`
	Term       string `json:"term"`
	Section    string `json:"section"`
	Instructor string `json:"instructor"`
}

// Record is the archived metadata for one course.
type Record struct {
	Code        string     `json:"code"`
	Number      string     `json:"number"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Credits     string     `json:"credits,omitempty"`
	Core        string     `json:"core,omitempty"`
	Offered     string     `json:"offered,omitempty"`
	Offerings   []Offering `json:"offerings"`
}

// Archive maps "CODE-NUMBER" keys to records.
type Archive map[string]*Record

// Key builds the archive key for a course code and number.
func Key(code, number string) string {
	return strings.ToUpper(code) + "-" + strings.ToUpper(number)
}

// Lookup returns the record for a course, or nil.
func (a Archive) Lookup(code, number string) *Record {
	return a[Key(code, number)]
}

// Load reads an archive from a JSON file. A missing file is an empty
// archive, not an error: history is optional.
func Load(path string) (Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Archive{}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	a.sortOfferings()
	return a, nil
}

// Save writes the archive as indented JSON.
func (a Archive) Save(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// termRank orders terms within a year, newest first when reversed.
func termRank(term string) int {
	switch term {
	case "Fall":
		return 2
	case "Spring":
		return 1
	default:
		return 0
	}
}

func (a Archive) sortOfferings() {
	for _, rec := range a {
		sortOfferings(rec.Offerings)
	}
}

func sortOfferings(offs []Offering) {
	sort.SliceStable(offs, func(i, j int) bool {
		if offs[i].Year != offs[j].Year {
			return offs[i].Year > offs[j].Year
		}
		return termRank(offs[i].Term) > termRank(offs[j].Term)
	})
}

// Latest returns the most recent offering, or nil when the course has
// never run. Offerings are kept sorted newest first.
func (r *Record) Latest() *Offering {
	if r == nil || len(r.Offerings) == 0 {
		return nil
	}
	return &r.Offerings[0]
}

// LastTaughtBy returns the instructor of the most recent offering with a
// named instructor, skipping TBA placeholders.
func (r *Record) LastTaughtBy() (string, bool) {
	if r == nil {
		return "", false
	}
	for _, off := range r.Offerings {
		if off.Instructor != "" && off.Instructor != "TBA" {
			return off.Instructor, true
		}
	}
	return "", false
}

// OfferedIn reports whether the catalog's offering pattern covers the given
// term and year. Patterns read like "Fall Semester", "Fall and Spring", or
// "Spring Semester Odd Years". An empty pattern places no constraint.
func (r *Record) OfferedIn(term string, year int) bool {
	if r == nil || r.Offered == "" {
		return true
	}
	pattern := strings.ToLower(r.Offered)
	if !strings.Contains(pattern, strings.ToLower(term)) {
		return false
	}
	if strings.Contains(pattern, "odd") && year%2 == 0 {
		return false
	}
	if strings.Contains(pattern, "even") && year%2 != 0 {
		return false
	}
	return true
}
