package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/nvelez/slate/internal/schedule"
)

const requestTimeout = 10 * time.Second

// Snapshot is the authority's full view of one term.
type Snapshot struct {
	Courses []*schedule.Course `json:"courses"`
	Faculty []string           `json:"faculty"`
}

// Confirmer is the request/response half of the authority connection, used
// for the mutations the authority confirms over HTTP.
type Confirmer interface {
	Snapshot(ctx context.Context, term schedule.Term) (*Snapshot, error)
	MoveCourse(ctx context.Context, term schedule.Term, courseID, slotID string) error
	UpdateCourse(ctx context.Context, term schedule.Term, courseID string, patch Patch) error
	AddCourse(ctx context.Context, term schedule.Term, course *schedule.Course) (*schedule.Course, error)
	DeleteCourse(ctx context.Context, term schedule.Term, courseID string) error
	AddFaculty(ctx context.Context, term schedule.Term, name string) error
	DeleteFaculty(ctx context.Context, term schedule.Term, name string) error
	Restore(ctx context.Context, term schedule.Term, snap *Snapshot) error
}

// Authority talks to the scheduling authority's HTTP API.
type Authority struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewAuthority creates an HTTP client for the authority at baseURL.
func NewAuthority(baseURL string, log zerolog.Logger) *Authority {
	return &Authority{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// apiResponse is the authority's envelope for mutation endpoints.
type apiResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Course  *schedule.Course `json:"course,omitempty"`
}

// Snapshot fetches the full schedule for a term.
func (a *Authority) Snapshot(ctx context.Context, term schedule.Term) (*Snapshot, error) {
	u := fmt.Sprintf("%s/api/schedule?term=%s", a.baseURL, url.QueryEscape(string(term)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building snapshot request: %w", err)
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching snapshot: authority returned %s", resp.Status)
	}

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

// MoveCourse confirms a slot change.
func (a *Authority) MoveCourse(ctx context.Context, term schedule.Term, courseID, slotID string) error {
	_, err := a.post(ctx, "/api/schedule", map[string]any{
		"term":     term,
		"courseId": courseID,
		"slotId":   slotID,
	})
	return err
}

// UpdateCourse confirms a field patch.
func (a *Authority) UpdateCourse(ctx context.Context, term schedule.Term, courseID string, patch Patch) error {
	_, err := a.post(ctx, "/api/course", map[string]any{
		"term":     term,
		"courseId": courseID,
		"updates":  patch,
	})
	return err
}

// AddCourse confirms a new section and returns the authority's canonical
// course, which may carry a different id than the optimistic local one.
func (a *Authority) AddCourse(ctx context.Context, term schedule.Term, course *schedule.Course) (*schedule.Course, error) {
	resp, err := a.post(ctx, "/api/course/add", map[string]any{
		"term":       term,
		"code":       course.Code,
		"number":     course.Number,
		"name":       course.Name,
		"instructor": course.Instructor,
		"room":       course.Room,
		"slotId":     course.SlotID,
		"bimodal":    course.Bimodal,
	})
	if err != nil {
		return nil, err
	}
	return resp.Course, nil
}

// DeleteCourse confirms a removal.
func (a *Authority) DeleteCourse(ctx context.Context, term schedule.Term, courseID string) error {
	_, err := a.post(ctx, "/api/course/delete", map[string]any{
		"term":     term,
		"courseId": courseID,
	})
	return err
}

// AddFaculty adds a name to the authority's roster.
func (a *Authority) AddFaculty(ctx context.Context, term schedule.Term, name string) error {
	_, err := a.post(ctx, "/api/faculty/add", map[string]any{"term": term, "name": name})
	return err
}

// DeleteFaculty removes a name from the authority's roster.
func (a *Authority) DeleteFaculty(ctx context.Context, term schedule.Term, name string) error {
	_, err := a.post(ctx, "/api/faculty/delete", map[string]any{"term": term, "name": name})
	return err
}

// Restore replaces the authority's data for a term from a backup. The
// authority answers with a data_restored broadcast to every client.
func (a *Authority) Restore(ctx context.Context, term schedule.Term, snap *Snapshot) error {
	_, err := a.post(ctx, "/api/restore", map[string]any{
		"term":    term,
		"courses": snap.Courses,
		"faculty": snap.Faculty,
	})
	return err
}

func (a *Authority) post(ctx context.Context, path string, body any) (*apiResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}
	if !out.Success {
		if out.Error == "" {
			out.Error = resp.Status
		}
		return nil, fmt.Errorf("authority rejected %s: %s", path, out.Error)
	}
	return &out, nil
}
