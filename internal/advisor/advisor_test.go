package advisor

import (
	"context"
	"strings"
	"testing"

	"github.com/nvelez/slate/internal/history"
	"github.com/nvelez/slate/internal/schedule"
)

type fakeClient struct {
	lastMessages []Message
	reply        string
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, error) {
	f.lastMessages = messages
	return f.reply, nil
}

func (f *fakeClient) ChatJSON(_ context.Context, _ []Message, _ any) error {
	return nil
}

func TestAdvise(t *testing.T) {
	client := &fakeClient{reply: "  Looks fine.\n"}
	advisor := New(client)

	got, err := advisor.Advise(context.Background(), Input{Term: schedule.TermFall, Year: 2026})
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if got != "Looks fine." {
		t.Errorf("advice = %q", got)
	}
	if len(client.lastMessages) != 2 || client.lastMessages[0].Role != "system" {
		t.Errorf("messages = %+v", client.lastMessages)
	}
}

func TestBuildPrompt(t *testing.T) {
	in := Input{
		Term: schedule.TermFall,
		Year: 2026,
		Courses: []*schedule.Course{
			{ID: "ECON-301-1", Code: "ECON", Number: "301", Section: "1", Instructor: "Smith", SlotID: "MW-A", Room: "RO-23"},
			{ID: "MGMT-402-1", Code: "MGMT", Number: "402", Section: "1"},
		},
		Faculty: []string{"Nguyen", "Smith"},
		Archive: history.Archive{
			"ECON-301": {
				Code: "ECON", Number: "301", Offered: "Spring Semester",
				Offerings: []history.Offering{{Year: 2025, Term: "Spring", Instructor: "Nguyen"}},
			},
		},
	}

	prompt := buildPrompt(in)

	t.Run("grid groups courses by slot", func(t *testing.T) {
		if !strings.Contains(prompt, "MW 8:15-9:40:") || !strings.Contains(prompt, "ECON 301-1 (Smith, RO-23)") {
			t.Errorf("prompt = %q", prompt)
		}
	})

	t.Run("unscheduled courses flag missing instructors", func(t *testing.T) {
		if !strings.Contains(prompt, "Not yet scheduled:") || !strings.Contains(prompt, "MGMT 402-1 (NO INSTRUCTOR)") {
			t.Errorf("prompt = %q", prompt)
		}
	})

	t.Run("roster is listed", func(t *testing.T) {
		if !strings.Contains(prompt, "Faculty roster: Nguyen, Smith") {
			t.Errorf("prompt = %q", prompt)
		}
	})

	t.Run("archive notes flag rotation and staffing changes", func(t *testing.T) {
		if !strings.Contains(prompt, "usually offered Spring Semester") {
			t.Errorf("prompt missing rotation note: %q", prompt)
		}
		if !strings.Contains(prompt, "last taught by Nguyen, now assigned to Smith") {
			t.Errorf("prompt missing staffing note: %q", prompt)
		}
	})
}

func TestNewClient(t *testing.T) {
	t.Run("ollama", func(t *testing.T) {
		client, err := NewClient("ollama", "llama3", "")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		oc, ok := client.(*OllamaClient)
		if !ok {
			t.Fatalf("expected OllamaClient, got %T", client)
		}
		if oc.baseURL != defaultOllamaBaseURL {
			t.Errorf("baseURL = %q, want %q", oc.baseURL, defaultOllamaBaseURL)
		}
	})

	t.Run("openai is the default", func(t *testing.T) {
		client, err := NewClient("", "gpt-4o-mini", "")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if _, ok := client.(*OpenAIClient); !ok {
			t.Fatalf("expected OpenAIClient, got %T", client)
		}
	})

	t.Run("unsupported provider", func(t *testing.T) {
		if _, err := NewClient("unknown", "model", ""); err == nil {
			t.Fatal("expected error for unsupported provider")
		}
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced json block", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n[1,2]\n```", "[1,2]"},
		{"embedded object", "Here you go: {\"a\":{\"b\":2}} done", `{"a":{"b":2}}`},
		{"passthrough", "not json at all", "not json at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
