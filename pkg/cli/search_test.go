package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"go.seanlatimer.dev/folio/internal/server"
)

func TestSearchCommand(t *testing.T) {
	setupCLITest(t)

	output, err := runCommand(t, "search", "notes")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	if !strings.HasPrefix(output, "1. Tech Notes") {
		t.Errorf("search output should start with Tech Notes:\n%s", output)
	}
	if !strings.Contains(output, "/blogs/tech-notes") {
		t.Errorf("search output missing href:\n%s", output)
	}
	if !strings.Contains(output, "url: /search?q=notes") {
		t.Errorf("search output missing url line:\n%s", output)
	}
}

func TestSearchCommandJoinsArgs(t *testing.T) {
	setupCLITest(t)

	output, err := runCommand(t, "search", "tech", "notes")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	if !strings.Contains(output, "url: /search?q=tech+notes") {
		t.Errorf("search output missing joined query url:\n%s", output)
	}
}

func TestSearchCommandTagsAndLimit(t *testing.T) {
	setupCLITest(t)

	output, err := runCommand(t, "search", "--tag", "React", "--tag", "tech", "--limit", "1")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	if !strings.Contains(output, "AlertShip") {
		t.Errorf("search output missing AlertShip:\n%s", output)
	}
	if strings.Contains(output, "Tech Notes") {
		t.Errorf("search output should be limited to one result:\n%s", output)
	}
	if !strings.Contains(output, "Showing 1 of 2 results") {
		t.Errorf("search output missing limit summary:\n%s", output)
	}
	if !strings.Contains(output, "url: /search?tags=React%2Ctech") {
		t.Errorf("search output missing tags url:\n%s", output)
	}
}

func TestSearchCommandJSON(t *testing.T) {
	setupCLITest(t)

	output, err := runCommand(t, "search", "--json", "--kind", "projects", "samvaad")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}

	var resp server.SearchResponse
	if err := json.Unmarshal([]byte(output), &resp); err != nil {
		t.Fatalf("search --json output is not JSON: %v", err)
	}
	if resp.Query != "samvaad" || resp.URL != "/search?q=samvaad" {
		t.Errorf("response query/url = %q/%q", resp.Query, resp.URL)
	}
	if len(resp.Results) == 0 || resp.Results[0].Record.ID != "samvaad" {
		t.Fatalf("first result = %+v, want samvaad", resp.Results)
	}
	if len(resp.Results[0].Highlights.Title) == 0 || !resp.Results[0].Highlights.Title[0].Matched {
		t.Errorf("title highlight = %+v, want a matched segment", resp.Results[0].Highlights.Title)
	}
}

func TestSearchCommandNoResults(t *testing.T) {
	setupCLITest(t)

	output, err := runCommand(t, "search", "--tag", "Rust")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	if !strings.Contains(output, "No results found.") {
		t.Errorf("search output = %q, want no results message", output)
	}
}

func TestSearchCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "empty state", args: []string{"search"}},
		{name: "blank query", args: []string{"search", "   "}},
		{name: "negative limit", args: []string{"search", "notes", "--limit", "-1"}},
		{name: "unknown kind", args: []string{"search", "notes", "--kind", "videos"}},
		{name: "unknown saved search", args: []string{"search", "--saved", "missing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			if _, err := runCommand(t, tt.args...); err == nil {
				t.Errorf("search %v expected error, got nil", tt.args)
			}
		})
	}
}

func TestSearchCommandSaved(t *testing.T) {
	setupCLITest(t)

	if _, err := runCommand(t, "saved", "add", "Voice", "--query", "samvaad", "--tag", "Python"); err != nil {
		t.Fatalf("saved add error = %v", err)
	}

	output, err := runCommand(t, "search", "--saved", "voice")
	if err != nil {
		t.Fatalf("search --saved error = %v", err)
	}
	if !strings.Contains(output, "Samvaad") {
		t.Errorf("search --saved output missing Samvaad:\n%s", output)
	}
	if !strings.Contains(output, "url: /search?q=samvaad&tags=Python") {
		t.Errorf("search --saved output missing url:\n%s", output)
	}

	// Positional args replace the saved query but keep its tags.
	output, err = runCommand(t, "search", "--saved", "voice", "alertship")
	if err != nil {
		t.Fatalf("search --saved with query error = %v", err)
	}
	if !strings.Contains(output, "url: /search?q=alertship&tags=Python") {
		t.Errorf("search output missing overridden url:\n%s", output)
	}
}
