package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/subsearch/internal/search"
)

var sampleMatches = []search.Match{
	{FilePath: "/subs/one.srt", Timestamp: "00:00:01,000 --> 00:00:02,000", CueIndex: 1, Text: "first error"},
	{FilePath: "/subs/one.srt", Timestamp: "00:00:05,000 --> 00:00:06,000", CueIndex: 4, Text: "second error"},
	{FilePath: "/subs/two.vtt", Timestamp: "00:01:00,000 --> 00:01:02,000", CueIndex: 9, Text: "third error"},
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello world", "hello_world"},
		{"  what's up?  ", "whats_up"},
		{"foo - bar", "foo_bar"},
		{"a--b  c", "a_b_c"},
		{"snake_case", "snake_case"},
		{"café au lait", "café_au_lait"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SafeFileName(tt.input); got != tt.want {
				t.Errorf("SafeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteConsolePlain(t *testing.T) {
	var sb strings.Builder
	if err := WriteConsole(&sb, sampleMatches, "error", StylePlain); err != nil {
		t.Fatalf("WriteConsole failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"Found 3 matches for 'error':",
		"File: one.srt",
		"File: two.vtt",
		"  Subtitle #4",
		"  Time: 00:01:00,000 --> 00:01:02,000",
		"  Text: third error",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Count(out, "File: one.srt") != 1 {
		t.Errorf("expected one header per file, got:\n%s", out)
	}
}

func TestWriteConsoleTable(t *testing.T) {
	var sb strings.Builder
	if err := WriteConsole(&sb, sampleMatches, "error", StyleTable); err != nil {
		t.Fatalf("WriteConsole failed: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "TIME") && !strings.Contains(out, "Time") {
		t.Errorf("expected table header, got:\n%s", out)
	}
	if !strings.Contains(out, "second error") || !strings.Contains(out, "╭") {
		t.Errorf("expected rounded table rows, got:\n%s", out)
	}
}

func TestWriteConsoleNoMatches(t *testing.T) {
	var sb strings.Builder
	if err := WriteConsole(&sb, nil, "nothing", StylePlain); err != nil {
		t.Fatalf("WriteConsole failed: %v", err)
	}
	if !strings.Contains(sb.String(), "No matches found for 'nothing'") {
		t.Errorf("unexpected output: %q", sb.String())
	}
}

func TestSaveToFile(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := SaveToFile(sampleMatches, "the error!", outDir)
	if err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}
	if filepath.Base(path) != "search_results_the_error.txt" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "Search Results for 'the error!'\n") {
		t.Errorf("unexpected header:\n%s", content)
	}
	if !strings.Contains(content, "Total matches found: 3") {
		t.Errorf("missing total:\n%s", content)
	}
	if !strings.Contains(content, "File: two.vtt\n"+strings.Repeat("-", 40)+"\nSubtitle #9\n") {
		t.Errorf("missing grouped entry:\n%s", content)
	}
}

func TestSaveToFileNoMatches(t *testing.T) {
	path, err := SaveToFile(nil, "x", t.TempDir())
	if err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasSuffix(string(data), "No matches found.\n") {
		t.Errorf("unexpected content:\n%s", data)
	}
}
