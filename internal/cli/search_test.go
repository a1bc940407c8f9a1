package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mgpai22/subsearch/internal/config"
	"github.com/mgpai22/subsearch/internal/logging"
	"github.com/mgpai22/subsearch/internal/report"
	"github.com/mgpai22/subsearch/internal/search"
	"github.com/spf13/cobra"
)

func newTestSearchCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	addSearchOptionFlags(cmd)
	cmd.Flags().StringP("output-dir", "o", ".", "")
	cmd.Flags().Bool("no-save", false, "")
	cmd.Flags().BoolP("quiet", "q", false, "")

	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error: %v", args, err)
	}
	return cmd
}

func TestResolveSearchOptionsDefaults(t *testing.T) {
	opts, err := resolveSearchOptions(newTestSearchCommand(t), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.CaseSensitive {
		t.Error("expected case-insensitive search by default")
	}
	if !opts.Dedupe {
		t.Error("expected deduplication on by default")
	}
	if opts.SimilarityThreshold != 0.8 {
		t.Errorf("expected threshold 0.8, got %g", opts.SimilarityThreshold)
	}
	if opts.TimeWindow != 5.0 {
		t.Errorf("expected command-line time window 5, got %g", opts.TimeWindow)
	}
	if opts.Mode != search.ModeStrict {
		t.Errorf("expected strict mode, got %s", opts.Mode)
	}
}

func TestResolveSearchOptionsFlagsOverrideConfig(t *testing.T) {
	c := config.Default()
	threshold := 0.6
	window := 12.0
	c.Dedupe.SimilarityThreshold = &threshold
	c.Dedupe.TimeWindow = &window
	c.Dedupe.Aggressive = true
	c.Search.CaseSensitive = true

	// only the flags the user sets replace file values
	cmd := newTestSearchCommand(t, "--time-window", "3", "--aggressive-dedupe=false")
	opts, err := resolveSearchOptions(cmd, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !opts.CaseSensitive {
		t.Error("expected case sensitivity from config")
	}
	if opts.SimilarityThreshold != 0.6 {
		t.Errorf("expected threshold 0.6 from config, got %g", opts.SimilarityThreshold)
	}
	if opts.TimeWindow != 3 {
		t.Errorf("expected time window 3 from flag, got %g", opts.TimeWindow)
	}
	if opts.Mode != search.ModeStrict {
		t.Errorf("expected strict mode from flag, got %s", opts.Mode)
	}
}

func TestResolveSearchOptionsFlags(t *testing.T) {
	cmd := newTestSearchCommand(t, "-c", "--no-dedupe", "--similarity-threshold", "0.5", "--workers", "4")
	opts, err := resolveSearchOptions(cmd, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !opts.CaseSensitive {
		t.Error("expected case-sensitive search")
	}
	if opts.Dedupe {
		t.Error("expected deduplication disabled")
	}
	if opts.SimilarityThreshold != 0.5 {
		t.Errorf("expected threshold 0.5, got %g", opts.SimilarityThreshold)
	}
	if opts.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", opts.Workers)
	}
}

func TestResolveSearchOptionsRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"threshold above one", []string{"--similarity-threshold", "1.5"}},
		{"negative threshold", []string{"--similarity-threshold=-0.1"}},
		{"negative window", []string{"--time-window=-1"}},
		{"negative workers", []string{"--workers=-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveSearchOptions(newTestSearchCommand(t, tt.args...), nil)
			if err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestResolveOutputSettings(t *testing.T) {
	c := config.Default()
	c.Output.Dir = "results"

	out := resolveOutputSettings(newTestSearchCommand(t), c)
	if out.dir != "results" || !out.save || out.quiet {
		t.Errorf("expected config output settings, got %+v", out)
	}

	out = resolveOutputSettings(newTestSearchCommand(t, "-o", "elsewhere", "--no-save", "-q"), c)
	if out.dir != "elsewhere" || out.save || !out.quiet {
		t.Errorf("expected flag output settings, got %+v", out)
	}
}

func writeSubtitleFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestResolveInputFilesFromList(t *testing.T) {
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "a.srt")
	txtPath := filepath.Join(tmpDir, "notes.txt")
	writeSubtitleFixture(t, srtPath, "1\n00:00:01,000 --> 00:00:02,000\nhello\n")
	writeSubtitleFixture(t, txtPath, "hello")

	paths, err := resolveInputFiles(
		logging.NewNop(),
		"",
		[]string{srtPath, txtPath, filepath.Join(tmpDir, "missing.vtt")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0] != srtPath {
		t.Errorf("expected only %s, got %v", srtPath, paths)
	}
}

func TestResolveInputFilesFromDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeSubtitleFixture(t, filepath.Join(tmpDir, "b.vtt"), "WEBVTT\n")
	writeSubtitleFixture(t, filepath.Join(tmpDir, "a.srt"), "")

	paths, err := resolveInputFiles(logging.NewNop(), tmpDir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %v", paths)
	}
	if filepath.Base(paths[0]) != "a.srt" || filepath.Base(paths[1]) != "b.vtt" {
		t.Errorf("expected sorted paths, got %v", paths)
	}
}

func TestResolveInputFilesErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := resolveInputFiles(logging.NewNop(), filepath.Join(tmpDir, "nope"), nil); err == nil {
		t.Error("expected error for missing directory")
	}

	_, err := resolveInputFiles(logging.NewNop(), tmpDir, nil)
	if !errors.Is(err, errNoSubtitleFiles) {
		t.Errorf("expected errNoSubtitleFiles for empty directory, got %v", err)
	}

	_, err = resolveInputFiles(logging.NewNop(), "", []string{filepath.Join(tmpDir, "missing.srt")})
	if !errors.Is(err, errNoSubtitleFiles) {
		t.Errorf("expected errNoSubtitleFiles when no file survives, got %v", err)
	}
}

func TestConsoleStyleNonTerminal(t *testing.T) {
	if got := consoleStyle(&bytes.Buffer{}); got != report.StylePlain {
		t.Errorf("expected plain style for a buffer, got %v", got)
	}
}
