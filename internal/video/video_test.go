package video

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/subsearch/internal/subtitle"
)

func TestSubtitleStreamArgs(t *testing.T) {
	tests := []struct {
		name   string
		opts   ExtractSubtitleOptions
		codec  string
		mapArg string
	}{
		{"default srt", DefaultExtractSubtitleOptions(), "srt", "0:s:0"},
		{"second track vtt", ExtractSubtitleOptions{Track: 1, Format: subtitle.FormatVTT}, "webvtt", "0:s:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, err := subtitleStream("in.mkv", "out.srt", tt.opts)
			if err != nil {
				t.Fatalf("subtitleStream error: %v", err)
			}
			args := strings.Join(stream.GetArgs(), " ")
			for _, want := range []string{"-i in.mkv", "-map " + tt.mapArg, "-c:s " + tt.codec, "out.srt", "-y"} {
				if !strings.Contains(args, want) {
					t.Errorf("expected args to contain %q, got %q", want, args)
				}
			}
		})
	}
}

func TestSubtitleStreamRejectsBadOptions(t *testing.T) {
	if _, err := subtitleStream("in.mkv", "out.ass", ExtractSubtitleOptions{Format: "ass"}); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := subtitleStream("in.mkv", "out.srt", ExtractSubtitleOptions{Track: -1, Format: subtitle.FormatSRT}); err == nil {
		t.Error("expected error for negative track")
	}
}

func TestExtractSubtitlesMissingVideo(t *testing.T) {
	dir := t.TempDir()
	err := NewProcessor("").ExtractSubtitles(
		context.Background(),
		filepath.Join(dir, "missing.mkv"),
		filepath.Join(dir, "out.srt"),
		DefaultExtractSubtitleOptions(),
	)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
