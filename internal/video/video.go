package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/subsearch/internal/ffmpeg"
	"github.com/mgpai22/subsearch/internal/subtitle"
)

// holds options for subtitle track extraction
type ExtractSubtitleOptions struct {
	Track  int             // zero-based index among the container's subtitle streams
	Format subtitle.Format // srt or vtt
}

// returns sensible defaults for subtitle extraction
func DefaultExtractSubtitleOptions() ExtractSubtitleOptions {
	return ExtractSubtitleOptions{
		Track:  0,
		Format: subtitle.FormatSRT,
	}
}

// default implementation using ffmpeg
type Processor struct {
	ffmpegPath string
}

// empty ffmpegPath resolves the binary from SUBSEARCH_FFMPEG_PATH or PATH
func NewProcessor(ffmpegPath string) *Processor {
	return &Processor{ffmpegPath: ffmpegPath}
}

// copies one subtitle stream out of a media container into a text file
func (p *Processor) ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractSubtitleOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stream, err := subtitleStream(videoPath, outputPath, opts)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	ffmpegPath := p.ffmpegPath
	if ffmpegPath == "" {
		ffmpegPath, err = ffmpegbin.FFmpegPath()
		if err != nil {
			return err
		}
	}

	if err := stream.SetFfmpegPath(ffmpegPath).Run(); err != nil {
		return fmt.Errorf("ffmpeg subtitle extraction failed: %w", err)
	}

	return nil
}

func subtitleStream(
	videoPath, outputPath string,
	opts ExtractSubtitleOptions,
) (*ffmpeg.Stream, error) {
	if opts.Track < 0 {
		return nil, fmt.Errorf("subtitle track must not be negative, got %d", opts.Track)
	}

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", opts.Track),
	}

	switch opts.Format {
	case subtitle.FormatSRT:
		kwargs["c:s"] = "srt"
	case subtitle.FormatVTT:
		kwargs["c:s"] = "webvtt"
	default:
		return nil, fmt.Errorf("unsupported output format: %s", opts.Format)
	}

	return ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput(), nil
}
