package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subsearch/internal/subtitle"
	"github.com/mgpai22/subsearch/internal/video"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract a subtitle track from a video file",
	Long: `Extract an embedded subtitle track from a video container and save it as
an SRT or VTT file that can then be searched.

Requires ffmpeg on PATH, or its location in SUBSEARCH_FFMPEG_PATH.

Examples:
  subsearch extract movie.mkv
  subsearch extract movie.mkv -t 1 -f vtt
  subsearch extract movie.mkv -o subs/movie.en.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("track", "t", 0, "Subtitle track index within the file (0 = first)")
	extractCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt)")
	extractCmd.Flags().
		StringP("output", "o", "", "Output file path")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	track, _ := cmd.Flags().GetInt("track")
	formatStr, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	format, err := parseSubtitleFormat(formatStr)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = defaultExtractOutput(videoPath, format)
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"output", outputPath,
		"track", track,
		"format", format,
	)

	processor := video.NewProcessor("")

	opts := video.ExtractSubtitleOptions{
		Track:  track,
		Format: format,
	}

	ctx := context.Background()
	if err := processor.ExtractSubtitles(
		ctx,
		videoPath,
		outputPath,
		opts,
	); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles extracted successfully: %s\n", absOutput)

	return nil
}

func parseSubtitleFormat(s string) (subtitle.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "srt":
		return subtitle.FormatSRT, nil
	case "vtt":
		return subtitle.FormatVTT, nil
	default:
		return "", fmt.Errorf("invalid format %q: supported formats are srt, vtt", s)
	}
}

// movie.mkv becomes movie.srt next to it
func defaultExtractOutput(videoPath string, format subtitle.Format) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "." + string(format)
}
