package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mgpai22/subsearch/internal/config"
	"github.com/mgpai22/subsearch/internal/logging"
	"github.com/mgpai22/subsearch/internal/report"
	"github.com/mgpai22/subsearch/internal/search"
	"github.com/mgpai22/subsearch/internal/subtitle"
	"github.com/spf13/cobra"
)

var errNoSubtitleFiles = errors.New("no subtitle files found")

// output settings of a command-line search
type outputSettings struct {
	dir   string
	save  bool
	quiet bool
}

func init() {
	addSearchOptionFlags(rootCmd)

	rootCmd.Flags().
		StringP("directory", "d", "", "Directory to search in (default: current directory)")
	rootCmd.Flags().
		StringSliceP("files", "f", nil, "Specific subtitle files to search (comma-separated or repeated)")
	rootCmd.MarkFlagsMutuallyExclusive("directory", "files")

	rootCmd.Flags().
		StringP("output-dir", "o", ".", "Directory to save results file")
	rootCmd.Flags().
		Bool("no-save", false, "Don't save results to file")
	rootCmd.Flags().
		BoolP("quiet", "q", false, "Only print the results file path")
}

// registers the matching and deduplication flags shared by search and watch
func addSearchOptionFlags(cmd *cobra.Command) {
	cmd.Flags().
		BoolP("case-sensitive", "c", false, "Case sensitive search")
	cmd.Flags().
		Bool("no-dedupe", false, "Disable deduplication of similar results")
	cmd.Flags().
		Float64("similarity-threshold", 0.8, "Text similarity threshold for deduplication (0.0-1.0)")
	cmd.Flags().
		Float64("time-window", 5.0, "Time window in seconds for deduplication")
	cmd.Flags().
		Bool("aggressive-dedupe", false, "Remove matches that are either similar or close in time")
	cmd.Flags().
		Int("workers", 0, "Number of files deduplicated in parallel")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runInteractive(logger, os.Stdin, os.Stdout)
	}
	term := args[0]

	opts, err := resolveSearchOptions(cmd, cfg)
	if err != nil {
		return err
	}
	out := resolveOutputSettings(cmd, cfg)

	directory, _ := cmd.Flags().GetString("directory")
	files, _ := cmd.Flags().GetStringSlice("files")

	paths, err := resolveInputFiles(logger, directory, files)
	if err != nil {
		return err
	}

	if !out.quiet {
		srtCount, vttCount := subtitle.CountByFormat(paths)
		logger.Infow("Searching subtitle files",
			"term", term,
			"files", len(paths),
			"srt", srtCount,
			"vtt", vttCount,
		)
	}

	matches, err := search.Search(logger, paths, term, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if !out.quiet {
		if err := report.WriteConsole(os.Stdout, matches, term, consoleStyle(os.Stdout)); err != nil {
			return err
		}
	}

	if !out.save {
		return nil
	}

	outputFile, err := report.SaveToFile(matches, term, out.dir)
	if err != nil {
		return err
	}

	if out.quiet {
		fmt.Println(outputFile)
		return nil
	}

	absOutput, _ := filepath.Abs(outputFile)
	fmt.Printf("\nResults saved to: %s\n", absOutput)

	return nil
}

// starts from the config file and applies every flag the user set explicitly
func resolveSearchOptions(
	cmd *cobra.Command,
	c *config.Config,
) (search.Options, error) {
	if c == nil {
		c = config.Default()
	}

	opts := search.DefaultOptions()
	opts.CaseSensitive = c.Search.CaseSensitive
	opts.Dedupe = *c.Dedupe.Enabled
	opts.SimilarityThreshold = *c.Dedupe.SimilarityThreshold
	opts.TimeWindow = *c.Dedupe.TimeWindow
	opts.Workers = c.Dedupe.Workers
	if c.Dedupe.Aggressive {
		opts.Mode = search.ModeAggressive
	}

	flags := cmd.Flags()
	if flags.Changed("case-sensitive") {
		opts.CaseSensitive, _ = flags.GetBool("case-sensitive")
	}
	if flags.Changed("no-dedupe") {
		noDedupe, _ := flags.GetBool("no-dedupe")
		opts.Dedupe = !noDedupe
	}
	if flags.Changed("similarity-threshold") {
		opts.SimilarityThreshold, _ = flags.GetFloat64("similarity-threshold")
	}
	if flags.Changed("time-window") {
		opts.TimeWindow, _ = flags.GetFloat64("time-window")
	}
	if flags.Changed("aggressive-dedupe") {
		aggressive, _ := flags.GetBool("aggressive-dedupe")
		opts.Mode = search.ModeStrict
		if aggressive {
			opts.Mode = search.ModeAggressive
		}
	}
	if flags.Changed("workers") {
		opts.Workers, _ = flags.GetInt("workers")
	}

	if opts.Workers < 0 {
		return opts, fmt.Errorf("workers must not be negative, got %d", opts.Workers)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func resolveOutputSettings(cmd *cobra.Command, c *config.Config) outputSettings {
	if c == nil {
		c = config.Default()
	}

	out := outputSettings{
		dir:   c.Output.Dir,
		save:  *c.Output.Save,
		quiet: c.Output.Quiet,
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		out.dir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("no-save") {
		noSave, _ := flags.GetBool("no-save")
		out.save = !noSave
	}
	if flags.Changed("quiet") {
		out.quiet, _ = flags.GetBool("quiet")
	}
	return out
}

// turns the -d / -f flags into the list of files to search; with neither
// set, the current directory is searched
func resolveInputFiles(
	log *logging.Logger,
	directory string,
	files []string,
) ([]string, error) {
	var paths []string

	switch {
	case len(files) > 0:
		for _, f := range files {
			if _, err := os.Stat(f); err != nil {
				log.Warnw("File does not exist", "file", f)
				continue
			}
			if !subtitle.IsSubtitleFile(f) {
				log.Warnw("Not a subtitle file", "file", f)
				continue
			}
			paths = append(paths, f)
		}
	default:
		if directory == "" {
			directory = "."
		}
		info, err := os.Stat(directory)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("directory %q does not exist", directory)
		}
		found, err := subtitle.FindFiles(directory)
		if err != nil {
			return nil, err
		}
		paths = found
	}

	if len(paths) == 0 {
		return nil, errNoSubtitleFiles
	}
	return paths, nil
}

// tables on a terminal, the plain layout everywhere else
func consoleStyle(w io.Writer) report.Style {
	f, ok := w.(*os.File)
	if !ok {
		return report.StylePlain
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return report.StyleTable
	}
	return report.StylePlain
}
