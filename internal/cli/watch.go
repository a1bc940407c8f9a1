package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgpai22/subsearch/internal/report"
	"github.com/mgpai22/subsearch/internal/search"
	"github.com/mgpai22/subsearch/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [search_term]",
	Short: "Search subtitle files as they appear in a directory",
	Long: `Watch a directory and search every SRT or VTT file that is created or
rewritten in it. Results are printed as each file settles.

Stop with Ctrl+C.

Examples:
  subsearch watch "hello" -d ./downloads
  subsearch watch "error" --no-dedupe`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addSearchOptionFlags(watchCmd)
	watchCmd.Flags().
		StringP("directory", "d", ".", "Directory to watch")
}

func runWatch(cmd *cobra.Command, args []string) error {
	term := args[0]

	opts, err := resolveSearchOptions(cmd, cfg)
	if err != nil {
		return err
	}
	directory, _ := cmd.Flags().GetString("directory")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	style := consoleStyle(os.Stdout)
	w, err := watcher.New(directory, func(ctx context.Context, path string) {
		matches, err := search.Search(logger, []string{path}, term, opts)
		if err != nil {
			logger.Errorw("Search failed", "file", path, "error", err)
			return
		}
		if err := report.WriteConsole(os.Stdout, matches, term, style); err != nil {
			logger.Errorw("Failed to print results", "error", err)
		}
	}, logger, watcher.DefaultSettle)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
