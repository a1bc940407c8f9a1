package cli

import (
	"github.com/mgpai22/subsearch/internal/config"
	"github.com/mgpai22/subsearch/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subsearch [search_term]",
	Short: "Search SRT and VTT subtitle files for text",
	Long: `Subsearch looks for a term in SRT and WebVTT subtitle files and prints
every cue that contains it, grouped by file with its timestamp.

Auto-generated captions (for example YouTube VTT files) repeat the same line
across several rolling cues; near-duplicate matches are removed by default.

Run without a search term to start an interactive session.

Examples:
  subsearch "hello world"
  subsearch "error" -d ./subtitles
  subsearch "meeting" -f video1.srt,video2.vtt
  subsearch "python" --aggressive-dedupe --time-window 10
  subsearch "error" -d . -o ./output --quiet`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, err := config.LoadOptional(
			configPath,
			cmd.Flags().Changed("config"),
		)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
	RunE: runSearch,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", config.DefaultPath, "Path to a YAML config file")
}
