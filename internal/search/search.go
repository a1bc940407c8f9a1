package search

import (
	"fmt"

	"github.com/mgpai22/subsearch/internal/logging"
)

const (
	DefaultSimilarityThreshold = 0.8
	DefaultTimeWindow          = 30.0
)

// search options
type Options struct {
	CaseSensitive bool
	Dedupe        bool
	DedupeOptions
}

// case-insensitive, deduplicated in strict mode
func DefaultOptions() Options {
	return Options{
		Dedupe: true,
		DedupeOptions: DedupeOptions{
			SimilarityThreshold: DefaultSimilarityThreshold,
			TimeWindow:          DefaultTimeWindow,
			Mode:                ModeStrict,
		},
	}
}

func (o Options) Validate() error {
	if o.SimilarityThreshold < 0 || o.SimilarityThreshold > 1 {
		return fmt.Errorf(
			"similarity threshold must be between 0 and 1, got %g",
			o.SimilarityThreshold,
		)
	}
	if o.TimeWindow < 0 {
		return fmt.Errorf("time window must not be negative, got %g", o.TimeWindow)
	}
	return nil
}

// Search finds term in the given subtitle files and, when enabled, removes
// near-duplicate matches. Per-file failures are logged, never returned.
func Search(
	log *logging.Logger,
	paths []string,
	term string,
	opts Options,
) ([]Match, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNop()
	}

	matches := FindMatches(log, paths, term, opts.CaseSensitive)
	if !opts.Dedupe {
		return matches, nil
	}

	originalCount := len(matches)
	matches = Deduplicate(matches, opts.DedupeOptions)
	if removed := originalCount - len(matches); removed > 0 {
		log.Infow("Removed duplicate/similar matches",
			"removed", removed,
			"mode", opts.Mode,
		)
	}

	return matches, nil
}
