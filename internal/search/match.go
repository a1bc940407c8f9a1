package search

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/mgpai22/subsearch/internal/logging"
	"github.com/mgpai22/subsearch/internal/subtitle"
)

// cue that contains the search term, tagged with its source file
type Match struct {
	FilePath  string
	Timestamp string
	CueIndex  int
	Text      string
}

// FindMatches scans every file in order and returns the cues whose text
// contains term. Files that cannot be parsed are logged and skipped.
func FindMatches(
	log *logging.Logger,
	paths []string,
	term string,
	caseSensitive bool,
) []Match {
	needle := term
	if !caseSensitive {
		needle = strings.ToLower(term)
	}

	var matches []Match
	for _, path := range paths {
		log.Infow("Searching file", "file", filepath.Base(path))

		sub, err := subtitle.Open(path)
		if err != nil {
			logOpenError(log, path, err)
			continue
		}

		log.Debugw("Parsed subtitle file",
			"file", path,
			"format", sub.Format,
			"encoding", sub.Encoding,
			"cues", len(sub.Cues),
		)

		for _, cue := range sub.Cues {
			haystack := cue.Text
			if !caseSensitive {
				haystack = strings.ToLower(haystack)
			}
			if !strings.Contains(haystack, needle) {
				continue
			}
			matches = append(matches, Match{
				FilePath:  path,
				Timestamp: cue.TimeRange,
				CueIndex:  cue.Index,
				Text:      cue.Text,
			})
		}
	}

	return matches
}

func logOpenError(log *logging.Logger, path string, err error) {
	if errors.Is(err, subtitle.ErrUnsupportedFormat) {
		log.Warnw("Unsupported file format",
			"file", path,
			"extension", filepath.Ext(path),
		)
		return
	}
	log.Warnw("Could not read file",
		"file", path,
		"error", err,
	)
}
