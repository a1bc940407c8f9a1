package subtitle

import (
	"regexp"
	"strconv"
	"strings"
)

var srtBlockSeparator = regexp.MustCompile(`\n\s*\n`)

func parseSRTFile(path string) (*Subtitle, error) {
	content, encoding, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Subtitle{
		Path:     path,
		Format:   FormatSRT,
		Encoding: encoding,
		Cues:     ParseSRT(content),
	}, nil
}

// ParseSRT splits content into blank-line separated blocks and returns one
// cue per well-formed block. Blocks with fewer than three lines or a
// non-numeric index are skipped.
func ParseSRT(content string) []Cue {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var cues []Cue
	for _, block := range srtBlockSeparator.Split(content, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			continue
		}

		cues = append(cues, Cue{
			Index:     index,
			TimeRange: strings.TrimSpace(lines[1]),
			Text:      strings.TrimSpace(strings.Join(lines[2:], "\n")),
		})
	}

	return cues
}
