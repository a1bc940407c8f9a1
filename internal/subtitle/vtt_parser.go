package subtitle

import (
	"regexp"
	"strings"
)

var (
	vttCueSettings = regexp.MustCompile(`\s+(align|position|size|line):\S+`)
	vttMarkupTag   = regexp.MustCompile(`<[^>]*>`)
	vttBraceBlock  = regexp.MustCompile(`\{[^}]*\}`)
	vttNamedEntity = regexp.MustCompile(`&[a-zA-Z]+;`)
)

var vttHeaderPrefixes = []string{"WEBVTT", "NOTE", "Kind:", "Language:"}

func parseVTTFile(path string) (*Subtitle, error) {
	content, encoding, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Subtitle{
		Path:     path,
		Format:   FormatVTT,
		Encoding: encoding,
		Cues:     ParseVTT(content),
	}, nil
}

// ParseVTT extracts cues from WebVTT content. Cues are numbered 1..N in
// order of their timing lines regardless of any identifiers in the file,
// and a cue whose text is empty after markup removal is dropped (its number
// is still consumed).
func ParseVTT(content string) []Cue {
	lines := strings.Split(strings.TrimSpace(content), "\n")

	i := 0
	for i < len(lines) && isVTTHeaderLine(lines[i]) {
		i++
	}

	var cues []Cue
	index := 0
	for i < len(lines) {
		if !strings.Contains(lines[i], "-->") {
			i++
			continue
		}

		index++
		timeRange := normalizeVTTTimeRange(lines[i])
		i++

		var textLines []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			if text := cleanVTTText(lines[i]); text != "" {
				textLines = append(textLines, text)
			}
			i++
		}

		if len(textLines) == 0 {
			continue
		}
		cues = append(cues, Cue{
			Index:     index,
			TimeRange: timeRange,
			Text:      strings.Join(textLines, "\n"),
		})
	}

	return cues
}

func isVTTHeaderLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	for _, prefix := range vttHeaderPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// drops cue settings and switches millisecond dots to SRT commas
func normalizeVTTTimeRange(line string) string {
	line = vttCueSettings.ReplaceAllString(strings.TrimSpace(line), "")
	return strings.ReplaceAll(line, ".", ",")
}

func cleanVTTText(line string) string {
	line = strings.TrimSpace(line)
	line = vttMarkupTag.ReplaceAllString(line, "")
	line = vttBraceBlock.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "&nbsp;", " ")
	line = vttNamedEntity.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}
