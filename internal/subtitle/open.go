package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Open parses path with the parser matching its extension. Unsupported
// extensions yield ErrUnsupportedFormat and unreadable files a *ReadError;
// either way the caller gets no cues and may carry on with other files.
func Open(path string) (*Subtitle, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s",
			ErrUnsupportedFormat,
			filepath.Ext(path),
		)
	}

	switch format {
	case FormatSRT:
		return parseSRTFile(path)
	default:
		return parseVTTFile(path)
	}
}

// subtitle format based on file extension, case-insensitive
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return FormatSRT, true
	case ".vtt":
		return FormatVTT, true
	default:
		return "", false
	}
}

func IsSubtitleFile(path string) bool {
	_, ok := FormatFromPath(path)
	return ok
}
