package subtitle

import (
	"errors"
	"fmt"
)

// represents single caption unit as it appears in the source file
type Cue struct {
	Index     int    // format-local numbering, not unique across files
	TimeRange string // "HH:MM:SS,mmm --> HH:MM:SS,mmm"
	Text      string
}

// represents a parsed subtitle file
type Subtitle struct {
	Path     string
	Format   Format
	Encoding Encoding
	Cues     []Cue
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// character encoding a file was decoded with
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin-1"
)

// returned by Open for anything that is not .srt or .vtt
var ErrUnsupportedFormat = errors.New("unsupported subtitle format")

// file could not be read in any supported encoding
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("could not read file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
