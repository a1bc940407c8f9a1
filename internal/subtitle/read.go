package subtitle

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ReadFile reads path as UTF-8, falling back to Latin-1 when the bytes are
// not valid UTF-8. Line endings are normalized to "\n" and a leading BOM is
// dropped.
func ReadFile(path string) (string, Encoding, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", "", &ReadError{Path: path, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", &ReadError{Path: path, Err: err}
	}

	content, encoding, err := Decode(data)
	if err != nil {
		return "", "", &ReadError{Path: path, Err: err}
	}
	return content, encoding, nil
}

// Decode converts raw subtitle bytes to text using the UTF-8 then Latin-1
// strategy.
func Decode(data []byte) (string, Encoding, error) {
	var (
		content  string
		encoding Encoding
	)

	if utf8.Valid(data) {
		content = string(data)
		encoding = EncodingUTF8
	} else {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", "", fmt.Errorf("latin-1 decode: %w", err)
		}
		content = string(decoded)
		encoding = EncodingLatin1
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = newlineNormalizer.Replace(content)
	return content, encoding, nil
}
