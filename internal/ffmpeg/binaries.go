package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// overrides the PATH lookup
const PathEnv = "SUBSEARCH_FFMPEG_PATH"

var ErrNotFound = errors.New("ffmpeg not found: install it or set " + PathEnv)

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath string
)

// FFmpegPath resolves the ffmpeg binary once per process.
func FFmpegPath() (string, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = resolve(os.Getenv(PathEnv), exec.LookPath)
	})
	return ensurePath, ensureErr
}

func resolve(
	override string,
	lookPath func(string) (string, error),
) (string, error) {
	if override != "" {
		if !fileExists(override) {
			return "", fmt.Errorf("%s points to missing file: %s", PathEnv, override)
		}
		return override, nil
	}

	found, err := lookPath("ffmpeg")
	if err != nil {
		return "", ErrNotFound
	}
	return found, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
