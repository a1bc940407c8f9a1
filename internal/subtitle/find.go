package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindFiles lists the .srt and .vtt files directly inside dir, sorted by
// name. Subdirectories are not descended into.
func FindFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsSubtitleFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// number of SRT and VTT paths in the list
func CountByFormat(paths []string) (srt, vtt int) {
	for _, path := range paths {
		format, ok := FormatFromPath(path)
		if !ok {
			continue
		}
		switch format {
		case FormatSRT:
			srt++
		case FormatVTT:
			vtt++
		}
	}
	return srt, vtt
}
