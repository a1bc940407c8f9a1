// Package report renders search matches for people: grouped by file on the
// console, optionally as tables, and as a plain-text results file.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mgpai22/subsearch/internal/search"
)

// console layout
type Style int

const (
	StylePlain Style = iota
	StyleTable
)

var (
	unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separatorRuns   = regexp.MustCompile(`[-\s]+`)
)

// WriteConsole prints matches grouped by file.
func WriteConsole(
	w io.Writer,
	matches []search.Match,
	term string,
	style Style,
) error {
	var sb strings.Builder

	if len(matches) == 0 {
		fmt.Fprintf(&sb, "\nNo matches found for '%s'\n", term)
		_, err := io.WriteString(w, sb.String())
		return err
	}

	fmt.Fprintf(&sb, "\nFound %d matches for '%s':\n", len(matches), term)
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	for _, group := range groupByFile(matches) {
		fmt.Fprintf(&sb, "\nFile: %s\n", filepath.Base(group[0].FilePath))

		if style == StyleTable {
			sb.WriteString(renderTable(group))
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for _, m := range group {
			fmt.Fprintf(&sb, "  Subtitle #%d\n", m.CueIndex)
			fmt.Fprintf(&sb, "  Time: %s\n", m.Timestamp)
			fmt.Fprintf(&sb, "  Text: %s\n\n", m.Text)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderTable(group []search.Match) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Time", "Text"})
	for _, m := range group {
		tw.AppendRow(table.Row{strconv.Itoa(m.CueIndex), m.Timestamp, m.Text})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, WidthMax: 80},
	})
	return tw.Render()
}

// Render produces the results-file body.
func Render(matches []search.Match, term string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Search Results for '%s'\n", term)
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Total matches found: %d\n\n", len(matches))

	if len(matches) == 0 {
		sb.WriteString("No matches found.\n")
		return sb.String()
	}

	for _, group := range groupByFile(matches) {
		fmt.Fprintf(&sb, "File: %s\n", filepath.Base(group[0].FilePath))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for _, m := range group {
			fmt.Fprintf(&sb, "Subtitle #%d\n", m.CueIndex)
			fmt.Fprintf(&sb, "Time: %s\n", m.Timestamp)
			fmt.Fprintf(&sb, "Text: %s\n\n", m.Text)
		}
	}

	return sb.String()
}

// SaveToFile writes the report to outputDir/search_results_<term>.txt,
// creating the directory if needed, and returns the file path.
func SaveToFile(
	matches []search.Match,
	term string,
	outputDir string,
) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputFile := filepath.Join(
		outputDir,
		fmt.Sprintf("search_results_%s.txt", SafeFileName(term)),
	)
	if err := os.WriteFile(outputFile, []byte(Render(matches, term)), 0644); err != nil {
		return "", fmt.Errorf("failed to write results file: %w", err)
	}
	return outputFile, nil
}

// SafeFileName strips everything but word characters, whitespace and dashes,
// then collapses whitespace/dash runs into single underscores.
func SafeFileName(term string) string {
	name := strings.TrimSpace(unsafeFileChars.ReplaceAllString(term, ""))
	return separatorRuns.ReplaceAllString(name, "_")
}

// consecutive runs of the same file; matches arrive grouped from search
func groupByFile(matches []search.Match) [][]search.Match {
	var groups [][]search.Match
	for i, m := range matches {
		if i == 0 || m.FilePath != matches[i-1].FilePath {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], m)
	}
	return groups
}
