package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mgpai22/subsearch/internal/logging"
	"github.com/mgpai22/subsearch/internal/report"
	"github.com/mgpai22/subsearch/internal/search"
	"github.com/mgpai22/subsearch/internal/subtitle"
)

const minInteractiveTimeWindow = 1.0

var errInvalidNumber = errors.New("invalid number")

// reads answers line by line; a closed input answers every question with ""
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) ask(question string) string {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

func (p *prompter) confirm(question string) bool {
	return strings.HasPrefix(strings.ToLower(p.ask(question)), "y")
}

func (p *prompter) println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// runInteractive walks the user through a single search
func runInteractive(log *logging.Logger, in io.Reader, out io.Writer) error {
	p := newPrompter(in, out)

	p.println("Subtitle Search Tool (SRT & VTT)")
	p.println(strings.Repeat("=", 35))

	term := p.ask("Enter search term: ")
	if term == "" {
		return errors.New("search term cannot be empty")
	}

	opts := search.DefaultOptions()
	opts.CaseSensitive = p.confirm("Case sensitive search? (y/n): ")
	opts.Dedupe = p.confirm(
		"Remove duplicate/similar results? (recommended for YouTube VTT files) (y/n): ",
	)
	if opts.Dedupe && p.confirm("Configure advanced deduplication options? (y/n): ") {
		opts.DedupeOptions = askDedupeOptions(p)
	}

	paths, err := askInputFiles(p)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nFound %d subtitle file(s) to search\n", len(paths))
	srtCount, vttCount := subtitle.CountByFormat(paths)
	if srtCount > 0 {
		fmt.Fprintf(out, "  - %d SRT file(s)\n", srtCount)
	}
	if vttCount > 0 {
		fmt.Fprintf(out, "  - %d VTT file(s)\n", vttCount)
	}

	matches, err := search.Search(log, paths, term, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if err := report.WriteConsole(out, matches, term, consoleStyle(out)); err != nil {
		return err
	}

	if len(matches) == 0 || !p.confirm("\nSave results to file? (y/n): ") {
		return nil
	}

	outputDir := p.ask("Enter output directory (press Enter for current directory): ")
	if outputDir == "" {
		outputDir = "."
	}

	outputFile, err := report.SaveToFile(matches, term, outputDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Results saved to: %s\n", outputFile)

	return nil
}

// any unparsable answer abandons the advanced settings and keeps the defaults
func askDedupeOptions(p *prompter) search.DedupeOptions {
	defaults := search.DefaultOptions().DedupeOptions
	opts := defaults

	threshold, err := askFloat(
		p,
		fmt.Sprintf("Text similarity threshold (0.0-1.0, default %g): ", opts.SimilarityThreshold),
	)
	if err != nil {
		p.println("Invalid input, using default values")
		return defaults
	}
	if threshold != nil {
		opts.SimilarityThreshold = math.Max(0, math.Min(1, *threshold))
	}

	window, err := askFloat(
		p,
		fmt.Sprintf("Time window in seconds (default %g): ", opts.TimeWindow),
	)
	if err != nil {
		p.println("Invalid input, using default values")
		return defaults
	}
	if window != nil {
		opts.TimeWindow = math.Max(minInteractiveTimeWindow, *window)
	}

	strict := strings.ToLower(
		p.ask("Use strict deduplication mode? (safer, keeps more results) (y/n): "),
	)
	if strings.HasPrefix(strict, "n") {
		opts.Mode = search.ModeAggressive
	}

	return opts
}

// nil means the user kept the default
func askFloat(p *prompter, question string) (*float64, error) {
	answer := p.ask(question)
	if answer == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(answer, 64)
	if err != nil || math.IsNaN(v) {
		return nil, errInvalidNumber
	}
	return &v, nil
}

func askInputFiles(p *prompter) ([]string, error) {
	choice := p.ask("\nSearch in:\n1. Current directory\n2. Specific directory\n3. Specific files\nChoice (1-3): ")

	var paths []string
	switch choice {
	case "1":
		found, err := subtitle.FindFiles(".")
		if err != nil {
			return nil, err
		}
		paths = found
	case "2":
		directory := p.ask("Enter directory path: ")
		info, err := os.Stat(directory)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("invalid directory path: %q", directory)
		}
		found, err := subtitle.FindFiles(directory)
		if err != nil {
			return nil, err
		}
		paths = found
	case "3":
		answer := p.ask("Enter subtitle file paths (comma-separated): ")
		for _, path := range strings.Split(answer, ",") {
			path = strings.TrimSpace(path)
			info, err := os.Stat(path)
			if err != nil || info.IsDir() || !subtitle.IsSubtitleFile(path) {
				continue
			}
			paths = append(paths, path)
		}
	default:
		return nil, fmt.Errorf("invalid choice %q", choice)
	}

	if len(paths) == 0 {
		return nil, errNoSubtitleFiles
	}
	return paths, nil
}
