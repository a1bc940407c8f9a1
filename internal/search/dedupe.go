package search

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// overlap window used by strict mode independently of TimeWindow
const (
	closeTimeSeconds       = 2.0
	closeTimeMinSimilarity = 0.5
)

// how the similarity and time tests combine
type DedupeMode int

const (
	// duplicate only when similar within the window, or moderately
	// similar and nearly simultaneous
	ModeStrict DedupeMode = iota
	// duplicate when either similar or within the window
	ModeAggressive
)

func (m DedupeMode) String() string {
	if m == ModeAggressive {
		return "aggressive"
	}
	return "strict"
}

type DedupeOptions struct {
	SimilarityThreshold float64
	TimeWindow          float64 // seconds
	Mode                DedupeMode
	Workers             int // file groups processed in parallel (<=1 sequential)
}

type dedupeCandidate struct {
	match Match
	start float64
	words map[string]struct{}
}

// Deduplicate drops matches that look like re-renderings of an earlier
// match from the same file. Within a file the survivors are ordered by start
// time; files keep the order in which they first appear in matches.
func Deduplicate(matches []Match, opts DedupeOptions) []Match {
	if len(matches) == 0 {
		return matches
	}

	groups := groupByFile(matches)
	retained := make([][]Match, len(groups))

	workers := opts.Workers
	if workers <= 1 || len(groups) == 1 {
		for i, group := range groups {
			retained[i] = dedupeGroup(group, opts)
		}
	} else {
		workChan := make(chan int)
		var wg sync.WaitGroup
		for i := 0; i < workers && i < len(groups); i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for groupIdx := range workChan {
					retained[groupIdx] = dedupeGroup(groups[groupIdx], opts)
				}
			}()
		}
		for i := range groups {
			workChan <- i
		}
		close(workChan)
		wg.Wait()
	}

	out := make([]Match, 0, len(matches))
	for _, group := range retained {
		out = append(out, group...)
	}
	return out
}

func groupByFile(matches []Match) [][]Match {
	order := make(map[string]int)
	var groups [][]Match
	for _, m := range matches {
		idx, ok := order[m.FilePath]
		if !ok {
			idx = len(groups)
			order[m.FilePath] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], m)
	}
	return groups
}

func dedupeGroup(group []Match, opts DedupeOptions) []Match {
	candidates := make([]dedupeCandidate, len(group))
	for i, m := range group {
		candidates[i] = dedupeCandidate{
			match: m,
			start: ParseStartSeconds(m.Timestamp),
			words: wordSet(m.Text),
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].start < candidates[j].start
	})

	var kept []dedupeCandidate
	for _, current := range candidates {
		duplicate := false
		for _, existing := range kept {
			similarity := jaccard(current.words, existing.words)
			timeDiff := math.Abs(current.start - existing.start)
			if isDuplicate(similarity, timeDiff, opts) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, current)
		}
	}

	out := make([]Match, len(kept))
	for i, c := range kept {
		out[i] = c.match
	}
	return out
}

func isDuplicate(similarity, timeDiff float64, opts DedupeOptions) bool {
	if opts.Mode == ModeAggressive {
		return similarity >= opts.SimilarityThreshold ||
			timeDiff <= opts.TimeWindow
	}
	return (similarity >= opts.SimilarityThreshold &&
		timeDiff <= opts.TimeWindow) ||
		(timeDiff <= closeTimeSeconds && similarity >= closeTimeMinSimilarity)
}

// TextSimilarity is the Jaccard index of the lower-cased word sets of a
// and b. Two empty texts are identical; one empty text shares nothing.
func TextSimilarity(a, b string) float64 {
	return jaccard(wordSet(a), wordSet(b))
}

func wordSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// ParseStartSeconds converts the start of "HH:MM:SS,mmm --> ..." to seconds.
// Anything unparseable yields 0.
func ParseStartSeconds(timestamp string) float64 {
	start, _, _ := strings.Cut(timestamp, "-->")
	start = strings.ReplaceAll(strings.TrimSpace(start), ",", ".")

	parts := strings.Split(start, ":")
	if len(parts) != 3 {
		return 0
	}

	var total float64
	for i, multiplier := range []float64{3600, 60, 1} {
		value, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return 0
		}
		total += value * multiplier
	}
	return total
}
