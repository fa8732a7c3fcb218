package pattern

import (
	"time"

	"github.com/routinely/routinely/internal/logger"
)

// AnalyzePatterns finds the dominant time bucket for every group with
// at least two dated occurrences. Occurrences without a timestamp are
// dropped; groups left with fewer than two are skipped because a
// single event establishes no pattern. When two buckets hold the same
// number of occurrences the one seen first in input order wins.
func AnalyzePatterns(groups *ActionGroups, windowMinutes int) []Pattern {
	if windowMinutes <= 0 {
		windowMinutes = DefaultWindowMinutes
	}

	var patterns []Pattern
	for _, g := range groups.Groups() {
		valid := make([]time.Time, 0, len(g.Times))
		for _, ts := range g.Times {
			if ts != nil {
				valid = append(valid, *ts)
			}
		}
		if len(valid) < 2 {
			continue
		}

		byWindow := make(map[string][]time.Time)
		var windowOrder []string
		hours := make([]int, 0, len(valid))
		for _, ts := range valid {
			w := TimeWindow(ts, windowMinutes)
			if _, seen := byWindow[w]; !seen {
				windowOrder = append(windowOrder, w)
			}
			byWindow[w] = append(byWindow[w], ts)
			hours = append(hours, ts.Hour())
		}

		dominant := windowOrder[0]
		for _, w := range windowOrder[1:] {
			if len(byWindow[w]) > len(byWindow[dominant]) {
				dominant = w
			}
		}

		last := valid[0]
		for _, ts := range valid[1:] {
			if ts.After(last) {
				last = ts
			}
		}

		patterns = append(patterns, Pattern{
			EntityID:    g.EntityID,
			Action:      g.Action,
			TotalCount:  len(valid),
			Window:      dominant,
			WindowCount: len(byWindow[dominant]),
			Hours:       hours,
			TimeRange:   FormatTimeRange(hours),
			LastSeen:    last,
			InWindow:    byWindow[dominant],
		})
	}
	return patterns
}

// Options bundles the tunables for a full analysis pass. Zero values
// fall back to the package defaults.
type Options struct {
	TrackedDomains       []string
	MinOccurrences       int
	ConsistencyThreshold float64
	WindowMinutes        int
	Filters              Filters

	// Dismissed suggestion ids are removed from the result as the
	// very last step, after every suggestion is fully built, so a
	// dismissal never shifts the statistics behind other suggestions.
	Dismissed map[string]bool
}

// Analyze runs the whole suggestion pipeline over raw log entries:
// domain filtering, manual-action classification, action extraction,
// grouping, pattern mining, candidate selection and suggestion
// building.
func Analyze(entries []LogEntry, opts Options) []Suggestion {
	if opts.WindowMinutes <= 0 {
		opts.WindowMinutes = DefaultWindowMinutes
	}
	if opts.MinOccurrences <= 0 {
		opts.MinOccurrences = DefaultMinOccurrences
	}
	if opts.ConsistencyThreshold <= 0 {
		opts.ConsistencyThreshold = DefaultConsistencyThreshold
	}
	if len(opts.TrackedDomains) == 0 {
		opts.TrackedDomains = TrackedDomains()
	}

	groups := CollectManualActions(entries, opts.TrackedDomains, opts.Filters)
	patterns := AnalyzePatterns(groups, opts.WindowMinutes)
	candidates := SelectCandidates(patterns, opts.MinOccurrences, opts.ConsistencyThreshold)
	suggestions := BuildSuggestions(candidates, opts.WindowMinutes)

	logger.Info().
		Int("entries", len(entries)).
		Int("groups", groups.Len()).
		Int("patterns", len(patterns)).
		Int("suggestions", len(suggestions)).
		Msg("Pattern analysis complete")

	if len(opts.Dismissed) == 0 {
		return suggestions
	}
	kept := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if !opts.Dismissed[s.ID] {
			kept = append(kept, s)
		}
	}
	return kept
}
