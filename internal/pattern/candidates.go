package pattern

import (
	"sort"

	"github.com/routinely/routinely/internal/logger"
)

// SelectCandidates filters patterns by the occurrence and consistency
// thresholds and ranks them, most consistent first with occurrence
// count as the tiebreak. The sort is stable so equally ranked
// candidates keep their discovery order.
func SelectCandidates(patterns []Pattern, minOccurrences int, consistencyThreshold float64) []Candidate {
	var candidates []Candidate
	for _, p := range patterns {
		consistency := 0.0
		if p.TotalCount > 0 {
			consistency = float64(p.WindowCount) / float64(p.TotalCount)
		}

		if p.TotalCount >= minOccurrences && consistency >= consistencyThreshold {
			candidates = append(candidates, Candidate{
				EntityID:         p.EntityID,
				Action:           p.Action,
				TotalOccurrences: p.TotalCount,
				Window:           p.Window,
				WindowCount:      p.WindowCount,
				TimeRange:        p.TimeRange,
				Consistency:      consistency,
				LastSeen:         p.LastSeen,
			})
			continue
		}

		logger.Debug().
			Str("entity_id", p.EntityID).
			Str("action", p.Action).
			Int("total", p.TotalCount).
			Int("min_occurrences", minOccurrences).
			Float64("consistency", consistency).
			Float64("threshold", consistencyThreshold).
			Msg("Pattern below candidate thresholds")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Consistency != candidates[j].Consistency {
			return candidates[i].Consistency > candidates[j].Consistency
		}
		return candidates[i].TotalOccurrences > candidates[j].TotalOccurrences
	})

	return candidates
}
