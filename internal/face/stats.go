package face

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SessionStats aggregates one session's score list.
type SessionStats struct {
	Avg   int `json:"avg"`
	Peak  int `json:"peak"`
	Min   int `json:"min"`
	Calm  int `json:"calm"`  // frames scoring below the CALM ceiling
	High  int `json:"high"`  // frames scoring MODERATE ceiling or above
	Total int `json:"total"`
}

// DistributionBuckets is the histogram resolution: 10 equal-width buckets
// over [0,100), scores of 100 folding into the top bucket.
const DistributionBuckets = 10

// computeSessionStats aggregates the session score list. The second return
// is false when no frames have been analyzed.
func computeSessionStats(scores []int) (SessionStats, bool) {
	if len(scores) == 0 {
		return SessionStats{}, false
	}

	fs := make([]float64, len(scores))
	s := SessionStats{Peak: scores[0], Min: scores[0], Total: len(scores)}
	for i, score := range scores {
		fs[i] = float64(score)
		if score > s.Peak {
			s.Peak = score
		}
		if score < s.Min {
			s.Min = score
		}
		if score < calmCeiling {
			s.Calm++
		}
		if score >= moderateCeiling {
			s.High++
		}
	}
	s.Avg = int(math.Round(stat.Mean(fs, nil)))
	return s, true
}

// distribution buckets every session score into min(9, score/10). The
// bucket counts always sum to the session total.
func distribution(scores []int) [DistributionBuckets]int {
	var buckets [DistributionBuckets]int
	for _, score := range scores {
		idx := score / 10
		if idx >= DistributionBuckets {
			idx = DistributionBuckets - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx]++
	}
	return buckets
}
