package dedup

import (
	"github.com/antzucaro/matchr"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
)

// DefaultSimilarityThreshold is the Jaro-Winkler similarity above which two
// surviving titles are flagged as likely variants of the same game.
const DefaultSimilarityThreshold = 0.95

// NearDuplicate is a pair of surviving titles that are suspiciously similar
// after exact-key deduplication. Advisory only: the resolver never merges
// them, it reports them for catalog review.
type NearDuplicate struct {
	LeftTitle  string  `json:"left_title"`
	RightTitle string  `json:"right_title"`
	Similarity float64 `json:"similarity"`
}

// Audit compares every pair of surviving titles with Jaro-Winkler and
// returns the pairs at or above the threshold, in encounter order.
func (r *Resolver) Audit(records []domain.Record, threshold float64) []NearDuplicate {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	keys := make([]string, len(records))
	for i, record := range records {
		keys[i] = domain.TitleKey(record.GameTitle)
	}

	var pairs []NearDuplicate
	for i := range records {
		for j := i + 1; j < len(records); j++ {
			similarity := matchr.JaroWinkler(keys[i], keys[j], false)
			if similarity >= threshold {
				pairs = append(pairs, NearDuplicate{
					LeftTitle:  records[i].GameTitle,
					RightTitle: records[j].GameTitle,
					Similarity: similarity,
				})
			}
		}
	}

	if len(pairs) > 0 {
		r.logger.Warn("Near-duplicate titles survived deduplication",
			"pairs", len(pairs),
		)
	}
	return pairs
}
