// Package dedup collapses records that represent the same game across
// sources into a single representative per title.
package dedup

import (
	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
)

// numericRatingBonus is added to the quality score when the rating is a
// real numeric score rather than a placeholder.
const numericRatingBonus = 2

// Stats tracks what the resolver did to the merged set.
type Stats struct {
	TotalIn        int `json:"total_in"`
	Kept           int `json:"kept"`
	DuplicateDrops int `json:"duplicate_drops"`
	Groups         int `json:"groups"`
}

// Resolver performs cross-source deduplication by normalized title.
type Resolver struct {
	logger logger.Interface
}

// New creates a new resolver.
func New(log logger.Interface) *Resolver {
	return &Resolver{logger: log.WithComponent("dedup")}
}

// Resolve groups records by their normalized title key and keeps exactly one
// representative per group: the record with the highest quality score, ties
// broken by higher numeric rating, then by first encounter in merge order.
// The winner's fields are kept unmodified; no field-level merging happens
// across duplicates. Idempotent: resolving an already-resolved set changes
// nothing.
//
// Two different games sharing an identical normalized title collapse into
// one. That is a known, accepted lossy behavior of title-keyed matching.
func (r *Resolver) Resolve(records []domain.Record) ([]domain.Record, Stats) {
	stats := Stats{TotalIn: len(records)}

	type winner struct {
		record domain.Record
		score  int
		order  int
	}

	winners := make(map[string]*winner, len(records))
	keyOrder := make([]string, 0, len(records))

	for i, record := range records {
		key := domain.TitleKey(record.GameTitle)
		score := QualityScore(record)

		current, seen := winners[key]
		if !seen {
			winners[key] = &winner{record: record, score: score, order: i}
			keyOrder = append(keyOrder, key)
			continue
		}

		if beats(record, score, current.record, current.score) {
			current.record = record
			current.score = score
		}
	}

	out := make([]domain.Record, 0, len(keyOrder))
	for _, key := range keyOrder {
		out = append(out, winners[key].record)
	}

	stats.Kept = len(out)
	stats.Groups = len(keyOrder)
	stats.DuplicateDrops = stats.TotalIn - stats.Kept

	r.logger.Info("Resolved duplicates",
		"total_in", stats.TotalIn,
		"kept", stats.Kept,
		"duplicate_drops", stats.DuplicateDrops,
	)
	return out, stats
}

// beats reports whether the challenger replaces the incumbent. The incumbent
// wins all remaining ties because it was encountered first.
func beats(challenger domain.Record, challengerScore int, incumbent domain.Record, incumbentScore int) bool {
	if challengerScore != incumbentScore {
		return challengerScore > incumbentScore
	}

	challengerRating, challengerOK := challenger.Rating.Score()
	incumbentRating, incumbentOK := incumbent.Rating.Score()
	switch {
	case challengerOK && incumbentOK:
		return challengerRating > incumbentRating
	case challengerOK:
		return true
	default:
		return false
	}
}

// QualityScore counts the populated canonical fields among rating,
// release_date, developer, publisher, genres, and description, with a
// two-point bonus for a numeric rating.
func QualityScore(record domain.Record) int {
	score := 0
	if record.Rating.Kind() != domain.RatingMissing {
		score++
	}
	if record.ReleaseDate != "" {
		score++
	}
	if record.Developer != "" {
		score++
	}
	if record.Publisher != "" {
		score++
	}
	if record.Genres != "" {
		score++
	}
	if record.Description != "" {
		score++
	}
	if record.Rating.IsNumeric() {
		score += numericRatingBonus
	}
	return score
}
