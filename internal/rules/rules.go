// Package rules applies the final product-policy transformations to the
// deduplicated record set, in a fixed order.
package rules

import (
	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
)

// Stats counts what each rule did. Every drop and mutation is attributable
// to a named rule.
type Stats struct {
	TotalIn                int `json:"total_in"`
	Kept                   int `json:"kept"`
	PriceDefaults          int `json:"price_defaults"`
	UnratedReplacements    int `json:"unrated_replacements"`
	MissingProvenanceDrops int `json:"missing_provenance_drops"`
}

// Engine applies the business rules.
type Engine struct {
	logger logger.Interface
}

// New creates a new rule engine.
func New(log logger.Interface) *Engine {
	return &Engine{logger: log.WithComponent("rules")}
}

// Apply runs the rules in order:
//
//  1. Records missing either price field get 0.0 filled in for the missing
//     one: unknown price is treated as free. An explicit, documented lossy
//     choice.
//  2. Records with no reviews (null or zero review_count) have their rating
//     replaced with the "Not yet rated" sentinel, regardless of any numeric
//     score already present.
//  3. Records missing BOTH developer and publisher are dropped.
func (e *Engine) Apply(records []domain.Record) ([]domain.Record, Stats) {
	stats := Stats{TotalIn: len(records)}
	out := make([]domain.Record, 0, len(records))

	for _, record := range records {
		if record.DiscountedPrice == nil || record.OriginalPrice == nil {
			if record.DiscountedPrice == nil {
				zero := 0.0
				record.DiscountedPrice = &zero
			}
			if record.OriginalPrice == nil {
				zero := 0.0
				record.OriginalPrice = &zero
			}
			stats.PriceDefaults++
		}

		if record.ReviewCount == nil || *record.ReviewCount == 0 {
			record.Rating = domain.UnratedRating()
			stats.UnratedReplacements++
		}

		if record.Developer == "" && record.Publisher == "" {
			stats.MissingProvenanceDrops++
			continue
		}

		out = append(out, record)
	}

	stats.Kept = len(out)
	e.logger.Info("Applied business rules",
		"total_in", stats.TotalIn,
		"kept", stats.Kept,
		"price_defaults", stats.PriceDefaults,
		"unrated_replacements", stats.UnratedReplacements,
		"missing_provenance_drops", stats.MissingProvenanceDrops,
	)
	return out, stats
}
