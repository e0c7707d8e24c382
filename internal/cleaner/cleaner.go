// Package cleaner applies the field normalizers across a source's record
// batch and enforces the batch's structural invariants.
package cleaner

import (
	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
	"github.com/Bloodwingv2/gamecrawl/internal/normalize"
)

// Stats tracks what the cleaner did to a batch. Every dropped row is
// attributed to exactly one counter.
type Stats struct {
	TotalIn           int `json:"total_in"`
	Kept              int `json:"kept"`
	MissingTitleDrops int `json:"missing_title_drops"`
	DuplicateURLDrops int `json:"duplicate_url_drops"`
}

// Cleaner normalizes and validates per-source record batches.
type Cleaner struct {
	logger logger.Interface
}

// New creates a new cleaner.
func New(log logger.Interface) *Cleaner {
	return &Cleaner{logger: log.WithComponent("cleaner")}
}

// Clean normalizes every field of every record in a source batch, then
// drops records with no title and records repeating an earlier record's
// game_url (first occurrence wins, input order preserved). Normalizer
// failures never abort the batch; they resolve to null and validation
// decides the consequence.
func (c *Cleaner) Clean(source domain.Source, records []domain.RawRecord) ([]domain.RawRecord, Stats) {
	stats := Stats{TotalIn: len(records)}
	seenURLs := make(map[string]bool, len(records))
	out := make([]domain.RawRecord, 0, len(records))

	for _, record := range records {
		cleaned := c.cleanRecord(source, record)

		title := cleaned.String(domain.FieldGameTitle)
		if title == "" {
			stats.MissingTitleDrops++
			continue
		}

		url := cleaned.String(domain.FieldGameURL)
		if url != "" {
			if seenURLs[url] {
				stats.DuplicateURLDrops++
				continue
			}
			seenURLs[url] = true
		}

		out = append(out, cleaned)
	}

	stats.Kept = len(out)
	c.logger.WithSource(string(source)).Info("Cleaned source batch",
		"total_in", stats.TotalIn,
		"kept", stats.Kept,
		"missing_title_drops", stats.MissingTitleDrops,
		"duplicate_url_drops", stats.DuplicateURLDrops,
	)
	return out, stats
}

// cleanRecord normalizes one record field by field. Results are written back
// under canonical keys with nil as the null marker. Keys outside the
// canonical set are carried through untouched for the unifier to project.
func (c *Cleaner) cleanRecord(source domain.Source, record domain.RawRecord) domain.RawRecord {
	out := record.Clone()
	out[domain.FieldDataSource] = string(source)

	setText(out, domain.FieldGameTitle)
	setText(out, domain.FieldGameURL)
	setText(out, domain.FieldDeveloper)
	setText(out, domain.FieldPublisher)

	if !record.IsNull(domain.FieldDescription) {
		desc := normalize.Description(record.String(domain.FieldDescription), domain.DescriptionMaxLen)
		out[domain.FieldDescription] = nullable(desc)
	}

	if rating, ok := normalize.Rating(record.String(domain.FieldRating), source); ok {
		out[domain.FieldRating] = rating
	} else {
		out[domain.FieldRating] = nil
	}

	if count, ok := normalize.ReviewCount(record.String(domain.FieldReviewCount)); ok {
		out[domain.FieldReviewCount] = count
	} else {
		out[domain.FieldReviewCount] = nil
	}

	if date, ok := normalize.Date(record.String(domain.FieldReleaseDate)); ok {
		out[domain.FieldReleaseDate] = date
	} else {
		out[domain.FieldReleaseDate] = nil
	}

	out[domain.FieldGenres] = nullable(normalize.Genres(record.String(domain.FieldGenres)))
	out[domain.FieldPlatform] = nullable(normalize.Platform(record.String(domain.FieldPlatform)))

	c.cleanPrices(record, out)

	for _, extra := range domain.ExtraFields {
		if !record.IsNull(extra) {
			out[extra] = nullable(normalize.Text(record.String(extra)))
		}
	}
	return out
}

// cleanPrices normalizes the price columns and resolves the single final
// discounted price and discount percentage for the record.
func (c *Cleaner) cleanPrices(record, out domain.RawRecord) {
	original := parsePrice(record, domain.FieldOriginalPrice)
	discounted := parsePrice(record, domain.FieldDiscountedPrice)
	discountPct := parsePercentage(record, domain.FieldDiscountPercentage)

	resolved := normalize.ResolveDiscountedPrice(original, discounted, discountPct)
	if discountPct == nil {
		discountPct = normalize.RecomputeDiscountPercentage(original, resolved)
	}

	out[domain.FieldOriginalPrice] = nullableFloat(original)
	out[domain.FieldDiscountedPrice] = nullableFloat(resolved)
	out[domain.FieldDiscountPercentage] = nullableFloat(discountPct)
}

// parsePrice normalizes a price column into a float pointer, nil on failure.
func parsePrice(record domain.RawRecord, key string) *float64 {
	value, ok := normalize.Price(record.String(key))
	if !ok {
		return nil
	}
	return &value
}

// parsePercentage normalizes a percentage column, rejecting values outside
// [0,100].
func parsePercentage(record domain.RawRecord, key string) *float64 {
	value, ok := normalize.Price(record.String(key))
	if !ok || value < 0 || value > 100 {
		return nil
	}
	return &value
}

// setText cleans a plain text field in place.
func setText(out domain.RawRecord, key string) {
	out[key] = nullable(normalize.Text(out.String(key)))
}

// nullable maps the empty string to the null marker.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableFloat maps a nil pointer to the null marker.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
