// Package unify guarantees every record, regardless of source, exposes
// exactly the canonical field set, then converts the open maps into the
// strongly-typed canonical record.
package unify

import (
	"time"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
)

// Batch projects every record in a batch onto the canonical field set:
// missing canonical fields are filled with the null marker and fields
// outside the set are dropped, except the allow-listed extras which are
// preserved when present. Idempotent: re-applying to an already-unified
// batch is a no-op.
func Batch(records []domain.RawRecord) []domain.RawRecord {
	out := make([]domain.RawRecord, 0, len(records))
	for _, record := range records {
		out = append(out, unifyRecord(record))
	}
	return out
}

func unifyRecord(record domain.RawRecord) domain.RawRecord {
	unified := make(domain.RawRecord, len(domain.CanonicalFields)+len(domain.ExtraFields))
	for _, field := range domain.CanonicalFields {
		value, present := record[field]
		if !present {
			value = nil
		}
		unified[field] = value
	}
	for _, extra := range domain.ExtraFields {
		if value, present := record[extra]; present && value != nil {
			unified[extra] = value
		}
	}
	return unified
}

// Records converts a unified batch into canonical records. The release
// status is derived from the release date relative to now.
func Records(records []domain.RawRecord, now time.Time) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, record := range records {
		out = append(out, toRecord(record, now))
	}
	return out
}

func toRecord(raw domain.RawRecord, now time.Time) domain.Record {
	record := domain.Record{
		DataSource:         domain.Source(raw.String(domain.FieldDataSource)),
		GameTitle:          raw.String(domain.FieldGameTitle),
		ReleaseDate:        raw.String(domain.FieldReleaseDate),
		Rating:             toRating(raw),
		ReviewCount:        toIntPtr(raw, domain.FieldReviewCount),
		OriginalPrice:      toFloatPtr(raw, domain.FieldOriginalPrice),
		DiscountedPrice:    toFloatPtr(raw, domain.FieldDiscountedPrice),
		DiscountPercentage: toFloatPtr(raw, domain.FieldDiscountPercentage),
		Genres:             raw.String(domain.FieldGenres),
		Platform:           raw.String(domain.FieldPlatform),
		Developer:          raw.String(domain.FieldDeveloper),
		Publisher:          raw.String(domain.FieldPublisher),
		Description:        raw.String(domain.FieldDescription),
		GameURL:            raw.String(domain.FieldGameURL),
	}
	record.ReleaseStatus = domain.DeriveReleaseStatus(record.ReleaseDate, now)

	for _, extra := range domain.ExtraFields {
		if value := raw.String(extra); value != "" {
			if record.Extras == nil {
				record.Extras = make(map[string]string, len(domain.ExtraFields))
			}
			record.Extras[extra] = value
		}
	}
	return record
}

func toRating(raw domain.RawRecord) domain.Rating {
	if score, ok := raw.Float(domain.FieldRating); ok {
		return domain.NumericRating(score)
	}
	return domain.MissingRating()
}

func toFloatPtr(raw domain.RawRecord, key string) *float64 {
	if value, ok := raw.Float(key); ok {
		return &value
	}
	return nil
}

func toIntPtr(raw domain.RawRecord, key string) *int {
	value, ok := raw.Float(key)
	if !ok {
		return nil
	}
	count := int(value)
	return &count
}
