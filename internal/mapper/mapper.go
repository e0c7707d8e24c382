// Package mapper translates each source's raw column names into the
// canonical schema's field names.
package mapper

import (
	"sort"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
)

// renameTables holds the per-source rename table: raw column name ->
// canonical field name. Unmapped columns pass through unchanged; missing
// columns are simply absent.
var renameTables = map[domain.Source]map[string]string{
	domain.SourceSteam: {
		"title":          domain.FieldGameTitle,
		"url":            domain.FieldGameURL,
		"rating_score":   domain.FieldRating,
		"review_summary": domain.FieldRating,
		"review_count":   domain.FieldReviewCount,
		"price":          domain.FieldDiscountedPrice,
		"original_price": domain.FieldOriginalPrice,
		"discount":       domain.FieldDiscountPercentage,
		"release":        domain.FieldReleaseDate,
		"developers":     domain.FieldDeveloper,
		"publishers":     domain.FieldPublisher,
		"platforms":      domain.FieldPlatform,
		"tags":           "user_tags",
	},
	domain.SourceGOG: {
		"title":      domain.FieldGameTitle,
		"url":        domain.FieldGameURL,
		"rating":     domain.FieldRating,
		"reviews":    domain.FieldReviewCount,
		"price":      domain.FieldDiscountedPrice,
		"base_price": domain.FieldOriginalPrice,
		"discount":   domain.FieldDiscountPercentage,
		"released":   domain.FieldReleaseDate,
		"developer":  domain.FieldDeveloper,
		"publisher":  domain.FieldPublisher,
		"platforms":  domain.FieldPlatform,
		"genre":      domain.FieldGenres,
		"features":   "game_features",
	},
	domain.SourceInstantGaming: {
		"title":               domain.FieldGameTitle,
		"url":                 domain.FieldGameURL,
		"ig_rating":           domain.FieldRating,
		"ig_review_count":     domain.FieldReviewCount,
		"current_price":       domain.FieldDiscountedPrice,
		"retail_price":        domain.FieldOriginalPrice,
		"discount_percentage": domain.FieldDiscountPercentage,
		"release_date":        domain.FieldReleaseDate,
		"genre":               domain.FieldGenres,
		"editions":            "editions",
	},
	domain.SourceRAWG: {
		"name":          domain.FieldGameTitle,
		"game_url":      domain.FieldGameURL,
		"rating":        domain.FieldRating,
		"ratings_count": domain.FieldReviewCount,
		"released":      domain.FieldReleaseDate,
		"genres":        domain.FieldGenres,
		"platforms":     domain.FieldPlatform,
		"developers":    domain.FieldDeveloper,
		"publishers":    domain.FieldPublisher,
	},
	domain.SourceMetacritic: {
		"title":        domain.FieldGameTitle,
		"url":          domain.FieldGameURL,
		"metascore":    domain.FieldRating,
		"review_count": domain.FieldReviewCount,
		"release_date": domain.FieldReleaseDate,
		"summary":      domain.FieldDescription,
		"platform":     domain.FieldPlatform,
		"developer":    domain.FieldDeveloper,
		"publisher":    domain.FieldPublisher,
	},
	domain.SourceHumble: {
		"title":         domain.FieldGameTitle,
		"url":           domain.FieldGameURL,
		"rating":        domain.FieldRating,
		"review_count":  domain.FieldReviewCount,
		"current_price": domain.FieldDiscountedPrice,
		"full_price":    domain.FieldOriginalPrice,
		"discount_pct":  domain.FieldDiscountPercentage,
		"release_date":  domain.FieldReleaseDate,
		"genres":        domain.FieldGenres,
		"platforms":     domain.FieldPlatform,
		"developer":     domain.FieldDeveloper,
		"publisher":     domain.FieldPublisher,
	},
	domain.SourceEpic: {
		"title":            domain.FieldGameTitle,
		"url":              domain.FieldGameURL,
		"rating":           domain.FieldRating,
		"review_count":     domain.FieldReviewCount,
		"current_price":    domain.FieldDiscountedPrice,
		"original_price":   domain.FieldOriginalPrice,
		"discount_percent": domain.FieldDiscountPercentage,
		"release_date":     domain.FieldReleaseDate,
		"genres":           domain.FieldGenres,
		"developer":        domain.FieldDeveloper,
		"publisher":        domain.FieldPublisher,
	},
}

// Map renames a raw record's keys into canonical field names for the given
// source. Unmapped keys pass through unchanged. When two raw columns map to
// the same canonical field (e.g. Steam's rating_score and review_summary),
// a directly-named canonical column wins, then renamed columns in sorted raw
// name order; a null never overwrites a non-null value.
func Map(source domain.Source, record domain.RawRecord) domain.RawRecord {
	table := renameTables[source]
	out := make(domain.RawRecord, len(record))

	for key, value := range record {
		if _, mapped := table[key]; !mapped {
			out[key] = value
		}
	}

	renamed := make([]string, 0, len(table))
	for key := range table {
		if _, present := record[key]; present {
			renamed = append(renamed, key)
		}
	}
	sort.Strings(renamed)

	for _, key := range renamed {
		canonical := table[key]
		if existing, present := out[canonical]; present && existing != nil {
			continue
		}
		out[canonical] = record[key]
	}
	return out
}

// Batch maps every record in a source batch.
func Batch(source domain.Source, records []domain.RawRecord) []domain.RawRecord {
	out := make([]domain.RawRecord, 0, len(records))
	for _, record := range records {
		out = append(out, Map(source, record))
	}
	return out
}
