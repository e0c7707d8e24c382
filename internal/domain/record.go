package domain

import (
	"strings"
	"time"
)

// Canonical field names shared by the mapper, cleaner, unifier, and writers.
const (
	FieldDataSource         = "data_source"
	FieldGameTitle          = "game_title"
	FieldReleaseDate        = "release_date"
	FieldRating             = "rating"
	FieldReviewCount        = "review_count"
	FieldOriginalPrice      = "original_price"
	FieldDiscountedPrice    = "discounted_price"
	FieldDiscountPercentage = "discount_percentage"
	FieldGenres             = "genres"
	FieldPlatform           = "platform"
	FieldDeveloper          = "developer"
	FieldPublisher          = "publisher"
	FieldDescription        = "description"
	FieldGameURL            = "game_url"
	FieldReleaseStatus      = "release_status"
)

// CanonicalFields lists every canonical field in output column order.
var CanonicalFields = []string{
	FieldDataSource,
	FieldGameTitle,
	FieldReleaseDate,
	FieldRating,
	FieldReviewCount,
	FieldOriginalPrice,
	FieldDiscountedPrice,
	FieldDiscountPercentage,
	FieldGenres,
	FieldPlatform,
	FieldDeveloper,
	FieldPublisher,
	FieldDescription,
	FieldGameURL,
	FieldReleaseStatus,
}

// ExtraFields is the allow-list of non-canonical fields the unifier preserves
// when a source happens to provide them.
var ExtraFields = []string{"user_tags", "game_features", "editions"}

// ReleaseStatus describes whether a game has shipped.
type ReleaseStatus string

const (
	// StatusReleased means the release date is in the past.
	StatusReleased ReleaseStatus = "Released"
	// StatusUpcoming means the release date is in the future.
	StatusUpcoming ReleaseStatus = "Upcoming"
	// StatusUnknown means no release date is available.
	StatusUnknown ReleaseStatus = "Unknown"
)

// DeriveReleaseStatus infers a release status from an ISO-8601 release date
// ("" means unknown) relative to now.
func DeriveReleaseStatus(releaseDate string, now time.Time) ReleaseStatus {
	if releaseDate == "" {
		return StatusUnknown
	}
	parsed, parseErr := time.Parse("2006-01-02", releaseDate)
	if parseErr != nil {
		return StatusUnknown
	}
	if parsed.After(now) {
		return StatusUpcoming
	}
	return StatusReleased
}

// Record is the canonical, unified game entity produced by the pipeline.
// Optional scalars are pointers and optional text fields use "" as the null
// marker. Rating is a tagged union because the business-rule engine replaces
// missing-review ratings with a string sentinel.
type Record struct {
	// Provenance tag; immutable once assigned.
	DataSource Source `db:"data_source" json:"data_source"`
	// Primary human identifier; non-empty after validation.
	GameTitle string `db:"game_title" json:"game_title"`
	// ISO-8601 date (YYYY-MM-DD) or "".
	ReleaseDate string `db:"release_date" json:"release_date,omitempty"`
	// Normalized 0-100 score, unrated sentinel, or missing.
	Rating Rating `db:"-" json:"-"`
	// Number of user reviews behind the rating.
	ReviewCount *int `db:"review_count" json:"review_count,omitempty"`
	// Prices in the source's original currency unit.
	OriginalPrice   *float64 `db:"original_price" json:"original_price,omitempty"`
	DiscountedPrice *float64 `db:"discounted_price" json:"discounted_price,omitempty"`
	// Discount in [0,100].
	DiscountPercentage *float64 `db:"discount_percentage" json:"discount_percentage,omitempty"`
	// Comma-joined title-cased genre list.
	Genres string `db:"genres" json:"genres,omitempty"`
	// Canonicalized platform set (comma-joined).
	Platform string `db:"platform" json:"platform,omitempty"`
	Developer string `db:"developer" json:"developer,omitempty"`
	Publisher string `db:"publisher" json:"publisher,omitempty"`
	// Free text, truncated to DescriptionMaxLen.
	Description string `db:"description" json:"description,omitempty"`
	// Per-source URL; intra-source dedup key.
	GameURL string `db:"game_url" json:"game_url"`
	// Derived release status.
	ReleaseStatus ReleaseStatus `db:"release_status" json:"release_status"`
	// Allow-listed source extras preserved by the unifier.
	Extras map[string]string `db:"-" json:"extras,omitempty"`
}

// DescriptionMaxLen bounds the description field length.
const DescriptionMaxLen = 1000

// TitleKey returns the cross-source deduplication key for a title:
// lower-cased with whitespace runs collapsed and trimmed. Punctuation is
// preserved; "Far Cry 3" and "Far Cry: 3" stay distinct.
func TitleKey(title string) string {
	lowered := strings.ToLower(title)
	return strings.Join(strings.Fields(lowered), " ")
}
