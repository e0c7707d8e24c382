package domain

import "strconv"

// UnratedSentinel is the literal value downstream consumers receive for a
// record whose rating was replaced because it has no reviews.
const UnratedSentinel = "Not yet rated"

// RatingKind discriminates the states a rating can be in.
type RatingKind int

const (
	// RatingMissing means no usable rating was found for the record.
	RatingMissing RatingKind = iota
	// RatingNumeric means the rating is a normalized 0-100 score.
	RatingNumeric
	// RatingUnrated means the record has no reviews and carries the
	// "Not yet rated" sentinel instead of a score.
	RatingUnrated
)

// Rating is the tagged union stored in a record's rating field: a numeric
// 0-100 score, the unrated sentinel, or missing.
type Rating struct {
	kind  RatingKind
	score float64
}

// NumericRating returns a rating holding a 0-100 score.
func NumericRating(score float64) Rating {
	return Rating{kind: RatingNumeric, score: score}
}

// UnratedRating returns the unrated-sentinel rating.
func UnratedRating() Rating {
	return Rating{kind: RatingUnrated}
}

// MissingRating returns the missing rating.
func MissingRating() Rating {
	return Rating{}
}

// Kind returns the rating's discriminator.
func (r Rating) Kind() RatingKind {
	return r.kind
}

// IsNumeric reports whether the rating holds a numeric score.
func (r Rating) IsNumeric() bool {
	return r.kind == RatingNumeric
}

// Score returns the numeric score and whether one is present.
func (r Rating) Score() (float64, bool) {
	if r.kind != RatingNumeric {
		return 0, false
	}
	return r.score, true
}

// String renders the rating the way it appears in the output dataset:
// the score for numeric ratings, the sentinel for unrated, "" for missing.
func (r Rating) String() string {
	switch r.kind {
	case RatingNumeric:
		return strconv.FormatFloat(r.score, 'f', -1, 64)
	case RatingUnrated:
		return UnratedSentinel
	default:
		return ""
	}
}
