package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
)

// ratingScale describes one source's native rating range. Scores are mapped
// linearly onto 0-100 and rounded to one decimal.
type ratingScale struct {
	max    float64
	factor float64
}

// ratingScales holds the native scale per source. Sources absent from the
// table report on the 0-100 scale directly.
var ratingScales = map[domain.Source]ratingScale{
	domain.SourceInstantGaming: {max: 10, factor: 10},
	domain.SourceGOG:           {max: 5, factor: 20},
	domain.SourceRAWG:          {max: 5, factor: 20},
	domain.SourceEpic:          {max: 5, factor: 20},
	domain.SourceHumble:        {max: 5, factor: 20},
	domain.SourceSteam:         {max: 100, factor: 1},
	domain.SourceMetacritic:    {max: 100, factor: 1},
}

// steamReviewScores maps Steam's review-summary phrases to 0-100 scores.
// Longer phrases are matched first so "mostly positive" is not shadowed
// by "positive".
var steamReviewScores = []struct {
	phrase string
	score  float64
}{
	{"overwhelmingly positive", 95},
	{"overwhelmingly negative", 5},
	{"very positive", 85},
	{"very negative", 15},
	{"mostly positive", 70},
	{"mostly negative", 30},
	{"mixed", 50},
	{"positive", 75},
	{"negative", 25},
}

// percentPattern extracts a percentage from review tooltips like
// "91% of the 12,345 user reviews are positive".
var percentPattern = regexp.MustCompile(`(\d+)%`)

// Rating converts a raw rating value from the source's native scale to a
// 0-100 score rounded to one decimal. Non-numeric Steam review summaries are
// resolved through the phrase table. Out-of-range or unparseable input
// returns ok=false.
func Rating(raw string, source domain.Source) (float64, bool) {
	cleaned := Text(raw)
	if cleaned == "" {
		return 0, false
	}

	scale, known := ratingScales[source]
	if !known {
		scale = ratingScale{max: 100, factor: 1}
	}

	value, parseErr := strconv.ParseFloat(cleaned, 64)
	if parseErr != nil {
		return steamTextRating(cleaned, source)
	}

	if value < 0 || value > scale.max {
		return 0, false
	}
	return roundTo1(value * scale.factor), true
}

// steamTextRating resolves Steam's textual review summaries. Other sources
// have no textual rating form.
func steamTextRating(cleaned string, source domain.Source) (float64, bool) {
	if source != domain.SourceSteam {
		return 0, false
	}

	lowered := strings.ToLower(cleaned)

	if match := percentPattern.FindStringSubmatch(lowered); match != nil {
		pct, parseErr := strconv.ParseFloat(match[1], 64)
		if parseErr == nil && pct >= 0 && pct <= 100 {
			return roundTo1(pct), true
		}
	}

	for _, entry := range steamReviewScores {
		if strings.Contains(lowered, entry.phrase) {
			return entry.score, true
		}
	}
	return 0, false
}

// ReviewCount extracts a non-negative review count from raw text, ignoring
// thousands separators ("12,345 reviews" -> 12345).
func ReviewCount(raw string) (int, bool) {
	cleaned := Text(raw)
	if cleaned == "" {
		return 0, false
	}

	cleaned = strings.ReplaceAll(cleaned, ",", "")
	match := digitRun.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	count, parseErr := strconv.Atoi(match)
	if parseErr != nil || count < 0 {
		return 0, false
	}
	return count, true
}

// digitRun matches the first run of digits in a value.
var digitRun = regexp.MustCompile(`\d+`)

// roundTo1 rounds to one decimal place.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// roundTo2 rounds to two decimal places.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
