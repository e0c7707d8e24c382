package mapper_test

import (
	"testing"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/mapper"
	"github.com/stretchr/testify/require"
)

func TestMap_RenamesKnownColumns(t *testing.T) {
	t.Parallel()

	raw := domain.RawRecord{
		"title":        "Portal 2",
		"url":          "https://store.steampowered.com/app/620",
		"rating_score": "95",
		"review_count": "12,345",
	}

	got := mapper.Map(domain.SourceSteam, raw)

	require.Equal(t, "Portal 2", got[domain.FieldGameTitle])
	require.Equal(t, "https://store.steampowered.com/app/620", got[domain.FieldGameURL])
	require.Equal(t, "95", got[domain.FieldRating])
	require.Equal(t, "12,345", got[domain.FieldReviewCount])
	require.NotContains(t, got, "title")
	require.NotContains(t, got, "rating_score")
}

func TestMap_UnmappedKeysPassThrough(t *testing.T) {
	t.Parallel()

	raw := domain.RawRecord{
		"title":           "Hades",
		"weird_seo_field": "value",
	}

	got := mapper.Map(domain.SourceGOG, raw)

	require.Equal(t, "Hades", got[domain.FieldGameTitle])
	require.Equal(t, "value", got["weird_seo_field"])
}

func TestMap_MissingColumnsStayAbsent(t *testing.T) {
	t.Parallel()

	got := mapper.Map(domain.SourceSteam, domain.RawRecord{"title": "DOOM"})

	require.NotContains(t, got, domain.FieldRating)
	require.NotContains(t, got, domain.FieldGameURL)
}

func TestMap_CollidingColumnsResolveDeterministically(t *testing.T) {
	t.Parallel()

	// rating_score and review_summary both map to rating; the null one must
	// never shadow the populated one regardless of map order.
	raw := domain.RawRecord{
		"title":          "Celeste",
		"rating_score":   nil,
		"review_summary": "Overwhelmingly Positive",
	}
	for i := 0; i < 20; i++ {
		got := mapper.Map(domain.SourceSteam, raw)
		require.Equal(t, "Overwhelmingly Positive", got[domain.FieldRating])
	}
}

func TestBatch_MapsEveryRecord(t *testing.T) {
	t.Parallel()

	got := mapper.Batch(domain.SourceInstantGaming, []domain.RawRecord{
		{"title": "A", "ig_rating": "8.5"},
		{"title": "B", "current_price": "19.99"},
	})

	require.Len(t, got, 2)
	require.Equal(t, "8.5", got[0][domain.FieldRating])
	require.Equal(t, "19.99", got[1][domain.FieldDiscountedPrice])
}
