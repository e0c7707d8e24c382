package cleaner_test

import (
	"testing"

	"github.com/Bloodwingv2/gamecrawl/internal/cleaner"
	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
	"github.com/stretchr/testify/require"
)

func TestClean_NormalizesFields(t *testing.T) {
	t.Parallel()

	c := cleaner.New(logger.NewNoOp())

	records := []domain.RawRecord{{
		domain.FieldGameTitle:          "  Portal 2 ",
		domain.FieldGameURL:            "https://gog.com/game/portal_2",
		domain.FieldRating:             "4.5",
		domain.FieldReviewCount:        "1,234 reviews",
		domain.FieldReleaseDate:        "Apr 19, 2011",
		domain.FieldGenres:             "action|puzzle",
		domain.FieldPlatform:           "Windows, Mac OS X",
		domain.FieldOriginalPrice:      "€19.99",
		domain.FieldDiscountPercentage: "50",
	}}

	out, stats := c.Clean(domain.SourceGOG, records)

	require.Len(t, out, 1)
	require.Equal(t, 1, stats.Kept)
	require.Zero(t, stats.MissingTitleDrops)

	got := out[0]
	require.Equal(t, "GOG", got.String(domain.FieldDataSource))
	require.Equal(t, "Portal 2", got.String(domain.FieldGameTitle))
	require.Equal(t, "2011-04-19", got.String(domain.FieldReleaseDate))
	require.Equal(t, "Action, Puzzle", got.String(domain.FieldGenres))
	require.Equal(t, "Windows, Mac", got.String(domain.FieldPlatform))

	rating, ok := got.Float(domain.FieldRating)
	require.True(t, ok)
	require.InDelta(t, 90.0, rating, 0.001)

	count, ok := got.Float(domain.FieldReviewCount)
	require.True(t, ok)
	require.InDelta(t, 1234, count, 0.001)

	// 50% off €19.99 resolves the final price.
	price, ok := got.Float(domain.FieldDiscountedPrice)
	require.True(t, ok)
	require.InDelta(t, 10.0, price, 0.01)
}

func TestClean_DropsMissingTitles(t *testing.T) {
	t.Parallel()

	c := cleaner.New(logger.NewNoOp())

	out, stats := c.Clean(domain.SourceSteam, []domain.RawRecord{
		{domain.FieldGameTitle: "Portal 2", domain.FieldGameURL: "u1"},
		{domain.FieldGameTitle: "N/A", domain.FieldGameURL: "u2"},
		{domain.FieldGameTitle: "   ", domain.FieldGameURL: "u3"},
		{domain.FieldGameURL: "u4"},
	})

	require.Len(t, out, 1)
	require.Equal(t, 4, stats.TotalIn)
	require.Equal(t, 1, stats.Kept)
	require.Equal(t, 3, stats.MissingTitleDrops)
}

func TestClean_DropsDuplicateURLsKeepingFirst(t *testing.T) {
	t.Parallel()

	c := cleaner.New(logger.NewNoOp())

	out, stats := c.Clean(domain.SourceSteam, []domain.RawRecord{
		{domain.FieldGameTitle: "First", domain.FieldGameURL: "same"},
		{domain.FieldGameTitle: "Second", domain.FieldGameURL: "same"},
		{domain.FieldGameTitle: "NoURL A"},
		{domain.FieldGameTitle: "NoURL B"},
	})

	require.Len(t, out, 3)
	require.Equal(t, 1, stats.DuplicateURLDrops)
	require.Equal(t, "First", out[0].String(domain.FieldGameTitle))

	// Records without any URL never count as sharing one.
	require.Equal(t, "NoURL A", out[1].String(domain.FieldGameTitle))
	require.Equal(t, "NoURL B", out[2].String(domain.FieldGameTitle))
}

func TestClean_MalformedFieldsResolveToNull(t *testing.T) {
	t.Parallel()

	c := cleaner.New(logger.NewNoOp())

	out, stats := c.Clean(domain.SourceInstantGaming, []domain.RawRecord{{
		domain.FieldGameTitle:   "Broken Fields",
		domain.FieldRating:      "eleven",
		domain.FieldReleaseDate: "soon",
		domain.FieldGenres:      "x",
	}})

	require.Equal(t, 1, stats.Kept)
	got := out[0]
	require.True(t, got.IsNull(domain.FieldRating))
	require.True(t, got.IsNull(domain.FieldReleaseDate))
	require.True(t, got.IsNull(domain.FieldGenres))
	require.True(t, got.IsNull(domain.FieldDiscountedPrice))
}

func TestClean_StatsDeltasAreAttributable(t *testing.T) {
	t.Parallel()

	c := cleaner.New(logger.NewNoOp())

	_, stats := c.Clean(domain.SourceGOG, []domain.RawRecord{
		{domain.FieldGameTitle: "A", domain.FieldGameURL: "u"},
		{domain.FieldGameTitle: "B", domain.FieldGameURL: "u"},
		{domain.FieldGameURL: "v"},
	})

	require.Equal(t, stats.TotalIn-stats.Kept, stats.MissingTitleDrops+stats.DuplicateURLDrops)
}
