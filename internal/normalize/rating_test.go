package normalize_test

import (
	"testing"

	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/normalize"
	"github.com/stretchr/testify/require"
)

func TestRating_ScaleConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		source domain.Source
		want   float64
		wantOK bool
	}{
		{name: "gog half star", raw: "4.5", source: domain.SourceGOG, want: 90.0, wantOK: true},
		{name: "instant gaming", raw: "8.5", source: domain.SourceInstantGaming, want: 85.0, wantOK: true},
		{name: "steam identity", raw: "77", source: domain.SourceSteam, want: 77.0, wantOK: true},
		{name: "rawg five star scale", raw: "4.0", source: domain.SourceRAWG, want: 80.0, wantOK: true},
		{name: "metacritic identity", raw: "88", source: domain.SourceMetacritic, want: 88.0, wantOK: true},
		{name: "negative rejected", raw: "-1", source: domain.SourceSteam, wantOK: false},
		{name: "negative rejected on gog", raw: "-1", source: domain.SourceGOG, wantOK: false},
		{name: "above instant gaming scale", raw: "11", source: domain.SourceInstantGaming, wantOK: false},
		{name: "above gog scale", raw: "5.1", source: domain.SourceGOG, wantOK: false},
		{name: "non-numeric", raw: "great", source: domain.SourceGOG, wantOK: false},
		{name: "null sentinel", raw: "N/A", source: domain.SourceSteam, wantOK: false},
		{name: "empty", raw: "", source: domain.SourceSteam, wantOK: false},
		{name: "rounds to one decimal", raw: "4.44", source: domain.SourceGOG, want: 88.8, wantOK: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := normalize.Rating(tt.raw, tt.source)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestRating_SteamReviewText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "Overwhelmingly Positive", want: 95},
		{raw: "Very Positive", want: 85},
		{raw: "Mostly Positive", want: 70},
		{raw: "Mixed", want: 50},
		{raw: "Mostly Negative", want: 30},
		{raw: "Overwhelmingly Negative", want: 5},
	}

	for _, tt := range tests {
		tt := tt
		got, ok := normalize.Rating(tt.raw, domain.SourceSteam)
		require.True(t, ok, "rating %q", tt.raw)
		require.InDelta(t, tt.want, got, 0.001, "rating %q", tt.raw)
	}

	// Percentage tooltips resolve before the phrase table.
	got, ok := normalize.Rating("91% of the 12,345 user reviews are positive", domain.SourceSteam)
	require.True(t, ok)
	require.InDelta(t, 91.0, got, 0.001)

	// Review text is a Steam-only form.
	_, ok = normalize.Rating("Very Positive", domain.SourceGOG)
	require.False(t, ok)
}

func TestReviewCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{raw: "12,345", want: 12345, wantOK: true},
		{raw: "873 reviews", want: 873, wantOK: true},
		{raw: "0", want: 0, wantOK: true},
		{raw: "N/A", wantOK: false},
		{raw: "no reviews", wantOK: false},
		{raw: "", wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		got, ok := normalize.ReviewCount(tt.raw)
		require.Equal(t, tt.wantOK, ok, "count %q", tt.raw)
		if tt.wantOK {
			require.Equal(t, tt.want, got, "count %q", tt.raw)
		}
	}
}
