package normalize_test

import (
	"testing"

	"github.com/Bloodwingv2/gamecrawl/internal/normalize"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   float64
		wantOK bool
	}{
		{name: "free", raw: "Free", want: 0, wantOK: true},
		{name: "free to play", raw: "Free To Play", want: 0, wantOK: true},
		{name: "dollar price", raw: "$19.99", want: 19.99, wantOK: true},
		{name: "euro price", raw: "€59.99", want: 59.99, wantOK: true},
		{name: "pound price", raw: "£4.49", want: 4.49, wantOK: true},
		{name: "european thousands", raw: "1.234,56", want: 1234.56, wantOK: true},
		{name: "comma as decimal", raw: "9,99", want: 9.99, wantOK: true},
		{name: "plain integer", raw: "60", want: 60, wantOK: true},
		{name: "embedded token", raw: "From $29.99 USD", want: 29.99, wantOK: true},
		{name: "null sentinel", raw: "N/A", wantOK: false},
		{name: "no numeric token", raw: "Coming soon", wantOK: false},
		{name: "empty", raw: "", wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := normalize.Price(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestResolveDiscountedPrice(t *testing.T) {
	t.Parallel()

	fp := func(v float64) *float64 { return &v }

	t.Run("explicit discounted price wins", func(t *testing.T) {
		t.Parallel()
		got := normalize.ResolveDiscountedPrice(fp(60), fp(30), fp(75))
		require.NotNil(t, got)
		require.InDelta(t, 30.0, *got, 0.001)
	})

	t.Run("computed from percentage", func(t *testing.T) {
		t.Parallel()
		got := normalize.ResolveDiscountedPrice(fp(59.99), nil, fp(50))
		require.NotNil(t, got)
		require.InDelta(t, 30.0, *got, 0.01)
	})

	t.Run("non-positive percentage keeps original", func(t *testing.T) {
		t.Parallel()
		got := normalize.ResolveDiscountedPrice(fp(40), nil, fp(0))
		require.NotNil(t, got)
		require.InDelta(t, 40.0, *got, 0.001)
	})

	t.Run("nothing resolves", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, normalize.ResolveDiscountedPrice(fp(40), nil, nil))
		require.Nil(t, normalize.ResolveDiscountedPrice(nil, nil, fp(50)))
		require.Nil(t, normalize.ResolveDiscountedPrice(nil, nil, nil))
	})
}

func TestRecomputeDiscountPercentage(t *testing.T) {
	t.Parallel()

	fp := func(v float64) *float64 { return &v }

	got := normalize.RecomputeDiscountPercentage(fp(60), fp(30))
	require.NotNil(t, got)
	require.InDelta(t, 50.0, *got, 0.001)

	// Discounted above original clamps to zero rather than going negative.
	got = normalize.RecomputeDiscountPercentage(fp(30), fp(60))
	require.NotNil(t, got)
	require.InDelta(t, 0.0, *got, 0.001)

	require.Nil(t, normalize.RecomputeDiscountPercentage(nil, fp(30)))
	require.Nil(t, normalize.RecomputeDiscountPercentage(fp(0), fp(30)))
	require.Nil(t, normalize.RecomputeDiscountPercentage(fp(60), nil))
}
