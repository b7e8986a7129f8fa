package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

func listings(prices ...float64) []domain.Listing {
	out := make([]domain.Listing, len(prices))
	for i, p := range prices {
		out[i] = domain.Listing{Title: "game", Price: p}
	}
	return out
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prices []float64
		want   Summary
	}{
		{
			name:   "zero prices excluded",
			prices: []float64{10, 0, 50},
			want:   Summary{Lowest: 10, Highest: 50, Average: "30.00"},
		},
		{
			name:   "single listing",
			prices: []float64{19.99},
			want:   Summary{Lowest: 19.99, Highest: 19.99, Average: "19.99"},
		},
		{
			name:   "negative prices excluded",
			prices: []float64{-5, 20, 40},
			want:   Summary{Lowest: 20, Highest: 40, Average: "30.00"},
		},
		{
			name:   "empty set",
			prices: nil,
			want:   Summary{Lowest: 0, Highest: 0, Average: "0.00"},
		},
		{
			name:   "all non-positive",
			prices: []float64{0, -1},
			want:   Summary{Lowest: 0, Highest: 0, Average: "0.00"},
		},
		{
			name:   "rounding",
			prices: []float64{10, 10, 5},
			want:   Summary{Lowest: 5, Highest: 10, Average: "8.33"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Summarize(listings(tt.prices...)))
		})
	}
}

func TestSummarize_Ordering(t *testing.T) {
	t.Parallel()

	s := Summarize(listings(12.5, 3, 99, 41))
	require.Equal(t, "38.88", s.Average)
	assert.LessOrEqual(t, s.Lowest, 38.88)
	assert.GreaterOrEqual(t, s.Highest, 38.88)
}

func TestFilterAndSort(t *testing.T) {
	t.Parallel()

	in := listings(30, 10, 50, 20)

	asc := FilterAndSort(in, 10, 50, SortAsc)
	require.Len(t, asc, 4)
	assert.Equal(t, []float64{10, 20, 30, 50}, prices(asc))

	desc := FilterAndSort(in, 10, 50, SortDesc)
	assert.Equal(t, []float64{50, 30, 20, 10}, prices(desc))

	// Bounds are inclusive on both ends.
	bounded := FilterAndSort(in, 20, 30, SortAsc)
	assert.Equal(t, []float64{20, 30}, prices(bounded))

	// Input order preserved in the source slice.
	assert.Equal(t, []float64{30, 10, 50, 20}, prices(in))
}

func TestFilterAndSort_Idempotent(t *testing.T) {
	t.Parallel()

	in := listings(5, 25, 15, 25, 45)
	once := FilterAndSort(in, 10, 40, SortDesc)
	twice := FilterAndSort(once, 10, 40, SortDesc)
	assert.Equal(t, once, twice)
}

func TestFilterAndSort_StableForEqualPrices(t *testing.T) {
	t.Parallel()

	in := []domain.Listing{
		{Title: "first", Price: 10},
		{Title: "second", Price: 10},
		{Title: "third", Price: 10},
	}
	out := FilterAndSort(in, 0, 100, SortAsc)
	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].Title)
	assert.Equal(t, "second", out[1].Title)
	assert.Equal(t, "third", out[2].Title)
}

func TestFilter_BoundsResyncOnNewData(t *testing.T) {
	t.Parallel()

	f := NewFilter(listings(10, 50))
	assert.Equal(t, 10.0, f.MinPrice)
	assert.Equal(t, 50.0, f.MaxPrice)

	f.MinPrice = 20 // user narrows the range

	f.SetListings(listings(5, 80, 40))
	assert.Equal(t, 5.0, f.MinPrice, "bounds re-sync when the result set changes")
	assert.Equal(t, 80.0, f.MaxPrice)

	s := f.Summary()
	assert.Equal(t, "41.67", s.Average)
}

func TestFilter_ApplyAndReset(t *testing.T) {
	t.Parallel()

	f := NewFilter(listings(10, 20, 30, 40))
	f.MinPrice = 15
	f.MaxPrice = 35
	f.SortOrder = SortDesc

	assert.Equal(t, []float64{30, 20}, prices(f.Apply()))

	f.Reset()
	assert.Equal(t, 10.0, f.MinPrice)
	assert.Equal(t, 40.0, f.MaxPrice)
	assert.Equal(t, SortAsc, f.SortOrder)
	assert.Equal(t, []float64{10, 20, 30, 40}, prices(f.Apply()))
}

func prices(in []domain.Listing) []float64 {
	out := make([]float64, len(in))
	for i, l := range in {
		out[i] = l.Price
	}
	return out
}
