// Package pricing computes summary statistics over priced listings and
// applies the price range filter and sort used by the search results view.
package pricing

import (
	"fmt"
	"sort"

	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// SortOrder selects ascending or descending sorting by price.
type SortOrder string

// Sort order constants.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Summary holds min/max/mean statistics over the positive-priced subset of a
// listing set. Average is preformatted to 2 decimal places for display.
type Summary struct {
	Lowest  float64 `json:"lowest"`
	Highest float64 `json:"highest"`
	Average string  `json:"average"`
}

// Summarize computes a Summary over listings. Listings with a non-positive
// price are excluded; if nothing remains the summary is all zeros.
func Summarize(listings []domain.Listing) Summary {
	var (
		count int
		sum   float64
		low   float64
		high  float64
	)

	for _, l := range listings {
		if l.Price <= 0 {
			continue
		}
		if count == 0 || l.Price < low {
			low = l.Price
		}
		if l.Price > high {
			high = l.Price
		}
		sum += l.Price
		count++
	}

	if count == 0 {
		return Summary{Average: "0.00"}
	}

	return Summary{
		Lowest:  low,
		Highest: high,
		Average: fmt.Sprintf("%.2f", sum/float64(count)),
	}
}

// FilterAndSort returns the listings whose price falls within
// [minPrice, maxPrice], sorted by price in the given order. Both bounds are
// inclusive. The sort is stable so equal-priced listings keep their input
// order. The input slice is not modified.
func FilterAndSort(
	listings []domain.Listing,
	minPrice, maxPrice float64,
	order SortOrder,
) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Price >= minPrice && l.Price <= maxPrice {
			out = append(out, l)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortDesc {
			return out[i].Price > out[j].Price
		}
		return out[i].Price < out[j].Price
	})

	return out
}

// Filter holds the mutable filter state for one result set: the price range
// bounds and sort order. Replacing the result set re-syncs the bounds to the
// new data's lowest/highest.
type Filter struct {
	listings []domain.Listing
	summary  Summary

	MinPrice  float64
	MaxPrice  float64
	SortOrder SortOrder
}

// NewFilter creates a Filter over listings with bounds synced to the data
// and ascending sort.
func NewFilter(listings []domain.Listing) *Filter {
	f := &Filter{SortOrder: SortAsc}
	f.SetListings(listings)
	return f
}

// SetListings replaces the underlying result set and resets MinPrice and
// MaxPrice to the new set's lowest and highest prices.
func (f *Filter) SetListings(listings []domain.Listing) {
	f.listings = listings
	f.summary = Summarize(listings)
	f.MinPrice = f.summary.Lowest
	f.MaxPrice = f.summary.Highest
}

// Reset restores the bounds to the current data's lowest/highest and the
// sort order to ascending.
func (f *Filter) Reset() {
	f.MinPrice = f.summary.Lowest
	f.MaxPrice = f.summary.Highest
	f.SortOrder = SortAsc
}

// Summary returns the statistics for the full (unfiltered) result set.
func (f *Filter) Summary() Summary {
	return f.summary
}

// Apply returns the filtered and sorted view of the current result set.
func (f *Filter) Apply() []domain.Listing {
	return FilterAndSort(f.listings, f.MinPrice, f.MaxPrice, f.SortOrder)
}
