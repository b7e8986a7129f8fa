package search

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrohunt/retro-hunter/pkg/logger"
	"github.com/retrohunt/retro-hunter/pkg/pricing"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

func listings(prices ...float64) []domain.Listing {
	out := make([]domain.Listing, 0, len(prices))
	for _, p := range prices {
		out = append(out, domain.Listing{Title: "listing", Price: p})
	}
	return out
}

func TestSessionLatestSearchWins(t *testing.T) {
	t.Parallel()

	s := NewSession(WithLogger(logger.Nop()))
	first := s.Begin()
	second := s.Begin()

	// The newer search completes first; the older one must not overwrite it.
	require.True(t, s.Complete(second, listings(30, 10)))
	require.False(t, s.Complete(first, listings(99)))

	got := s.Listings()
	require.Len(t, got, 2)
	assert.Equal(t, 10.0, got[0].Price, "published set is the newer search's, sorted ascending")
}

func TestSessionSequenceIsMonotonic(t *testing.T) {
	t.Parallel()

	s := NewSession(WithLogger(logger.Nop()))
	prev := s.Begin()
	for i := 0; i < 10; i++ {
		next := s.Begin()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestSessionFilterAndSummary(t *testing.T) {
	t.Parallel()

	s := NewSession(WithLogger(logger.Nop()))
	seq := s.Begin()
	require.True(t, s.Complete(seq, listings(10, 0, 50)))

	summary := s.Summary()
	assert.Equal(t, 10.0, summary.Lowest)
	assert.Equal(t, 50.0, summary.Highest)
	assert.Equal(t, "30.00", summary.Average)

	s.SetBounds(10, 20)
	require.Len(t, s.Listings(), 1)

	s.ResetFilter()
	assert.Len(t, s.Listings(), 2, "reset restores the full positive-priced range")

	s.SetOrder(pricing.SortDesc)
	got := s.Listings()
	assert.Equal(t, 50.0, got[0].Price)
}

func TestSessionConcurrentCompletions(t *testing.T) {
	t.Parallel()

	s := NewSession(WithLogger(logger.Nop()))

	seqs := make([]uint64, 20)
	for i := range seqs {
		seqs[i] = s.Begin()
	}

	var wg sync.WaitGroup
	for i, seq := range seqs {
		wg.Add(1)
		go func(seq uint64, price float64) {
			defer wg.Done()
			s.Complete(seq, listings(price))
		}(seq, float64(i+1))
	}
	wg.Wait()

	got := s.Listings()
	if len(got) > 0 {
		assert.Equal(t, 20.0, got[0].Price, "only the latest search may publish")
	}
}
