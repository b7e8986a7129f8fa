// Package search coordinates concurrent price searches for one UI session.
// Search requests can finish out of order; the session guarantees that only
// the most recently started search is allowed to publish results.
package search

import (
	"log/slog"
	"sync"

	"github.com/retrohunt/retro-hunter/internal/metrics"
	"github.com/retrohunt/retro-hunter/pkg/pricing"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// Session serializes result publication for overlapping searches. Each
// started search gets a monotonically increasing sequence number; a
// completion is applied only while its number is still the latest.
type Session struct {
	log *slog.Logger

	mu     sync.Mutex
	seq    uint64
	filter *pricing.Filter
}

// Option configures the Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// NewSession creates an empty Session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		log:    slog.Default(),
		filter: pricing.NewFilter(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin registers a new search and returns its sequence number. Any search
// started earlier becomes stale immediately.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Complete publishes a finished search's listings. It reports whether the
// results were applied; completions for superseded searches are discarded.
func (s *Session) Complete(seq uint64, listings []domain.Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		metrics.SearchesDropped.Inc()
		s.log.Debug("stale search discarded", "seq", seq, "latest", s.seq)
		return false
	}
	s.filter.SetListings(listings)
	return true
}

// Listings returns the published results with the current filter and sort
// applied.
func (s *Session) Listings() []domain.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Apply()
}

// Summary returns the price summary of the full published result set,
// ignoring the filter bounds.
func (s *Session) Summary() pricing.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Summary()
}

// SetBounds narrows the visible price range.
func (s *Session) SetBounds(minPrice, maxPrice float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.MinPrice = minPrice
	s.filter.MaxPrice = maxPrice
}

// SetOrder changes the sort direction.
func (s *Session) SetOrder(order pricing.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SortOrder = order
}

// ResetFilter restores the filter to the full range of the published set.
func (s *Session) ResetFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Reset()
}
