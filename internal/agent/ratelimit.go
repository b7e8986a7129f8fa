package agent

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/retrohunt/retro-hunter/internal/metrics"
)

// ErrDailyLimitReached is returned when the rolling 24h call quota is
// exhausted. Callers should surface it rather than retry.
var ErrDailyLimitReached = errors.New("agent: daily call limit reached")

// Limiter combines a token-bucket rate limit with a rolling 24h quota.
// The quota is a hard cap: once reached, calls fail until old entries
// age out of the window.
type Limiter struct {
	bucket *rate.Limiter

	mu       sync.Mutex
	dailyMax int
	window   []time.Time
	now      func() time.Time
}

// NewLimiter creates a Limiter allowing callsPerSecond sustained (with the
// given burst) and at most dailyMax calls in any rolling 24h window.
// A dailyMax of zero disables the quota.
func NewLimiter(callsPerSecond float64, burst, dailyMax int) *Limiter {
	return &Limiter{
		bucket:   rate.NewLimiter(rate.Limit(callsPerSecond), burst),
		dailyMax: dailyMax,
		now:      time.Now,
	}
}

// Wait blocks until a call may proceed or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.reserve(); err != nil {
		return err
	}
	return l.bucket.Wait(ctx)
}

// Remaining reports how many calls are left in the current 24h window.
// It returns -1 when the daily quota is disabled.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.dailyMax <= 0 {
		return -1
	}
	l.prune()
	return l.dailyMax - len(l.window)
}

func (l *Limiter) reserve() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.dailyMax <= 0 {
		return nil
	}
	l.prune()
	if len(l.window) >= l.dailyMax {
		metrics.AgentDailyLimitHits.Inc()
		return ErrDailyLimitReached
	}
	l.window = append(l.window, l.now())
	return nil
}

// prune drops window entries older than 24h. Caller holds mu.
func (l *Limiter) prune() {
	cutoff := l.now().Add(-24 * time.Hour)
	keep := l.window[:0]
	for _, t := range l.window {
		if t.After(cutoff) {
			keep = append(keep, t)
		}
	}
	l.window = keep
}
