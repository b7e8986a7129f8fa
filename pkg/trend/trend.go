// Package trend classifies the price movement of a collection item from its
// recorded price history.
package trend

import (
	"sort"

	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// Direction is the classified price movement.
type Direction string

// Trend directions.
const (
	Up      Direction = "up"
	Down    Direction = "down"
	Neutral Direction = "neutral"
)

// Classify compares the earliest and latest history entries carrying a
// positive value for the given category and reports the direction of the
// change. Entries without a positive value for the category are skipped, not
// treated as zero. With no current price, or fewer than two usable entries,
// the result is Neutral. Any nonzero change is reported; there is no noise
// threshold.
func Classify(
	currentPrice *float64,
	history []domain.PriceSnapshot,
	cat domain.PriceCategory,
) Direction {
	if currentPrice == nil || len(history) < 2 {
		return Neutral
	}

	sorted := make([]domain.PriceSnapshot, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var (
		earliest *float64
		latest   *float64
	)
	for i := range sorted {
		v := sorted[i].Value(cat)
		if v == nil || *v <= 0 {
			continue
		}
		if earliest == nil {
			earliest = v
			continue
		}
		latest = v
	}

	if earliest == nil || latest == nil {
		return Neutral
	}

	switch diff := *latest - *earliest; {
	case diff > 0:
		return Up
	case diff < 0:
		return Down
	default:
		return Neutral
	}
}
