package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/retrohunt/retro-hunter/internal/metrics"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// PriceLookup resolves current per-category valuations for an external
// pricing identifier.
type PriceLookup interface {
	LookupPrices(ctx context.Context, pricingID string) (*domain.PriceRecord, error)
}

// RefreshReport summarizes one refresh run.
type RefreshReport struct {
	Refreshed int
	Skipped   int
	Failed    int
}

// RefreshPrices walks the cached items that carry a pricing identifier,
// fetches current valuations and appends a dated snapshot to each item's
// history. Items are processed one at a time; the backend's pricing source
// throttles aggressively, so fanning out buys nothing. The cache is only
// updated for items whose server write succeeded.
func (c *Client) RefreshPrices(ctx context.Context, lookup PriceLookup) (RefreshReport, error) {
	start := time.Now()
	defer func() {
		metrics.PriceRefreshDuration.Observe(time.Since(start).Seconds())
	}()

	var report RefreshReport
	for _, item := range c.Items() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if item.PricingID == "" {
			report.Skipped++
			continue
		}

		if err := c.refreshItem(ctx, lookup, item); err != nil {
			report.Failed++
			metrics.PriceRefreshErrorsTotal.Inc()
			c.log.Warn("price refresh failed", "item", item.ID, "title", item.GameTitle, "error", err)
			continue
		}
		report.Refreshed++
		metrics.PriceRefreshItemsTotal.Inc()
	}

	c.log.Info("price refresh finished",
		"refreshed", report.Refreshed, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

func (c *Client) refreshItem(ctx context.Context, lookup PriceLookup, item domain.CollectionItem) error {
	record, err := lookup.LookupPrices(ctx, item.PricingID)
	if err != nil {
		return fmt.Errorf("looking up prices: %w", err)
	}

	snapshot := domain.PriceSnapshot{Date: c.now()}
	updated := false
	for _, cat := range domain.Categories() {
		v := record.Value(cat)
		if v == nil {
			continue
		}
		snapshot.SetValue(cat, *v)
		item.SetCurrentPrice(cat, *v)
		updated = true
	}
	if !updated {
		return fmt.Errorf("pricing source returned no values for %s", item.PricingID)
	}

	item.PriceHistory = append(item.PriceHistory, snapshot)

	// Update commits the cache only after the server accepts the write, so
	// a failed push leaves the cached item untouched.
	return c.Update(ctx, item)
}
