package agent

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// LookupPrices fetches the per-category valuations for an external pricing
// identifier. Missing or non-positive categories come back nil.
func (c *Client) LookupPrices(ctx context.Context, pricingID string) (*domain.PriceRecord, error) {
	if pricingID == "" {
		return nil, fmt.Errorf("pricing lookup: id is required")
	}

	body, err := c.get(ctx, "pricing", "/price-charting/"+url.PathEscape(pricingID))
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	prices := parsed.Get("prices")
	if !prices.Exists() {
		prices = parsed
	}

	record := &domain.PriceRecord{
		Loose:   categoryValue(prices, "loose"),
		CIB:     categoryValue(prices, "cib"),
		New:     categoryValue(prices, "new"),
		Graded:  categoryValue(prices, "graded"),
		BoxOnly: categoryValue(prices, "box_only"),
	}
	return record, nil
}

func categoryValue(prices gjson.Result, key string) *float64 {
	v := prices.Get(key)
	if !v.Exists() {
		return nil
	}
	f := v.Float()
	if f <= 0 {
		return nil
	}
	return &f
}
