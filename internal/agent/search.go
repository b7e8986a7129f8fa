package agent

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/retrohunt/retro-hunter/internal/metrics"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

// SearchQuery describes an eBay price search.
type SearchQuery struct {
	GameName  string
	Platform  domain.PlatformID
	Condition string
}

// Search runs an eBay sold-listings search through the agent backend and
// returns the parsed listings.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]domain.Listing, error) {
	if q.GameName == "" {
		return nil, fmt.Errorf("search: game name is required")
	}

	params := url.Values{}
	params.Set("game_name", q.GameName)
	if q.Platform != "" && q.Platform != domain.PlatformAll {
		params.Set("platform", string(q.Platform))
	}
	if q.Condition != "" {
		params.Set("condition", q.Condition)
	}

	start := time.Now()
	body, err := c.get(ctx, "search", "/ebay-search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	listings := parseListings(gjson.ParseBytes(body))

	metrics.SearchesTotal.Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	c.log.Info("search finished", "game", q.GameName, "results", len(listings))

	return listings, nil
}

// parseListings extracts listings from a search response. The backend wraps
// them under "resultados"; bare arrays and "results" wrappers are accepted
// for compatibility.
func parseListings(body gjson.Result) []domain.Listing {
	rows := body.Get("resultados")
	if !rows.IsArray() {
		rows = body.Get("results")
	}
	if !rows.IsArray() && body.IsArray() {
		rows = body
	}
	if !rows.IsArray() {
		return nil
	}

	var listings []domain.Listing
	rows.ForEach(func(_, row gjson.Result) bool {
		l := domain.Listing{
			Title:    row.Get("title").String(),
			Price:    row.Get("price").Float(),
			Link:     row.Get("link").String(),
			ImageURL: row.Get("image").String(),
		}
		if l.ImageURL == "" {
			l.ImageURL = row.Get("imageUrl").String()
		}
		row.Get("tags").ForEach(func(_, tag gjson.Result) bool {
			l.Tags = append(l.Tags, tag.String())
			return true
		})
		listings = append(listings, l)
		return true
	})
	return listings
}
