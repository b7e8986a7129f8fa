// Package currency converts USD amounts into the selected display currency
// using a cached, refreshable exchange rate.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/retrohunt/retro-hunter/internal/metrics"
	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

const (
	defaultProviderURL = "https://api.exchangerate-api.com/v4/latest/USD"

	// FallbackRate is the EUR-per-USD rate used whenever a refresh fails.
	FallbackRate = 0.86
)

// Converter holds the cached EUR-per-USD exchange rate. The rate is owned by
// the Converter and mutated only through Refresh; concurrent readers go
// through the mutex-guarded accessors.
type Converter struct {
	providerURL string
	client      *http.Client
	log         *slog.Logger

	mu         sync.Mutex
	rate       float64
	refreshing bool
}

// Option configures the Converter.
type Option func(*Converter)

// WithProviderURL overrides the default exchange-rate provider endpoint.
func WithProviderURL(u string) Option {
	return func(c *Converter) {
		c.providerURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Converter) {
		c.client = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.log = l
	}
}

// New creates a Converter seeded with the fallback rate.
func New(opts ...Option) *Converter {
	c := &Converter{
		providerURL: defaultProviderURL,
		client:      &http.Client{Timeout: 15 * time.Second},
		log:         slog.Default(),
		rate:        FallbackRate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rate returns the current cached EUR-per-USD rate.
func (c *Converter) Rate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// Refreshing reports whether a refresh is currently in flight, so callers
// can disable repeated refresh triggers.
func (c *Converter) Refreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshing
}

// Convert formats a USD amount in the given display currency to 2 decimal
// places. USD is the identity; EUR multiplies by the cached rate. Unknown
// currencies are treated as USD.
func (c *Converter) Convert(amountUSD float64, cur domain.Currency) string {
	if cur == domain.CurrencyEUR {
		return fmt.Sprintf("%.2f", amountUSD*c.Rate())
	}
	return fmt.Sprintf("%.2f", amountUSD)
}

// Symbol returns the display symbol for a currency.
func Symbol(cur domain.Currency) string {
	if cur == domain.CurrencyEUR {
		return "€"
	}
	return "$"
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Refresh fetches the current EUR rate from the provider and returns the
// rate now in effect. Refresh never fails outward: on any error (network,
// non-200 status, malformed payload, missing EUR field) the cached rate is
// reset to FallbackRate and that value is returned. The in-progress flag is
// cleared on every path.
func (c *Converter) Refresh(ctx context.Context) float64 {
	c.mu.Lock()
	if c.refreshing {
		rate := c.rate
		c.mu.Unlock()
		return rate
	}
	c.refreshing = true
	c.mu.Unlock()

	rate, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("exchange rate refresh failed, using fallback",
			"fallback", FallbackRate, "error", err)
		metrics.RateRefreshFailuresTotal.Inc()
		rate = FallbackRate
	} else {
		c.log.Debug("exchange rate updated", "rate", rate)
	}

	c.mu.Lock()
	c.rate = rate
	c.refreshing = false
	c.mu.Unlock()

	metrics.ExchangeRate.Set(rate)
	return rate
}

func (c *Converter) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.providerURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading rates body: %w", err)
	}

	var rates ratesResponse
	if err := json.Unmarshal(body, &rates); err != nil {
		return 0, fmt.Errorf("parsing rates response: %w", err)
	}

	eur, ok := rates.Rates["EUR"]
	if !ok || eur <= 0 {
		return 0, fmt.Errorf("rates response missing EUR")
	}

	return eur, nil
}
