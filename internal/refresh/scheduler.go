// Package refresh runs the periodic background jobs: collection price
// refreshes and exchange-rate updates.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/retrohunt/retro-hunter/internal/collections"
	"github.com/retrohunt/retro-hunter/internal/currency"
)

// Scheduler manages the periodic price and exchange-rate refresh tasks.
type Scheduler struct {
	cron       *cron.Cron
	collection *collections.Client
	lookup     collections.PriceLookup
	rates      *currency.Converter
	log        *slog.Logger
}

// NewScheduler creates a Scheduler that refreshes collection prices on the
// given cron spec ("@daily", "@every 12h", ...) and the exchange rate every
// rateInterval.
func NewScheduler(
	collection *collections.Client,
	lookup collections.PriceLookup,
	rates *currency.Converter,
	priceSpec string,
	rateInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:       c,
		collection: collection,
		lookup:     lookup,
		rates:      rates,
		log:        log,
	}

	if _, err := c.AddFunc(priceSpec, s.runPriceRefresh); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(
		"@every "+rateInterval.String(),
		s.runRateRefresh,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runPriceRefresh() {
	ctx := context.Background()
	s.log.Info("scheduled price refresh starting")
	report, err := s.collection.RefreshPrices(ctx, s.lookup)
	if err != nil {
		s.log.Error("scheduled price refresh failed", "error", err)
		return
	}
	s.log.Info("scheduled price refresh finished",
		"refreshed", report.Refreshed, "skipped", report.Skipped, "failed", report.Failed)
}

func (s *Scheduler) runRateRefresh() {
	ctx := context.Background()
	rate := s.rates.Refresh(ctx)
	s.log.Info("scheduled rate refresh finished", "eur_rate", rate)
}
