package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/retrohunt/retro-hunter/internal/refresh"
)

func refreshCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh collection prices, once or on a schedule",
		Long: "Runs a collection price refresh. With --watch the process stays up\n" +
			"and refreshes on the configured schedule, exposing Prometheus\n" +
			"metrics while it runs.",
		Example: `  retro refresh
  retro refresh --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch {
				return runWatch(cmd)
			}
			return runRefreshOnce(cmd)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running on the configured schedule")

	return cmd
}

func runRefreshOnce(cmd *cobra.Command) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	user, err := currentUser(cmd, a)
	if err != nil {
		return err
	}

	a.rates.Refresh(cmd.Context())

	if _, err := a.collection.List(cmd.Context(), user.ID); err != nil {
		return err
	}
	report, err := a.collection.RefreshPrices(cmd.Context(), a.agent)
	if err != nil {
		return err
	}

	fmt.Printf("Refreshed %d, skipped %d, failed %d\n",
		report.Refreshed, report.Skipped, report.Failed)
	if remaining := a.limiter.Remaining(); remaining >= 0 {
		fmt.Printf("%d agent calls left today\n", remaining)
	}
	return nil
}

func runWatch(cmd *cobra.Command) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	user, err := currentUser(cmd, a)
	if err != nil {
		return err
	}

	// Prime the cache so scheduled refreshes have items to work with.
	if _, err := a.collection.List(cmd.Context(), user.ID); err != nil {
		return err
	}

	sched, err := refresh.NewScheduler(
		a.collection,
		a.agent,
		a.rates,
		a.cfg.Schedule.PriceRefresh,
		a.cfg.Currency.Interval,
		a.log,
	)
	if err != nil {
		return fmt.Errorf("building scheduler: %w", err)
	}

	metricsServer := refresh.NewMetricsServer(a.cfg.Metrics.Addr, a.log)
	go metricsServer.Start()

	sched.Start()
	a.log.Info("watching", "schedule", a.cfg.Schedule.PriceRefresh, "metrics", a.cfg.Metrics.Addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return metricsServer.Shutdown(shutdownCtx)
}
