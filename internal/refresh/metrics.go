package refresh

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer exposes the Prometheus registry over HTTP while a
// long-running refresh process is up.
type MetricsServer struct {
	server *http.Server
	log    *slog.Logger
}

// NewMetricsServer creates a MetricsServer listening on addr.
func NewMetricsServer(addr string, log *slog.Logger) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Start serves until Shutdown is called.
func (m *MetricsServer) Start() {
	m.log.Info("metrics listener started", "addr", m.server.Addr)
	if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		m.log.Error("metrics listener failed", "error", err)
	}
}

// Shutdown stops the listener gracefully.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.server.Shutdown(ctx)
}
