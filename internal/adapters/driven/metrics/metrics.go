// Package metrics records highlight activity as Prometheus metrics and
// exposes them over HTTP for scraping during watch mode.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

// Ensure Metrics implements the interface.
var _ driven.HighlightMetrics = (*Metrics)(nil)

// Pass statuses used as label values.
const (
	statusOK    = "ok"
	statusError = "error"
)

// Metrics holds the Prometheus collectors for highlight activity.
type Metrics struct {
	registry *prometheus.Registry

	PassesTotal    *prometheus.CounterVec
	MarkersTotal   *prometheus.CounterVec
	AppliesTotal   prometheus.Counter
	ClearedTotal   prometheus.Counter
	ApplyDuration  prometheus.Histogram
	CurrentMarkers prometheus.Gauge
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PassesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hilite_keyword_passes_total",
				Help: "Keyword passes by keyword and status (ok, error).",
			},
			[]string{"keyword", "status"},
		),
		MarkersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hilite_markers_inserted_total",
				Help: "Markers inserted by keyword.",
			},
			[]string{"keyword"},
		),
		AppliesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hilite_applies_total",
				Help: "Total full keyword list applications.",
			},
		),
		ClearedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hilite_markers_cleared_total",
				Help: "Markers removed before re-applying the keyword list.",
			},
		),
		ApplyDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hilite_apply_duration_seconds",
				Help:    "Duration of a full keyword list application in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		CurrentMarkers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hilite_markers",
				Help: "Markers present after the last application.",
			},
		),
	}

	m.registry.MustRegister(
		m.PassesTotal,
		m.MarkersTotal,
		m.AppliesTotal,
		m.ClearedTotal,
		m.ApplyDuration,
		m.CurrentMarkers,
	)
	return m
}

// ObservePass records the outcome of one keyword pass.
func (m *Metrics) ObservePass(keyword string, markers int, err error) {
	status := statusOK
	if err != nil {
		status = statusError
	}
	m.PassesTotal.WithLabelValues(keyword, status).Inc()
	m.MarkersTotal.WithLabelValues(keyword).Add(float64(markers))
}

// ObserveApply records a full application.
func (m *Metrics) ObserveApply(cleared, total int, duration time.Duration) {
	m.AppliesTotal.Inc()
	m.ClearedTotal.Add(float64(cleared))
	m.ApplyDuration.Observe(duration.Seconds())
	m.CurrentMarkers.Set(float64(total))
}

// Handler returns an HTTP handler serving the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving metrics on %s/metrics", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("stopping metrics server: %w", err)
		}
		return nil
	}
}
