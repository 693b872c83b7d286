// Package monitoring exposes Prometheus metrics for the dock engine.
package monitoring

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Reloads        prometheus.Counter
	ReloadDuration prometheus.Histogram
	Items          prometheus.Gauge
	RunningItems   prometheus.Gauge
	BadgedItems    prometheus.Gauge
	BadgeRefreshes *prometheus.CounterVec
	SkippedEntries *prometheus.CounterVec
	Launches       *prometheus.CounterVec
	Events         *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Reloads: factory.NewCounter(prometheus.CounterOpts{
			Name: "dock_reloads_total",
			Help: "Total number of reconciliation passes",
		}),
		ReloadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dock_reload_duration_seconds",
			Help:    "Duration of reconciliation passes",
			Buckets: prometheus.DefBuckets,
		}),
		Items: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dock_items",
			Help: "Number of items in the dock",
		}),
		RunningItems: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dock_running_items",
			Help: "Number of dock items with a running process",
		}),
		BadgedItems: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dock_badged_items",
			Help: "Number of dock items carrying a non-zero badge",
		}),
		BadgeRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dock_badge_refreshes_total",
				Help: "Total number of badge refreshes by trigger",
			},
			[]string{"trigger"},
		),
		SkippedEntries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dock_skipped_entries_total",
				Help: "Persistent entries skipped because they were malformed",
			},
			[]string{"reason"},
		),
		Launches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dock_launches_total",
				Help: "Launch requests by result",
			},
			[]string{"result"},
		),
		Events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dock_lifecycle_events_total",
				Help: "Application lifecycle events received by kind",
			},
			[]string{"kind"},
		),
		registry: reg,
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ObserveReload records one reconciliation pass.
func (m *Metrics) ObserveReload(d time.Duration) {
	if m == nil {
		return
	}
	m.Reloads.Inc()
	m.ReloadDuration.Observe(d.Seconds())
}

// SetItems records the current dock composition.
func (m *Metrics) SetItems(total, running, badged int) {
	if m == nil {
		return
	}
	m.Items.Set(float64(total))
	m.RunningItems.Set(float64(running))
	m.BadgedItems.Set(float64(badged))
}

// BadgeRefresh records a badge refresh for trigger ("reload", "timer" or "manual").
func (m *Metrics) BadgeRefresh(trigger string) {
	if m == nil {
		return
	}
	m.BadgeRefreshes.WithLabelValues(trigger).Inc()
}

// SkippedEntry records a malformed persistent entry.
func (m *Metrics) SkippedEntry(reason string) {
	if m == nil {
		return
	}
	m.SkippedEntries.WithLabelValues(reason).Inc()
}

// Launch records a launch request outcome.
func (m *Metrics) Launch(accepted bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.Launches.WithLabelValues(result).Inc()
}

// Event records a lifecycle event.
func (m *Metrics) Event(kind string) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(kind).Inc()
}
