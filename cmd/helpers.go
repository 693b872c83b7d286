package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mj1618/dock-cli/internal/config"
	"github.com/mj1618/dock-cli/internal/dock"
	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/monitoring"
	"github.com/mj1618/dock-cli/internal/platform"
)

// newProvider builds the platform backends. Tests replace it with fakes.
var newProvider = platform.NewProvider

// engineOptions maps configuration onto engine options.
func engineOptions(c *config.Config) dock.EngineOptions {
	return dock.EngineOptions{
		Options: dock.Options{
			Domain:                c.Domain,
			IncludeOthers:         c.IncludeOthers,
			CollapseNotifications: c.CollapseNotifications,
		},
		BadgeRefresh: c.BadgeRefresh.Duration(),
	}
}

// newEngine builds an engine over the current platform using cfg.
func newEngine(delegate dock.Delegate, metrics *monitoring.Metrics) (*dock.Engine, error) {
	provider, err := newProvider(platform.ProviderOptions{PollInterval: cfg.PollInterval.Duration()})
	if err != nil {
		return nil, err
	}
	return dock.NewEngine(provider, delegate, engineOptions(cfg), logging.NewLogger("dock"), metrics), nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM or, when d
// is positive, after d.
func signalContext(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if d <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	return ctx, func() {
		cancel()
		stop()
	}
}

// watchConfig follows the config file and returns the badge refresh
// interval of every valid revision. The channel closes with ctx.
func watchConfig(ctx context.Context, path string) <-chan time.Duration {
	logger := logging.NewLogger("config")
	intervals := make(chan time.Duration, 1)

	w, err := config.NewWatcher(path, config.DefaultDebounce, logger)
	if err != nil {
		logger.WithError(err).Warn("Config file will not be watched")
		close(intervals)
		return intervals
	}
	go w.Start(ctx)

	go func() {
		defer close(intervals)
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-w.Changes():
				if !ok {
					return
				}
				select {
				case intervals <- c.BadgeRefresh.Duration():
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return intervals
}

// serveMetrics exposes metrics on addr until ctx is done. An empty addr
// does nothing.
func serveMetrics(ctx context.Context, metrics *monitoring.Metrics, addr string) {
	if addr == "" {
		return
	}
	logger := logging.NewLogger("metrics")
	go func() {
		logger.WithField("addr", addr).Info("Serving metrics")
		if err := metrics.Serve(ctx, addr); err != nil {
			logger.WithError(err).Warn("Metrics server stopped")
		}
	}()
}
