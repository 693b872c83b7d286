package dock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/monitoring"
	"github.com/mj1618/dock-cli/internal/platform"
)

// Queue keys used by the bridge.
const (
	keyReload = "reload"
	keyBadges = "badges"
)

// Bridge turns lifecycle notifications and the badge timer into queued
// work. It holds one subscription per lifecycle event kind and at most one
// timer.
type Bridge struct {
	events  platform.EventSource
	queue   *Queue
	reload  func()
	refresh func()
	logger  *logrus.Entry
	metrics *monitoring.Metrics

	mu       sync.Mutex
	subs     []platform.Subscription
	interval time.Duration
	timer    *refreshTimer
	closed   bool
}

// NewBridge returns an unregistered bridge. reload and refresh run on q.
func NewBridge(events platform.EventSource, q *Queue, reload, refresh func(), logger *logrus.Entry, metrics *monitoring.Metrics) *Bridge {
	if logger == nil {
		logger = logging.NewLogger("bridge")
	}
	return &Bridge{
		events:  events,
		queue:   q,
		reload:  reload,
		refresh: refresh,
		logger:  logger,
		metrics: metrics,
	}
}

// Register subscribes to every lifecycle event kind. On failure the
// subscriptions made so far are cancelled. Registering twice is a no-op.
// Registering after Unregister reopens the bridge.
func (b *Bridge) Register() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.subs) > 0 {
		return nil
	}
	if b.events == nil {
		return fmt.Errorf("register lifecycle events: no event source")
	}
	subs := make([]platform.Subscription, 0, len(platform.LifecycleEvents))
	for _, kind := range platform.LifecycleEvents {
		sub, err := b.events.Subscribe(kind, b.handle)
		if err != nil {
			for _, s := range subs {
				s.Cancel()
			}
			return fmt.Errorf("subscribe %s: %w", kind, err)
		}
		subs = append(subs, sub)
	}
	b.subs = subs
	b.closed = false
	return nil
}

// attach replaces the queue that receives work. Used when the owning
// engine restarts with a fresh queue.
func (b *Bridge) attach(q *Queue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = q
}

func (b *Bridge) currentQueue() *Queue {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queue
}

func (b *Bridge) handle(ev platform.Event) {
	b.metrics.Event(string(ev.Kind))
	queued := b.currentQueue().Submit(keyReload, b.reload)
	b.logger.WithFields(logrus.Fields{
		"event":  ev.Kind,
		"bundle": ev.BundleID,
		"queued": queued,
	}).Debug("Lifecycle notification")
}

// RequestReload enqueues a reload pass.
func (b *Bridge) RequestReload() bool {
	return b.currentQueue().Submit(keyReload, b.reload)
}

// RequestBadgeRefresh enqueues a badge refresh.
func (b *Bridge) RequestBadgeRefresh() bool {
	return b.currentQueue().Submit(keyBadges, b.refresh)
}

// SetRefreshInterval replaces the badge timer. A non-positive interval
// disables periodic refresh. It does nothing once the bridge is
// unregistered.
func (b *Bridge) SetRefreshInterval(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		b.logger.WithField("interval", d).Debug("Ignoring interval change after unregister")
		return
	}
	if b.timer != nil {
		b.timer.stop()
		b.timer = nil
	}
	b.interval = d
	if d > 0 {
		b.timer = startRefreshTimer(d, func() { b.RequestBadgeRefresh() })
	}
	b.logger.WithField("interval", d).Debug("Badge refresh interval set")
}

// RefreshInterval returns the active badge timer interval, or 0 when disabled.
func (b *Bridge) RefreshInterval() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.interval
}

// Subscriptions returns the number of live lifecycle subscriptions.
func (b *Bridge) Subscriptions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// WatchIntervals applies every interval received on ch until ctx is done
// or ch is closed.
func (b *Bridge) WatchIntervals(ctx context.Context, ch <-chan time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-ch:
			if !ok {
				return
			}
			if d == b.RefreshInterval() {
				continue
			}
			b.logger.WithField("interval", d).Info("Badge refresh interval changed")
			b.SetRefreshInterval(d)
		}
	}
}

// Unregister cancels every subscription and the timer. Later
// notifications are not delivered and interval changes are ignored until
// the next Register.
func (b *Bridge) Unregister() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for _, s := range b.subs {
		s.Cancel()
	}
	b.subs = nil
	if b.timer != nil {
		b.timer.stop()
		b.timer = nil
	}
	b.interval = 0
}

type refreshTimer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func startRefreshTimer(d time.Duration, fire func()) *refreshTimer {
	t := &refreshTimer{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fire()
			}
		}
	}()
	return t
}

func (t *refreshTimer) stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
