package dock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/monitoring"
	"github.com/mj1618/dock-cli/internal/platform"
)

var (
	// ErrStarted is returned when an operation requires a stopped engine.
	ErrStarted = errors.New("dock engine already started")
	// ErrNotStarted is returned when an operation requires a running engine.
	ErrNotStarted = errors.New("dock engine not started")
)

// EngineOptions configures an Engine.
type EngineOptions struct {
	Options
	// BadgeRefresh is the periodic badge refresh interval; 0 disables it.
	BadgeRefresh time.Duration
	// QueueSize bounds pending tasks; 0 selects DefaultQueueSize.
	QueueSize int
}

// Engine owns the item store and runs every mutation on its queue.
type Engine struct {
	store      *model.ItemStore
	events     platform.EventSource
	reconciler *Reconciler
	badges     *BadgeRefresher
	launcher   *Launcher
	queue      *Queue
	bridge     *Bridge
	opts       EngineOptions
	logger     *logrus.Entry

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewEngine wires a store, reconciler, badge refresher, launcher and
// notification bridge over p. delegate and metrics may be nil.
func NewEngine(p *platform.Provider, delegate Delegate, opts EngineOptions, logger *logrus.Entry, metrics *monitoring.Metrics) *Engine {
	if logger == nil {
		logger = logging.NewLogger("dock")
	}
	if p == nil {
		p = &platform.Provider{}
	}
	store := model.NewItemStore()
	badges := NewBadgeRefresher(store, p.Badges, delegate, logger.WithField("part", "badges"), metrics)
	e := &Engine{
		store:      store,
		events:     p.Events,
		badges:     badges,
		reconciler: NewReconciler(store, p, badges, delegate, opts.Options, logger.WithField("part", "reconciler"), metrics),
		launcher:   NewLauncher(p.Workspace, logger.WithField("part", "launcher"), metrics),
		queue:      NewQueue(opts.QueueSize),
		opts:       opts,
		logger:     logger,
		ctx:        context.Background(),
	}
	e.bridge = NewBridge(p.Events, e.queue, e.reloadTask, e.refreshTask, logger.WithField("part", "bridge"), metrics)
	return e
}

func (e *Engine) reloadTask() {
	e.mu.Lock()
	ctx := e.ctx
	e.mu.Unlock()
	_ = e.reconciler.Reload(ctx)
}

func (e *Engine) refreshTask() {
	e.badges.Refresh(TriggerTimer)
}

// Start registers for lifecycle notifications, arms the badge timer,
// starts the queue, and enqueues the initial reload. Event sources that
// need a background loop are run until Stop.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return ErrStarted
	}

	// A queue runs once; a restart after Stop gets a fresh one.
	select {
	case <-e.queue.Stopped():
		e.queue = NewQueue(e.opts.QueueSize)
		e.bridge.attach(e.queue)
	default:
	}

	ctx, cancel := context.WithCancel(ctx)
	if err := e.bridge.Register(); err != nil {
		cancel()
		return err
	}
	e.ctx, e.cancel, e.started = ctx, cancel, true

	q := e.queue
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		q.Run(ctx)
	}()
	if r, ok := e.events.(platform.Runnable); ok {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				e.logger.WithError(err).Warn("Event source stopped")
			}
		}()
	}

	e.bridge.SetRefreshInterval(e.opts.BadgeRefresh)
	e.bridge.RequestReload()
	e.logger.WithFields(logrus.Fields{
		"domain":        e.opts.Domain,
		"badge_refresh": e.opts.BadgeRefresh,
	}).Info("Dock engine started")
	return nil
}

// Stop cancels subscriptions and the timer, then waits for in-flight work.
// It is safe to call more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	cancel := e.cancel
	e.mu.Unlock()

	e.bridge.Unregister()
	cancel()
	e.wg.Wait()
	e.logger.Info("Dock engine stopped")
}

// Reload enqueues a reconciliation pass.
func (e *Engine) Reload() bool {
	return e.bridge.RequestReload()
}

// RefreshBadges enqueues a badge refresh.
func (e *Engine) RefreshBadges() bool {
	return e.bridge.RequestBadgeRefresh()
}

// ReloadOnce runs a single synchronous pass on an engine that has not been
// started. It suits one-shot commands that never register for events.
func (e *Engine) ReloadOnce(ctx context.Context) ([]model.ItemView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return nil, ErrStarted
	}
	err := e.reconciler.Reload(ctx)
	return e.store.Views(), err
}

// Do runs fn with the store on the queue goroutine and waits for it.
// fn must not retain item pointers.
func (e *Engine) Do(ctx context.Context, fn func(store *model.ItemStore)) error {
	e.mu.Lock()
	started, q := e.started, e.queue
	e.mu.Unlock()
	if !started {
		return ErrNotStarted
	}
	return q.Do(ctx, func() { fn(e.store) })
}

// Items returns the current snapshot, read on the queue goroutine.
func (e *Engine) Items(ctx context.Context) ([]model.ItemView, error) {
	var items []model.ItemView
	err := e.Do(ctx, func(store *model.ItemStore) { items = store.Views() })
	return items, err
}

// SyncReload runs a reconciliation pass on the queue and waits for it.
func (e *Engine) SyncReload(ctx context.Context) ([]model.ItemView, error) {
	var (
		items []model.ItemView
		err   error
	)
	doErr := e.Do(ctx, func(store *model.ItemStore) {
		err = e.reconciler.Reload(ctx)
		items = store.Views()
	})
	if doErr != nil {
		return nil, doErr
	}
	return items, err
}

// SyncRefreshBadges refreshes badges on the queue and returns the badged items.
func (e *Engine) SyncRefreshBadges(ctx context.Context) ([]model.ItemView, error) {
	var badged []model.ItemView
	err := e.Do(ctx, func(*model.ItemStore) { badged = e.badges.Refresh(TriggerManual) })
	return badged, err
}

// Launch asks the OS to open or launch id.
func (e *Engine) Launch(id model.Identity) bool {
	return e.launcher.Launch(id)
}

// SetRefreshInterval replaces the badge timer; 0 disables it.
func (e *Engine) SetRefreshInterval(d time.Duration) {
	e.bridge.SetRefreshInterval(d)
}

// WatchIntervals applies refresh interval changes from ch until ctx is done.
func (e *Engine) WatchIntervals(ctx context.Context, ch <-chan time.Duration) {
	e.bridge.WatchIntervals(ctx, ch)
}

// Bridge exposes the notification bridge.
func (e *Engine) Bridge() *Bridge {
	return e.bridge
}
