package dock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/monitoring"
	"github.com/mj1618/dock-cli/internal/platform"
)

// Options configures a Reconciler.
type Options struct {
	// Domain is the preferences domain holding the pinned items.
	Domain string
	// IncludeOthers also merges the persistent-others list.
	IncludeOthers bool
	// CollapseNotifications sends one DidUpdate per reload instead of one
	// after each merge step.
	CollapseNotifications bool
}

// Reconciler merges running applications and pinned entries into an
// ItemStore. It is not safe for concurrent use; the Engine runs it on its
// queue goroutine.
type Reconciler struct {
	store    *model.ItemStore
	procs    platform.ProcessDirectory
	prefs    platform.PreferencesStore
	icons    platform.IconResolver
	badges   *BadgeRefresher
	delegate Delegate
	opts     Options
	logger   *logrus.Entry
	metrics  *monitoring.Metrics

	// pinned is the last persistent identity set read successfully.
	pinned map[model.Identity]struct{}
}

// NewReconciler builds a reconciler over the given backends. delegate,
// badges, logger and metrics may be nil.
func NewReconciler(store *model.ItemStore, p *platform.Provider, badges *BadgeRefresher, delegate Delegate, opts Options, logger *logrus.Entry, metrics *monitoring.Metrics) *Reconciler {
	if logger == nil {
		logger = logging.NewLogger("reconciler")
	}
	if delegate == nil {
		delegate = DelegateFuncs{}
	}
	r := &Reconciler{
		store:    store,
		badges:   badges,
		delegate: delegate,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
	}
	if p != nil {
		r.procs = p.Processes
		r.prefs = p.Preferences
		r.icons = p.Icons
	}
	return r
}

// Reload runs one reconciliation pass. Source failures are logged and
// returned joined, but the pass always completes and always notifies.
func (r *Reconciler) Reload(ctx context.Context) error {
	start := time.Now()
	defer func() { r.metrics.ObserveReload(time.Since(start)) }()

	apps, alive, runErr := r.readRunning(ctx)
	running := make(map[model.Identity]platform.RunningApp, len(apps))
	for _, app := range apps {
		running[model.Identity(app.BundleID)] = app
	}
	snap, prefErr := r.readPersistent()

	pinned := r.pinned
	if prefErr == nil {
		pinned = snap.Identities()
		r.pinned = pinned
	}

	// Prune against every reported process, not only eligible ones: a
	// running-only item survives while its process exists.
	removed := r.store.RemoveWhere(func(item *model.DockItem) bool {
		_, isAlive := alive[item.Identity()]
		_, isPinned := pinned[item.Identity()]
		return !isAlive && !isPinned
	})
	for _, item := range removed {
		r.logger.WithField("identity", item.Identity()).Debug("Removed dock item")
	}

	for _, item := range r.store.All() {
		_, isRunning := running[item.Identity()]
		_, isAlive := alive[item.Identity()]
		_, isPinned := pinned[item.Identity()]
		if !isRunning && (!isAlive || isPinned) {
			item.ClearProcess()
		}
		if !isPinned {
			item.Persistent = false
		}
	}

	r.mergeRunning(apps)
	if !r.opts.CollapseNotifications {
		r.notify()
	}

	if snap != nil {
		r.mergePersistent(snap, running)
	}
	r.notify()

	if r.badges != nil {
		r.badges.Refresh(TriggerReload)
	}
	r.recordItems()

	return errors.Join(runErr, prefErr)
}

// readRunning returns the eligible running applications in the order the
// OS reported them, plus the bundle identifiers of every reported process.
// Only regular applications with a bundle identifier, name and icon are
// eligible. The first instance of a bundle wins.
func (r *Reconciler) readRunning(ctx context.Context) ([]platform.RunningApp, map[model.Identity]struct{}, error) {
	if r.procs == nil {
		return nil, nil, nil
	}
	all, err := r.procs.RunningApplications(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("Can't read running applications")
		return nil, nil, fmt.Errorf("running applications: %w", err)
	}
	alive := make(map[model.Identity]struct{}, len(all))
	seen := make(map[string]bool, len(all))
	apps := make([]platform.RunningApp, 0, len(all))
	for _, app := range all {
		if app.BundleID != "" {
			alive[model.Identity(app.BundleID)] = struct{}{}
		}
		if !eligible(app) || seen[app.BundleID] {
			continue
		}
		seen[app.BundleID] = true
		apps = append(apps, app)
	}
	return apps, alive, nil
}

func eligible(app platform.RunningApp) bool {
	return app.Policy == platform.ActivationPolicyRegular &&
		app.BundleID != "" &&
		app.Name != "" &&
		!app.Icon.IsZero()
}

func (r *Reconciler) readPersistent() (*PersistentSnapshot, error) {
	if r.prefs == nil {
		return nil, fmt.Errorf("persistent items: %w", ErrDomainNotFound)
	}
	domain, err := r.prefs.PersistentDomain(r.opts.Domain)
	if err != nil {
		r.logger.WithError(err).WithField("domain", r.opts.Domain).Warn("Can't read dock preferences")
		return nil, fmt.Errorf("persistent items: %w", err)
	}
	snap, err := ParsePersistentDomain(domain, r.opts.IncludeOthers)
	if err != nil {
		r.logger.WithError(err).WithField("domain", r.opts.Domain).Warn("Can't parse dock preferences")
		return nil, fmt.Errorf("persistent items: %w", err)
	}
	for _, skipped := range snap.Skipped {
		entry := r.logger.WithFields(logrus.Fields{
			"list":   skipped.List,
			"index":  skipped.Index,
			"reason": skipped.Reason,
		})
		if skipped.IsSpacer() {
			entry.Debug("Skipping spacer tile")
			continue
		}
		entry.Warn("Skipping malformed persistent entry")
		r.metrics.SkippedEntry(skipped.Reason)
	}
	return snap, nil
}

func (r *Reconciler) mergeRunning(apps []platform.RunningApp) {
	for _, app := range apps {
		r.store.Upsert(model.Identity(app.BundleID), func(item *model.DockItem, created bool) {
			item.Name = app.Name
			item.Icon = app.Icon
			item.PID = app.PID
			item.Launching = !app.FinishedLaunching
			if created {
				item.Kind = model.KindApp
				item.Path = app.BundlePath
				r.logger.WithFields(logrus.Fields{
					"identity": item.Identity(),
					"pid":      app.PID,
				}).Debug("Added running item")
			}
		})
	}
}

func (r *Reconciler) mergePersistent(snap *PersistentSnapshot, running map[model.Identity]platform.RunningApp) {
	for _, entry := range snap.Entries {
		r.store.Upsert(entry.Identity, func(item *model.DockItem, created bool) {
			item.Persistent = true
			item.Order = entry.Index
			if created {
				item.Name = entry.Label
				item.Kind = entry.Kind
				item.Path = entry.Path
				bundleID := ""
				if entry.Kind == model.KindApp {
					bundleID = string(entry.Identity)
				}
				item.Icon = ResolveIcon(r.icons, bundleID, entry.Path, entry.TileType)
				item.ClearProcess()
				r.logger.WithField("identity", item.Identity()).Debug("Added persistent item")
				return
			}
			if app, ok := running[entry.Identity]; ok {
				item.PID = app.PID
			}
		})
	}
}

func (r *Reconciler) notify() {
	r.delegate.DidUpdate(r.store.Views())
}

func (r *Reconciler) recordItems() {
	if r.metrics == nil {
		return
	}
	var runningCount, badged int
	for _, item := range r.store.All() {
		if item.IsRunning() {
			runningCount++
		}
		if item.HasBadge() {
			badged++
		}
	}
	r.metrics.SetItems(r.store.Len(), runningCount, badged)
}
