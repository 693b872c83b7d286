package dock

import (
	"github.com/sirupsen/logrus"

	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/monitoring"
	"github.com/mj1618/dock-cli/internal/platform"
)

// Badge refresh triggers, used as metric labels.
const (
	TriggerReload = "reload"
	TriggerTimer  = "timer"
	TriggerManual = "manual"
)

// BadgeRefresher re-reads badge counts for every item in a store.
type BadgeRefresher struct {
	store    *model.ItemStore
	source   platform.BadgeSource
	delegate Delegate
	logger   *logrus.Entry
	metrics  *monitoring.Metrics
}

// NewBadgeRefresher returns a refresher. A nil source clears every badge.
func NewBadgeRefresher(store *model.ItemStore, source platform.BadgeSource, delegate Delegate, logger *logrus.Entry, metrics *monitoring.Metrics) *BadgeRefresher {
	if logger == nil {
		logger = logging.NewLogger("badges")
	}
	if delegate == nil {
		delegate = DelegateFuncs{}
	}
	return &BadgeRefresher{
		store:    store,
		source:   source,
		delegate: delegate,
		logger:   logger,
		metrics:  metrics,
	}
}

// Refresh looks up each item's badge by name, stores the result, and
// notifies the delegate with the items that carry a non-zero badge. The
// badged views are also returned.
func (b *BadgeRefresher) Refresh(trigger string) []model.ItemView {
	var badged []*model.DockItem
	for _, item := range b.store.All() {
		item.Badge = b.lookup(item.Name)
		if item.HasBadge() {
			badged = append(badged, item)
		}
	}
	views := model.Views(badged)
	b.logger.WithFields(logrus.Fields{
		"trigger": trigger,
		"badged":  len(views),
	}).Debug("Refreshed badges")
	b.metrics.BadgeRefresh(trigger)
	b.delegate.DidUpdateBadge(views)
	return views
}

func (b *BadgeRefresher) lookup(name string) *int {
	if b.source == nil || name == "" {
		return nil
	}
	n, ok := b.source.BadgeCount(name)
	if !ok {
		return nil
	}
	return &n
}
