package platform

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is used when no interval is configured.
const DefaultPollInterval = time.Second

// ProcessPoller samples a ProcessDirectory and turns differences between
// consecutive snapshots into lifecycle events.
type ProcessPoller struct {
	dir      ProcessDirectory
	notifier *Notifier
	interval time.Duration
	logger   *logrus.Entry
}

// NewProcessPoller creates a poller. A non-positive interval selects DefaultPollInterval.
func NewProcessPoller(dir ProcessDirectory, interval time.Duration, logger *logrus.Entry) *ProcessPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ProcessPoller{
		dir:      dir,
		notifier: NewNotifier(),
		interval: interval,
		logger:   logger,
	}
}

// Subscribe implements EventSource.
func (p *ProcessPoller) Subscribe(kind EventKind, fn func(Event)) (Subscription, error) {
	return p.notifier.Subscribe(kind, fn)
}

// Run polls until ctx is cancelled.
func (p *ProcessPoller) Run(ctx context.Context) error {
	prev, err := p.dir.RunningApplications(ctx)
	if err != nil {
		p.logger.WithError(err).Warn("Initial process snapshot failed")
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		curr, err := p.dir.RunningApplications(ctx)
		if err != nil {
			p.logger.WithError(err).Debug("Process snapshot failed")
			continue
		}
		for _, ev := range DiffProcesses(prev, curr) {
			p.logger.WithFields(logrus.Fields{
				"event":  ev.Kind,
				"bundle": ev.BundleID,
				"pid":    ev.PID,
			}).Debug("Lifecycle event")
			p.notifier.Post(ev)
		}
		prev = curr
	}
}

// DiffProcesses compares two process snapshots keyed by PID and returns the
// lifecycle events that explain the difference.
func DiffProcesses(prev, curr []RunningApp) []Event {
	prevByPID := make(map[int]RunningApp, len(prev))
	for _, app := range prev {
		prevByPID[app.PID] = app
	}
	currByPID := make(map[int]struct{}, len(curr))
	for _, app := range curr {
		currByPID[app.PID] = struct{}{}
	}

	var events []Event
	for _, app := range curr {
		ev := Event{BundleID: app.BundleID, PID: app.PID}
		old, existed := prevByPID[app.PID]
		switch {
		case !existed && !app.FinishedLaunching:
			ev.Kind = EventWillLaunch
			events = append(events, ev)
		case !existed:
			ev.Kind = EventDidLaunch
			events = append(events, ev)
		case !old.FinishedLaunching && app.FinishedLaunching:
			ev.Kind = EventDidLaunch
			events = append(events, ev)
		}
		if existed && old.Active != app.Active {
			ev.Kind = EventDidDeactivate
			if app.Active {
				ev.Kind = EventDidActivate
			}
			events = append(events, ev)
		} else if !existed && app.Active {
			ev.Kind = EventDidActivate
			events = append(events, ev)
		}
	}
	for _, app := range prev {
		if _, ok := currByPID[app.PID]; !ok {
			events = append(events, Event{Kind: EventDidTerminate, BundleID: app.BundleID, PID: app.PID})
		}
	}
	return events
}
