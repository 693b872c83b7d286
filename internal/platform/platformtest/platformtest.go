// Package platformtest provides in-memory platform backends for tests.
package platformtest

import (
	"context"
	"sync"

	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/platform"
)

// Fixture wires every fake into a platform.Provider.
type Fixture struct {
	Provider    *platform.Provider
	Processes   *Processes
	Notifier    *platform.Notifier
	Preferences *Preferences
	Icons       *Icons
	Badges      *Badges
	Workspace   *Workspace
}

// NewFixture returns a provider backed entirely by fakes.
func NewFixture() *Fixture {
	f := &Fixture{
		Processes:   &Processes{},
		Notifier:    platform.NewNotifier(),
		Preferences: &Preferences{Domains: make(map[string]map[string]any)},
		Icons:       &Icons{AppPaths: make(map[string]string)},
		Badges:      &Badges{counts: make(map[string]int)},
		Workspace:   &Workspace{Accept: true},
	}
	f.Provider = &platform.Provider{
		Processes:   f.Processes,
		Events:      f.Notifier,
		Preferences: f.Preferences,
		Icons:       f.Icons,
		Badges:      f.Badges,
		Workspace:   f.Workspace,
	}
	return f
}

// App returns a regular, finished-launching application.
func App(bundleID, name string, pid int) platform.RunningApp {
	return platform.RunningApp{
		BundleID:          bundleID,
		Name:              name,
		BundlePath:        "/Applications/" + name + ".app",
		Icon:              model.Icon{Path: "/Applications/" + name + ".app"},
		PID:               pid,
		FinishedLaunching: true,
		Policy:            platform.ActivationPolicyRegular,
	}
}

// Processes is a settable process directory.
type Processes struct {
	mu   sync.Mutex
	apps []platform.RunningApp
	err  error
}

// Set replaces the running snapshot.
func (p *Processes) Set(apps ...platform.RunningApp) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.apps = append([]platform.RunningApp(nil), apps...)
	p.err = nil
}

// Fail makes the next reads return err.
func (p *Processes) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *Processes) RunningApplications(context.Context) ([]platform.RunningApp, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return append([]platform.RunningApp(nil), p.apps...), nil
}

// Preferences is a map of preference domains.
type Preferences struct {
	mu      sync.Mutex
	Domains map[string]map[string]any
	Err     error
}

// SetDomain replaces a domain's contents.
func (p *Preferences) SetDomain(name string, domain map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Domains[name] = domain
}

// Fail makes reads return err until it is called again with nil.
func (p *Preferences) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Err = err
}

func (p *Preferences) PersistentDomain(name string) (map[string]any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	d, ok := p.Domains[name]
	if !ok {
		return nil, platform.ErrDomainNotFound
	}
	return d, nil
}

// Icons resolves bundle identifiers from a fixed table.
type Icons struct {
	AppPaths map[string]string
}

func (i *Icons) ApplicationPath(bundleID string) (string, bool) {
	p, ok := i.AppPaths[bundleID]
	return p, ok
}

func (i *Icons) IconForFile(path string) (model.Icon, bool) {
	if path == "" {
		return model.Icon{}, false
	}
	return model.Icon{Path: path}, true
}

func (i *Icons) GenericIcon(kind string) (model.Icon, bool) {
	return model.Icon{Path: "generic/" + kind, Kind: kind}, true
}

// Badges is a settable badge table keyed by item name.
type Badges struct {
	mu      sync.Mutex
	counts  map[string]int
	queries []string
}

// Queries returns every name looked up so far.
func (b *Badges) Queries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

// Set records a badge count for name.
func (b *Badges) Set(name string, count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counts[name] = count
}

// Clear removes the badge for name.
func (b *Badges) Clear(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.counts, name)
}

func (b *Badges) BadgeCount(name string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queries = append(b.queries, name)
	n, ok := b.counts[name]
	return n, ok
}

// Workspace records open and launch requests.
type Workspace struct {
	mu       sync.Mutex
	Accept   bool
	opened   []string
	launched []string
}

// Requests returns the paths opened and bundle identifiers launched so far.
func (w *Workspace) Requests() (opened, launched []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.opened...), append([]string(nil), w.launched...)
}

func (w *Workspace) OpenFile(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opened = append(w.opened, path)
	return w.Accept
}

func (w *Workspace) LaunchApplication(bundleID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.launched = append(w.launched, bundleID)
	return w.Accept
}

// DockDomain builds a dock preferences domain whose persistent-apps list
// holds one tile per (bundle identifier, label) pair.
func DockDomain(apps ...[2]string) map[string]any {
	tiles := make([]any, 0, len(apps))
	for _, a := range apps {
		tiles = append(tiles, AppTile(a[0], a[1]))
	}
	return map[string]any{"persistent-apps": tiles}
}

// AppTile builds a single persistent-apps record.
func AppTile(bundleID, label string) map[string]any {
	return map[string]any{
		"tile-type": "file-tile",
		"tile-data": map[string]any{
			"bundle-identifier": bundleID,
			"file-label":        label,
		},
	}
}
