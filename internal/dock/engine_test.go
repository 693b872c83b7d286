package dock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/dock-cli/internal/config"
	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/platform"
	"github.com/mj1618/dock-cli/internal/platform/platformtest"
)

func newTestEngine(t *testing.T, opts EngineOptions) (*Engine, *platformtest.Fixture, *SnapshotDelegate) {
	t.Helper()
	if opts.Domain == "" {
		opts.Domain = config.DefaultDomain
	}
	fx := platformtest.NewFixture()
	fx.Preferences.SetDomain(config.DefaultDomain, platformtest.DockDomain(
		[2]string{"com.apple.Safari", "Safari"},
		[2]string{"com.apple.mail", "Mail"},
	))
	snap := NewSnapshotDelegate(nil)
	return NewEngine(fx.Provider, snap, opts, nil, nil), fx, snap
}

func TestEngine_StartLoadsInitialState(t *testing.T) {
	e, fx, snap := newTestEngine(t, EngineOptions{})
	fx.Processes.Set(platformtest.App("com.apple.Terminal", "Terminal", 42))

	require.NoError(t, e.Start(context.Background()))
	defer e.Stop()

	assert.Eventually(t, func() bool { return len(snap.Items()) == 3 }, time.Second, 5*time.Millisecond)
	items, err := e.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Identity{"com.apple.Safari", "com.apple.mail", "com.apple.Terminal"}, identities(items))
}

func TestEngine_LaunchScenario(t *testing.T) {
	e, fx, snap := newTestEngine(t, EngineOptions{})
	require.NoError(t, e.Start(context.Background()))
	defer e.Stop()

	_, err := e.SyncReload(context.Background())
	require.NoError(t, err)

	assert.True(t, e.Launch("com.apple.mail"))
	_, launched := fx.Workspace.Requests()
	assert.Equal(t, []string{"com.apple.mail"}, launched)

	fx.Processes.Set(platformtest.App("com.apple.mail", "Mail", 77))
	fx.Notifier.Post(platform.Event{Kind: platform.EventDidLaunch, BundleID: "com.apple.mail", PID: 77})

	assert.Eventually(t, func() bool {
		for _, item := range snap.Items() {
			if item.Identity == "com.apple.mail" {
				return item.PID == 77
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	fx.Processes.Set()
	fx.Notifier.Post(platform.Event{Kind: platform.EventDidTerminate, BundleID: "com.apple.mail", PID: 77})
	assert.Eventually(t, func() bool {
		items := snap.Items()
		return len(items) == 2 && !items[1].IsRunning()
	}, time.Second, 5*time.Millisecond)
}

func TestEngine_BadgeTimer(t *testing.T) {
	e, fx, snap := newTestEngine(t, EngineOptions{BadgeRefresh: 10 * time.Millisecond})
	require.NoError(t, e.Start(context.Background()))
	defer e.Stop()

	_, err := e.SyncReload(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Badged())

	fx.Badges.Set("Mail", 4)
	assert.Eventually(t, func() bool {
		badged := snap.Badged()
		return len(badged) == 1 && *badged[0].Badge == 4
	}, time.Second, 5*time.Millisecond)

	fx.Badges.Set("Mail", 0)
	assert.Eventually(t, func() bool { return len(snap.Badged()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestEngine_SyncRefreshBadges(t *testing.T) {
	e, fx, _ := newTestEngine(t, EngineOptions{})
	require.NoError(t, e.Start(context.Background()))
	defer e.Stop()

	_, err := e.SyncReload(context.Background())
	require.NoError(t, err)
	fx.Badges.Set("Safari", 1)

	badged, err := e.SyncRefreshBadges(context.Background())
	require.NoError(t, err)
	require.Len(t, badged, 1)
	assert.Equal(t, model.Identity("com.apple.Safari"), badged[0].Identity)
}

func TestEngine_StopTearsDown(t *testing.T) {
	e, fx, snap := newTestEngine(t, EngineOptions{BadgeRefresh: time.Hour})
	require.NoError(t, e.Start(context.Background()))
	_, err := e.SyncReload(context.Background())
	require.NoError(t, err)

	e.Stop()
	e.Stop()

	for _, kind := range platform.LifecycleEvents {
		assert.Equal(t, 0, fx.Notifier.Subscribers(kind), kind)
	}
	assert.Equal(t, time.Duration(0), e.Bridge().RefreshInterval())

	updates := snap.Updates()
	fx.Notifier.Post(platform.Event{Kind: platform.EventDidLaunch})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, updates, snap.Updates(), "no delegate calls after Stop")

	_, err = e.Items(context.Background())
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestEngine_RestartAfterStop(t *testing.T) {
	e, fx, snap := newTestEngine(t, EngineOptions{BadgeRefresh: time.Hour})
	require.NoError(t, e.Start(context.Background()))
	_, err := e.SyncReload(context.Background())
	require.NoError(t, err)
	e.Stop()

	require.NoError(t, e.Start(context.Background()))
	defer e.Stop()

	fx.Processes.Set(platformtest.App("com.apple.Terminal", "Terminal", 42))
	items, err := e.SyncReload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Identity{"com.apple.Safari", "com.apple.mail", "com.apple.Terminal"}, identities(items))
	assert.Equal(t, time.Hour, e.Bridge().RefreshInterval())

	for _, kind := range platform.LifecycleEvents {
		assert.Equal(t, 1, fx.Notifier.Subscribers(kind), kind)
	}
	fx.Processes.Set()
	fx.Notifier.Post(platform.Event{Kind: platform.EventDidTerminate, BundleID: "com.apple.Terminal"})
	assert.Eventually(t, func() bool { return len(snap.Items()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestEngine_StartTwice(t *testing.T) {
	e, _, _ := newTestEngine(t, EngineOptions{})
	require.NoError(t, e.Start(context.Background()))
	defer e.Stop()
	assert.ErrorIs(t, e.Start(context.Background()), ErrStarted)

	_, err := e.ReloadOnce(context.Background())
	assert.ErrorIs(t, err, ErrStarted)
}

func TestEngine_ReloadOnce(t *testing.T) {
	e, fx, snap := newTestEngine(t, EngineOptions{})
	fx.Badges.Set("Mail", 2)

	items, err := e.ReloadOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Identity{"com.apple.Safari", "com.apple.mail"}, identities(items))
	assert.Len(t, snap.Badged(), 1)
	assert.Equal(t, 2, snap.Updates())
}
