package dock

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/dock-cli/internal/platform"
)

type failingEvents struct {
	*platform.Notifier
	failOn platform.EventKind
}

func (f failingEvents) Subscribe(kind platform.EventKind, fn func(platform.Event)) (platform.Subscription, error) {
	if kind == f.failOn {
		return nil, errors.New("refused")
	}
	return f.Notifier.Subscribe(kind, fn)
}

func newTestBridge(t *testing.T, events platform.EventSource) (*Bridge, *atomic.Int32, *atomic.Int32) {
	t.Helper()
	q := NewQueue(0)
	startQueue(t, q)
	var reloads, refreshes atomic.Int32
	b := NewBridge(events, q, func() { reloads.Add(1) }, func() { refreshes.Add(1) }, nil, nil)
	t.Cleanup(b.Unregister)
	return b, &reloads, &refreshes
}

func TestBridge_RegistersOnePerKind(t *testing.T) {
	n := platform.NewNotifier()
	b, reloads, _ := newTestBridge(t, n)
	require.NoError(t, b.Register())
	require.NoError(t, b.Register())

	assert.Equal(t, len(platform.LifecycleEvents), b.Subscriptions())
	for _, kind := range platform.LifecycleEvents {
		assert.Equal(t, 1, n.Subscribers(kind), kind)
	}

	n.Post(platform.Event{Kind: platform.EventDidLaunch, BundleID: "com.apple.Safari"})
	assert.Eventually(t, func() bool { return reloads.Load() >= 1 }, time.Second, 5*time.Millisecond)
}

func TestBridge_UnregisterStopsDelivery(t *testing.T) {
	n := platform.NewNotifier()
	b, reloads, _ := newTestBridge(t, n)
	require.NoError(t, b.Register())
	b.SetRefreshInterval(time.Hour)

	b.Unregister()
	assert.Equal(t, 0, b.Subscriptions())
	for _, kind := range platform.LifecycleEvents {
		assert.Equal(t, 0, n.Subscribers(kind), kind)
	}

	n.Post(platform.Event{Kind: platform.EventDidTerminate})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), reloads.Load())
}

func TestBridge_IntervalIgnoredAfterUnregister(t *testing.T) {
	b, _, refreshes := newTestBridge(t, platform.NewNotifier())
	require.NoError(t, b.Register())
	b.Unregister()

	b.SetRefreshInterval(5 * time.Millisecond)
	assert.Equal(t, time.Duration(0), b.RefreshInterval())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), refreshes.Load(), "no timer runs after unregister")

	require.NoError(t, b.Register())
	b.SetRefreshInterval(5 * time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, b.RefreshInterval(), "registering again reopens the bridge")
	assert.Eventually(t, func() bool { return refreshes.Load() >= 1 }, time.Second, 5*time.Millisecond)
}

func TestBridge_RegisterFailureRollsBack(t *testing.T) {
	n := platform.NewNotifier()
	b, _, _ := newTestBridge(t, failingEvents{Notifier: n, failOn: platform.EventDidDeactivate})

	require.Error(t, b.Register())
	assert.Equal(t, 0, b.Subscriptions())
	for _, kind := range platform.LifecycleEvents {
		assert.Equal(t, 0, n.Subscribers(kind), kind)
	}
}

func TestBridge_RegisterWithoutSource(t *testing.T) {
	b, _, _ := newTestBridge(t, nil)
	assert.Error(t, b.Register())
}

func TestBridge_TimerReschedule(t *testing.T) {
	b, _, refreshes := newTestBridge(t, platform.NewNotifier())

	b.SetRefreshInterval(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, b.RefreshInterval())
	assert.Eventually(t, func() bool { return refreshes.Load() >= 2 }, time.Second, 5*time.Millisecond)

	b.SetRefreshInterval(0)
	assert.Equal(t, time.Duration(0), b.RefreshInterval())
	time.Sleep(20 * time.Millisecond)
	settled := refreshes.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, refreshes.Load(), "a zero interval disables the timer")

	b.SetRefreshInterval(10 * time.Millisecond)
	assert.Eventually(t, func() bool { return refreshes.Load() > settled }, time.Second, 5*time.Millisecond)
}

func TestBridge_WatchIntervals(t *testing.T) {
	b, _, _ := newTestBridge(t, platform.NewNotifier())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan time.Duration)
	done := make(chan struct{})
	go func() {
		b.WatchIntervals(ctx, ch)
		close(done)
	}()

	ch <- time.Minute
	assert.Eventually(t, func() bool { return b.RefreshInterval() == time.Minute }, time.Second, 5*time.Millisecond)
	ch <- 0
	assert.Eventually(t, func() bool { return b.RefreshInterval() == 0 }, time.Second, 5*time.Millisecond)

	close(ch)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WatchIntervals did not return after channel close")
	}
}
