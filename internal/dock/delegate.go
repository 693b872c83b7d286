package dock

import (
	"sync"
	"time"

	"github.com/mj1618/dock-cli/internal/model"
)

// Delegate receives dock snapshots. Calls arrive on the engine's queue
// goroutine and may repeat the same logical state.
type Delegate interface {
	// DidUpdate receives every item in presentation order.
	DidUpdate(items []model.ItemView)
	// DidUpdateBadge receives the items currently carrying a non-zero badge.
	DidUpdateBadge(items []model.ItemView)
}

// DelegateFuncs adapts plain functions to Delegate. Nil fields are skipped.
type DelegateFuncs struct {
	OnUpdate func(items []model.ItemView)
	OnBadge  func(items []model.ItemView)
}

func (d DelegateFuncs) DidUpdate(items []model.ItemView) {
	if d.OnUpdate != nil {
		d.OnUpdate(items)
	}
}

func (d DelegateFuncs) DidUpdateBadge(items []model.ItemView) {
	if d.OnBadge != nil {
		d.OnBadge(items)
	}
}

// SnapshotDelegate remembers the latest snapshots for readers on other
// goroutines and forwards every call to an optional next delegate.
type SnapshotDelegate struct {
	next Delegate

	mu        sync.RWMutex
	items     []model.ItemView
	badged    []model.ItemView
	updatedAt time.Time
	updates   int
}

// NewSnapshotDelegate returns a delegate that records snapshots. next may be nil.
func NewSnapshotDelegate(next Delegate) *SnapshotDelegate {
	return &SnapshotDelegate{next: next}
}

func (s *SnapshotDelegate) DidUpdate(items []model.ItemView) {
	s.mu.Lock()
	s.items = items
	s.updatedAt = time.Now()
	s.updates++
	s.mu.Unlock()
	if s.next != nil {
		s.next.DidUpdate(items)
	}
}

func (s *SnapshotDelegate) DidUpdateBadge(items []model.ItemView) {
	s.mu.Lock()
	s.badged = items
	s.updatedAt = time.Now()
	s.mu.Unlock()
	if s.next != nil {
		s.next.DidUpdateBadge(items)
	}
}

// Items returns the latest full snapshot.
func (s *SnapshotDelegate) Items() []model.ItemView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ItemView(nil), s.items...)
}

// Badged returns the latest badge snapshot.
func (s *SnapshotDelegate) Badged() []model.ItemView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ItemView(nil), s.badged...)
}

// UpdatedAt returns when the last snapshot arrived.
func (s *SnapshotDelegate) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Updates returns how many DidUpdate calls were received.
func (s *SnapshotDelegate) Updates() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updates
}
