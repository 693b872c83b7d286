package dock

import (
	"sync"

	"github.com/mj1618/dock-cli/internal/model"
)

type recorder struct {
	mu      sync.Mutex
	updates [][]model.ItemView
	badges  [][]model.ItemView
}

func (r *recorder) DidUpdate(items []model.ItemView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, items)
}

func (r *recorder) DidUpdateBadge(items []model.ItemView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.badges = append(r.badges, items)
}

func (r *recorder) counts() (updates, badges int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates), len(r.badges)
}

func (r *recorder) lastUpdate() []model.ItemView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.updates) == 0 {
		return nil
	}
	return r.updates[len(r.updates)-1]
}

func (r *recorder) lastBadges() []model.ItemView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.badges) == 0 {
		return nil
	}
	return r.badges[len(r.badges)-1]
}

func identities(items []model.ItemView) []model.Identity {
	ids := make([]model.Identity, len(items))
	for i, item := range items {
		ids[i] = item.Identity
	}
	return ids
}
