package model

import "sort"

// ItemStore is an identity-indexed collection of dock items. Records are
// owned by the store and mutated in place, so a *DockItem obtained from it
// stays valid across passes until the item is removed.
//
// ItemStore is not safe for concurrent use; callers confine it to a single
// goroutine.
type ItemStore struct {
	items   map[Identity]*DockItem
	nextSeq int
}

// NewItemStore returns an empty store.
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[Identity]*DockItem)}
}

// Upsert applies fn to the item with the given identity. When no such item
// exists a default record carrying the identity is created, passed to fn
// with created=true, and then added to the store.
func (s *ItemStore) Upsert(id Identity, fn func(item *DockItem, created bool)) *DockItem {
	if item, ok := s.items[id]; ok {
		if fn != nil {
			fn(item, false)
		}
		return item
	}
	item := &DockItem{identity: id, seq: s.nextSeq, Kind: KindApp}
	if id.IsFile() {
		item.Kind = KindFile
	}
	s.nextSeq++
	if fn != nil {
		fn(item, true)
	}
	s.items[id] = item
	return item
}

// RemoveWhere deletes every item matching pred and returns the removed records.
func (s *ItemStore) RemoveWhere(pred func(item *DockItem) bool) []*DockItem {
	var removed []*DockItem
	for id, item := range s.items {
		if pred(item) {
			removed = append(removed, item)
			delete(s.items, id)
		}
	}
	sortItems(removed)
	return removed
}

// Get returns the live record for id.
func (s *ItemStore) Get(id Identity) (*DockItem, bool) {
	item, ok := s.items[id]
	return item, ok
}

// Len returns the number of items.
func (s *ItemStore) Len() int { return len(s.items) }

// All returns the items in presentation order: persistent items by Order,
// then running-only items in discovery order.
func (s *ItemStore) All() []*DockItem {
	items := make([]*DockItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sortItems(items)
	return items
}

// Views returns value snapshots of All.
func (s *ItemStore) Views() []ItemView {
	return Views(s.All())
}

// Views converts live records to snapshots, preserving order.
func Views(items []*DockItem) []ItemView {
	views := make([]ItemView, len(items))
	for i, item := range items {
		views[i] = item.View()
	}
	return views
}

func sortItems(items []*DockItem) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Persistent != b.Persistent {
			return a.Persistent
		}
		if a.Persistent && a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.seq < b.seq
	})
}
