package platform

import (
	"fmt"
	"sync"
)

// Notifier is an in-process event center. It implements EventSource and
// lets backends and tests post lifecycle events.
type Notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[EventKind]map[int]func(Event)
}

// NewNotifier returns an empty event center.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[EventKind]map[int]func(Event))}
}

// Subscribe registers fn for events of the given kind.
func (n *Notifier) Subscribe(kind EventKind, fn func(Event)) (Subscription, error) {
	if fn == nil {
		return nil, fmt.Errorf("subscribe %s: nil handler", kind)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs[kind] == nil {
		n.subs[kind] = make(map[int]func(Event))
	}
	id := n.nextID
	n.nextID++
	n.subs[kind][id] = fn
	return &subscription{notifier: n, kind: kind, id: id}, nil
}

// Post delivers ev to every handler registered for its kind. Handlers run
// on the caller's goroutine and must not block.
func (n *Notifier) Post(ev Event) {
	n.mu.RLock()
	handlers := make([]func(Event), 0, len(n.subs[ev.Kind]))
	for _, fn := range n.subs[ev.Kind] {
		handlers = append(handlers, fn)
	}
	n.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Subscribers returns the number of live registrations for kind.
func (n *Notifier) Subscribers(kind EventKind) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[kind])
}

func (n *Notifier) remove(kind EventKind, id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs[kind], id)
}

type subscription struct {
	notifier *Notifier
	kind     EventKind
	id       int
	once     sync.Once
}

func (s *subscription) Cancel() {
	s.once.Do(func() { s.notifier.remove(s.kind, s.id) })
}
