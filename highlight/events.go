package highlight

import "log/slog"

// EventKind classifies a store mutation
type EventKind int

const (
	// Added fires after a highlight is created
	Added EventKind = iota
	// Updated fires after a highlight is patched
	Updated
	// Removed fires after a highlight is deleted
	Removed
	// Cleared fires after all highlights are dropped at once
	Cleared
)

// String returns a string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event describes one store mutation. Highlight is nil for Cleared.
type Event struct {
	Kind      EventKind
	Highlight *Highlight
}

// Listener receives store events synchronously on the mutating call
type Listener func(Event)

// Stats counts listener deliveries since the store was created
type Stats struct {
	Delivered uint64
	Panicked  uint64
}

// notifier dispatches events to registered listeners. A listener that
// panics is recovered and logged at this boundary; the remaining listeners
// still run and the triggering mutation is never aborted.
type notifier struct {
	logger    *slog.Logger
	listeners map[int]Listener
	nextID    int
	stats     Stats
}

func (n *notifier) subscribe(fn Listener) int {
	if n.listeners == nil {
		n.listeners = make(map[int]Listener)
	}
	n.nextID++
	n.listeners[n.nextID] = fn
	return n.nextID
}

func (n *notifier) unsubscribe(id int) bool {
	if _, ok := n.listeners[id]; !ok {
		return false
	}
	delete(n.listeners, id)
	return true
}

func (n *notifier) dispatch(ev Event) {
	// Listeners run in subscription order.
	ids := make([]int, 0, len(n.listeners))
	for id := range n.listeners {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}

	for _, id := range ids {
		n.deliver(id, ev)
	}
}

func (n *notifier) deliver(id int, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			n.stats.Panicked++
			if n.logger != nil {
				n.logger.Error("highlight listener panicked",
					"event", ev.Kind.String(), "listener", id, "panic", r)
			}
		}
	}()

	n.listeners[id](ev)
	n.stats.Delivered++
}

// Subscribe registers a listener for store events, returning a token for
// Unsubscribe
func (s *Store) Subscribe(fn Listener) int {
	return s.notifier.subscribe(fn)
}

// Unsubscribe removes a listener, reporting whether the token was known
func (s *Store) Unsubscribe(id int) bool {
	return s.notifier.unsubscribe(id)
}

// NotifyStats returns delivery counters for the store's listeners
func (s *Store) NotifyStats() Stats {
	return s.notifier.stats
}
