package chart

import "sync"

// EventKind identifies a chart notification.
type EventKind int

const (
	// EventBoxClicked fires when a box receives a primary tap. Symbol is set.
	EventBoxClicked EventKind = iota
	// EventRangeChanged fires when the time range changes. Days is set.
	EventRangeChanged
	// EventAssetsUpdated fires after a reconcile pass completes.
	EventAssetsUpdated
)

// Event is one delivered notification.
type Event struct {
	Kind   EventKind
	Symbol string
	Days   int
}

// Dispatcher routes chart events to subscribed handlers. Delivery is
// synchronous, on the publishing goroutine, in subscription order per kind.
// Handlers may publish; re-entrant publishes deliver before the outer
// Publish returns to its caller.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[EventKind][]func(Event)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventKind][]func(Event))}
}

// Subscribe binds fn to events of kind k. There is no unsubscribe; bindings
// live as long as the dispatcher.
func (d *Dispatcher) Subscribe(k EventKind, fn func(Event)) {
	d.mu.Lock()
	d.handlers[k] = append(d.handlers[k], fn)
	d.mu.Unlock()
}

// Publish delivers e to all handlers bound to its kind.
func (d *Dispatcher) Publish(e Event) {
	d.mu.Lock()
	hs := append([]func(Event){}, d.handlers[e.Kind]...)
	d.mu.Unlock()
	for _, h := range hs {
		h(e)
	}
}
