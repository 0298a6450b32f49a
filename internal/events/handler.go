// Package events implements the firmware event distribution subsystem:
// subscribers register for an event id (globally or scoped to an
// interface), and firmware-originated events fan out to every matching,
// still-live subscription.
package events

import "sync"

// EventID identifies a class of unsolicited firmware notification.
type EventID int

const (
	EventDrvScanReport EventID = iota
	EventUapFwStaConnect
	EventUapFwStaDisconnect
)

// Event is a single firmware-originated notification.
type Event struct {
	ID       EventID
	BSSIndex int
	Payload  []byte
}

// Callback is invoked when a matching event arrives.
type Callback func(e Event)

type subscription struct {
	id       uint64
	bssIndex *int // nil means global
	callback Callback
}

// Registration is a move-only-in-spirit handle returned by Register*. Go
// has no destructors, so callers that want RAII-like cleanup call
// Unregister() themselves, typically via defer. The zero Registration is a
// valid no-op.
type Registration struct {
	handler *Handler
	evID    EventID
	subID   uint64
}

// Unregister removes the subscription this registration refers to. Safe to
// call more than once; safe to call on a zero Registration.
func (r *Registration) Unregister() {
	if r == nil || r.handler == nil {
		return
	}
	r.handler.unregister(r.evID, r.subID)
	r.handler = nil
}

// Handler distributes events to registered subscribers. All state is
// guarded by a single mutex; callbacks run while that mutex is held, so
// callbacks must not synchronously register or unregister subscriptions on
// the same Handler (they may freely issue ioctls, since the ioctl adapter
// re-posts its own completion work).
type Handler struct {
	mu        sync.Mutex
	nextID    uint64
	callbacks map[EventID][]subscription
}

// NewHandler constructs an empty event handler.
func NewHandler() *Handler {
	return &Handler{callbacks: make(map[EventID][]subscription)}
}

// RegisterGlobal subscribes cb to every event with the given id, regardless
// of interface.
func (h *Handler) RegisterGlobal(id EventID, cb Callback) *Registration {
	return h.register(id, nil, cb)
}

// RegisterInterface subscribes cb to events with the given id scoped to
// bssIndex.
func (h *Handler) RegisterInterface(id EventID, bssIndex int, cb Callback) *Registration {
	idx := bssIndex
	return h.register(id, &idx, cb)
}

func (h *Handler) register(id EventID, bssIndex *int, cb Callback) *Registration {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	subID := h.nextID
	h.callbacks[id] = append(h.callbacks[id], subscription{id: subID, bssIndex: bssIndex, callback: cb})
	return &Registration{handler: h, evID: id, subID: subID}
}

func (h *Handler) unregister(id EventID, subID uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.callbacks[id]
	for i, s := range subs {
		if s.id == subID {
			h.callbacks[id] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// OnEvent is invoked when firmware delivers an event. Every subscription
// with a matching event id is invoked if it is global, or if its bss index
// equals the event's.
func (h *Handler) OnEvent(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.callbacks[e.ID] {
		if s.bssIndex == nil || *s.bssIndex == e.BSSIndex {
			s.callback(e)
		}
	}
}
