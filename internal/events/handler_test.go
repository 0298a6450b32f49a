package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlobalSubscriptionMatchesAnyInterface(t *testing.T) {
	h := NewHandler()
	var got []Event
	h.RegisterGlobal(EventDrvScanReport, func(e Event) { got = append(got, e) })

	h.OnEvent(Event{ID: EventDrvScanReport, BSSIndex: 0})
	h.OnEvent(Event{ID: EventDrvScanReport, BSSIndex: 1})

	require.Len(t, got, 2)
}

func TestInterfaceSubscriptionOnlyMatchesItsBSS(t *testing.T) {
	h := NewHandler()
	var got []Event
	h.RegisterInterface(EventUapFwStaConnect, 1, func(e Event) { got = append(got, e) })

	h.OnEvent(Event{ID: EventUapFwStaConnect, BSSIndex: 0})
	h.OnEvent(Event{ID: EventUapFwStaConnect, BSSIndex: 1})

	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].BSSIndex)
}

func TestUnregisterRemovesSubscription(t *testing.T) {
	h := NewHandler()
	called := false
	reg := h.RegisterGlobal(EventDrvScanReport, func(Event) { called = true })

	reg.Unregister()
	h.OnEvent(Event{ID: EventDrvScanReport})

	require.False(t, called)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	h := NewHandler()
	reg := h.RegisterGlobal(EventDrvScanReport, func(Event) {})
	reg.Unregister()
	require.NotPanics(t, func() { reg.Unregister() })
}

func TestRegisterThenUnregisterLeavesSetUnchanged(t *testing.T) {
	h := NewHandler()
	before := len(h.callbacks[EventDrvScanReport])

	reg := h.RegisterGlobal(EventDrvScanReport, func(Event) {})
	reg.Unregister()

	after := len(h.callbacks[EventDrvScanReport])
	require.Equal(t, before, after)
}

func TestDifferentEventIDsDoNotCrossFire(t *testing.T) {
	h := NewHandler()
	var connectFired, disconnectFired bool
	h.RegisterGlobal(EventUapFwStaConnect, func(Event) { connectFired = true })
	h.RegisterGlobal(EventUapFwStaDisconnect, func(Event) { disconnectFired = true })

	h.OnEvent(Event{ID: EventUapFwStaConnect})

	require.True(t, connectFired)
	require.False(t, disconnectFired)
}
