package client

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nxpfmac/wlancore/internal/ioctl"
	"github.com/nxpfmac/wlancore/internal/mlan"
)

type fakeFirmware struct {
	mu       sync.Mutex
	status   mlan.IoctlStatus
	assoc    mlan.AssocResponse
	requests []*mlan.Request
}

func (f *fakeFirmware) Ioctl(req *mlan.Request) mlan.IoctlStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req == nil {
		return mlan.StatusSuccess
	}
	if req.Action == mlan.ActionCancel {
		return mlan.StatusCanceled
	}
	f.requests = append(f.requests, req)
	if bssReq, ok := req.Payload.(*mlan.BSSStartRequest); ok {
		bssReq.AssocResp = f.assoc
	}
	return f.status
}

func TestConnectSuccess(t *testing.T) {
	fw := &fakeFirmware{status: mlan.StatusPending, assoc: mlan.AssocResponse{StatusCode: StatusCodeSuccess, Valid: true}}
	a := ioctl.New(fw, nil)
	defer a.Close()
	c := New(a, 0)
	defer c.Close()

	done := make(chan uint16, 1)
	err := c.Connect(Request{BSSID: [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, Channel: 36}, func(status uint16, ies []byte) {
		done <- status
	}, time.Second)
	require.NoError(t, err)

	fw.mu.Lock()
	req := fw.requests[0]
	fw.mu.Unlock()
	a.OnIoctlComplete(req, mlan.StatusSuccess)

	select {
	case status := <-done:
		require.Equal(t, StatusCodeSuccess, status)
	case <-time.After(time.Second):
		t.Fatal("connect callback never fired")
	}
	require.Equal(t, Connected, c.State())
}

// TestConnectCancel is Scenario D.
func TestConnectCancel(t *testing.T) {
	fw := &fakeFirmware{status: mlan.StatusPending}
	a := ioctl.New(fw, nil)
	defer a.Close()
	c := New(a, 0)
	defer c.Close()

	done := make(chan uint16, 1)
	err := c.Connect(Request{BSSID: [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, Channel: 36}, func(status uint16, ies []byte) {
		done <- status
	}, time.Second)
	require.NoError(t, err)

	require.NoError(t, c.CancelConnect())

	fw.mu.Lock()
	req := fw.requests[0]
	fw.mu.Unlock()
	a.OnIoctlComplete(req, mlan.StatusCanceled)

	select {
	case status := <-done:
		require.Equal(t, StatusCodeCanceled, status)
	case <-time.After(time.Second):
		t.Fatal("connect callback never fired")
	}
	require.Equal(t, Idle, c.State())
}

func TestSecondConnectWhileInProgressReturnsAlreadyExists(t *testing.T) {
	fw := &fakeFirmware{status: mlan.StatusPending}
	a := ioctl.New(fw, nil)
	defer a.Close()
	c := New(a, 0)

	require.NoError(t, c.Connect(Request{Channel: 36}, func(uint16, []byte) {}, time.Second))
	err := c.Connect(Request{Channel: 36}, func(uint16, []byte) {}, time.Second)
	require.Error(t, err)

	fw.mu.Lock()
	req := fw.requests[0]
	fw.mu.Unlock()
	a.OnIoctlComplete(req, mlan.StatusCanceled)
	c.Close()
}

func TestCancelConnectWithNoAttemptReturnsNotFound(t *testing.T) {
	fw := &fakeFirmware{}
	a := ioctl.New(fw, nil)
	defer a.Close()
	c := New(a, 0)
	defer c.Close()

	require.Error(t, c.CancelConnect())
}

func TestConnectTimeoutFiresRefusedReasonUnspecified(t *testing.T) {
	fw := &fakeFirmware{status: mlan.StatusPending}
	a := ioctl.New(fw, nil)
	defer a.Close()
	c := New(a, 0)
	defer c.Close()

	done := make(chan uint16, 1)
	require.NoError(t, c.Connect(Request{Channel: 36}, func(status uint16, ies []byte) {
		done <- status
	}, time.Second))

	fw.mu.Lock()
	req := fw.requests[0]
	fw.mu.Unlock()
	a.OnIoctlComplete(req, mlan.StatusTimeout)

	select {
	case status := <-done:
		require.Equal(t, StatusCodeRefusedReasonUnspecified, status)
	case <-time.After(time.Second):
		t.Fatal("connect callback never fired")
	}
	require.Equal(t, Idle, c.State())
}

func TestDisconnectWhenNotConnectedReturnsNotFound(t *testing.T) {
	fw := &fakeFirmware{}
	a := ioctl.New(fw, nil)
	defer a.Close()
	c := New(a, 0)
	defer c.Close()

	require.Error(t, c.Disconnect())
}

func TestDisconnectWhenConnectedReturnsNotSupported(t *testing.T) {
	fw := &fakeFirmware{status: mlan.StatusPending, assoc: mlan.AssocResponse{StatusCode: StatusCodeSuccess, Valid: true}}
	a := ioctl.New(fw, nil)
	defer a.Close()
	c := New(a, 0)
	defer c.Close()

	done := make(chan uint16, 1)
	require.NoError(t, c.Connect(Request{Channel: 36}, func(status uint16, ies []byte) {
		done <- status
	}, time.Second))

	fw.mu.Lock()
	req := fw.requests[0]
	fw.mu.Unlock()
	a.OnIoctlComplete(req, mlan.StatusSuccess)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("connect callback never fired")
	}

	require.Error(t, c.Disconnect())
}
