// Package client implements the client-mode connection state machine:
// Idle, Connecting, Connected, driven entirely by ioctl completions.
package client

import (
	"sync"
	"time"

	"github.com/nxpfmac/wlancore/internal/ioctl"
	"github.com/nxpfmac/wlancore/internal/logging"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/waitable"
	"github.com/nxpfmac/wlancore/internal/wlerr"
)

// State is one of the connection's three reachable states.
type State int

const (
	Idle State = iota
	Connecting
	Connected
)

// Status codes an OnConnectCallback is invoked with. StatusCodeSuccess and
// StatusCodeRefusedReasonUnspecified mirror IEEE 802.11 status codes;
// StatusCodeCanceled and StatusCodeJoinFailure are synthetic values this
// core uses for outcomes 802.11 has no status code for.
const (
	StatusCodeSuccess                  uint16 = 0
	StatusCodeRefusedReasonUnspecified uint16 = 1
	StatusCodeCanceled                 uint16 = 0xFFFE
	StatusCodeJoinFailure              uint16 = 0xFFFD
)

// Request describes the target of a connection attempt.
type Request struct {
	BSSID   [6]byte
	Channel uint8
}

// OnConnectCallback fires exactly once per Connect call, whether it
// succeeds, times out, is canceled, or fails.
type OnConnectCallback func(statusCode uint16, ies []byte)

// ClientConnection drives at most one outstanding connection attempt per
// interface.
type ClientConnection struct {
	bssIndex int
	adapter  *ioctl.Adapter
	logger   *logging.Logger

	mu             sync.Mutex
	state          State
	onConnect      OnConnectCallback
	connectRequest *mlan.Request

	connectInProgress *waitable.State[bool]
}

// New constructs a ClientConnection bound to bssIndex.
func New(adapter *ioctl.Adapter, bssIndex int) *ClientConnection {
	return &ClientConnection{
		bssIndex:          bssIndex,
		adapter:           adapter,
		logger:            logging.Default().WithInterface(bssIndex),
		connectInProgress: waitable.NewState(false),
	}
}

// Connect attempts to join req.BSSID on req.Channel. Returns AlreadyExists
// if an attempt is already in progress; otherwise returns nil immediately
// and invokes cb exactly once, asynchronously, with the outcome.
func (c *ClientConnection) Connect(req Request, cb OnConnectCallback, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connectInProgress.Get() {
		return wlerr.NewInterface("Connect", c.bssIndex, wlerr.CodeAlreadyExists, "connection attempt already in progress")
	}

	c.onConnect = cb

	payload := &mlan.BSSStartRequest{BSSID: req.BSSID, Channel: req.Channel}
	connectReq := mlan.NewRequest(mlan.ReqBSSStart, c.bssIndex, payload)

	c.connectInProgress.Set(true)

	result := c.adapter.IssueAsync(connectReq, c.onConnectComplete, timeout)
	if result != ioctl.IssuePending {
		c.connectInProgress.Set(false)
		c.onConnect = nil
		return wlerr.NewInterface("Connect", c.bssIndex, wlerr.CodeInternal, "connect ioctl did not return pending")
	}

	c.connectRequest = connectReq
	c.state = Connecting
	return nil
}

// CancelConnect cancels an in-progress connection attempt. The callback
// passed to Connect fires asynchronously with StatusCodeCanceled once
// firmware confirms the cancellation. Returns NotFound if no attempt is in
// progress.
func (c *ClientConnection) CancelConnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connectInProgress.Get() {
		return wlerr.NewInterface("CancelConnect", c.bssIndex, wlerr.CodeNotFound, "no connection attempt in progress")
	}
	c.adapter.Cancel(c.connectRequest)
	return nil
}

// Disconnect tears down an established connection. Not implemented by
// firmware today: returns NotFound when not connected, NotSupported when
// connected.
func (c *ClientConnection) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Connected {
		return wlerr.NewInterface("Disconnect", c.bssIndex, wlerr.CodeNotFound, "not connected")
	}
	return wlerr.NewInterface("Disconnect", c.bssIndex, wlerr.CodeNotSupported, "disconnect is not implemented")
}

// Close cancels any in-progress connection attempt and blocks until it has
// quiesced, mirroring the teardown order a destructor would enforce.
func (c *ClientConnection) Close() {
	_ = c.CancelConnect()
	c.connectInProgress.Wait(func(v bool) bool { return !v })
}

// State reports the connection's current state.
func (c *ClientConnection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *ClientConnection) onConnectComplete(status mlan.IoctlStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connectInProgress.Get() {
		c.logger.Warn("connection ioctl completed with no attempt in progress")
		return
	}

	switch status {
	case mlan.StatusTimeout:
		c.logger.Warn("connection attempt timed out")
		c.completeConnection(StatusCodeRefusedReasonUnspecified, nil)
	case mlan.StatusCanceled:
		c.completeConnection(StatusCodeCanceled, nil)
	case mlan.StatusSuccess:
		resp, _ := c.connectRequest.Payload.(*mlan.BSSStartRequest)
		if resp != nil && resp.AssocResp.Valid {
			c.completeConnection(resp.AssocResp.StatusCode, resp.AssocResp.IEs)
		} else {
			c.completeConnection(StatusCodeJoinFailure, nil)
		}
	default:
		c.completeConnection(StatusCodeJoinFailure, nil)
	}
}

func (c *ClientConnection) completeConnection(statusCode uint16, ies []byte) {
	if statusCode == StatusCodeSuccess {
		c.state = Connected
	} else {
		c.state = Idle
	}
	c.connectInProgress.Set(false)

	cb := c.onConnect
	c.onConnect = nil
	if cb != nil {
		cb(statusCode, ies)
	}
}
