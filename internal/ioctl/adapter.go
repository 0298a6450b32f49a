// Package ioctl implements the single point through which every vendor
// request is issued, giving well-defined completion semantics regardless of
// whether firmware handles a request synchronously, asynchronously, or not
// at all.
package ioctl

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nxpfmac/wlancore/internal/logging"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/sched"
)

// IssueResult is the synchronous outcome of IssueAsync.
type IssueResult int

const (
	IssuePending IssueResult = iota
	IssueSuccess
	IssueFailure
)

// inflight tracks a request between IssueAsync and its completion, keyed by
// the request's correlation id. There is no reserved magic field to
// validate; the id assigned by mlan.NewRequest is the only identity the
// adapter uses.
type inflight struct {
	req        *mlan.Request
	onComplete mlan.CompletionFunc
	timedOut   bool
	timer      *sched.TimerHandle
	mu         sync.Mutex
}

// Adapter is the single point every vendor request is issued through.
type Adapter struct {
	mu       sync.Mutex
	adapter  mlan.Adapter
	bus      mlan.Bus
	worker   *sched.Worker
	logger   *logging.Logger
	inflight map[uuid.UUID]*inflight
}

// New constructs an Adapter driving the given firmware adapter and bus.
func New(adapter mlan.Adapter, bus mlan.Bus) *Adapter {
	return &Adapter{
		adapter:  adapter,
		bus:      bus,
		worker:   sched.NewWorker(256),
		logger:   logging.Default(),
		inflight: make(map[uuid.UUID]*inflight),
	}
}

// Close stops the adapter's scheduler. Outstanding requests do not get an
// implicit Canceled completion; callers are expected to CancelAll first if
// they want that.
func (a *Adapter) Close() {
	a.worker.Close()
}

// IssueAsync submits req. On IssuePending, onComplete fires exactly once on
// the adapter's internal scheduler with one of {Success, Failure, Timeout,
// Canceled}. On IssueSuccess or IssueFailure, onComplete is never called.
// A request already marked Cancel is rejected outright: cancels are only
// dispatched through Cancel/CancelAll, and a canceled request must never
// carry a timeout task.
func (a *Adapter) IssueAsync(req *mlan.Request, onComplete mlan.CompletionFunc, timeout time.Duration) IssueResult {
	if req.Action == mlan.ActionCancel {
		a.logger.Warn("rejecting cancel-marked request", "request_id", req.ID())
		return IssueFailure
	}

	fl := &inflight{req: req, onComplete: onComplete}

	a.mu.Lock()
	a.inflight[req.ID()] = fl
	a.mu.Unlock()

	status := a.adapter.Ioctl(req)
	switch status {
	case mlan.StatusSuccess:
		a.forget(req.ID())
		return IssueSuccess
	case mlan.StatusFailure:
		a.forget(req.ID())
		return IssueFailure
	case mlan.StatusPending:
		if timeout > 0 {
			a.worker.Post(func() {
				a.scheduleTimeout(fl, timeout)
			})
		}
		if a.bus != nil {
			a.bus.TriggerMainProcess()
		}
		return IssuePending
	default:
		a.forget(req.ID())
		return IssueFailure
	}
}

func (a *Adapter) scheduleTimeout(fl *inflight, timeout time.Duration) {
	a.mu.Lock()
	_, stillLive := a.inflight[fl.req.ID()]
	a.mu.Unlock()
	if !stillLive {
		// Already completed before the timeout task could be posted.
		return
	}
	fl.timer = a.worker.PostAfter(timeout, func() {
		a.onTimeout(fl)
	})
}

func (a *Adapter) onTimeout(fl *inflight) {
	fl.mu.Lock()
	fl.timedOut = true
	fl.mu.Unlock()

	if !a.cancelLocked(fl.req) {
		// Firmware had already completed the request; let the real
		// completion proceed normally instead of reporting a timeout.
		fl.mu.Lock()
		fl.timedOut = false
		fl.mu.Unlock()
	}
}

// OnIoctlComplete is invoked by the firmware adapter (on the IRQ-derived
// worker) when req finishes. It re-posts the user callback onto the
// adapter's own scheduler so it never runs under the firmware's lock.
func (a *Adapter) OnIoctlComplete(req *mlan.Request, status mlan.IoctlStatus) {
	a.mu.Lock()
	fl, ok := a.inflight[req.ID()]
	if ok {
		delete(a.inflight, req.ID())
	}
	a.mu.Unlock()
	if !ok {
		return
	}

	a.worker.Post(func() {
		fl.mu.Lock()
		timedOut := fl.timedOut
		timer := fl.timer
		fl.mu.Unlock()

		if timer != nil && !timedOut {
			timer.Cancel()
		}

		result := status
		if timedOut {
			result = mlan.StatusTimeout
		}

		cb := fl.onComplete
		fl.onComplete = nil
		if cb != nil {
			cb(result)
		}
	})
}

func (a *Adapter) forget(id uuid.UUID) {
	a.mu.Lock()
	delete(a.inflight, id)
	a.mu.Unlock()
}

// IssueSync submits req and blocks until it completes or timeout elapses,
// never returning IssuePending. On a local timeout it attempts to cancel
// the request and waits for the resulting Canceled completion before
// returning, so the local callback installed here cannot outlive this call.
func (a *Adapter) IssueSync(req *mlan.Request, timeout time.Duration) mlan.IoctlStatus {
	done := make(chan mlan.IoctlStatus, 1)
	result := a.IssueAsync(req, func(status mlan.IoctlStatus) {
		done <- status
	}, 0)

	switch result {
	case IssueSuccess:
		return mlan.StatusSuccess
	case IssueFailure:
		return mlan.StatusFailure
	}

	if timeout <= 0 {
		return <-done
	}

	select {
	case status := <-done:
		return status
	case <-time.After(timeout):
		if a.Cancel(req) {
			<-done
			return mlan.StatusTimeout
		}
		return <-done
	}
}

// Cancel mutates req's action to Cancel and re-dispatches it. Returns true
// iff firmware reports CmdCancel for the re-dispatch.
func (a *Adapter) Cancel(req *mlan.Request) bool {
	return a.cancelLocked(req)
}

func (a *Adapter) cancelLocked(req *mlan.Request) bool {
	req.Action = mlan.ActionCancel
	status := a.adapter.Ioctl(req)
	return status == mlan.StatusCanceled
}

// CancelAll issues a broadcast cancel (firmware convention: nil request);
// every outstanding callback eventually fires with Canceled via
// OnIoctlComplete as firmware drains its queue.
func (a *Adapter) CancelAll() {
	a.adapter.Ioctl(nil)
}
