package mocksim

import (
	"sync"

	"github.com/nxpfmac/wlancore/internal/mlan"
)

// MlanAdapter is a scriptable mlan.MlanAdapter test double: each mlan entry
// point calls an optional hook and otherwise indicates success (or does
// nothing, for entry points with no return code); a cancel-marked Ioctl
// with no hook reports Canceled.
type MlanAdapter struct {
	mu sync.Mutex

	OnIoctl       func(req *mlan.Request) mlan.IoctlStatus
	OnSendPacket  func(buf []byte) mlan.IoctlStatus
	OnMainProcess func()
	OnRxProcess   func()
	OnInterrupt   func(msgID uint32)

	IoctlCalls       []*mlan.Request
	SendPacketCalls  int
	MainProcessCalls int
	RxProcessCalls   int
}

// NewMlanAdapter constructs an MlanAdapter with benign defaults: unless a
// hook is set, every SendPacket and every non-cancel Ioctl succeeds
// synchronously, and a cancel-marked Ioctl returns Canceled.
func NewMlanAdapter() *MlanAdapter {
	return &MlanAdapter{}
}

func (a *MlanAdapter) Register() error         { return nil }
func (a *MlanAdapter) Unregister() error       { return nil }
func (a *MlanAdapter) DownloadFirmware() error { return nil }
func (a *MlanAdapter) InitFirmware() error     { return nil }
func (a *MlanAdapter) ShutdownFirmware() error { return nil }
func (a *MlanAdapter) Interrupt(msgID uint32) {
	a.mu.Lock()
	fn := a.OnInterrupt
	a.mu.Unlock()
	if fn != nil {
		fn(msgID)
	}
}

func (a *MlanAdapter) MainProcess() {
	a.mu.Lock()
	a.MainProcessCalls++
	fn := a.OnMainProcess
	a.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (a *MlanAdapter) RxProcess() {
	a.mu.Lock()
	a.RxProcessCalls++
	fn := a.OnRxProcess
	a.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (a *MlanAdapter) Ioctl(req *mlan.Request) mlan.IoctlStatus {
	a.mu.Lock()
	a.IoctlCalls = append(a.IoctlCalls, req)
	fn := a.OnIoctl
	a.mu.Unlock()
	if fn != nil {
		return fn(req)
	}
	if req == nil {
		return mlan.StatusSuccess
	}
	if req.Action == mlan.ActionCancel {
		return mlan.StatusCanceled
	}
	return mlan.StatusSuccess
}

func (a *MlanAdapter) SendPacket(buf []byte) mlan.IoctlStatus {
	a.mu.Lock()
	a.SendPacketCalls++
	fn := a.OnSendPacket
	a.mu.Unlock()
	if fn != nil {
		return fn(buf)
	}
	return mlan.StatusSuccess
}
