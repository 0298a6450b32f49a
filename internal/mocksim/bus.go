// Package mocksim provides non-production implementations of the Bus,
// MlanAdapter, and NetDevice collaborator interfaces: scriptable
// per-call-type behavior and call-count tracking, so component tests and
// the demo CLI can run without a real bus or firmware image.
package mocksim

import (
	"sync"

	"github.com/nxpfmac/wlancore/internal/mlan"
)

const mockBusBufferAlignment = 32

// Bus is a scriptable mlan.Bus test double. Each hook defaults to a benign
// no-op; set a hook to override its behavior for a test.
type Bus struct {
	mu sync.Mutex

	TriggerMainProcessFunc func()
	PrepareVMOFunc         func(vmoID uint64, handle uintptr, mappedAddr uintptr, size uint64) error
	ReleaseVMOFunc         func(vmoID uint64) error

	TriggerMainProcessCalls int
	PrepareVMOCalls         int
	ReleaseVMOCalls         int
}

// NewBus constructs a Bus with benign defaults.
func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) ReadReg(addr uint32) (uint32, error)    { return 0, nil }
func (b *Bus) WriteReg(addr uint32, val uint32) error { return nil }

func (b *Bus) ReadDataSync(buf []byte, port int, timeoutMs int) (int, error) {
	return len(buf), nil
}

func (b *Bus) WriteDataSync(buf []byte, port int, timeoutMs int) error { return nil }

func (b *Bus) PrepareVMO(vmoID uint64, handle uintptr, mappedAddr uintptr, size uint64) error {
	b.mu.Lock()
	b.PrepareVMOCalls++
	fn := b.PrepareVMOFunc
	b.mu.Unlock()
	if fn != nil {
		return fn(vmoID, handle, mappedAddr, size)
	}
	return nil
}

func (b *Bus) ReleaseVMO(vmoID uint64) error {
	b.mu.Lock()
	b.ReleaseVMOCalls++
	fn := b.ReleaseVMOFunc
	b.mu.Unlock()
	if fn != nil {
		return fn(vmoID)
	}
	return nil
}

func (b *Bus) TriggerMainProcess() {
	b.mu.Lock()
	b.TriggerMainProcessCalls++
	fn := b.TriggerMainProcessFunc
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (b *Bus) TxHeadroom() int      { return 0 }
func (b *Bus) RxHeadroom() int      { return 0 }
func (b *Bus) BufferAlignment() int { return mockBusBufferAlignment }

func (b *Bus) OnMlanRegistered(adapter mlan.MlanAdapter) {}
func (b *Bus) OnFirmwareInitialized()                    {}
