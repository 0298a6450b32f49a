package mocksim

import (
	"sync"

	"github.com/nxpfmac/wlancore/internal/mlan"
)

// FullmacIfc is a call-recording mlan.FullmacIfc test double: every upcall
// appends its argument to a slice so tests can assert on what fired and in
// what order.
type FullmacIfc struct {
	mu sync.Mutex

	ScanResults    []mlan.ScanResult
	ScanEnds       []ScanEndCall
	ConnectConfs   []ConnectConfCall
	StaConnects    []StaConnectCall
	StaDisconnects []StaDisconnectCall
	EapolTx        []EapolTxCall
	EapolRx        [][]byte
}

type ScanEndCall struct {
	TxnID uint64
	Code  string
}

type ConnectConfCall struct {
	Status uint16
	IEs    []byte
}

type StaConnectCall struct {
	MAC [6]byte
	IEs []byte
}

type StaDisconnectCall struct {
	MAC    [6]byte
	Reason uint16
}

type EapolTxCall struct {
	Frame  []byte
	Status error
}

// NewFullmacIfc constructs an empty FullmacIfc recorder.
func NewFullmacIfc() *FullmacIfc {
	return &FullmacIfc{}
}

// ScanEndCount returns how many scan-end upcalls have fired. Safe to call
// from a goroutine polling for completion while upcalls are still arriving.
func (f *FullmacIfc) ScanEndCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ScanEnds)
}

func (f *FullmacIfc) OnScanResult(result mlan.ScanResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScanResults = append(f.ScanResults, result)
}

func (f *FullmacIfc) OnScanEnd(txnID uint64, code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScanEnds = append(f.ScanEnds, ScanEndCall{TxnID: txnID, Code: code})
}

func (f *FullmacIfc) OnConnectConfirm(status uint16, ies []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ConnectConfs = append(f.ConnectConfs, ConnectConfCall{Status: status, IEs: ies})
}

func (f *FullmacIfc) OnStaConnectEvent(mac [6]byte, ies []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StaConnects = append(f.StaConnects, StaConnectCall{MAC: mac, IEs: ies})
}

func (f *FullmacIfc) OnStaDisconnectEvent(mac [6]byte, reason uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StaDisconnects = append(f.StaDisconnects, StaDisconnectCall{MAC: mac, Reason: reason})
}

func (f *FullmacIfc) OnEapolTransmitted(frame []byte, status error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EapolTx = append(f.EapolTx, EapolTxCall{Frame: frame, Status: status})
}

func (f *FullmacIfc) OnEapolReceived(frame []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EapolRx = append(f.EapolRx, frame)
}

// NetDevice is a recording mlan.NetDevice test double.
type NetDevice struct {
	mu sync.Mutex

	CompletedTx [][]byte
	CompletedRx [][]byte
}

// NewNetDevice constructs an empty NetDevice recorder.
func NewNetDevice() *NetDevice {
	return &NetDevice{}
}

func (n *NetDevice) CompleteTx(frames [][]byte, status error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.CompletedTx = append(n.CompletedTx, frames...)
}

func (n *NetDevice) CompleteRx(frame []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.CompletedRx = append(n.CompletedRx, frame)
}

func (n *NetDevice) AcquireFrame(size int) []byte {
	return make([]byte, size)
}
