// Package dataplane bridges network-device frames and firmware buffer
// descriptors for transmit and receive, demultiplexing EAPOL control
// frames out of the bulk data path before they reach the network device.
package dataplane

import (
	"encoding/binary"
	"sync"

	"github.com/nxpfmac/wlancore/internal/constants"
	"github.com/nxpfmac/wlancore/internal/logging"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/sched"
	"github.com/nxpfmac/wlancore/internal/wlerr"
)

var errTxInternal = wlerr.New("QueueTx", wlerr.CodeInternal, "firmware rejected frame")

// ethertypeOffset is the byte offset of the ethertype field in a 14-byte
// Ethernet header (6 bytes destination MAC, 6 bytes source MAC, 2 bytes
// ethertype).
const ethertypeOffset = 12

// isEAPOL reports whether frame's Ethernet header carries the EAPOL
// ethertype, in network byte order.
func isEAPOL(frame []byte) bool {
	if len(frame) < ethertypeOffset+2 {
		return false
	}
	ethertype := binary.BigEndian.Uint16(frame[ethertypeOffset : ethertypeOffset+2])
	return ethertype == constants.EAPOLEtherType
}

// BufferInfo mirrors the firmware buffer layout the data plane reports to
// the network device so it can size its frame pool correctly.
type BufferInfo struct {
	TxDepth           int
	RxDepth           int
	RxThreshold       int
	MaxBufferParts    int
	MaxBufferLength   int
	BufferAlignment   int
	MinRxBufferLength int
	TxHeadLength      int
}

func alignUp(n, alignment int) int {
	if alignment <= 0 {
		return n
	}
	return (n + alignment - 1) / alignment * alignment
}

// DataPlane dispatches TX frames to firmware and RX completions and EAPOL
// frames to the appropriate interface, identified by bss index.
type DataPlane struct {
	adapter mlan.MlanAdapter
	bus     mlan.Bus
	netdev  mlan.NetDevice
	logger  *logging.Logger

	rxWorker *sched.Worker

	mu   sync.RWMutex
	ifcs map[int]mlan.FullmacIfc
}

// New constructs a DataPlane driving adapter/bus and handing non-EAPOL
// completions to netdev.
func New(adapter mlan.MlanAdapter, bus mlan.Bus, netdev mlan.NetDevice) *DataPlane {
	return &DataPlane{
		adapter:  adapter,
		bus:      bus,
		netdev:   netdev,
		logger:   logging.Default(),
		rxWorker: sched.NewWorker(64),
		ifcs:     make(map[int]mlan.FullmacIfc),
	}
}

// RegisterInterface binds bssIndex's EAPOL upcalls to ifc, so TX/RX
// completions for that interface's frames can be demultiplexed.
func (d *DataPlane) RegisterInterface(bssIndex int, ifc mlan.FullmacIfc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ifcs[bssIndex] = ifc
}

// UnregisterInterface removes bssIndex's EAPOL upcall binding.
func (d *DataPlane) UnregisterInterface(bssIndex int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.ifcs, bssIndex)
}

func (d *DataPlane) ifcFor(bssIndex int) mlan.FullmacIfc {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ifcs[bssIndex]
}

// Close stops the RX worker.
func (d *DataPlane) Close() {
	d.rxWorker.Close()
}

// GetInfo reports the firmware's fixed queue depths and buffer sizing, so
// the network device can size its own buffer pool.
func (d *DataPlane) GetInfo() BufferInfo {
	alignment := 1
	txHeadroom := 0
	rxHeadroom := 0
	pageSize := 4096
	if d.bus != nil {
		if a := d.bus.BufferAlignment(); a > 0 {
			alignment = a
		}
		txHeadroom = d.bus.TxHeadroom()
		rxHeadroom = d.bus.RxHeadroom()
	}

	return BufferInfo{
		TxDepth:           constants.TxDepth,
		RxDepth:           constants.RxDepth,
		RxThreshold:       constants.RxThreshold,
		MaxBufferParts:    constants.MaxBufParts,
		MaxBufferLength:   pageSize,
		BufferAlignment:   alignment,
		MinRxBufferLength: alignUp(constants.IEEE80211MSDUMax+rxHeadroom, pageSize),
		TxHeadLength:      alignUp(txFrameHeaderSize, alignment) + txHeadroom,
	}
}

// txFrameHeaderSize is the fixed bookkeeping overhead the data plane
// reserves at the head of every outgoing frame: a retained copy of the
// caller's frame object plus the firmware buffer descriptor that links
// back to it. Frames here are plain byte slices, so this is a nominal
// sizing constant for BufferInfo rather than an actual struct size.
const txFrameHeaderSize = 64

// TxResult is the per-frame outcome QueueTx reports through complete.
type TxResult struct {
	Frame  []byte
	Status error
}

// QueueTx submits frames for bssIndex to firmware. Firmware's per-frame
// SendPacket result determines how each frame completes: StatusSuccess and
// any failure complete immediately (EAPOL frames route to
// OnEapolTransmitted instead of netdev.CompleteTx); StatusPending defers
// completion to a later OnTxComplete call from the firmware callback path.
func (d *DataPlane) QueueTx(bssIndex int, frames [][]byte) {
	var immediate []TxResult
	for _, frame := range frames {
		status := d.adapter.SendPacket(frame)
		switch status {
		case mlan.StatusPending:
			continue
		case mlan.StatusSuccess:
			immediate = append(immediate, TxResult{Frame: frame})
		default:
			d.logger.Warn("firmware rejected tx frame", "status", status, "bss_index", bssIndex)
			immediate = append(immediate, TxResult{Frame: frame, Status: errTxInternal})
		}
	}
	for _, r := range immediate {
		d.completeTx(bssIndex, r.Frame, r.Status)
	}
	d.bus.TriggerMainProcess()
}

// OnTxComplete is invoked by the firmware callback path when a previously
// Pending frame finishes.
func (d *DataPlane) OnTxComplete(bssIndex int, frame []byte, status error) {
	d.completeTx(bssIndex, frame, status)
}

func (d *DataPlane) completeTx(bssIndex int, frame []byte, status error) {
	if isEAPOL(frame) {
		if ifc := d.ifcFor(bssIndex); ifc != nil {
			ifc.OnEapolTransmitted(frame, status)
			return
		}
	}
	d.netdev.CompleteTx([][]byte{frame}, status)
}

// OnRxFrame is invoked by the firmware callback path when a frame has been
// received. EAPOL frames are demultiplexed to the owning interface; all
// others are handed to the network device.
func (d *DataPlane) OnRxFrame(bssIndex int, frame []byte) {
	if isEAPOL(frame) {
		if ifc := d.ifcFor(bssIndex); ifc != nil {
			ifc.OnEapolReceived(frame)
			return
		}
	}
	d.netdev.CompleteRx(frame)
}

// DeferRxWork posts a task onto the single-threaded RX work queue that
// drains firmware's RX process entrypoint, so draining cannot block the
// IRQ worker.
func (d *DataPlane) DeferRxWork() {
	d.rxWorker.Post(func() {
		d.adapter.RxProcess()
	})
}

// PrepareVMO passes straight through to the bus.
func (d *DataPlane) PrepareVMO(vmoID uint64, handle uintptr, mappedAddr uintptr, size uint64) error {
	return d.bus.PrepareVMO(vmoID, handle, mappedAddr, size)
}

// ReleaseVMO passes straight through to the bus.
func (d *DataPlane) ReleaseVMO(vmoID uint64) error {
	return d.bus.ReleaseVMO(vmoID)
}
