package mlan

import "github.com/google/uuid"

// Request is an outstanding (or about-to-be-issued) vendor request.
// NewRequest is the only code that assigns the unexported correlation id;
// a Request built any other way (a composite literal or new(Request))
// carries the zero id, and the ioctl adapter does not check for that.
type Request struct {
	id           uuid.UUID
	ReqID        RequestID
	Action       Action
	InterfaceIdx int
	Payload      any
	Trailing     []byte
}

// NewRequest constructs a Request, assigning it a fresh correlation id.
func NewRequest(reqID RequestID, ifc int, payload any) *Request {
	return &Request{
		id:           uuid.New(),
		ReqID:        reqID,
		Action:       ActionSet,
		InterfaceIdx: ifc,
		Payload:      payload,
	}
}

// ID returns the request's correlation id, used both for the ioctl
// adapter's in-flight registry and for log correlation.
func (r *Request) ID() uuid.UUID {
	return r.id
}

// CompletionFunc is invoked exactly once when a Request issued through
// IssueAsync finishes. For Get actions the request's Payload has been
// filled in by firmware by the time the callback runs.
type CompletionFunc func(status IoctlStatus)

// Adapter is the subset of MlanAdapter the ioctl adapter drives directly.
// Kept separate from the richer MlanAdapter interface so ioctl-adapter
// tests can satisfy exactly what they exercise.
type Adapter interface {
	// Ioctl submits req. A nil req is the firmware's broadcast-cancel
	// convention. Returns the synchronous outcome; Pending means firmware
	// will invoke onComplete asynchronously via the adapter's own callback
	// plumbing (wired by IssueAsync, not by this interface).
	Ioctl(req *Request) IoctlStatus
}

// MlanAdapter is the full opaque handle the core drives all firmware
// operations through. The bus transport and the firmware image itself are
// out of scope for this module; only this interface shape is consumed.
type MlanAdapter interface {
	Adapter

	Register() error
	Unregister() error
	DownloadFirmware() error
	InitFirmware() error
	ShutdownFirmware() error
	MainProcess()
	RxProcess()
	Interrupt(msgID uint32)
	SendPacket(buf []byte) IoctlStatus
}

// Bus is the carrier transport's capability surface, consumed but never
// implemented in production terms by this module.
type Bus interface {
	ReadReg(addr uint32) (uint32, error)
	WriteReg(addr uint32, val uint32) error
	ReadDataSync(buf []byte, port int, timeoutMs int) (int, error)
	WriteDataSync(buf []byte, port int, timeoutMs int) error

	PrepareVMO(vmoID uint64, handle uintptr, mappedAddr uintptr, size uint64) error
	ReleaseVMO(vmoID uint64) error

	TriggerMainProcess()

	TxHeadroom() int
	RxHeadroom() int
	BufferAlignment() int

	OnMlanRegistered(adapter MlanAdapter)
	OnFirmwareInitialized()
}

// NetDevice is the network-device plumbing's capability surface: frame
// handoff to/from the OS network stack.
type NetDevice interface {
	CompleteTx(frames [][]byte, status error)
	CompleteRx(frame []byte)
	AcquireFrame(size int) []byte
}

// FullmacIfc is the set of upcalls the core produces toward the OS-facing
// fullmac adapter.
type FullmacIfc interface {
	OnScanResult(result ScanResult)
	OnScanEnd(txnID uint64, code string)
	OnConnectConfirm(status uint16, ies []byte)
	OnStaConnectEvent(mac [6]byte, ies []byte)
	OnStaDisconnectEvent(mac [6]byte, reasonCode uint16)
	OnEapolTransmitted(frame []byte, status error)
	OnEapolReceived(frame []byte)
}
