// Package mlan defines the wire-level types and collaborator interfaces the
// driver core issues requests through and receives events from. The bus
// transport, the firmware image, and the register-level protocol these
// types describe are implemented elsewhere; this package only fixes the
// shapes the core needs to agree on with whatever implements them.
package mlan

// Action is the verb carried by a Request.
type Action int

const (
	ActionGet Action = iota
	ActionSet
	ActionCancel
)

// RequestID identifies the firmware command group a Request targets.
type RequestID int

const (
	ReqSecCfgEncryptKey RequestID = iota
	ReqBSSStart
	ReqBSSReset
	ReqBSSChannelList
	ReqBSSCfg
	ReqUapBSSStart
	ReqUapBSSReset
	ReqRates
	ReqScan
	ReqScanTable
	ReqAssociate
)

// IoctlStatus is the outcome of a Request once the ioctl adapter considers
// it finished.
type IoctlStatus int

const (
	StatusSuccess IoctlStatus = iota
	StatusFailure
	StatusTimeout
	StatusCanceled
	StatusPending
)

func (s IoctlStatus) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailure:
		return "Failure"
	case StatusTimeout:
		return "Timeout"
	case StatusCanceled:
		return "Canceled"
	case StatusPending:
		return "Pending"
	default:
		return "Unknown"
	}
}

// CipherSuite enumerates the cipher suites the key ring understands.
type CipherSuite int

const (
	CipherWEP40 CipherSuite = iota
	CipherWEP104
	CipherTKIP
	CipherCCMP128
	CipherCCMP256
	CipherGCMP128
	CipherGCMP256
	CipherBIPCMAC128
	CipherBIPGMAC128
	CipherBIPGMAC256
)

// Key install flags, mirroring the firmware's mlan_ds_sec_cfg flag bits.
type KeyFlag uint32

const (
	KeyFlagSetTxKey     KeyFlag = 1 << 0
	KeyFlagGroupKey     KeyFlag = 1 << 1
	KeyFlagRxSeqValid   KeyFlag = 1 << 2
	KeyFlagCCMP256      KeyFlag = 1 << 3
	KeyFlagGCMP         KeyFlag = 1 << 4
	KeyFlagGCMP256      KeyFlag = 1 << 5
	KeyFlagAESMcastIGTK KeyFlag = 1 << 6
	KeyFlagGMAC128      KeyFlag = 1 << 7
	KeyFlagGMAC256      KeyFlag = 1 << 8
	KeyFlagRemoveKey    KeyFlag = 1 << 9
)

// ScanType distinguishes active from passive channel scanning.
type ScanType int

const (
	ScanTypeActive ScanType = iota
	ScanTypePassive
	ScanTypePassiveToActive
)

// RadioType is the band a channel belongs to.
type RadioType int

const (
	Radio24GHz RadioType = iota
	Radio5GHz
)

// BandFromChannel classifies a channel number into a band, per the 2.4/5 GHz
// split at channel 14.
func BandFromChannel(channel uint8) RadioType {
	if channel <= 14 {
		return Radio24GHz
	}
	return Radio5GHz
}

// IsDFSChannel reports whether a channel falls in the DFS-regulated range
// [52, 144].
func IsDFSChannel(channel uint8) bool {
	return channel >= 52 && channel <= 144
}

// KeyDescriptor is the caller-facing description of a key to install.
type KeyDescriptor struct {
	KeyIndex     uint8
	Address      [6]byte
	Cipher       CipherSuite
	KeyMaterial  []byte
	PacketNumber *uint64
}

// BSSDescriptor is a single scan-table entry as reported by firmware.
type BSSDescriptor struct {
	BSSID          [6]byte
	Channel        uint8
	RSSI           int8
	BeaconPeriod   uint16
	CapabilityInfo uint16
	ChannelWidth   uint8
	BeaconBuf      []byte
}

// ScanResult is the fullmac-style scan result the scanner dispatches per BSS.
type ScanResult struct {
	TxnID          uint64
	TimestampNanos int64
	BSSID          [6]byte
	BSSType        string
	BeaconPeriod   uint16
	CapabilityInfo uint16
	IEs            []byte
	ChannelPrimary uint8
	ChannelWidth   uint8
	RSSIDbm        int8
}

// AssocResponse is the parsed association response carried in a connect
// completion, when one was returned.
type AssocResponse struct {
	StatusCode uint16
	Valid      bool
	IEs        []byte
}

// BSSStartRequest is the payload of a BSS-start (client connect) ioctl.
// AssocResp is filled in by firmware once the request completes
// successfully.
type BSSStartRequest struct {
	BSSID     [6]byte
	Channel   uint8
	AssocResp AssocResponse
}

// ScanChannel is a single entry in a user-scan configuration's channel list.
type ScanChannel struct {
	Number     uint8
	ScanType   ScanType
	Radio      RadioType
	ScanTimeMs uint32
}

// ScanConfig is the payload of a GET-channel-configured user scan request.
type ScanConfig struct {
	ExtScanType int
	SSIDs       [][]byte
	Channels    []ScanChannel
}

// ChannelListResult is the payload returned by a channel-list GET ioctl.
type ChannelListResult struct {
	Channels []uint8
}

// BSSConfig is the GET/SET payload for a BSS configuration ioctl, covering
// both client-mode BSS config and soft-AP BSS config.
type BSSConfig struct {
	SSID      []byte
	Channel   uint8
	Band      RadioType
	Width     uint8
	Rates     []byte
	HostBased bool
}

// RateConfig is the GET payload for a supported-rates ioctl, scoped to a
// radio band.
type RateConfig struct {
	Band  RadioType
	Rates []byte
}

// StartResult is the fullmac-visible result of a soft-AP start attempt.
type StartResult string

const (
	StartResultSuccess                   StartResult = "Success"
	StartResultBssAlreadyStartedOrJoined StartResult = "BssAlreadyStartedOrJoined"
	StartResultNotSupported              StartResult = "NotSupported"
)

// StopResult is the fullmac-visible result of a soft-AP stop attempt.
type StopResult string

const (
	StopResultSuccess           StopResult = "Success"
	StopResultBssAlreadyStopped StopResult = "BssAlreadyStopped"
	StopResultInternalError     StopResult = "InternalError"
)

// ScanTableResult is the payload returned by a scan-table GET ioctl.
type ScanTableResult struct {
	BSSList []BSSDescriptor
}

// ScanEndCode is the fullmac-visible result code carried by a scan-end
// dispatch.
type ScanEndCode string

const (
	ScanResultSuccess              ScanEndCode = "Success"
	ScanResultCanceledByDriverOrFW ScanEndCode = "CanceledByDriverOrFirmware"
	ScanResultInternalError        ScanEndCode = "InternalError"
)
