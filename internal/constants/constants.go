// Package constants holds the numeric limits and timing defaults shared
// across the driver core.
package constants

import "time"

// Scan limits, mirroring the firmware's fixed-size scan configuration
// buffers.
const (
	// MaxSSIDList is the maximum number of SSIDs a single scan request may
	// carry.
	MaxSSIDList = 10

	// MaxUserScanChan is the maximum number of channels a single scan
	// request may carry, and the cap on channels enumerated from the
	// firmware's own channel list when none are requested explicitly.
	MaxUserScanChan = 50

	// MaxSSIDLength is the firmware's per-SSID buffer size; longer SSIDs are
	// truncated when copied into a scan request.
	MaxSSIDLength = 32
)

// DFS channel range (inclusive). Channels in this range require passive
// listen before active transmission.
const (
	DFSChannelMin = 52
	DFSChannelMax = 144
)

// Band24GHzMaxChannel is the band selection threshold: channels at or below
// this number are 2.4 GHz, channels above it are 5 GHz.
const Band24GHzMaxChannel = 14

// Key material limits.
const (
	// MaxKeyMaterial is the largest key blob the firmware's key buffer can
	// hold.
	MaxKeyMaterial = 32

	BroadcastMAC = "FF:FF:FF:FF:FF:FF"
)

// Data plane buffer-info constants, mirroring the firmware's fixed queue
// depths.
const (
	TxDepth        = 512
	RxDepth        = 512
	RxThreshold    = 128
	MaxBufParts    = 1
	EAPOLEtherType = 0x888E

	// IEEE80211MSDUMax is the largest MSDU the firmware will deliver in a
	// single receive buffer.
	IEEE80211MSDUMax = 2304

	// BeaconPrefixLen is the fixed beacon header size skipped when slicing
	// information elements out of a scan result's beacon buffer.
	BeaconPrefixLen = 12
)

// ExtScanEnhance is an opaque scan extension flag preserved from firmware's
// own scan request format; semantics are undocumented outside firmware.
const ExtScanEnhance = 0x1

// Default timeouts.
const (
	DefaultIoctlTimeout   = 5 * time.Second
	DefaultScanTimeout    = 10 * time.Second
	DefaultConnectTimeout = 10 * time.Second
)
