package wlancore

import "github.com/nxpfmac/wlancore/internal/constants"

// Re-export the limits callers most commonly need to check requests against.
const (
	MaxSSIDList     = constants.MaxSSIDList
	MaxUserScanChan = constants.MaxUserScanChan
	MaxKeyMaterial  = constants.MaxKeyMaterial

	DefaultIoctlTimeout   = constants.DefaultIoctlTimeout
	DefaultScanTimeout    = constants.DefaultScanTimeout
	DefaultConnectTimeout = constants.DefaultConnectTimeout
)
