// Package keyring manages per-interface cryptographic keys: installation,
// removal, and implicit cleanup on Close.
package keyring

import (
	"github.com/nxpfmac/wlancore/internal/constants"
	"github.com/nxpfmac/wlancore/internal/ioctl"
	"github.com/nxpfmac/wlancore/internal/logging"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/wlerr"
)

// secCfgRequest is the inline payload for a set-encrypt-key ioctl, mirroring
// the firmware's mlan_ds_sec_cfg shape closely enough for this core to
// reason about flags and key material.
type secCfgRequest struct {
	KeyIndex    uint8
	Address     [6]byte
	KeyMaterial []byte
	PacketNum   uint64
	Flags       mlan.KeyFlag
	Remove      bool
	DisableAll  bool
	EnableWep   bool
}

// KeyRing manages keys for a single interface.
type KeyRing struct {
	bssIndex int
	adapter  *ioctl.Adapter
	logger   *logging.Logger
}

// New constructs a KeyRing bound to bssIndex, issuing requests through adapter.
func New(adapter *ioctl.Adapter, bssIndex int) *KeyRing {
	return &KeyRing{bssIndex: bssIndex, adapter: adapter, logger: logging.Default().WithInterface(bssIndex)}
}

func cipherFlags(cipher mlan.CipherSuite) (mlan.KeyFlag, bool) {
	switch cipher {
	case mlan.CipherWEP40, mlan.CipherWEP104, mlan.CipherTKIP, mlan.CipherCCMP128:
		return 0, true
	case mlan.CipherCCMP256:
		return mlan.KeyFlagCCMP256, true
	case mlan.CipherGCMP128:
		return mlan.KeyFlagGCMP, true
	case mlan.CipherGCMP256:
		return mlan.KeyFlagGCMP256, true
	case mlan.CipherBIPCMAC128:
		return mlan.KeyFlagAESMcastIGTK, true
	case mlan.CipherBIPGMAC128:
		return mlan.KeyFlagAESMcastIGTK | mlan.KeyFlagGMAC128, true
	case mlan.CipherBIPGMAC256:
		return mlan.KeyFlagAESMcastIGTK | mlan.KeyFlagGMAC256, true
	default:
		return 0, false
	}
}

func isBroadcast(mac [6]byte) bool {
	for _, b := range mac {
		if b != 0xFF {
			return false
		}
	}
	return true
}

// AddKey installs desc. Fails with InvalidArgs for a zero-length key, key
// material longer than the firmware buffer, or an unrecognized cipher.
func (k *KeyRing) AddKey(desc mlan.KeyDescriptor) error {
	if len(desc.KeyMaterial) == 0 {
		return wlerr.NewInterface("AddKey", k.bssIndex, wlerr.CodeInvalidArgs, "key_count == 0")
	}
	if len(desc.KeyMaterial) > constants.MaxKeyMaterial {
		return wlerr.NewInterface("AddKey", k.bssIndex, wlerr.CodeInvalidArgs, "key material exceeds firmware buffer")
	}

	flags, ok := cipherFlags(desc.Cipher)
	if !ok {
		return wlerr.NewInterface("AddKey", k.bssIndex, wlerr.CodeInvalidArgs, "unsupported cipher")
	}
	flags |= mlan.KeyFlagSetTxKey

	if isBroadcast(desc.Address) {
		flags |= mlan.KeyFlagGroupKey
	}

	payload := &secCfgRequest{
		KeyIndex:    desc.KeyIndex,
		Address:     desc.Address,
		KeyMaterial: desc.KeyMaterial,
		Flags:       flags,
	}
	if desc.PacketNumber != nil {
		payload.PacketNum = *desc.PacketNumber
		payload.Flags |= mlan.KeyFlagRxSeqValid
	}

	req := mlan.NewRequest(mlan.ReqSecCfgEncryptKey, k.bssIndex, payload)
	status := k.adapter.IssueSync(req, constants.DefaultIoctlTimeout)
	if status != mlan.StatusSuccess {
		return wlerr.NewInterface("AddKey", k.bssIndex, wlerr.CodeInternal, "firmware rejected set-encrypt-key")
	}
	return nil
}

// RemoveKey removes the key at keyIndex for mac.
func (k *KeyRing) RemoveKey(keyIndex uint8, mac [6]byte) error {
	payload := &secCfgRequest{
		KeyIndex: keyIndex,
		Address:  mac,
		Remove:   true,
		Flags:    mlan.KeyFlagRemoveKey,
	}
	req := mlan.NewRequest(mlan.ReqSecCfgEncryptKey, k.bssIndex, payload)
	status := k.adapter.IssueSync(req, constants.DefaultIoctlTimeout)
	if status != mlan.StatusSuccess {
		return wlerr.NewInterface("RemoveKey", k.bssIndex, wlerr.CodeInternal, "firmware rejected remove-key")
	}
	return nil
}

// RemoveAllKeys disables every installed key. Idempotent: issuing it twice
// leaves no keys installed after either call.
func (k *KeyRing) RemoveAllKeys() error {
	payload := &secCfgRequest{DisableAll: true, Flags: mlan.KeyFlagRemoveKey}
	req := mlan.NewRequest(mlan.ReqSecCfgEncryptKey, k.bssIndex, payload)
	status := k.adapter.IssueSync(req, constants.DefaultIoctlTimeout)
	if status != mlan.StatusSuccess {
		return wlerr.NewInterface("RemoveAllKeys", k.bssIndex, wlerr.CodeInternal, "firmware rejected disable-all-keys")
	}
	return nil
}

// EnableWepKey marks the WEP key at keyIndex current.
func (k *KeyRing) EnableWepKey(keyIndex uint8) error {
	payload := &secCfgRequest{KeyIndex: keyIndex, EnableWep: true}
	req := mlan.NewRequest(mlan.ReqSecCfgEncryptKey, k.bssIndex, payload)
	status := k.adapter.IssueSync(req, constants.DefaultIoctlTimeout)
	if status != mlan.StatusSuccess {
		return wlerr.NewInterface("EnableWepKey", k.bssIndex, wlerr.CodeInternal, "firmware rejected enable-wep-key")
	}
	return nil
}

// Close issues RemoveAllKeys as a best-effort cleanup; a failure is logged,
// not propagated, since the key ring is being torn down regardless.
func (k *KeyRing) Close() {
	if err := k.RemoveAllKeys(); err != nil {
		k.logger.Warn("remove-all-keys failed during close", "error", err)
	}
}
