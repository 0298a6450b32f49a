package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	wlancore "github.com/nxpfmac/wlancore"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/mocksim"
)

var (
	keyIndex    uint8
	keyCipher   string
	keyMaterial string
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage cryptographic keys against the simulated firmware",
}

var keysAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Install a key",
	RunE:  runKeysAdd,
}

func init() {
	keysAddCmd.Flags().Uint8Var(&keyIndex, "index", 0, "key index")
	keysAddCmd.Flags().StringVar(&keyCipher, "cipher", "ccmp-128", "cipher suite: wep-40, wep-104, tkip, ccmp-128, ccmp-256, gcmp-128, gcmp-256, bip-cmac-128, bip-gmac-128, bip-gmac-256")
	keysAddCmd.Flags().StringVar(&keyMaterial, "material", "0102030405060708090a0b0c0d0e0f10", "hex-encoded key material")

	keysCmd.AddCommand(keysAddCmd)
}

var cipherNames = map[string]mlan.CipherSuite{
	"wep-40":       mlan.CipherWEP40,
	"wep-104":      mlan.CipherWEP104,
	"tkip":         mlan.CipherTKIP,
	"ccmp-128":     mlan.CipherCCMP128,
	"ccmp-256":     mlan.CipherCCMP256,
	"gcmp-128":     mlan.CipherGCMP128,
	"gcmp-256":     mlan.CipherGCMP256,
	"bip-cmac-128": mlan.CipherBIPCMAC128,
	"bip-gmac-128": mlan.CipherBIPGMAC128,
	"bip-gmac-256": mlan.CipherBIPGMAC256,
}

func runKeysAdd(cmd *cobra.Command, args []string) error {
	cipher, ok := cipherNames[keyCipher]
	if !ok {
		return fmt.Errorf("unknown cipher %q", keyCipher)
	}

	material, err := hex.DecodeString(keyMaterial)
	if err != nil {
		return fmt.Errorf("invalid hex key material: %w", err)
	}

	ifc := mocksim.NewFullmacIfc()
	_, iface, _ := newSimDevice(wlancore.ModeClient, ifc)

	desc := mlan.KeyDescriptor{
		KeyIndex:    keyIndex,
		Address:     [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		Cipher:      cipher,
		KeyMaterial: material,
	}
	if err := iface.KeyRing.AddKey(desc); err != nil {
		return err
	}
	fmt.Println("key installed")
	return nil
}
