package main

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	wlancore "github.com/nxpfmac/wlancore"
	"github.com/nxpfmac/wlancore/internal/client"
	"github.com/nxpfmac/wlancore/internal/mocksim"
)

var (
	connectBSSID   string
	connectChannel uint8
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Attempt to join a BSS against the simulated firmware",
	RunE:  runConnect,
}

func init() {
	connectCmd.Flags().StringVar(&connectBSSID, "bssid", "AA:BB:CC:DD:EE:FF", "target BSSID")
	connectCmd.Flags().Uint8Var(&connectChannel, "channel", 36, "target channel")
}

func parseMAC(s string) ([6]byte, error) {
	var mac [6]byte
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return mac, fmt.Errorf("invalid MAC address %q", s)
	}
	for i, p := range parts {
		b, err := hex.DecodeString(p)
		if err != nil || len(b) != 1 {
			return mac, fmt.Errorf("invalid MAC address %q", s)
		}
		mac[i] = b[0]
	}
	return mac, nil
}

func runConnect(cmd *cobra.Command, args []string) error {
	bssid, err := parseMAC(connectBSSID)
	if err != nil {
		return err
	}

	ifc := mocksim.NewFullmacIfc()
	_, iface, _ := newSimDevice(wlancore.ModeClient, ifc)

	done := make(chan uint16, 1)
	err = iface.Client.Connect(client.Request{BSSID: bssid, Channel: connectChannel}, func(status uint16, ies []byte) {
		done <- status
	}, 5*time.Second)
	if err != nil {
		return err
	}

	select {
	case status := <-done:
		fmt.Printf("connect confirm: status=0x%x\n", status)
	case <-time.After(5 * time.Second):
		return fmt.Errorf("connect timed out waiting for simulated firmware")
	}
	return nil
}
