package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	wlancore "github.com/nxpfmac/wlancore"
	"github.com/nxpfmac/wlancore/internal/mlan"
	"github.com/nxpfmac/wlancore/internal/mocksim"
	"github.com/nxpfmac/wlancore/internal/scanner"
)

var scanPassive bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run an active or passive scan against the simulated firmware",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanPassive, "passive", false, "run a passive scan instead of active")
}

func runScan(cmd *cobra.Command, args []string) error {
	ifc := mocksim.NewFullmacIfc()
	_, iface, _ := newSimDevice(wlancore.ModeClient, ifc)

	scanType := mlan.ScanTypeActive
	if scanPassive {
		scanType = mlan.ScanTypePassive
	}

	done := make(chan struct{})
	go func() {
		for ifc.ScanEndCount() == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		close(done)
	}()

	err := iface.Scanner.Scan(scanner.Request{
		TxnID:    0x234776898ADF83,
		ScanType: scanType,
	}, 5*time.Second)
	if err != nil {
		return err
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		return fmt.Errorf("scan timed out waiting for simulated firmware")
	}

	for _, r := range ifc.ScanResults {
		fmt.Printf("BSS %02x:%02x:%02x:%02x:%02x:%02x channel=%d rssi=%ddBm ies=%d bytes\n",
			r.BSSID[0], r.BSSID[1], r.BSSID[2], r.BSSID[3], r.BSSID[4], r.BSSID[5],
			r.ChannelPrimary, r.RSSIDbm, len(r.IEs))
	}
	end := ifc.ScanEnds[len(ifc.ScanEnds)-1]
	fmt.Printf("scan end: txn_id=0x%x code=%s\n", end.TxnID, end.Code)
	return nil
}
