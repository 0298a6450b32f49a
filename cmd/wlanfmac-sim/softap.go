package main

import (
	"fmt"

	"github.com/spf13/cobra"

	wlancore "github.com/nxpfmac/wlancore"
	"github.com/nxpfmac/wlancore/internal/mocksim"
	"github.com/nxpfmac/wlancore/internal/softap"
)

var (
	softApSSID    string
	softApChannel uint8
)

var softApCmd = &cobra.Command{
	Use:   "softap",
	Short: "Start or stop a soft access point against the simulated firmware",
}

var softApStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a soft-AP BSS",
	RunE:  runSoftApStart,
}

var softApStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the soft-AP BSS",
	RunE:  runSoftApStop,
}

func init() {
	softApCmd.PersistentFlags().StringVar(&softApSSID, "ssid", "Test_SoftAP", "access point SSID")
	softApStartCmd.Flags().Uint8Var(&softApChannel, "channel", 6, "access point channel")

	softApCmd.AddCommand(softApStartCmd)
	softApCmd.AddCommand(softApStopCmd)
}

func runSoftApStart(cmd *cobra.Command, args []string) error {
	ifc := mocksim.NewFullmacIfc()
	_, iface, _ := newSimDevice(wlancore.ModeSoftAP, ifc)

	result, err := iface.SoftAp.Start(softap.StartParams{SSID: []byte(softApSSID), Channel: softApChannel})
	if err != nil {
		return err
	}
	fmt.Printf("start result: %s\n", result)
	return nil
}

func runSoftApStop(cmd *cobra.Command, args []string) error {
	ifc := mocksim.NewFullmacIfc()
	_, iface, _ := newSimDevice(wlancore.ModeSoftAP, ifc)

	// Stopping a freshly constructed soft-AP always reports
	// BssAlreadyStopped; start it first so this demo shows a real stop.
	if _, err := iface.SoftAp.Start(softap.StartParams{SSID: []byte(softApSSID), Channel: 6}); err != nil {
		return err
	}

	result, err := iface.SoftAp.Stop(softap.StopParams{SSID: []byte(softApSSID)})
	if err != nil {
		return err
	}
	fmt.Printf("stop result: %s\n", result)
	return nil
}
