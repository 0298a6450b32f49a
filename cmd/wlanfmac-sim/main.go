// Command wlanfmac-sim is a demo/simulator CLI exercising the wlancore
// core against an in-memory simulated MlanAdapter/Bus, replacing a
// flag-based driver CLI with a cobra command tree so scan, connect,
// soft-AP, and key operations are each their own subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nxpfmac/wlancore/internal/logging"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "wlanfmac-sim",
	Short: "Simulate the wlancore driver core against a mock firmware",
	Long: `wlanfmac-sim drives the wlancore request-dispatch and event-distribution
core against an in-memory simulated MlanAdapter, Bus, and NetDevice,
without any real SDIO/PCIe hardware or firmware image.

It exists to exercise scan, connect, soft-AP, and key-ring operations from
the command line for manual testing and demonstration.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a wlancore YAML config file (accepted but not read; subcommands use built-in defaults)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(softApCmd)
	rootCmd.AddCommand(keysCmd)
}

func main() {
	cobra.OnInitialize(func() {
		logConfig := logging.DefaultConfig()
		if verbose {
			logConfig.Level = logging.LevelDebug
		}
		logging.SetDefault(logging.NewLogger(logConfig))
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
