// Package config loads device and interface defaults from YAML: the
// number of configured interfaces, default scan/connect/ioctl dwell
// times, and a regulatory channel set. Only this package's own tests read
// these values; the driver core and the demo CLI use the constants
// package's compiled-in defaults and do not consult a Config.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nxpfmac/wlancore/internal/constants"
)

// Config is the top-level device configuration loaded from YAML.
type Config struct {
	// NumInterfaces is the number of interfaces to configure. Load
	// replaces a zero or negative value with 1.
	NumInterfaces int `yaml:"num_interfaces"`

	// Timeouts holds ioctl/scan/connect timeouts; Load fills any unset
	// one from the constants package's defaults.
	Timeouts TimeoutConfig `yaml:"timeouts"`

	// RegulatoryChannels is the channel set read from the file, stored
	// as given; nothing in the module filters scan or soft-AP channels
	// by it.
	RegulatoryChannels []uint8 `yaml:"regulatory_channels"`
}

// TimeoutConfig holds the default dwell times for the module's
// asynchronous operations.
type TimeoutConfig struct {
	Ioctl   time.Duration `yaml:"ioctl"`
	Scan    time.Duration `yaml:"scan"`
	Connect time.Duration `yaml:"connect"`
}

// Default returns the configuration the module would use with no YAML
// file present, mirroring the constants package's compiled-in defaults.
func Default() *Config {
	return &Config{
		NumInterfaces: 1,
		Timeouts: TimeoutConfig{
			Ioctl:   constants.DefaultIoctlTimeout,
			Scan:    constants.DefaultScanTimeout,
			Connect: constants.DefaultConnectTimeout,
		},
	}
}

// Load reads and parses a YAML configuration file at path, filling in
// Default() for any zero-valued field left unset by the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if cfg.NumInterfaces <= 0 {
		cfg.NumInterfaces = 1
	}
	if cfg.Timeouts.Ioctl <= 0 {
		cfg.Timeouts.Ioctl = constants.DefaultIoctlTimeout
	}
	if cfg.Timeouts.Scan <= 0 {
		cfg.Timeouts.Scan = constants.DefaultScanTimeout
	}
	if cfg.Timeouts.Connect <= 0 {
		cfg.Timeouts.Connect = constants.DefaultConnectTimeout
	}
	return cfg, nil
}
