package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 1, cfg.NumInterfaces)
	require.Equal(t, 5*time.Second, cfg.Timeouts.Ioctl)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wlancore.yaml")
	contents := "num_interfaces: 2\ntimeouts:\n  scan: 20s\nregulatory_channels: [1, 6, 11, 36]\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.NumInterfaces)
	require.Equal(t, 20*time.Second, cfg.Timeouts.Scan)
	require.Equal(t, 10*time.Second, cfg.Timeouts.Connect)
	require.Equal(t, []uint8{1, 6, 11, 36}, cfg.RegulatoryChannels)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/wlancore.yaml")
	require.Error(t, err)
}
