package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestCalcCarbon(t *testing.T) {
	assert.Equal(t, "60.32 kg CO2 for 100 kWh\n", runCmd(t, "calc", "carbon", "100"))
	assert.Equal(t, "0.00 kg CO2 for 0 kWh\n", runCmd(t, "calc", "carbon", "abc"))
}

func TestCalcBill(t *testing.T) {
	assert.Equal(t, "₱110.00 at ₱11.00/kWh\n", runCmd(t, "calc", "bill", "10"))
	assert.Equal(t, "₱125.00 at ₱12.50/kWh\n", runCmd(t, "calc", "bill", "10", "--tariff", "12.5"))
}

func TestCalcScenario(t *testing.T) {
	out := runCmd(t, "calc", "scenario", "--name", "Aircon", "--wattage", "1000", "--hours", "2")
	assert.Contains(t, out, "Aircon at 2 h/day")
	assert.Contains(t, out, "daily cost:   ₱22.00")
	assert.Contains(t, out, "monthly cost: ₱660.00")
	assert.Contains(t, out, "daily carbon: 1.00 kg")
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := "port: \"9000\"\nmonitor:\n  interval: \"45s\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("ENERGY_DB_PATH", "/tmp/other.db")

	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.MonitorInterval)
	assert.Equal(t, 5*time.Second, cfg.MonitorDelay)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, 256, cfg.InboxCacheSize)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "energy.db", cfg.DBPath)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}
