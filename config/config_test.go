package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/hdc302x"
	"github.com/mklimuk/hdc302x/sim"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hdc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
adapter: generic
device: /dev/i2c-1
address: 0x46
low_power_mode: 3
retry_delay: 5ms
crc_check: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Adapter:      AdapterGeneric,
		Device:       "/dev/i2c-1",
		Bus:          -1,
		Address:      0x46,
		LowPowerMode: 3,
		CRCCheck:     false,
		RetryLimit:   100,
		RetryDelay:   5 * time.Millisecond,
		EnforceMode:  true,
	}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown adapter": "adapter: spi\n",
		"bad address":     "address: 0x40\n",
		"bad lpm":         "low_power_mode: 4\n",
		"negative retry":  "retry_limit: -2\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "adress: 0x45\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Address = hdc302x.Addr11
	s, err := hdc302x.New(sim.New(hdc302x.Addr11), cfg.Options(slog.Default())...)
	require.NoError(t, err)
	assert.Equal(t, hdc302x.Addr11, s.Address())
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
