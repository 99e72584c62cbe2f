// Package config holds the hdc CLI profile: which adapter to open and how to
// drive the sensor behind it.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mklimuk/hdc302x"
)

const (
	AdapterMCP2221 = "mcp2221"
	AdapterGeneric = "generic"
	AdapterNanoPi  = "nanopi"
	AdapterSim     = "sim"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Adapter is one of mcp2221, generic, nanopi or sim.
	Adapter string `yaml:"adapter"`
	// Device names the periph bus for the generic adapter, e.g. /dev/i2c-1.
	Device string `yaml:"device"`
	// Bus is the gobot bus number for the nanopi adapter; -1 selects the default.
	Bus          int           `yaml:"bus"`
	Address      uint8         `yaml:"address"`
	LowPowerMode int           `yaml:"low_power_mode"`
	CRCCheck     bool          `yaml:"crc_check"`
	RetryLimit   int           `yaml:"retry_limit"`
	RetryDelay   time.Duration `yaml:"retry_delay"`
	EnforceMode  bool          `yaml:"enforce_mode"`
}

func Default() Config {
	return Config{
		Adapter:      AdapterMCP2221,
		Bus:          -1,
		Address:      hdc302x.DefaultAddress,
		LowPowerMode: int(hdc302x.LowestNoise),
		CRCCheck:     true,
		RetryLimit:   100,
		RetryDelay:   time.Millisecond,
		EnforceMode:  true,
	}
}

// Load reads a YAML profile; fields missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("could not open config: %w", err)
	}
	defer func() { _ = f.Close() }()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("could not decode config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Adapter {
	case AdapterMCP2221, AdapterGeneric, AdapterNanoPi, AdapterSim:
	default:
		return fmt.Errorf("%w: unknown adapter %q", ErrInvalidConfig, c.Adapter)
	}
	if !hdc302x.ValidAddress(c.Address) {
		return fmt.Errorf("%w: address %#02x is not one of 0x44-0x47", ErrInvalidConfig, c.Address)
	}
	if c.LowPowerMode < int(hdc302x.LowPowerMode0) || c.LowPowerMode > int(hdc302x.LowPowerMode3) {
		return fmt.Errorf("%w: low power mode %d out of range 0-3", ErrInvalidConfig, c.LowPowerMode)
	}
	if c.RetryLimit < 0 {
		return fmt.Errorf("%w: negative retry limit", ErrInvalidConfig)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: negative retry delay", ErrInvalidConfig)
	}
	return nil
}

// Options maps the profile onto driver options.
func (c Config) Options(logger *slog.Logger) []hdc302x.Opt {
	return []hdc302x.Opt{
		hdc302x.WithAddress(c.Address),
		hdc302x.WithLowPowerMode(hdc302x.LowPowerMode(c.LowPowerMode)),
		hdc302x.WithCRCCheck(c.CRCCheck),
		hdc302x.WithRetryLimit(c.RetryLimit),
		hdc302x.WithRetryDelay(c.RetryDelay),
		hdc302x.WithModeEnforcement(c.EnforceMode),
		hdc302x.WithLogger(logger),
	}
}
