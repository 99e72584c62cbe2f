package main

import (
	"fmt"
	"log/slog"

	"github.com/karalabe/hid"
	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	"github.com/mklimuk/hdc302x"
	"github.com/mklimuk/hdc302x/adapter"
	"github.com/mklimuk/hdc302x/config"
	"github.com/mklimuk/hdc302x/i2c"
	"github.com/mklimuk/hdc302x/sim"
)

// newSim builds the sensor behind the sim adapter.
var newSim = sim.New

// loadConfig reads the profile given with --config and applies flags set on
// the command line on top of it.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, err
		}
	}
	if c.IsSet("adapter") || c.String("config") == "" {
		cfg.Adapter = c.String("adapter")
	}
	if c.IsSet("device") {
		cfg.Device = c.String("device")
	}
	if c.IsSet("bus") {
		cfg.Bus = c.Int("bus")
	}
	if c.IsSet("address") {
		addr, err := parseAddress(c.String("address"))
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}
		cfg.Address = addr
	}
	return cfg, cfg.Validate()
}

// openBus opens the transport named by cfg; release closes it.
func openBus(cfg config.Config) (bus hdc302x.I2CBus, release func(), err error) {
	switch cfg.Adapter {
	case config.AdapterMCP2221:
		if !hid.Supported() {
			return nil, nil, fmt.Errorf("%w: mcp2221 needs a cgo build", config.ErrInvalidConfig)
		}
		return adapter.NewMCP2221(), func() {}, nil
	case config.AdapterGeneric:
		b, err := i2c.NewGenericBus(cfg.Device)
		if err != nil {
			return nil, nil, err
		}
		return b, func() {
			if err := b.Close(); err != nil {
				slog.Warn("bus close failed", "bus", b, "error", err)
			}
		}, nil
	case config.AdapterNanoPi:
		npi := nanopi.NewNeoAdaptor()
		if err := npi.I2cBusAdaptor.Connect(); err != nil {
			return nil, nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		b := i2c.NewGobotBus(npi, cfg.Bus)
		return b, func() {
			if err := b.Close(); err != nil {
				slog.Warn("bus close failed", "bus", b, "error", err)
			}
			if err := npi.I2cBusAdaptor.Finalize(); err != nil {
				slog.Warn("adaptor finalize failed", "error", err)
			}
		}, nil
	case config.AdapterSim:
		return newSim(cfg.Address), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown adapter %q", config.ErrInvalidConfig, cfg.Adapter)
	}
}

// openDevice builds the driver for the current invocation. Each invocation
// starts with a fresh driver, so the sampling mode the device is really in is
// unknown; callers pass WithModeEnforcement(false) where that matters.
func openDevice(c *cli.Context, opts ...hdc302x.Opt) (*hdc302x.Device, func(), error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	bus, release, err := openBus(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("adapter initialization error: %w", err)
	}
	dev, err := hdc302x.New(bus, append(cfg.Options(slog.Default()), opts...)...)
	if err != nil {
		release()
		return nil, nil, err
	}
	slog.Debug("device ready", "device", dev, "adapter", cfg.Adapter)
	return dev, release, nil
}
