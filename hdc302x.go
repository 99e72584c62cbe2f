// Package hdc302x drives the Texas Instruments HDC3020, HDC3021, HDC3022 and
// their -Q1 variants: capacitive relative humidity and temperature sensors on
// I2C.
//
// Every exchange with the device is a 16-bit command, optionally followed by
// up to two data words each protected by a CRC-8 byte. Supported features:
// one-shot and auto (self-timed) sampling, auto mode min/max tracking, the
// condensation heater, status register, serial number, manufacturer ID and
// soft reset. Alerts, offset calibration and the post-reset state are not
// supported.
//
// Typical usage:
//
//	s, err := hdc302x.New(bus, hdc302x.WithAddress(hdc302x.Addr01))
//	d, err := s.OneShot(ctx, hdc302x.LowestNoise)
//	c, _ := d.Celsius()
//
// Datasheet: https://www.ti.com/lit/ds/symlink/hdc3020.pdf
package hdc302x

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"periph.io/x/conn/v3/physic"
)

// TemperatureAndHumiditySensor reads converted values; Device implements it.
type TemperatureAndHumiditySensor interface {
	GetTemperature(ctx context.Context) (float32, error)
	GetHumidity(ctx context.Context) (float32, error)
	GetTempAndHum(ctx context.Context) (float32, float32, error)
}

var _ TemperatureAndHumiditySensor = &Device{}

// Device represents a HDC302x sensor at a fixed address. Operations are
// serialized; multi-command sequences are never interleaved.
type Device struct {
	mx sync.Mutex

	config    Opts
	transport I2CBus
	addr      byte
	log       *slog.Logger
	mode      Mode
}

func New(transport I2CBus, opts ...Opt) (*Device, error) {
	config := defaultOpts()
	for _, opt := range opts {
		opt(&config)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Delayer == nil {
		config.Delayer = TimerDelayer{}
	}
	return &Device{
		config:    config,
		transport: transport,
		addr:      config.Address,
		log:       config.Logger.With("addr", fmt.Sprintf("%#02x", config.Address)),
		mode:      ModeSleeping,
	}, nil
}

func (s *Device) Address() byte {
	return s.addr
}

// Mode returns the sampling mode as tracked by the driver.
func (s *Device) Mode() Mode {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.mode
}

// OneShot triggers a single measurement and returns the raw sample pair.
func (s *Device) OneShot(ctx context.Context, lpm LowPowerMode) (RawDatum, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.oneShot(ctx, lpm)
}

func (s *Device) oneShot(ctx context.Context, lpm LowPowerMode) (RawDatum, error) {
	if err := s.requireMode("one-shot", ModeSleeping); err != nil {
		return RawDatum{}, err
	}
	cmd, err := StartSamplingCommand(OneShot, lpm)
	if err != nil {
		return RawDatum{}, err
	}
	vals, err := s.cmdAndRead(ctx, cmd, 2)
	if err != nil {
		return RawDatum{}, fmt.Errorf("hdc302x: one-shot measurement failed: %w", err)
	}
	return rawPair(vals), nil
}

// AutoStart enters auto mode (continuous self-timed sampling).
func (s *Device) AutoStart(ctx context.Context, rate SampleRate, lpm LowPowerMode) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if rate == OneShot {
		return fmt.Errorf("%w: auto mode needs a periodic sample rate", ErrInvalidInput)
	}
	if err := s.requireMode("auto start", ModeSleeping); err != nil {
		return err
	}
	cmd, err := StartSamplingCommand(rate, lpm)
	if err != nil {
		return err
	}
	if _, err := s.cmdAndRead(ctx, cmd, 0); err != nil {
		return fmt.Errorf("hdc302x: auto start failed: %w", err)
	}
	s.mode = ModeAutoRunning
	s.log.Debug("hdc302x: auto mode started", "rate", rate, "lpm", int(lpm))
	return nil
}

// AutoStop exits auto mode and returns the device to sleep. Min/max tracking
// restarts with the next AutoStart.
func (s *Device) AutoStop(ctx context.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if _, err := s.cmdAndRead(ctx, CmdAutoExit, 0); err != nil {
		return fmt.Errorf("hdc302x: auto stop failed: %w", err)
	}
	s.mode = ModeSleeping
	return nil
}

// AutoRead reads the latest sample pair or one of the tracked extremes.
func (s *Device) AutoRead(ctx context.Context, target AutoReadTarget) (RawDatum, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.autoRead(ctx, target)
}

func (s *Device) autoRead(ctx context.Context, target AutoReadTarget) (RawDatum, error) {
	cmd, words, err := target.command()
	if err != nil {
		return RawDatum{}, err
	}
	if err := s.requireMode("auto read", ModeAutoRunning); err != nil {
		return RawDatum{}, err
	}
	vals, err := s.cmdAndRead(ctx, cmd, words)
	if err != nil {
		return RawDatum{}, fmt.Errorf("hdc302x: auto read %s failed: %w", target, err)
	}
	if target == LastTempAndRelHumid {
		return rawPair(vals), nil
	}
	return rawExtremum(target, vals[0]), nil
}

// Heater sets the condensation heater level. The heater is always disabled
// first; configure and enable follow only for a non-zero level. Any failure
// leaves the heater disabled.
func (s *Device) Heater(ctx context.Context, level HeaterLevel) error {
	setting, on, err := level.Setting()
	if err != nil {
		return err
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	if _, err := s.cmdAndRead(ctx, CmdHeaterDisable, 0); err != nil {
		return fmt.Errorf("hdc302x: heater disable failed: %w", err)
	}
	if !on {
		return nil
	}
	// datasheet frame: 0x306E, setting MSB, setting LSB, CRC
	if _, err := s.cmdAndRead(ctx, CmdHeaterConfig, 0, setting); err != nil {
		return fmt.Errorf("hdc302x: heater configure failed: %w", err)
	}
	if _, err := s.cmdAndRead(ctx, CmdHeaterEnable, 0); err != nil {
		return fmt.Errorf("hdc302x: heater enable failed: %w", err)
	}
	s.log.Debug("hdc302x: heater enabled", "level", level, "setting", fmt.Sprintf("%#04x", setting))
	return nil
}

// ReadStatus reads the status register and optionally clears it afterwards.
// If only the clear fails, the status read before it is returned with an error
// matching ErrStatusClear.
func (s *Device) ReadStatus(ctx context.Context, clear bool) (StatusBits, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	vals, err := s.cmdAndRead(ctx, CmdStatusRead, 1)
	if err != nil {
		return StatusBits{}, fmt.Errorf("hdc302x: status read failed: %w", err)
	}
	status := DecodeStatus(vals[0])
	if clear {
		if _, err := s.cmdAndRead(ctx, CmdStatusClear, 0); err != nil {
			return status, fmt.Errorf("%w: %w", ErrStatusClear, err)
		}
	}
	return status, nil
}

// ReadSerialNumber reads the NIST-traceable serial number.
func (s *Device) ReadSerialNumber(ctx context.Context) (SerialNumber, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	var words [3]uint16
	for i, cmd := range []Command{CmdSerialID54, CmdSerialID32, CmdSerialID10} {
		vals, err := s.cmdAndRead(ctx, cmd, 1)
		if err != nil {
			return SerialNumber{}, fmt.Errorf("hdc302x: serial number read failed: %w", err)
		}
		words[i] = vals[0]
	}
	return serialFromWords(words[0], words[1], words[2]), nil
}

// ReadManufacturerID reads the manufacturer ID.
func (s *Device) ReadManufacturerID(ctx context.Context) (ManufacturerID, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	vals, err := s.cmdAndRead(ctx, CmdManufacturerID, 1)
	if err != nil {
		return 0, fmt.Errorf("hdc302x: manufacturer id read failed: %w", err)
	}
	return ManufacturerID(vals[0]), nil
}

// SoftReset resets the device, which returns to sleep.
func (s *Device) SoftReset(ctx context.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if _, err := s.cmdAndRead(ctx, CmdSoftReset, 0); err != nil {
		return fmt.Errorf("hdc302x: soft reset failed: %w", err)
	}
	s.mode = ModeSleeping
	return nil
}

// latest returns the most recent sample: a one-shot measurement while sleeping,
// the last auto mode result otherwise.
func (s *Device) latest(ctx context.Context) (RawDatum, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if s.mode == ModeAutoRunning {
		return s.autoRead(ctx, LastTempAndRelHumid)
	}
	return s.oneShot(ctx, s.config.LowPowerMode)
}

// GetTemperature returns temperature in Celsius.
func (s *Device) GetTemperature(ctx context.Context) (float32, error) {
	d, err := s.latest(ctx)
	if err != nil {
		return 0, err
	}
	t, _ := d.Celsius()
	return t, nil
}

// GetHumidity returns relative humidity in %RH.
func (s *Device) GetHumidity(ctx context.Context) (float32, error) {
	d, err := s.latest(ctx)
	if err != nil {
		return 0, err
	}
	h, _ := d.HumidityPercent()
	return h, nil
}

// GetTempAndHum returns temperature in Celsius and relative humidity in %RH.
func (s *Device) GetTempAndHum(ctx context.Context) (float32, float32, error) {
	d, err := s.latest(ctx)
	if err != nil {
		return 0, 0, err
	}
	t, _ := d.Celsius()
	h, _ := d.HumidityPercent()
	return t, h, nil
}

// Sense fills temperature and humidity of env.
func (s *Device) Sense(ctx context.Context, env *physic.Env) error {
	d, err := s.latest(ctx)
	if err != nil {
		return err
	}
	d.Env(env)
	return nil
}

func (s *Device) String() string {
	return fmt.Sprintf("hdc302x{%#02x}", s.addr)
}
