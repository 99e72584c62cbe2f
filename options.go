package hdc302x

import (
	"fmt"
	"log/slog"
	"time"
)

// Addresses selectable with the ADDR and ADDR1 pins (7-bit)
const (
	Addr00 byte = 0x44
	Addr01 byte = 0x45
	Addr10 byte = 0x46
	Addr11 byte = 0x47

	DefaultAddress = Addr00
)

// ValidAddress reports whether addr is one of the four strappable addresses.
func ValidAddress(addr byte) bool {
	return addr >= Addr00 && addr <= Addr11
}

type Opts struct {
	Address byte
	// CRCCheck validates the checksum byte of every received word.
	CRCCheck bool
	// RetryLimit bounds the plain read attempts after a failed write-read;
	// zero retries until success or context cancellation.
	RetryLimit int
	RetryDelay time.Duration
	// EnforceMode rejects operations that are invalid in the current sampling mode.
	EnforceMode  bool
	LowPowerMode LowPowerMode
	Logger       *slog.Logger
	Delayer      Delayer
}

type Opt func(*Opts)

func WithAddress(address byte) Opt {
	return func(o *Opts) {
		o.Address = address
	}
}

func WithCRCCheck(enabled bool) Opt {
	return func(o *Opts) {
		o.CRCCheck = enabled
	}
}

func WithRetryLimit(limit int) Opt {
	return func(o *Opts) {
		o.RetryLimit = limit
	}
}

func WithRetryDelay(delay time.Duration) Opt {
	return func(o *Opts) {
		o.RetryDelay = delay
	}
}

func WithModeEnforcement(enabled bool) Opt {
	return func(o *Opts) {
		o.EnforceMode = enabled
	}
}

// WithLowPowerMode sets the power mode used by GetTemperature, GetHumidity,
// GetTempAndHum and Sense.
func WithLowPowerMode(lpm LowPowerMode) Opt {
	return func(o *Opts) {
		o.LowPowerMode = lpm
	}
}

func WithLogger(logger *slog.Logger) Opt {
	return func(o *Opts) {
		o.Logger = logger
	}
}

func WithDelayer(delayer Delayer) Opt {
	return func(o *Opts) {
		o.Delayer = delayer
	}
}

func defaultOpts() Opts {
	return Opts{
		Address:      DefaultAddress,
		CRCCheck:     true,
		RetryLimit:   100,
		RetryDelay:   time.Millisecond,
		EnforceMode:  true,
		LowPowerMode: LowestNoise,
	}
}

func (o Opts) validate() error {
	if !ValidAddress(o.Address) {
		return fmt.Errorf("%w: address %#02x is not one of 0x44-0x47", ErrInvalidInput, o.Address)
	}
	if o.RetryLimit < 0 {
		return fmt.Errorf("%w: negative retry limit %d", ErrInvalidInput, o.RetryLimit)
	}
	if o.LowPowerMode < LowPowerMode0 || o.LowPowerMode > LowPowerMode3 {
		return fmt.Errorf("%w: low power mode %d", ErrInvalidInput, int(o.LowPowerMode))
	}
	return nil
}
