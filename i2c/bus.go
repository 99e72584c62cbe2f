package i2c

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/mklimuk/hdc302x"
)

var _ hdc302x.I2CBus = &GenericBus{}
var _ hdc302x.AddressableWriteReader = &GenericBus{}

var initHost = sync.OnceValues(host.Init)

// GenericBus is an I2C bus opened through the periph host registry, e.g.
// /dev/i2c-1 on Linux. An empty name opens the first bus available.
type GenericBus struct {
	bus i2c.BusCloser
}

func NewGenericBus(dev string) (*GenericBus, error) {
	state, err := initHost()
	if err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	for _, driver := range state.Loaded {
		slog.Debug("periph driver loaded", "driver", driver.String())
	}
	bus, err := i2creg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus %q: %w", dev, err)
	}
	return &GenericBus{
		bus: bus,
	}, nil
}

func (b *GenericBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	err := b.bus.Tx(uint16(address), nil, buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c address %#02x: %w", address, err)
	}
	return nil
}

func (b *GenericBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	err := b.bus.Tx(uint16(address), buffer, nil)
	if err != nil {
		return fmt.Errorf("could not write to i2c address %#02x: %w", address, err)
	}
	return nil
}

// WriteReadFromAddr writes out and reads into in with a repeated start.
func (b *GenericBus) WriteReadFromAddr(ctx context.Context, address byte, out []byte, in []byte) error {
	err := b.bus.Tx(uint16(address), out, in)
	if err != nil {
		return fmt.Errorf("could not write-read i2c address %#02x: %w", address, err)
	}
	return nil
}

func (b *GenericBus) Release(ctx context.Context) error {
	return nil
}

func (b *GenericBus) Close() error {
	return b.bus.Close()
}

func (b *GenericBus) String() string {
	return "periph " + b.bus.String()
}
