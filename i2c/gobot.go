package i2c

import (
	"context"
	"errors"
	"fmt"
	"sync"

	gobi2c "gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/mklimuk/hdc302x"
)

var _ hdc302x.I2CBus = &GobotBus{}

// GobotBus talks to devices through a gobot I2C connector, e.g. the NanoPi
// NEO adaptor. Connections are opened per address on first use and kept
// until Close.
type GobotBus struct {
	mx          sync.Mutex
	connector   gobi2c.Connector
	busNr       int
	connections map[byte]gobi2c.Connection
}

// NewGobotBus uses bus number busNr of connector; a negative number selects
// the connector's default bus.
func NewGobotBus(connector gobi2c.Connector, busNr int) *GobotBus {
	if busNr < 0 {
		busNr = connector.DefaultI2cBus()
	}
	return &GobotBus{
		connector:   connector,
		busNr:       busNr,
		connections: make(map[byte]gobi2c.Connection),
	}
}

func (b *GobotBus) connection(address byte) (gobi2c.Connection, error) {
	if c, ok := b.connections[address]; ok {
		return c, nil
	}
	c, err := b.connector.GetI2cConnection(int(address), b.busNr)
	if err != nil {
		return nil, fmt.Errorf("could not open connection to %#02x on bus %d: %w", address, b.busNr, err)
	}
	b.connections[address] = c
	return c, nil
}

func (b *GobotBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	c, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := c.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c address %#02x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short read from i2c address %#02x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

func (b *GobotBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	c, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := c.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c address %#02x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write to i2c address %#02x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

func (b *GobotBus) Release(ctx context.Context) error {
	return nil
}

// Close closes all connections opened so far.
func (b *GobotBus) Close() error {
	b.mx.Lock()
	defer b.mx.Unlock()
	var errs []error
	for addr, c := range b.connections {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %#02x: %w", addr, err))
		}
		delete(b.connections, addr)
	}
	return errors.Join(errs...)
}

func (b *GobotBus) String() string {
	return fmt.Sprintf("gobot i2c bus %d", b.busNr)
}
