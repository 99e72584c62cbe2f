package hdc302x

import (
	"context"
	"errors"
)

// ErrBusBusy is returned by adapters whose I2C engine has not completed the
// previous transfer.
var ErrBusBusy = errors.New("I2C engine is busy (command not completed)")

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// AddressableWriteReader performs a write followed by a read without releasing
// the bus in between (repeated start).
type AddressableWriteReader interface {
	WriteReadFromAddr(ctx context.Context, address byte, out []byte, in []byte) error
}

type I2CBus interface {
	AddressableReader
	AddressableWriter
}

// writeRead uses the combined transaction when the bus supports it and falls
// back to a write followed by a read otherwise.
func writeRead(ctx context.Context, bus I2CBus, address byte, out []byte, in []byte) error {
	if wr, ok := bus.(AddressableWriteReader); ok {
		return wr.WriteReadFromAddr(ctx, address, out, in)
	}
	if err := bus.WriteToAddr(ctx, address, out); err != nil {
		return err
	}
	return bus.ReadFromAddr(ctx, address, in)
}
