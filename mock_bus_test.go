package hdc302x

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockI2CBus is a mock implementation of I2CBus and AddressableWriteReader using testify/mock
type MockI2CBus struct {
	mock.Mock
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
		copy(buffer, data)
	}
	return args.Error(1)
}

func (m *MockI2CBus) WriteReadFromAddr(ctx context.Context, address byte, out []byte, in []byte) error {
	args := m.Called(ctx, address, out, in)
	if data, ok := args.Get(0).([]byte); ok && len(data) <= len(in) {
		copy(in, data)
	}
	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// writtenCommands returns the opcodes of all writes and write-reads in call order.
func (m *MockI2CBus) writtenCommands() []Command {
	var cmds []Command
	for _, call := range m.Calls {
		if call.Method != "WriteToAddr" && call.Method != "WriteReadFromAddr" {
			continue
		}
		out := call.Arguments.Get(2).([]byte)
		cmds = append(cmds, Command(uint16(out[0])<<8|uint16(out[1])))
	}
	return cmds
}

// plainBus hides WriteReadFromAddr from the driver.
type plainBus struct {
	m *MockI2CBus
}

func (b plainBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	return b.m.WriteToAddr(ctx, address, buffer)
}

func (b plainBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	return b.m.ReadFromAddr(ctx, address, buffer)
}

func (b plainBus) Release(ctx context.Context) error {
	return b.m.Release(ctx)
}

// reply encodes words as the device sends them: MSB, LSB, CRC.
func reply(words ...uint16) []byte {
	var buf []byte
	for _, w := range words {
		buf = appendWord(buf, w)
	}
	return buf
}

func cmdBytes(c Command) []byte {
	b := c.Bytes()
	return b[:]
}

func bufLen(n int) interface{} {
	return mock.MatchedBy(func(b []byte) bool { return len(b) == n })
}

// countingDelayer records delays without sleeping.
type countingDelayer struct {
	calls []time.Duration
}

func (d *countingDelayer) Delay(ctx context.Context, dur time.Duration) error {
	d.calls = append(d.calls, dur)
	return ctx.Err()
}

func newTestDevice(bus I2CBus, opts ...Opt) (*Device, *countingDelayer) {
	delayer := &countingDelayer{}
	s, err := New(bus, append([]Opt{WithDelayer(delayer)}, opts...)...)
	if err != nil {
		panic(err)
	}
	return s, delayer
}
