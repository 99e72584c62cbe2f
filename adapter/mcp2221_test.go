package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/hdc302x"
)

// fakeAdapter answers every request with respond and records what was sent.
type fakeAdapter struct {
	requests [][]byte
	respond  func(req []byte) []byte
	opens    int
	closes   int
	last     []byte
}

func (f *fakeAdapter) Write(b []byte) (int, error) {
	f.requests = append(f.requests, append([]byte(nil), b...))
	f.last = f.respond(b)
	return len(b), nil
}

func (f *fakeAdapter) Read(b []byte) (int, error) {
	return copy(b, f.last), nil
}

func (f *fakeAdapter) Close() error {
	f.closes++
	return nil
}

func (f *fakeAdapter) opener() Opener {
	return func() (HIDDevice, error) {
		f.opens++
		return f, nil
	}
}

func report(bytes ...byte) []byte {
	r := make([]byte, reportSize)
	copy(r, bytes)
	return r
}

func newTestAdapter(respond func(req []byte) []byte) (*MCP2221, *fakeAdapter) {
	f := &fakeAdapter{respond: respond}
	return NewMCP2221(WithResponseWait(0), WithOpener(f.opener())), f
}

func TestMCP2221_WriteToAddr(t *testing.T) {
	d, f := newTestAdapter(func(req []byte) []byte { return report(req[0], 0x00) })

	require.NoError(t, d.WriteToAddr(context.Background(), 0x44, []byte{0x30, 0xA2}))
	require.Len(t, f.requests, 1)
	assert.Equal(t, report(0x90, 0x02, 0x00, 0x88, 0x30, 0xA2), f.requests[0])
	assert.Equal(t, f.opens, f.closes)
}

func TestMCP2221_WriteBusy(t *testing.T) {
	d, _ := newTestAdapter(func(req []byte) []byte { return report(req[0], 0x01) })
	err := d.WriteToAddr(context.Background(), 0x44, []byte{0x30, 0xA2})
	assert.ErrorIs(t, err, hdc302x.ErrBusBusy)
}

func TestMCP2221_WriteReadFromAddr(t *testing.T) {
	d, f := newTestAdapter(func(req []byte) []byte {
		if req[0] == cmdI2CGetData {
			return report(cmdI2CGetData, 0x00, 0x00, 0x03, 0x30, 0x00, 0x33)
		}
		return report(req[0], 0x00)
	})

	in := make([]byte, 3)
	require.NoError(t, d.WriteReadFromAddr(context.Background(), 0x45, []byte{0x37, 0x81}, in))
	assert.Equal(t, []byte{0x30, 0x00, 0x33}, in)
	require.Len(t, f.requests, 3)
	assert.Equal(t, report(0x94, 0x02, 0x00, 0x8A, 0x37, 0x81), f.requests[0])
	assert.Equal(t, report(0x93, 0x03, 0x00, 0x8B), f.requests[1])
	assert.Equal(t, report(0x40), f.requests[2])
}

func TestMCP2221_ReadErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"engine read error", report(cmdI2CGetData, 0x41)},
		{"size mismatch", report(cmdI2CGetData, 0x00, 0x00, 0x02, 0x30, 0x00)},
		{"size unavailable", report(cmdI2CGetData, 0x00, 0x00, 127)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, _ := newTestAdapter(func(req []byte) []byte {
				if req[0] == cmdI2CGetData {
					return test.data
				}
				return report(req[0], 0x00)
			})
			err := d.ReadFromAddr(context.Background(), 0x44, make([]byte, 3))
			assert.Error(t, err)
		})
	}
}

func TestMCP2221_EchoMismatch(t *testing.T) {
	d, _ := newTestAdapter(func(req []byte) []byte { return report(0x00) })
	err := d.WriteToAddr(context.Background(), 0x44, []byte{0x30, 0x93})
	assert.ErrorIs(t, err, ErrCommandFailed)
}

func TestMCP2221_PayloadTooLarge(t *testing.T) {
	d, f := newTestAdapter(func(req []byte) []byte { return report(req[0]) })
	err := d.WriteToAddr(context.Background(), 0x44, make([]byte, 61))
	assert.Error(t, err)
	assert.Empty(t, f.requests)
}

func TestMCP2221_ReleaseBus(t *testing.T) {
	d, f := newTestAdapter(func(req []byte) []byte {
		r := report(req[0], 0x00)
		r[9], r[10] = 0x05, 0x00
		r[11], r[12] = 0x02, 0x00
		r[14] = 0x75
		r[16], r[17] = 0x88, 0x00
		return r
	})

	status, err := d.ReleaseBus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report(0x10, 0x00, 0x10), f.requests[0])
	assert.Equal(t, &MCP2221Status{
		I2CSpeedDivider:        0x75,
		CurrentAddress:         "8800",
		LastWriteRequestedSize: 5,
		LastWriteSentSize:      2,
	}, status)
}

func TestMCP2221_OpenFailure(t *testing.T) {
	openErr := errors.New("MCP2221 device not found")
	d := NewMCP2221(WithResponseWait(0), WithOpener(func() (HIDDevice, error) { return nil, openErr }))
	_, err := d.Status(context.Background())
	assert.ErrorIs(t, err, openErr)
}

func TestMCP2221_ContextCancelled(t *testing.T) {
	f := &fakeAdapter{respond: func(req []byte) []byte { return report(req[0]) }}
	d := NewMCP2221(WithResponseWait(time.Hour), WithOpener(f.opener()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Release(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
