package hdc302x

import (
	"errors"
	"fmt"
)

var (
	// ErrBus is matched by every transport failure.
	ErrBus = errors.New("hdc302x: bus error")
	// ErrChecksumMismatch is matched when a received word fails its CRC.
	ErrChecksumMismatch = errors.New("hdc302x: crc mismatch")
	// ErrInvalidInput is returned for parameters outside of the device command set.
	ErrInvalidInput = errors.New("hdc302x: invalid input")
	// ErrBusUnresponsive is returned when the read recovery loop runs out of attempts.
	ErrBusUnresponsive = errors.New("hdc302x: bus unresponsive")
	// ErrInvalidMode is returned when an operation is not legal in the current device mode.
	ErrInvalidMode = errors.New("hdc302x: operation invalid in current mode")
	// ErrStatusClear is matched when the status register was read but clearing it failed.
	ErrStatusClear = errors.New("hdc302x: status clear failed")
)

// BusError wraps the transport error of a failed bus operation.
type BusError struct {
	Op  string
	Cmd Command
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("hdc302x: %s %s failed: %v", e.Op, e.Cmd, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

func (e *BusError) Is(target error) bool { return target == ErrBus }

// ChecksumError describes the first word of a reply whose CRC did not match.
type ChecksumError struct {
	Cmd      Command
	Word     int
	Got      byte
	Expected byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("hdc302x: crc mismatch in word %d of %s: expected %#02x, got %#02x", e.Word, e.Cmd, e.Expected, e.Got)
}

func (e *ChecksumError) Is(target error) bool { return target == ErrChecksumMismatch }
