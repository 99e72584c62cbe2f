package hdc302x

import (
	"context"
	"encoding/binary"
	"fmt"
)

const (
	wordLength = 2
	crcLength  = 1
	maxWords   = 2
)

// cmdAndRead sends cmd, followed by params (each with its CRC byte), and reads
// back the given number of words. Caller must hold s.mx.
func (s *Device) cmdAndRead(ctx context.Context, cmd Command, words int, params ...uint16) ([]uint16, error) {
	if words < 0 || words > maxWords {
		return nil, fmt.Errorf("%w: %d reply words requested, at most %d supported", ErrInvalidInput, words, maxWords)
	}
	opcode := cmd.Bytes()
	out := append(make([]byte, 0, wordLength+len(params)*(wordLength+crcLength)), opcode[:]...)
	for _, p := range params {
		out = appendWord(out, p)
	}

	if words == 0 {
		s.log.Debug("hdc302x: write", "cmd", cmd, "len", len(out))
		if err := s.transport.WriteToAddr(ctx, s.addr, out); err != nil {
			return nil, &BusError{Op: "write", Cmd: cmd, Err: err}
		}
		return nil, nil
	}

	buf := make([]byte, words*(wordLength+crcLength))
	s.log.Debug("hdc302x: write-read", "cmd", cmd, "len", len(buf))
	if err := writeRead(ctx, s.transport, s.addr, out, buf); err != nil {
		s.log.Warn("hdc302x: write-read failed, polling with plain reads", "cmd", cmd, "error", err)
		if err := s.recoverRead(ctx, cmd, buf); err != nil {
			return nil, err
		}
	}

	vals := make([]uint16, words)
	for i := range vals {
		word := buf[i*3 : i*3+wordLength]
		got := buf[i*3+wordLength]
		if s.config.CRCCheck {
			if want := Checksum(word); got != want {
				s.log.Warn("hdc302x: crc mismatch", "cmd", cmd, "word", i, "words", words, "buf", fmt.Sprintf("% x", buf), "got", got, "expected", want)
				return nil, &ChecksumError{Cmd: cmd, Word: i, Got: got, Expected: want}
			}
		}
		vals[i] = binary.BigEndian.Uint16(word)
	}
	return vals, nil
}

// recoverRead repeats plain reads of len(buf) bytes until one succeeds. The
// device NACKs reads while a conversion is in progress, so this is also how
// one-shot results are collected.
func (s *Device) recoverRead(ctx context.Context, cmd Command, buf []byte) error {
	var lastErr error
	for attempt := 1; s.config.RetryLimit == 0 || attempt <= s.config.RetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("hdc302x: %s read recovery interrupted: %w", cmd, err)
		}
		lastErr = s.transport.ReadFromAddr(ctx, s.addr, buf)
		if lastErr == nil {
			s.log.Debug("hdc302x: read recovered", "cmd", cmd, "attempt", attempt)
			return nil
		}
		if attempt == s.config.RetryLimit {
			break
		}
		if err := s.config.Delayer.Delay(ctx, s.config.RetryDelay); err != nil {
			return fmt.Errorf("hdc302x: %s read recovery interrupted: %w", cmd, err)
		}
	}
	return fmt.Errorf("%w: %s: no reply after %d reads: %w", ErrBusUnresponsive, cmd, s.config.RetryLimit, lastErr)
}
