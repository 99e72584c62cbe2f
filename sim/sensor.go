// Package sim provides an in-memory HDC302x that answers on an I2C address,
// so the driver and the CLI can run without hardware.
package sim

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/mklimuk/hdc302x"
)

var ErrNACK = errors.New("sim: not acknowledged")

const (
	statusHeaterEnabled   uint16 = 1 << 13
	statusResetDetected   uint16 = 1 << 4
	statusChecksumFailure uint16 = 1 << 0
)

var _ hdc302x.I2CBus = &Sensor{}
var _ hdc302x.AddressableWriteReader = &Sensor{}

// Sensor simulates a single HDC302x device. Fields may be changed between
// transactions with the setters; the zero value is not usable, call New.
type Sensor struct {
	mx sync.Mutex

	addr         byte
	temperature  uint16
	humidity     uint16
	minTemp      uint16
	maxTemp      uint16
	minHum       uint16
	maxHum       uint16
	status       uint16
	serial       [3]uint16
	manufacturer uint16
	heater       uint16
	auto         bool

	// reads to NACK after a one-shot trigger
	conversionReads int
	busyReads       int
	pending         []byte
	commands        []hdc302x.Command

	// fault injection
	writeErrs     map[hdc302x.Command]error
	failWriteRead int
	failReads     int
	corruptWord   int
}

// New returns a sensor at addr reporting 22.5°C / 45%RH with the reset flag set.
func New(addr byte) *Sensor {
	s := &Sensor{
		addr:         addr,
		status:       statusResetDetected,
		serial:       [3]uint16{0x1234, 0x5678, 0x9ABC},
		manufacturer: hdc302x.ManufacturerTexasInstruments,
		writeErrs:    make(map[hdc302x.Command]error),
		corruptWord:  -1,
	}
	s.SetSample(25278, 29491)
	return s
}

// SetSample sets the current raw temperature and humidity codes, updating the
// tracked extremes when auto mode runs.
func (s *Sensor) SetSample(temperature, humidity uint16) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.temperature = temperature
	s.humidity = humidity
	if !s.auto {
		return
	}
	s.minTemp = min(s.minTemp, temperature)
	s.maxTemp = max(s.maxTemp, temperature)
	s.minHum = min(s.minHum, humidity)
	s.maxHum = max(s.maxHum, humidity)
}

func (s *Sensor) SetSerial(high, mid, low uint16) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.serial = [3]uint16{high, mid, low}
}

func (s *Sensor) SetManufacturer(id uint16) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.manufacturer = id
}

func (s *Sensor) SetStatus(raw uint16) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.status = raw
}

// SetConversionReads sets how many reads are refused after a one-shot trigger.
func (s *Sensor) SetConversionReads(n int) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.conversionReads = n
}

// FailWrite makes writes of cmd fail with err; a nil err clears the fault.
func (s *Sensor) FailWrite(cmd hdc302x.Command, err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if err == nil {
		delete(s.writeErrs, cmd)
		return
	}
	s.writeErrs[cmd] = err
}

// FailWriteReads makes the next n combined transactions fail after the write
// phase was delivered.
func (s *Sensor) FailWriteReads(n int) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.failWriteRead = n
}

// FailReads makes the next n plain reads fail.
func (s *Sensor) FailReads(n int) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.failReads = n
}

// CorruptWord flips the CRC byte of the given reply word; -1 disables.
func (s *Sensor) CorruptWord(word int) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.corruptWord = word
}

// Commands returns the opcodes received so far.
func (s *Sensor) Commands() []hdc302x.Command {
	s.mx.Lock()
	defer s.mx.Unlock()
	return append([]hdc302x.Command(nil), s.commands...)
}

func (s *Sensor) HeaterSetting() (uint16, bool) {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.heater, s.status&statusHeaterEnabled != 0
}

func (s *Sensor) AutoRunning() bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.auto
}

func (s *Sensor) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if address != s.addr {
		return ErrNACK
	}
	return s.execute(buffer)
}

func (s *Sensor) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if address != s.addr {
		return ErrNACK
	}
	if s.failReads > 0 {
		s.failReads--
		return fmt.Errorf("sim: injected read failure: %w", ErrNACK)
	}
	if s.busyReads > 0 {
		s.busyReads--
		return fmt.Errorf("sim: conversion in progress: %w", ErrNACK)
	}
	if len(s.pending) < len(buffer) {
		return fmt.Errorf("sim: no data for %d byte read: %w", len(buffer), ErrNACK)
	}
	copy(buffer, s.pending)
	s.pending = nil
	return nil
}

func (s *Sensor) WriteReadFromAddr(ctx context.Context, address byte, out []byte, in []byte) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if address != s.addr {
		return ErrNACK
	}
	if err := s.execute(out); err != nil {
		return err
	}
	if s.failWriteRead > 0 {
		s.failWriteRead--
		return fmt.Errorf("sim: injected write-read failure: %w", ErrNACK)
	}
	if s.busyReads > 0 {
		return fmt.Errorf("sim: conversion in progress: %w", ErrNACK)
	}
	if len(s.pending) < len(in) {
		return fmt.Errorf("sim: no data for %d byte read: %w", len(in), ErrNACK)
	}
	copy(in, s.pending)
	s.pending = nil
	return nil
}

func (s *Sensor) Release(ctx context.Context) error {
	return nil
}

func (s *Sensor) execute(buf []byte) error {
	if len(buf) < 2 {
		return fmt.Errorf("sim: short command (%d bytes): %w", len(buf), ErrNACK)
	}
	cmd := hdc302x.Command(binary.BigEndian.Uint16(buf))
	if err, ok := s.writeErrs[cmd]; ok {
		return err
	}
	s.pending = nil

	switch cmd {
	case hdc302x.CmdAutoExit:
		s.auto = false
	case hdc302x.CmdAutoReadTempAndRelHumid:
		s.reply(s.temperature, s.humidity)
	case hdc302x.CmdAutoReadMinTemp:
		s.reply(s.minTemp)
	case hdc302x.CmdAutoReadMaxTemp:
		s.reply(s.maxTemp)
	case hdc302x.CmdAutoReadMinRelHumid:
		s.reply(s.minHum)
	case hdc302x.CmdAutoReadMaxRelHumid:
		s.reply(s.maxHum)
	case hdc302x.CmdHeaterEnable:
		s.status |= statusHeaterEnabled
	case hdc302x.CmdHeaterDisable:
		s.status &^= statusHeaterEnabled
	case hdc302x.CmdHeaterConfig:
		if len(buf) != 5 {
			return fmt.Errorf("sim: heater config needs 5 bytes, got %d: %w", len(buf), ErrNACK)
		}
		if hdc302x.CheckWord(buf[2:4], buf[4]) {
			s.heater = binary.BigEndian.Uint16(buf[2:4])
		} else {
			s.status |= statusChecksumFailure
		}
	case hdc302x.CmdStatusRead:
		s.reply(s.status)
	case hdc302x.CmdStatusClear:
		s.status &= statusHeaterEnabled
	case hdc302x.CmdSerialID54:
		s.reply(s.serial[0])
	case hdc302x.CmdSerialID32:
		s.reply(s.serial[1])
	case hdc302x.CmdSerialID10:
		s.reply(s.serial[2])
	case hdc302x.CmdManufacturerID:
		s.reply(s.manufacturer)
	case hdc302x.CmdSoftReset:
		s.auto = false
		s.heater = 0
		s.status = statusResetDetected
	default:
		if err := s.startSampling(cmd); err != nil {
			return err
		}
	}
	s.commands = append(s.commands, cmd)
	return nil
}

func (s *Sensor) startSampling(cmd hdc302x.Command) error {
	for lpm := hdc302x.LowPowerMode0; lpm <= hdc302x.LowPowerMode3; lpm++ {
		if c, _ := hdc302x.StartSamplingCommand(hdc302x.OneShot, lpm); c == cmd {
			s.reply(s.temperature, s.humidity)
			s.busyReads = s.conversionReads
			return nil
		}
		for rate := hdc302x.Auto500mHz; rate <= hdc302x.Auto10Hz; rate++ {
			if c, _ := hdc302x.StartSamplingCommand(rate, lpm); c == cmd {
				s.auto = true
				s.minTemp, s.maxTemp = s.temperature, s.temperature
				s.minHum, s.maxHum = s.humidity, s.humidity
				return nil
			}
		}
	}
	return fmt.Errorf("sim: unknown command %s: %w", cmd, ErrNACK)
}

func (s *Sensor) reply(words ...uint16) {
	s.pending = make([]byte, 0, len(words)*3)
	for i, w := range words {
		b := []byte{byte(w >> 8), byte(w)}
		crc := hdc302x.Checksum(b)
		if i == s.corruptWord {
			crc = ^crc
		}
		s.pending = append(s.pending, b[0], b[1], crc)
	}
}

func (s *Sensor) String() string {
	return fmt.Sprintf("sim hdc302x{%#02x}", s.addr)
}
