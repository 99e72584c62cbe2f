package hdc302x

import (
	"encoding/binary"
	"fmt"
)

// Command is a 16-bit HDC302x opcode, sent big-endian on the wire.
type Command uint16

const (
	CmdAutoExit                Command = 0x3093
	CmdAutoReadTempAndRelHumid Command = 0xE000
	CmdAutoReadMinTemp         Command = 0xE002
	CmdAutoReadMaxTemp         Command = 0xE003
	CmdAutoReadMinRelHumid     Command = 0xE004
	CmdAutoReadMaxRelHumid     Command = 0xE005
	CmdHeaterEnable            Command = 0x306D
	CmdHeaterDisable           Command = 0x3066
	CmdHeaterConfig            Command = 0x306E
	CmdStatusRead              Command = 0xF32D
	CmdStatusClear             Command = 0x3041
	CmdSerialID54              Command = 0x3683
	CmdSerialID32              Command = 0x3684
	CmdSerialID10              Command = 0x3685
	CmdManufacturerID          Command = 0x3781
	CmdSoftReset               Command = 0x30A2
)

func (c Command) Bytes() [2]byte {
	var out [2]byte
	binary.BigEndian.PutUint16(out[:], uint16(c))
	return out
}

func (c Command) String() string {
	return fmt.Sprintf("%#04x", uint16(c))
}

// SampleRate selects one-shot sampling or one of the auto mode rates.
type SampleRate int

const (
	OneShot SampleRate = iota
	Auto500mHz
	Auto1Hz
	Auto2Hz
	Auto4Hz
	Auto10Hz
)

func (r SampleRate) String() string {
	switch r {
	case OneShot:
		return "one-shot"
	case Auto500mHz:
		return "0.5Hz"
	case Auto1Hz:
		return "1Hz"
	case Auto2Hz:
		return "2Hz"
	case Auto4Hz:
		return "4Hz"
	case Auto10Hz:
		return "10Hz"
	default:
		return fmt.Sprintf("SampleRate(%d)", int(r))
	}
}

// LowPowerMode trades noise for power; 0 is the lowest noise, 3 the lowest power.
type LowPowerMode int

const (
	LowPowerMode0 LowPowerMode = iota
	LowPowerMode1
	LowPowerMode2
	LowPowerMode3

	LowestNoise = LowPowerMode0
	LowestPower = LowPowerMode3
)

// start sampling opcodes indexed by [SampleRate][LowPowerMode]
var startSamplingCommands = [6][4]Command{
	OneShot:    {0x2400, 0x240B, 0x2416, 0x24FF},
	Auto500mHz: {0x2032, 0x2024, 0x202F, 0x20FF},
	Auto1Hz:    {0x2130, 0x2126, 0x212D, 0x21FF},
	Auto2Hz:    {0x2236, 0x2220, 0x222B, 0x22FF},
	Auto4Hz:    {0x2334, 0x2322, 0x2329, 0x23FF},
	Auto10Hz:   {0x2737, 0x2721, 0x272A, 0x27FF},
}

// StartSamplingCommand returns the opcode triggering a one-shot measurement or
// entering auto mode at the given rate and power mode.
func StartSamplingCommand(rate SampleRate, lpm LowPowerMode) (Command, error) {
	if rate < OneShot || rate > Auto10Hz {
		return 0, fmt.Errorf("%w: sample rate %d", ErrInvalidInput, int(rate))
	}
	if lpm < LowPowerMode0 || lpm > LowPowerMode3 {
		return 0, fmt.Errorf("%w: low power mode %d", ErrInvalidInput, int(lpm))
	}
	return startSamplingCommands[rate][lpm], nil
}

// AutoReadTarget selects which auto mode result is read.
type AutoReadTarget int

const (
	LastTempAndRelHumid AutoReadTarget = iota
	MinTemp
	MaxTemp
	MinRelHumid
	MaxRelHumid
)

func (t AutoReadTarget) String() string {
	switch t {
	case LastTempAndRelHumid:
		return "last"
	case MinTemp:
		return "min-temp"
	case MaxTemp:
		return "max-temp"
	case MinRelHumid:
		return "min-humidity"
	case MaxRelHumid:
		return "max-humidity"
	default:
		return fmt.Sprintf("AutoReadTarget(%d)", int(t))
	}
}

// command returns the opcode and reply length in words for the target.
func (t AutoReadTarget) command() (Command, int, error) {
	switch t {
	case LastTempAndRelHumid:
		return CmdAutoReadTempAndRelHumid, 2, nil
	case MinTemp:
		return CmdAutoReadMinTemp, 1, nil
	case MaxTemp:
		return CmdAutoReadMaxTemp, 1, nil
	case MinRelHumid:
		return CmdAutoReadMinRelHumid, 1, nil
	case MaxRelHumid:
		return CmdAutoReadMaxRelHumid, 1, nil
	default:
		return 0, 0, fmt.Errorf("%w: auto read target %d", ErrInvalidInput, int(t))
	}
}

// HeaterLevel is the requested condensation heater power.
type HeaterLevel int

const (
	HeaterOff HeaterLevel = iota
	HeaterQuarter
	HeaterHalf
	HeaterFull
)

// Heater configuration words (datasheet heater power settings)
const (
	heaterSettingQuarter uint16 = 0x009F
	heaterSettingHalf    uint16 = 0x03FF
	heaterSettingFull    uint16 = 0x3FFF
)

// Setting returns the heater configuration word. ok is false for HeaterOff.
func (l HeaterLevel) Setting() (setting uint16, ok bool, err error) {
	switch l {
	case HeaterOff:
		return 0, false, nil
	case HeaterQuarter:
		return heaterSettingQuarter, true, nil
	case HeaterHalf:
		return heaterSettingHalf, true, nil
	case HeaterFull:
		return heaterSettingFull, true, nil
	default:
		return 0, false, fmt.Errorf("%w: heater level %d", ErrInvalidInput, int(l))
	}
}

func (l HeaterLevel) String() string {
	switch l {
	case HeaterOff:
		return "off"
	case HeaterQuarter:
		return "25%"
	case HeaterHalf:
		return "50%"
	case HeaterFull:
		return "100%"
	default:
		return fmt.Sprintf("HeaterLevel(%d)", int(l))
	}
}

// ParseHeaterLevel accepts off, 0, 25, 50, 100 (with or without a % suffix).
func ParseHeaterLevel(s string) (HeaterLevel, error) {
	switch s {
	case "off", "0", "0%":
		return HeaterOff, nil
	case "25", "25%", "quarter":
		return HeaterQuarter, nil
	case "50", "50%", "half":
		return HeaterHalf, nil
	case "100", "100%", "full":
		return HeaterFull, nil
	}
	return 0, fmt.Errorf("%w: heater level %q", ErrInvalidInput, s)
}

// ParseSampleRate accepts the names printed by SampleRate.String.
func ParseSampleRate(s string) (SampleRate, error) {
	for r := OneShot; r <= Auto10Hz; r++ {
		if s == r.String() {
			return r, nil
		}
	}
	if s == "500mHz" {
		return Auto500mHz, nil
	}
	return 0, fmt.Errorf("%w: sample rate %q", ErrInvalidInput, s)
}

// ParseAutoReadTarget accepts the names printed by AutoReadTarget.String.
func ParseAutoReadTarget(s string) (AutoReadTarget, error) {
	for t := LastTempAndRelHumid; t <= MaxRelHumid; t++ {
		if s == t.String() {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: auto read target %q", ErrInvalidInput, s)
}
