package hdc302x

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSamplingCommand(t *testing.T) {
	tests := []struct {
		rate     SampleRate
		lpm      LowPowerMode
		expected Command
	}{
		{OneShot, LowestNoise, 0x2400},
		{OneShot, LowPowerMode1, 0x240B},
		{OneShot, LowPowerMode2, 0x2416},
		{OneShot, LowestPower, 0x24FF},
		{Auto500mHz, LowestNoise, 0x2032},
		{Auto1Hz, LowPowerMode1, 0x2126},
		{Auto2Hz, LowPowerMode2, 0x222B},
		{Auto4Hz, LowestNoise, 0x2334},
		{Auto10Hz, LowestPower, 0x27FF},
	}
	for _, test := range tests {
		t.Run(test.rate.String(), func(t *testing.T) {
			cmd, err := StartSamplingCommand(test.rate, test.lpm)
			require.NoError(t, err)
			assert.Equal(t, test.expected, cmd)
		})
	}
}

func TestStartSamplingCommand_InvalidInput(t *testing.T) {
	_, err := StartSamplingCommand(SampleRate(9), LowestNoise)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = StartSamplingCommand(OneShot, LowPowerMode(4))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = StartSamplingCommand(OneShot, LowPowerMode(-1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCommand_Bytes(t *testing.T) {
	assert.Equal(t, [2]byte{0xF3, 0x2D}, CmdStatusRead.Bytes())
	assert.Equal(t, "0x3781", CmdManufacturerID.String())
}

func TestAutoReadTarget_Command(t *testing.T) {
	tests := []struct {
		target AutoReadTarget
		cmd    Command
		words  int
	}{
		{LastTempAndRelHumid, CmdAutoReadTempAndRelHumid, 2},
		{MinTemp, CmdAutoReadMinTemp, 1},
		{MaxTemp, CmdAutoReadMaxTemp, 1},
		{MinRelHumid, CmdAutoReadMinRelHumid, 1},
		{MaxRelHumid, CmdAutoReadMaxRelHumid, 1},
	}
	for _, test := range tests {
		t.Run(test.target.String(), func(t *testing.T) {
			cmd, words, err := test.target.command()
			require.NoError(t, err)
			assert.Equal(t, test.cmd, cmd)
			assert.Equal(t, test.words, words)
		})
	}
	_, _, err := AutoReadTarget(42).command()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHeaterLevel_Setting(t *testing.T) {
	tests := []struct {
		level   HeaterLevel
		setting uint16
		on      bool
	}{
		{HeaterOff, 0, false},
		{HeaterQuarter, 0x009F, true},
		{HeaterHalf, 0x03FF, true},
		{HeaterFull, 0x3FFF, true},
	}
	for _, test := range tests {
		t.Run(test.level.String(), func(t *testing.T) {
			setting, on, err := test.level.Setting()
			require.NoError(t, err)
			assert.Equal(t, test.setting, setting)
			assert.Equal(t, test.on, on)
		})
	}
	_, _, err := HeaterLevel(7).Setting()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseHeaterLevel(t *testing.T) {
	tests := map[string]HeaterLevel{
		"off":  HeaterOff,
		"0":    HeaterOff,
		"25":   HeaterQuarter,
		"25%":  HeaterQuarter,
		"half": HeaterHalf,
		"100%": HeaterFull,
	}
	for given, expected := range tests {
		t.Run(given, func(t *testing.T) {
			level, err := ParseHeaterLevel(given)
			require.NoError(t, err)
			assert.Equal(t, expected, level)
		})
	}
	_, err := ParseHeaterLevel("75")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseSampleRate(t *testing.T) {
	for r := OneShot; r <= Auto10Hz; r++ {
		parsed, err := ParseSampleRate(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	parsed, err := ParseSampleRate("500mHz")
	require.NoError(t, err)
	assert.Equal(t, Auto500mHz, parsed)
	_, err = ParseSampleRate("3Hz")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseAutoReadTarget(t *testing.T) {
	for target := LastTempAndRelHumid; target <= MaxRelHumid; target++ {
		parsed, err := ParseAutoReadTarget(target.String())
		require.NoError(t, err)
		assert.Equal(t, target, parsed)
	}
	_, err := ParseAutoReadTarget("avg")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
