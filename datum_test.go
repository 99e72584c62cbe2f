package hdc302x

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/physic"
)

func TestRawTempToCelsius(t *testing.T) {
	tests := []struct {
		given    uint16
		expected float32
	}{
		{0x0000, -45.0},
		{0xFFFF, 130.0},
		{0x8000, 42.501335},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%#04x", test.given), func(t *testing.T) {
			assert.InDelta(t, test.expected, RawTempToCelsius(test.given), 0.001)
		})
	}
}

func TestRawTempToFahrenheit(t *testing.T) {
	assert.InDelta(t, -49.0, RawTempToFahrenheit(0x0000), 0.001)
	assert.InDelta(t, 266.0, RawTempToFahrenheit(0xFFFF), 0.001)
}

func TestRawRelHumidToPercent(t *testing.T) {
	assert.InDelta(t, 0.0, RawRelHumidToPercent(0x0000), 0.001)
	assert.InDelta(t, 100.0, RawRelHumidToPercent(0xFFFF), 0.001)
	assert.InDelta(t, 45.0, RawRelHumidToPercent(29491), 0.001)
}

func TestRawToPhysic(t *testing.T) {
	assert.Equal(t, physic.ZeroCelsius-45*physic.Kelvin, RawTempToPhysic(0))
	assert.Equal(t, physic.ZeroCelsius+130*physic.Kelvin, RawTempToPhysic(0xFFFF))
	assert.Equal(t, 100*physic.PercentRH, RawRelHumidToPhysic(0xFFFF))
	assert.Equal(t, physic.RelativeHumidity(0), RawRelHumidToPhysic(0))
}

func TestRawDatum_Views(t *testing.T) {
	pair := RawDatum{Kind: KindTempAndRelHumid, Temperature: 0xFFFF, Humidity: 0xFFFF}
	c, ok := pair.Celsius()
	assert.True(t, ok)
	assert.InDelta(t, 130.0, c, 0.001)
	h, ok := pair.HumidityPercent()
	assert.True(t, ok)
	assert.InDelta(t, 100.0, h, 0.001)
	p, ok := pair.Pair()
	assert.True(t, ok)
	assert.Equal(t, RawTempAndRelHumid{Temperature: 0xFFFF, Humidity: 0xFFFF}, p)

	minTemp := rawExtremum(MinTemp, 0)
	assert.Equal(t, KindMinTemp, minTemp.Kind)
	c, ok = minTemp.Celsius()
	assert.True(t, ok)
	assert.InDelta(t, -45.0, c, 0.001)
	_, ok = minTemp.HumidityPercent()
	assert.False(t, ok)
	_, ok = minTemp.Pair()
	assert.False(t, ok)

	maxHum := rawExtremum(MaxRelHumid, 0xFFFF)
	assert.Equal(t, KindMaxRelHumid, maxHum.Kind)
	_, ok = maxHum.Celsius()
	assert.False(t, ok)
	_, ok = maxHum.Fahrenheit()
	assert.False(t, ok)
	h, ok = maxHum.HumidityPercent()
	assert.True(t, ok)
	assert.InDelta(t, 100.0, h, 0.001)
}

func TestRawDatum_Convert(t *testing.T) {
	d := RawDatum{Kind: KindTempAndRelHumid, Temperature: 0, Humidity: 0xFFFF}.Convert()
	if assert.NotNil(t, d.Temp) && assert.NotNil(t, d.HumidityPercent) {
		assert.InDelta(t, -45.0, d.Temp.Celsius, 0.001)
		assert.InDelta(t, -49.0, d.Temp.Fahrenheit, 0.001)
		assert.InDelta(t, 100.0, *d.HumidityPercent, 0.001)
	}
	assert.Equal(t, "-45.00°C 100.00%RH", d.String())

	m := rawExtremum(MinRelHumid, 0).Convert()
	assert.Nil(t, m.Temp)
	assert.Equal(t, "min humidity 0.00%RH", m.String())

	x := rawExtremum(MaxTemp, 0xFFFF).Convert()
	assert.Nil(t, x.HumidityPercent)
	assert.Equal(t, "max temperature 130.00°C", x.String())
}

func TestRawDatum_Env(t *testing.T) {
	env := physic.Env{Pressure: 101325 * physic.Pascal}
	rawExtremum(MaxTemp, 0).Env(&env)
	assert.Equal(t, physic.ZeroCelsius-45*physic.Kelvin, env.Temperature)
	assert.Equal(t, physic.RelativeHumidity(0), env.Humidity)
	assert.Equal(t, 101325*physic.Pascal, env.Pressure)
}
