package hdc302x

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// DatumKind tags which read produced a RawDatum.
type DatumKind int

const (
	KindTempAndRelHumid DatumKind = iota
	KindMinTemp
	KindMaxTemp
	KindMinRelHumid
	KindMaxRelHumid
)

func (k DatumKind) String() string {
	switch k {
	case KindTempAndRelHumid:
		return "temperature+humidity"
	case KindMinTemp:
		return "min temperature"
	case KindMaxTemp:
		return "max temperature"
	case KindMinRelHumid:
		return "min humidity"
	case KindMaxRelHumid:
		return "max humidity"
	default:
		return fmt.Sprintf("DatumKind(%d)", int(k))
	}
}

func (k DatumKind) hasTemp() bool {
	return k == KindTempAndRelHumid || k == KindMinTemp || k == KindMaxTemp
}

func (k DatumKind) hasHumidity() bool {
	return k == KindTempAndRelHumid || k == KindMinRelHumid || k == KindMaxRelHumid
}

// RawTempAndRelHumid holds unprocessed temperature and humidity codes.
type RawTempAndRelHumid struct {
	Temperature uint16
	Humidity    uint16
}

func (r RawTempAndRelHumid) Celsius() float32 {
	return RawTempToCelsius(r.Temperature)
}

func (r RawTempAndRelHumid) Fahrenheit() float32 {
	return RawTempToFahrenheit(r.Temperature)
}

func (r RawTempAndRelHumid) HumidityPercent() float32 {
	return RawRelHumidToPercent(r.Humidity)
}

// RawDatum is the result of a sample or an extremum read. Pair reads fill both
// codes; extremum reads fill only the code matching Kind.
type RawDatum struct {
	Kind        DatumKind
	Temperature uint16
	Humidity    uint16
}

func rawPair(words []uint16) RawDatum {
	return RawDatum{Kind: KindTempAndRelHumid, Temperature: words[0], Humidity: words[1]}
}

func rawExtremum(target AutoReadTarget, word uint16) RawDatum {
	switch target {
	case MinTemp:
		return RawDatum{Kind: KindMinTemp, Temperature: word}
	case MaxTemp:
		return RawDatum{Kind: KindMaxTemp, Temperature: word}
	case MinRelHumid:
		return RawDatum{Kind: KindMinRelHumid, Humidity: word}
	default:
		return RawDatum{Kind: KindMaxRelHumid, Humidity: word}
	}
}

// Pair returns the temperature/humidity pair. ok is false for extremum reads.
func (d RawDatum) Pair() (RawTempAndRelHumid, bool) {
	if d.Kind != KindTempAndRelHumid {
		return RawTempAndRelHumid{}, false
	}
	return RawTempAndRelHumid{Temperature: d.Temperature, Humidity: d.Humidity}, true
}

// Celsius returns the temperature; ok is false when the datum carries none.
func (d RawDatum) Celsius() (float32, bool) {
	if !d.Kind.hasTemp() {
		return 0, false
	}
	return RawTempToCelsius(d.Temperature), true
}

func (d RawDatum) Fahrenheit() (float32, bool) {
	if !d.Kind.hasTemp() {
		return 0, false
	}
	return RawTempToFahrenheit(d.Temperature), true
}

func (d RawDatum) HumidityPercent() (float32, bool) {
	if !d.Kind.hasHumidity() {
		return 0, false
	}
	return RawRelHumidToPercent(d.Humidity), true
}

// Env fills the fields of env that the datum carries.
func (d RawDatum) Env(env *physic.Env) {
	if d.Kind.hasTemp() {
		env.Temperature = RawTempToPhysic(d.Temperature)
	}
	if d.Kind.hasHumidity() {
		env.Humidity = RawRelHumidToPhysic(d.Humidity)
	}
}

// Convert returns the datum in physical units.
func (d RawDatum) Convert() Datum {
	out := Datum{Kind: d.Kind}
	if d.Kind.hasTemp() {
		t := NewTemp(d.Temperature)
		out.Temp = &t
	}
	if d.Kind.hasHumidity() {
		h := RawRelHumidToPercent(d.Humidity)
		out.HumidityPercent = &h
	}
	return out
}

func (d RawDatum) String() string {
	return d.Convert().String()
}

// Temp is a converted temperature.
type Temp struct {
	Celsius    float32 `yaml:"celsius"`
	Fahrenheit float32 `yaml:"fahrenheit"`
}

func NewTemp(raw uint16) Temp {
	return Temp{
		Celsius:    RawTempToCelsius(raw),
		Fahrenheit: RawTempToFahrenheit(raw),
	}
}

// Datum is a RawDatum after conversion; nil fields are not carried by Kind.
type Datum struct {
	Kind            DatumKind `yaml:"-"`
	Temp            *Temp     `yaml:"temperature,omitempty"`
	HumidityPercent *float32  `yaml:"humidity_percent,omitempty"`
}

func (d Datum) String() string {
	switch {
	case d.Temp != nil && d.HumidityPercent != nil:
		return fmt.Sprintf("%.2f°C %.2f%%RH", d.Temp.Celsius, *d.HumidityPercent)
	case d.Temp != nil:
		return fmt.Sprintf("%s %.2f°C", d.Kind, d.Temp.Celsius)
	case d.HumidityPercent != nil:
		return fmt.Sprintf("%s %.2f%%RH", d.Kind, *d.HumidityPercent)
	}
	return d.Kind.String()
}

// Conversion formulas from datasheet
// T(C) = -45 + 175 * raw / 65535
// T(F) = -49 + 315 * raw / 65535
// RH(%) = 100 * raw / 65535

func RawTempToCelsius(raw uint16) float32 {
	return -45.0 + 175.0*float32(raw)/65535.0
}

func RawTempToFahrenheit(raw uint16) float32 {
	return -49.0 + 315.0*float32(raw)/65535.0
}

func RawRelHumidToPercent(raw uint16) float32 {
	return 100.0 * float32(raw) / 65535.0
}

func RawTempToPhysic(raw uint16) physic.Temperature {
	return physic.ZeroCelsius - 45*physic.Kelvin + physic.Temperature(int64(raw)*int64(175*physic.Kelvin)/65535)
}

func RawRelHumidToPhysic(raw uint16) physic.RelativeHumidity {
	return physic.RelativeHumidity(int64(raw) * int64(100*physic.PercentRH) / 65535)
}
