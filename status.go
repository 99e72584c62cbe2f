package hdc302x

import (
	"fmt"
	"strings"
)

// Status register fields: LSB position and width
const (
	statusLSBitAtLeastOneAlert     = 15
	statusLSBitHeaterEnabled       = 13
	statusLSBitRHTrackingAlert     = 11
	statusLSBitTTrackingAlert      = 10
	statusLSBitRHHighTrackingAlert = 9
	statusLSBitRHLowTrackingAlert  = 8
	statusLSBitTHighTrackingAlert  = 7
	statusLSBitTLowTrackingAlert   = 6
	statusLSBitResetSinceClear     = 4
	statusLSBitChecksumFailure     = 0

	statusFieldWidth = 1
)

// StatusBits is the decoded device status register.
type StatusBits struct {
	raw uint16

	AtLeastOneAlert     bool `yaml:"at_least_one_alert"`
	HeaterEnabled       bool `yaml:"heater_enabled"`
	RHTrackingAlert     bool `yaml:"rh_tracking_alert"`
	TTrackingAlert      bool `yaml:"t_tracking_alert"`
	RHHighTrackingAlert bool `yaml:"rh_high_tracking_alert"`
	RHLowTrackingAlert  bool `yaml:"rh_low_tracking_alert"`
	THighTrackingAlert  bool `yaml:"t_high_tracking_alert"`
	TLowTrackingAlert   bool `yaml:"t_low_tracking_alert"`
	// ResetSinceClear is set after a power-on or soft reset until the register is cleared.
	ResetSinceClear bool `yaml:"reset_since_clear"`
	// ChecksumFailure is set when the device rejected the CRC of the last written data.
	ChecksumFailure bool `yaml:"checksum_failure"`
}

func statusField(raw uint16, lsb uint) bool {
	return (raw>>lsb)&(1<<statusFieldWidth-1) != 0
}

// DecodeStatus decodes the raw status register value.
func DecodeStatus(raw uint16) StatusBits {
	return StatusBits{
		raw:                 raw,
		AtLeastOneAlert:     statusField(raw, statusLSBitAtLeastOneAlert),
		HeaterEnabled:       statusField(raw, statusLSBitHeaterEnabled),
		RHTrackingAlert:     statusField(raw, statusLSBitRHTrackingAlert),
		TTrackingAlert:      statusField(raw, statusLSBitTTrackingAlert),
		RHHighTrackingAlert: statusField(raw, statusLSBitRHHighTrackingAlert),
		RHLowTrackingAlert:  statusField(raw, statusLSBitRHLowTrackingAlert),
		THighTrackingAlert:  statusField(raw, statusLSBitTHighTrackingAlert),
		TLowTrackingAlert:   statusField(raw, statusLSBitTLowTrackingAlert),
		ResetSinceClear:     statusField(raw, statusLSBitResetSinceClear),
		ChecksumFailure:     statusField(raw, statusLSBitChecksumFailure),
	}
}

// Raw returns the undecoded register value.
func (s StatusBits) Raw() uint16 {
	return s.raw
}

func (s StatusBits) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "StatusBits{%#04x;", s.raw)
	flags := []struct {
		set  bool
		name string
	}{
		{s.AtLeastOneAlert, "at_least_one_alert"},
		{s.HeaterEnabled, "heater_enabled"},
		{s.RHTrackingAlert, "rh_tracking_alert"},
		{s.TTrackingAlert, "t_tracking_alert"},
		{s.RHHighTrackingAlert, "rh_high_tracking_alert"},
		{s.RHLowTrackingAlert, "rh_low_tracking_alert"},
		{s.THighTrackingAlert, "t_high_tracking_alert"},
		{s.TLowTrackingAlert, "t_low_tracking_alert"},
		{s.ResetSinceClear, "reset_since_clear"},
		{s.ChecksumFailure, "checksum_failure"},
	}
	for _, f := range flags {
		if f.set {
			b.WriteString(" ")
			b.WriteString(f.name)
		}
	}
	b.WriteString("}")
	return b.String()
}
