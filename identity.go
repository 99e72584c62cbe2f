package hdc302x

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ManufacturerTexasInstruments is the manufacturer ID reported by TI parts.
const ManufacturerTexasInstruments uint16 = 0x3000

// SerialNumber is the 48-bit NIST-traceable identifier, most significant byte first.
type SerialNumber [6]byte

// serialFromWords assembles ID bits 47:32, 31:16 and 15:0.
func serialFromWords(high, mid, low uint16) SerialNumber {
	return SerialNumber{
		byte(high >> 8), byte(high),
		byte(mid >> 8), byte(mid),
		byte(low >> 8), byte(low),
	}
}

func (s SerialNumber) Uint64() uint64 {
	var v uint64
	for _, b := range s {
		v = v<<8 | uint64(b)
	}
	return v
}

func (s SerialNumber) String() string {
	return strings.ToUpper(hex.EncodeToString(s[:]))
}

func (s SerialNumber) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Vendor is the identity recognized from a manufacturer ID.
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorTexasInstruments
)

func (v Vendor) String() string {
	if v == VendorTexasInstruments {
		return "Texas Instruments"
	}
	return "Unknown"
}

// ManufacturerID is the raw manufacturer identifier read from the device.
type ManufacturerID uint16

func (m ManufacturerID) Vendor() Vendor {
	if uint16(m) == ManufacturerTexasInstruments {
		return VendorTexasInstruments
	}
	return VendorUnknown
}

func (m ManufacturerID) String() string {
	return fmt.Sprintf("%s (0x%04X)", m.Vendor(), uint16(m))
}

func (m ManufacturerID) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}
