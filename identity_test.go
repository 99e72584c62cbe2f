package hdc302x

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialFromWords(t *testing.T) {
	s := serialFromWords(0xAABB, 0xCCDD, 0xEEFF)
	assert.Equal(t, SerialNumber{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}, s)
	assert.Equal(t, "AABBCCDDEEFF", s.String())
	assert.Equal(t, uint64(0xAABBCCDDEEFF), s.Uint64())
}

func TestManufacturerID_Vendor(t *testing.T) {
	ti := ManufacturerID(ManufacturerTexasInstruments)
	assert.Equal(t, VendorTexasInstruments, ti.Vendor())
	assert.Equal(t, "Texas Instruments (0x3000)", ti.String())

	for _, raw := range []uint16{0x0000, 0x2FFF, 0x3001, 0xFFFF} {
		other := ManufacturerID(raw)
		assert.Equal(t, VendorUnknown, other.Vendor())
		assert.Equal(t, raw, uint16(other))
	}
	assert.Equal(t, "Unknown (0x1234)", ManufacturerID(0x1234).String())
}
