package hdc302x

import "github.com/sigurn/crc8"

// CRC-8/NRSC-5 as used by the HDC302x for every data word (x8 + x5 + x4 + 1).
var crcTable = crc8.MakeTable(crc8.Params{
	Poly:   0x31,
	Init:   0xFF,
	RefIn:  false,
	RefOut: false,
	XorOut: 0x00,
	Check:  0xF7,
	Name:   "CRC-8/NRSC-5",
})

// Checksum returns the CRC of a 2-byte data word.
func Checksum(word []byte) byte {
	return crc8.Checksum(word, crcTable)
}

// CheckWord reports whether crc matches the checksum of word.
func CheckWord(word []byte, crc byte) bool {
	return Checksum(word) == crc
}

// appendWord appends the big-endian word and its CRC to buf.
func appendWord(buf []byte, word uint16) []byte {
	w := []byte{byte(word >> 8), byte(word)}
	return append(buf, w[0], w[1], Checksum(w))
}
