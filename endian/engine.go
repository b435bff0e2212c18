// Package endian provides the byte order engine used for the few fixed-width
// fields in codec headers.
//
// Almost every codec header field is an ITF8 integer. The byte-array-stop
// header is the exception: its content id is a 4-byte little-endian integer.
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so callers
// can both read fixed-width fields and append them to a buffer.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
