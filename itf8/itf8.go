// Package itf8 implements the ITF8 variable-length integer encoding used by
// every codec header field.
//
// An ITF8 integer occupies 1 to 5 bytes. The number of leading one bits in the
// first byte gives the number of continuation bytes:
//
//	0xxxxxxx                                   7 bits
//	10xxxxxx xxxxxxxx                         14 bits
//	110xxxxx xxxxxxxx xxxxxxxx                21 bits
//	1110xxxx xxxxxxxx xxxxxxxx xxxxxxxx       28 bits
//	1111xxxx xxxxxxxx xxxxxxxx xxxxxxxx 0000xxxx  32 bits
//
// Negative values always take the 5-byte form.
package itf8

import (
	"fmt"

	"github.com/arloliu/cramcodec/errs"
)

// MaxLen is the maximum encoded length of an ITF8 integer.
const MaxLen = 5

// Len returns the total encoded length announced by the first byte b.
func Len(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xc0:
		return 2
	case b < 0xe0:
		return 3
	case b < 0xf0:
		return 4
	default:
		return 5
	}
}

// Decode reads one ITF8 integer from the start of buf.
//
// Returns:
//   - int32: decoded value
//   - int: number of bytes consumed
//   - error: ErrTruncatedVarint if buf ends before the integer does
func Decode(buf []byte) (int32, int, error) {
	if len(buf) == 0 {
		return 0, 0, fmt.Errorf("%w: empty input", errs.ErrTruncatedVarint)
	}

	n := Len(buf[0])
	if len(buf) < n {
		return 0, 0, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrTruncatedVarint, n, len(buf))
	}

	var v uint32
	switch n {
	case 1:
		v = uint32(buf[0])
	case 2:
		v = (uint32(buf[0])<<8 | uint32(buf[1])) & 0x3fff
	case 3:
		v = (uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])) & 0x1fffff
	case 4:
		v = (uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])) & 0x0fffffff
	default:
		v = uint32(buf[0]&0x0f)<<28 | uint32(buf[1])<<20 | uint32(buf[2])<<12 |
			uint32(buf[3])<<4 | uint32(buf[4]&0x0f)
	}

	return int32(v), n, nil //nolint:gosec
}

// Size returns the number of bytes Append writes for v.
func Size(v int32) int {
	u := uint32(v) //nolint:gosec
	switch {
	case u&^0x7f == 0:
		return 1
	case u&^0x3fff == 0:
		return 2
	case u&^0x1fffff == 0:
		return 3
	case u&^0x0fffffff == 0:
		return 4
	default:
		return 5
	}
}

// Append appends the ITF8 encoding of v to dst and returns the extended slice.
func Append(dst []byte, v int32) []byte {
	u := uint32(v) //nolint:gosec
	switch Size(v) {
	case 1:
		return append(dst, byte(u))
	case 2:
		return append(dst, byte(u>>8)|0x80, byte(u))
	case 3:
		return append(dst, byte(u>>16)|0xc0, byte(u>>8), byte(u))
	case 4:
		return append(dst, byte(u>>24)|0xe0, byte(u>>16), byte(u>>8), byte(u))
	default:
		return append(dst, 0xf0|byte(u>>28), byte(u>>20), byte(u>>12), byte(u>>4), byte(u)&0x0f)
	}
}
