package bitstream

import (
	"bytes"
	"fmt"

	"github.com/arloliu/cramcodec/errs"
	"github.com/icza/bitio"
)

// Reader reads bits MSB-first from a byte slice.
type Reader struct {
	r    *bitio.Reader
	bits int64
}

// NewReader creates a bit reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{r: bitio.NewReader(bytes.NewReader(data))}
}

// BitsRead returns the number of bits consumed so far.
func (r *Reader) BitsRead() int64 {
	return r.bits
}

// ReadBit reads a single bit.
//
// Returns:
//   - uint32: 0 or 1
//   - error: ErrBitstreamExhausted if no bits remain
func (r *Reader) ReadBit() (uint32, error) {
	b, err := r.r.ReadBool()
	if err != nil {
		return 0, r.exhausted(err)
	}
	r.bits++

	if b {
		return 1, nil
	}

	return 0, nil
}

// ReadBits reads n bits (0-32) and returns them right-aligned, first bit most
// significant.
func (r *Reader) ReadBits(n int) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 || n > 32 {
		return 0, fmt.Errorf("bitstream: invalid bit count %d", n)
	}

	v, err := r.r.ReadBits(uint8(n)) //nolint:gosec
	if err != nil {
		return 0, r.exhausted(err)
	}
	r.bits += int64(n)

	return uint32(v), nil //nolint:gosec
}

// ReadOnes counts consecutive 1 bits and consumes the terminating 0 bit.
func (r *Reader) ReadOnes() (int, error) {
	n := 0
	for {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if b == 0 {
			return n, nil
		}
		n++
	}
}

// ReadZeros counts consecutive 0 bits and consumes the terminating 1 bit.
func (r *Reader) ReadZeros() (int, error) {
	n := 0
	for {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if b == 1 {
			return n, nil
		}
		n++
	}
}

func (r *Reader) exhausted(err error) error {
	return fmt.Errorf("%w: after %d bits: %w", errs.ErrBitstreamExhausted, r.bits, err)
}
