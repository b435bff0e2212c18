package codec

import (
	"fmt"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/itf8"
)

// SubexpDecoder decodes Elias subexponential codes with parameter k.
//
// A value starts with a run of i one bits closed by a zero bit. For i == 0
// the value is the next k bits; otherwise it is 1<<(i+k-1) plus the next
// i+k-1 bits. The offset is subtracted from the result.
type SubexpDecoder struct {
	base
	offset int32
	k      int
}

var _ Codec = (*SubexpDecoder)(nil)

func newSubexpDecoder(payload []byte) (*SubexpDecoder, error) {
	r := newHeaderReader(format.KindSubexp, payload)

	offset, err := r.itf8()
	if err != nil {
		return nil, err
	}
	k, err := r.itf8()
	if err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	if k < 0 || k > maxBitWidth {
		return nil, r.malformed("k %d out of range [0, %d]", k, maxBitWidth)
	}

	return &SubexpDecoder{
		base:   base{kind: format.KindSubexp},
		offset: offset,
		k:      int(k),
	}, nil
}

// Offset returns the value subtracted from every decoded value.
func (d *SubexpDecoder) Offset() int32 {
	return d.offset
}

// K returns the subexponential parameter.
func (d *SubexpDecoder) K() int {
	return d.k
}

// DecodeInts decodes len(out) values.
func (d *SubexpDecoder) DecodeInts(_ *block.Slice, in *bitstream.Reader, out []int32) error {
	if err := d.check(); err != nil {
		return err
	}

	for i := range out {
		ones, err := in.ReadOnes()
		if err != nil {
			return err
		}

		var val uint32
		if ones > 0 {
			tail := ones + d.k - 1
			if tail >= maxBitWidth {
				return fmt.Errorf("%w: subexp run of %d ones with k=%d overflows 32 bits",
					errs.ErrInvalidCode, ones, d.k)
			}
			bits, err := in.ReadBits(tail)
			if err != nil {
				return err
			}
			val = bits + 1<<uint(tail)
		} else {
			val, err = in.ReadBits(d.k)
			if err != nil {
				return err
			}
		}

		out[i] = int32(val) - d.offset //nolint:gosec
	}
	d.observe(len(out))

	return nil
}

// DecodeBytes decodes len(out) values narrowed to bytes.
func (d *SubexpDecoder) DecodeBytes(s *block.Slice, in *bitstream.Reader, out []byte) (int, error) {
	return decodeNarrowed(d, s, in, out)
}

// AppendHeader appends the header describing this decoder.
func (d *SubexpDecoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := d.check(); err != nil {
		return dst, err
	}

	return appendSubexpHeader(dst, d.offset, d.k), nil
}

// SubexpEncoder serializes a subexponential codec header. Value encoding is
// not provided.
type SubexpEncoder struct {
	base
	offset int32
	k      int
}

var _ Codec = (*SubexpEncoder)(nil)

// NewSubexpEncoder creates a header-only subexponential encoder.
func NewSubexpEncoder(offset int32, k int) *SubexpEncoder {
	return &SubexpEncoder{
		base:   base{kind: format.KindSubexp},
		offset: offset,
		k:      k,
	}
}

// Offset returns the configured offset.
func (e *SubexpEncoder) Offset() int32 {
	return e.offset
}

// K returns the configured subexponential parameter.
func (e *SubexpEncoder) K() int {
	return e.k
}

// AppendHeader appends the kind tag, payload length, offset and k.
func (e *SubexpEncoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := e.check(); err != nil {
		return dst, err
	}

	return appendSubexpHeader(dst, e.offset, e.k), nil
}

func appendSubexpHeader(dst []byte, offset int32, k int) []byte {
	var payload [2 * itf8.MaxLen]byte
	p := itf8.Append(payload[:0], offset)
	p = itf8.Append(p, int32(k)) //nolint:gosec

	return appendHeader(dst, format.KindSubexp, p)
}
