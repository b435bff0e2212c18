package codec

import (
	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/itf8"
)

// maxBitWidth is the widest fixed-width field a bit codec reads.
const maxBitWidth = 32

// BetaDecoder decodes fixed bit-width binary values: each value is nbits
// bits MSB-first minus offset.
type BetaDecoder struct {
	base
	offset int32
	nbits  int
}

var _ Codec = (*BetaDecoder)(nil)

func newBetaDecoder(payload []byte) (*BetaDecoder, error) {
	r := newHeaderReader(format.KindBeta, payload)

	offset, err := r.itf8()
	if err != nil {
		return nil, err
	}
	nbits, err := r.itf8()
	if err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	if nbits < 0 || nbits > maxBitWidth {
		return nil, r.malformed("bit width %d out of range [0, %d]", nbits, maxBitWidth)
	}

	return &BetaDecoder{
		base:   base{kind: format.KindBeta},
		offset: offset,
		nbits:  int(nbits),
	}, nil
}

// Offset returns the value subtracted from every decoded field.
func (d *BetaDecoder) Offset() int32 {
	return d.offset
}

// NBits returns the field width in bits.
func (d *BetaDecoder) NBits() int {
	return d.nbits
}

// DecodeInts decodes len(out) values. With a zero bit width no bits are
// consumed and every value is -offset.
func (d *BetaDecoder) DecodeInts(_ *block.Slice, in *bitstream.Reader, out []int32) error {
	if err := d.check(); err != nil {
		return err
	}

	if d.nbits == 0 {
		for i := range out {
			out[i] = 0 - d.offset
		}
		d.observe(len(out))

		return nil
	}

	for i := range out {
		v, err := in.ReadBits(d.nbits)
		if err != nil {
			return err
		}
		out[i] = int32(v) - d.offset //nolint:gosec
	}
	d.observe(len(out))

	return nil
}

// DecodeBytes decodes len(out) values narrowed to bytes.
func (d *BetaDecoder) DecodeBytes(s *block.Slice, in *bitstream.Reader, out []byte) (int, error) {
	return decodeNarrowed(d, s, in, out)
}

// AppendHeader appends the header describing this decoder.
func (d *BetaDecoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := d.check(); err != nil {
		return dst, err
	}

	return appendBetaHeader(dst, d.offset, d.nbits), nil
}

// BetaEncoder serializes a beta codec header. Value encoding is not provided.
type BetaEncoder struct {
	base
	offset int32
	nbits  int
}

var _ Codec = (*BetaEncoder)(nil)

// NewBetaEncoder creates a header-only beta encoder.
func NewBetaEncoder(offset int32, nbits int) *BetaEncoder {
	return &BetaEncoder{
		base:   base{kind: format.KindBeta},
		offset: offset,
		nbits:  nbits,
	}
}

// Offset returns the configured offset.
func (e *BetaEncoder) Offset() int32 {
	return e.offset
}

// NBits returns the configured field width.
func (e *BetaEncoder) NBits() int {
	return e.nbits
}

// AppendHeader appends the kind tag, payload length, offset and bit width.
func (e *BetaEncoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := e.check(); err != nil {
		return dst, err
	}

	return appendBetaHeader(dst, e.offset, e.nbits), nil
}

func appendBetaHeader(dst []byte, offset int32, nbits int) []byte {
	var payload [2 * itf8.MaxLen]byte
	p := itf8.Append(payload[:0], offset)
	p = itf8.Append(p, int32(nbits)) //nolint:gosec

	return appendHeader(dst, format.KindBeta, p)
}
