package codec

import (
	"fmt"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/itf8"
)

// GammaDecoder decodes Elias gamma codes: a run of nz zero bits closed by a
// one bit, then nz bits shifted in below that leading one.
type GammaDecoder struct {
	base
	offset int32
}

var _ Codec = (*GammaDecoder)(nil)

func newGammaDecoder(payload []byte) (*GammaDecoder, error) {
	r := newHeaderReader(format.KindGamma, payload)

	offset, err := r.itf8()
	if err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}

	return &GammaDecoder{
		base:   base{kind: format.KindGamma},
		offset: offset,
	}, nil
}

// Offset returns the value subtracted from every decoded value.
func (d *GammaDecoder) Offset() int32 {
	return d.offset
}

// DecodeInts decodes len(out) values.
func (d *GammaDecoder) DecodeInts(_ *block.Slice, in *bitstream.Reader, out []int32) error {
	if err := d.check(); err != nil {
		return err
	}

	for i := range out {
		nz, err := in.ReadZeros()
		if err != nil {
			return err
		}
		if nz >= maxBitWidth {
			return fmt.Errorf("%w: gamma run of %d zeros overflows 32 bits", errs.ErrInvalidCode, nz)
		}

		bits, err := in.ReadBits(nz)
		if err != nil {
			return err
		}
		val := 1<<uint(nz) | bits

		out[i] = int32(val) - d.offset //nolint:gosec
	}
	d.observe(len(out))

	return nil
}

// DecodeBytes decodes len(out) values narrowed to bytes.
func (d *GammaDecoder) DecodeBytes(s *block.Slice, in *bitstream.Reader, out []byte) (int, error) {
	return decodeNarrowed(d, s, in, out)
}

// AppendHeader appends the header describing this decoder.
func (d *GammaDecoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := d.check(); err != nil {
		return dst, err
	}

	return appendGammaHeader(dst, d.offset), nil
}

// GammaEncoder serializes a gamma codec header. Value encoding is not
// provided.
type GammaEncoder struct {
	base
	offset int32
}

var _ Codec = (*GammaEncoder)(nil)

// NewGammaEncoder creates a header-only gamma encoder.
func NewGammaEncoder(offset int32) *GammaEncoder {
	return &GammaEncoder{
		base:   base{kind: format.KindGamma},
		offset: offset,
	}
}

// Offset returns the configured offset.
func (e *GammaEncoder) Offset() int32 {
	return e.offset
}

// AppendHeader appends the kind tag, payload length and offset.
func (e *GammaEncoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := e.check(); err != nil {
		return dst, err
	}

	return appendGammaHeader(dst, e.offset), nil
}

func appendGammaHeader(dst []byte, offset int32) []byte {
	var payload [itf8.MaxLen]byte

	return appendHeader(dst, format.KindGamma, itf8.Append(payload[:0], offset))
}
