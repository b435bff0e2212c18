package codec

import (
	"fmt"
	"io"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
)

// ByteArrayLenDecoder decodes one byte array per call: the length codec
// yields the element count, then the value codec yields that many bytes.
// It owns both sub-codecs and releases them with itself.
type ByteArrayLenDecoder struct {
	base
	lenCodec Codec
	valCodec Codec
}

var _ Codec = (*ByteArrayLenDecoder)(nil)

func (r *Registry) newByteArrayLenDecoder(payload []byte, dataType format.DataType) (*ByteArrayLenDecoder, error) {
	hr := newHeaderReader(format.KindByteArrayLen, payload)

	lenKind, lenPayload, err := hr.subHeader()
	if err != nil {
		return nil, err
	}
	valKind, valPayload, err := hr.subHeader()
	if err != nil {
		return nil, err
	}
	if err := hr.done(); err != nil {
		return nil, err
	}

	// Lengths are integers whatever the element type of the array.
	lenCodec, err := r.decoderInit(lenKind, lenPayload, format.TypeInt)
	if err != nil {
		return nil, fmt.Errorf("%w: length codec: %w", errs.ErrMissingSubcodec, err)
	}

	valCodec, err := r.decoderInit(valKind, valPayload, dataType)
	if err != nil {
		lenCodec.Release()
		return nil, fmt.Errorf("%w: value codec: %w", errs.ErrMissingSubcodec, err)
	}

	d := NewByteArrayLenDecoder(lenCodec, valCodec)
	d.metrics = r.metrics

	return d, nil
}

// NewByteArrayLenDecoder creates a decoder owning lenCodec and valCodec.
func NewByteArrayLenDecoder(lenCodec, valCodec Codec) *ByteArrayLenDecoder {
	return &ByteArrayLenDecoder{
		base:     base{kind: format.KindByteArrayLen},
		lenCodec: lenCodec,
		valCodec: valCodec,
	}
}

// LengthCodec returns the sub-codec decoding element counts.
func (d *ByteArrayLenDecoder) LengthCodec() Codec {
	return d.lenCodec
}

// ValueCodec returns the sub-codec decoding element bytes.
func (d *ByteArrayLenDecoder) ValueCodec() Codec {
	return d.valCodec
}

// DecodeBytes decodes one byte array into out and returns its length.
func (d *ByteArrayLenDecoder) DecodeBytes(s *block.Slice, in *bitstream.Reader, out []byte) (int, error) {
	if err := d.check(); err != nil {
		return 0, err
	}
	if d.lenCodec == nil || d.valCodec == nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrMissingSubcodec, d.kind)
	}

	var n [1]int32
	if err := d.lenCodec.DecodeInts(s, in, n[:]); err != nil {
		return 0, err
	}

	size := int(n[0])
	if size < 0 || size > len(out) {
		return 0, fmt.Errorf("%s: element length %d for a %d byte buffer: %w", d.kind, size, len(out), io.ErrShortBuffer)
	}

	if _, err := d.valCodec.DecodeBytes(s, in, out[:size]); err != nil {
		return 0, err
	}
	d.observe(1)

	return size, nil
}

// AppendHeader appends a header nesting both sub-codec headers.
func (d *ByteArrayLenDecoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := d.check(); err != nil {
		return dst, err
	}
	if d.lenCodec == nil || d.valCodec == nil {
		return dst, fmt.Errorf("%w: %s", errs.ErrMissingSubcodec, d.kind)
	}

	lenHeader, err := d.lenCodec.AppendHeader(nil)
	if err != nil {
		return dst, err
	}
	valHeader, err := d.valCodec.AppendHeader(nil)
	if err != nil {
		return dst, err
	}

	return appendByteArrayLenHeader(dst, lenHeader, valHeader), nil
}

// Release releases both sub-codecs.
func (d *ByteArrayLenDecoder) Release() {
	if d.released {
		return
	}
	if d.lenCodec != nil {
		d.lenCodec.Release()
		d.lenCodec = nil
	}
	if d.valCodec != nil {
		d.valCodec.Release()
		d.valCodec = nil
	}
	d.base.Release()
}

// ByteArrayLenEncoder serializes a byte-array-len header from two complete
// sub-codec headers supplied by the caller. Value encoding is not provided.
type ByteArrayLenEncoder struct {
	base
	lenHeader []byte
	valHeader []byte
}

var _ Codec = (*ByteArrayLenEncoder)(nil)

// NewByteArrayLenEncoder creates a header-only encoder from serialized
// length and value codec headers.
func NewByteArrayLenEncoder(lenHeader, valHeader []byte) *ByteArrayLenEncoder {
	return &ByteArrayLenEncoder{
		base:      base{kind: format.KindByteArrayLen},
		lenHeader: lenHeader,
		valHeader: valHeader,
	}
}

// LengthHeader returns the serialized length codec header.
func (e *ByteArrayLenEncoder) LengthHeader() []byte {
	return e.lenHeader
}

// ValueHeader returns the serialized value codec header.
func (e *ByteArrayLenEncoder) ValueHeader() []byte {
	return e.valHeader
}

// AppendHeader appends the kind tag, the combined length of both sub-headers
// and the sub-headers themselves.
func (e *ByteArrayLenEncoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := e.check(); err != nil {
		return dst, err
	}

	return appendByteArrayLenHeader(dst, e.lenHeader, e.valHeader), nil
}

func appendByteArrayLenHeader(dst, lenHeader, valHeader []byte) []byte {
	payload := make([]byte, 0, len(lenHeader)+len(valHeader))
	payload = append(payload, lenHeader...)
	payload = append(payload, valHeader...)

	return appendHeader(dst, format.KindByteArrayLen, payload)
}
