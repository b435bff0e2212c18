package codec

import (
	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/itf8"
)

// ExternalDecoder reads values from the external block with its content id.
// Integer series are stored as consecutive ITF8 values; every other series
// is stored as raw bytes.
type ExternalDecoder struct {
	base
	contentID int32
	dataType  format.DataType
}

var _ Codec = (*ExternalDecoder)(nil)

func newExternalDecoder(payload []byte, dataType format.DataType) (*ExternalDecoder, error) {
	r := newHeaderReader(format.KindExternal, payload)

	id, err := r.itf8()
	if err != nil {
		return nil, err
	}
	if err := r.done(); err != nil {
		return nil, err
	}

	return NewExternalDecoder(id, dataType), nil
}

// NewExternalDecoder creates a decoder over the external block contentID.
func NewExternalDecoder(contentID int32, dataType format.DataType) *ExternalDecoder {
	return &ExternalDecoder{
		base:      base{kind: format.KindExternal},
		contentID: contentID,
		dataType:  dataType,
	}
}

// ContentID returns the content id of the block values are read from.
func (d *ExternalDecoder) ContentID() int32 {
	return d.contentID
}

// DataType returns the series type that selects ITF8 or raw byte reads.
func (d *ExternalDecoder) DataType() format.DataType {
	return d.dataType
}

// DecodeInts decodes len(out) values, advancing the block cursor.
func (d *ExternalDecoder) DecodeInts(s *block.Slice, _ *bitstream.Reader, out []int32) error {
	if err := d.check(); err != nil {
		return err
	}

	b, err := s.Lookup(d.contentID)
	if err != nil {
		return err
	}

	if d.dataType.IsInteger() {
		for i := range out {
			v, err := b.ReadITF8()
			if err != nil {
				return err
			}
			out[i] = v
		}
	} else {
		raw, err := b.Extract(len(out))
		if err != nil {
			return err
		}
		for i, c := range raw {
			out[i] = int32(c)
		}
	}
	d.observe(len(out))

	return nil
}

// DecodeBytes fills out from the block, advancing the block cursor.
func (d *ExternalDecoder) DecodeBytes(s *block.Slice, in *bitstream.Reader, out []byte) (int, error) {
	if err := d.check(); err != nil {
		return 0, err
	}

	if d.dataType.IsInteger() {
		return decodeNarrowed(d, s, in, out)
	}

	b, err := s.Lookup(d.contentID)
	if err != nil {
		return 0, err
	}

	raw, err := b.Extract(len(out))
	if err != nil {
		return 0, err
	}
	copy(out, raw)
	d.observe(len(out))

	return len(out), nil
}

// AppendHeader appends the header describing this decoder.
func (d *ExternalDecoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := d.check(); err != nil {
		return dst, err
	}

	return appendExternalHeader(dst, d.contentID), nil
}

// ExternalEncoder describes a series stored in an external block. Values are
// written to the block by the caller; the encoder only serializes the header.
type ExternalEncoder struct {
	base
	contentID int32
}

var _ Codec = (*ExternalEncoder)(nil)

// NewExternalEncoder creates an encoder for the external block contentID.
func NewExternalEncoder(contentID int32) *ExternalEncoder {
	return &ExternalEncoder{
		base:      base{kind: format.KindExternal},
		contentID: contentID,
	}
}

// ContentID returns the content id written into the header.
func (e *ExternalEncoder) ContentID() int32 {
	return e.contentID
}

// AppendHeader appends the kind tag, payload length and content id.
func (e *ExternalEncoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := e.check(); err != nil {
		return dst, err
	}

	return appendExternalHeader(dst, e.contentID), nil
}

func appendExternalHeader(dst []byte, contentID int32) []byte {
	var payload [itf8.MaxLen]byte

	return appendHeader(dst, format.KindExternal, itf8.Append(payload[:0], contentID))
}
