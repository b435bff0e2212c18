package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/endian"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
)

// stopHeaderSize is the fixed payload size of a byte-array-stop header:
// the stop byte and a 4-byte little-endian content id.
const stopHeaderSize = 5

var stopEngine = endian.GetLittleEndianEngine()

// ByteArrayStopDecoder decodes one byte array per call by copying bytes from
// the external block up to the stop byte.
type ByteArrayStopDecoder struct {
	base
	contentID int32
	stop      byte
}

var _ Codec = (*ByteArrayStopDecoder)(nil)

func newByteArrayStopDecoder(payload []byte) (*ByteArrayStopDecoder, error) {
	r := newHeaderReader(format.KindByteArrayStop, payload)
	if len(payload) != stopHeaderSize {
		return nil, r.malformed("payload is %d bytes, want %d", len(payload), stopHeaderSize)
	}

	p, err := r.bytes(stopHeaderSize)
	if err != nil {
		return nil, err
	}

	return NewByteArrayStopDecoder(p[0], int32(stopEngine.Uint32(p[1:]))), nil //nolint:gosec
}

// NewByteArrayStopDecoder creates a decoder reading from the external block
// contentID up to stop.
func NewByteArrayStopDecoder(stop byte, contentID int32) *ByteArrayStopDecoder {
	return &ByteArrayStopDecoder{
		base:      base{kind: format.KindByteArrayStop},
		stop:      stop,
		contentID: contentID,
	}
}

// StopByte returns the terminator byte.
func (d *ByteArrayStopDecoder) StopByte() byte {
	return d.stop
}

// ContentID returns the content id of the block arrays are read from.
func (d *ByteArrayStopDecoder) ContentID() int32 {
	return d.contentID
}

// DecodeBytes copies the bytes before the next stop byte into out, returns
// their count and moves the block cursor past the stop byte. A block without
// a stop byte after the cursor is corrupt and fails with ErrBlockOverrun.
func (d *ByteArrayStopDecoder) DecodeBytes(s *block.Slice, _ *bitstream.Reader, out []byte) (int, error) {
	if err := d.check(); err != nil {
		return 0, err
	}

	b, err := s.Lookup(d.contentID)
	if err != nil {
		return 0, err
	}

	start := b.Pos()
	n := bytes.IndexByte(b.Data()[start:], d.stop)
	if n < 0 {
		return 0, fmt.Errorf("%w: no stop byte 0x%02x in block %d after offset %d",
			errs.ErrBlockOverrun, d.stop, d.contentID, start)
	}
	if n > len(out) {
		return 0, fmt.Errorf("%s: element length %d for a %d byte buffer: %w", d.kind, n, len(out), io.ErrShortBuffer)
	}

	data, err := b.Extract(n + 1)
	if err != nil {
		return 0, err
	}
	copy(out, data[:n])
	d.observe(1)

	return n, nil
}

// AppendHeader appends the header describing this decoder.
func (d *ByteArrayStopDecoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := d.check(); err != nil {
		return dst, err
	}

	return appendStopHeader(dst, d.stop, d.contentID), nil
}

// ByteArrayStopEncoder serializes a byte-array-stop header. Value encoding
// is not provided.
type ByteArrayStopEncoder struct {
	base
	contentID int32
	stop      byte
}

var _ Codec = (*ByteArrayStopEncoder)(nil)

// NewByteArrayStopEncoder creates a header-only encoder.
func NewByteArrayStopEncoder(stop byte, contentID int32) *ByteArrayStopEncoder {
	return &ByteArrayStopEncoder{
		base:      base{kind: format.KindByteArrayStop},
		stop:      stop,
		contentID: contentID,
	}
}

// StopByte returns the terminator byte.
func (e *ByteArrayStopEncoder) StopByte() byte {
	return e.stop
}

// ContentID returns the content id written into the header.
func (e *ByteArrayStopEncoder) ContentID() int32 {
	return e.contentID
}

// AppendHeader appends the kind tag, the fixed payload length 5, the stop
// byte and the little-endian content id.
func (e *ByteArrayStopEncoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := e.check(); err != nil {
		return dst, err
	}

	return appendStopHeader(dst, e.stop, e.contentID), nil
}

func appendStopHeader(dst []byte, stop byte, contentID int32) []byte {
	var payload [stopHeaderSize]byte
	payload[0] = stop
	stopEngine.PutUint32(payload[1:], uint32(contentID)) //nolint:gosec

	return appendHeader(dst, format.KindByteArrayStop, payload[:])
}
