package codec

import (
	"fmt"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/internal/pool"
)

// Codec is the contract every codec variant implements.
//
// A codec is built either for decoding or for encoding. Operations a variant
// does not provide in its direction return an error wrapping
// errs.ErrNotImplemented.
type Codec interface {
	// Kind returns the codec kind written into headers.
	Kind() format.CodecKind

	// DecodeInts decodes len(out) integer values. Bits are read from in and
	// external data from the blocks of s.
	DecodeInts(s *block.Slice, in *bitstream.Reader, out []int32) error

	// DecodeBytes decodes into out and returns the number of bytes written.
	// Byte-array codecs decode one element; integer codecs decode len(out)
	// values narrowed to bytes.
	DecodeBytes(s *block.Slice, in *bitstream.Reader, out []byte) (int, error)

	// EncodeInts writes the codes for in to out.
	EncodeInts(out *bitstream.Writer, in []int32) error

	// AppendHeader appends the serialized codec header to dst.
	AppendHeader(dst []byte) ([]byte, error)

	// Release drops owned tables and sub-codecs. It is idempotent; any other
	// call on a released codec returns errs.ErrCodecReleased.
	Release()
}

// base carries the state shared by all variants and supplies the
// not-implemented operations.
type base struct {
	metrics  *Metrics
	kind     format.CodecKind
	released bool
}

func (b *base) Kind() format.CodecKind {
	return b.kind
}

func (b *base) DecodeInts(*block.Slice, *bitstream.Reader, []int32) error {
	return b.unsupported("DecodeInts")
}

func (b *base) DecodeBytes(*block.Slice, *bitstream.Reader, []byte) (int, error) {
	return 0, b.unsupported("DecodeBytes")
}

func (b *base) EncodeInts(*bitstream.Writer, []int32) error {
	return b.unsupported("EncodeInts")
}

func (b *base) AppendHeader(dst []byte) ([]byte, error) {
	return dst, b.unsupported("AppendHeader")
}

func (b *base) Release() {
	b.released = true
}

func (b *base) unsupported(op string) error {
	if err := b.check(); err != nil {
		return err
	}

	return fmt.Errorf("%w: %s %s", errs.ErrNotImplemented, b.kind, op)
}

func (b *base) check() error {
	if b.released {
		return fmt.Errorf("%w: %s", errs.ErrCodecReleased, b.kind)
	}

	return nil
}

func (b *base) observe(n int) {
	if b.metrics != nil && n > 0 {
		b.metrics.valuesDecoded.WithLabelValues(b.kind.String()).Add(float64(n))
	}
}

// intDecoder is implemented by codecs whose values are integers read from
// the bitstream.
type intDecoder interface {
	DecodeInts(s *block.Slice, in *bitstream.Reader, out []int32) error
}

// decodeNarrowed decodes len(out) integers into pooled scratch space and
// stores each value's low byte in out.
func decodeNarrowed(d intDecoder, s *block.Slice, in *bitstream.Reader, out []byte) (int, error) {
	scratch, cleanup := pool.GetInt32Slice(len(out))
	defer cleanup()

	if err := d.DecodeInts(s, in, scratch); err != nil {
		return 0, err
	}

	for i, v := range scratch {
		out[i] = byte(v) //nolint:gosec
	}

	return len(out), nil
}
