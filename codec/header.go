package codec

import (
	"fmt"

	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/itf8"
)

// ParseHeader splits a serialized codec header into its kind and payload.
//
// Returns:
//   - format.CodecKind: kind tag
//   - []byte: payload, aliasing blob
//   - int: total header bytes consumed from blob
//   - error: ErrMalformedHeader if the prefix or payload is truncated
func ParseHeader(blob []byte) (format.CodecKind, []byte, int, error) {
	kind, n, err := itf8.Decode(blob)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("%w: kind tag: %w", errs.ErrMalformedHeader, err)
	}
	pos := n

	size, n, err := itf8.Decode(blob[pos:])
	if err != nil {
		return 0, nil, 0, fmt.Errorf("%w: %s payload length: %w", errs.ErrMalformedHeader, format.CodecKind(kind), err)
	}
	pos += n

	if size < 0 || int(size) > len(blob)-pos {
		return 0, nil, 0, fmt.Errorf("%w: %s payload length %d with %d bytes left",
			errs.ErrMalformedHeader, format.CodecKind(kind), size, len(blob)-pos)
	}

	payload := blob[pos : pos+int(size)]

	return format.CodecKind(kind), payload, pos + int(size), nil
}

// appendHeader appends the kind tag, the payload length and the payload.
func appendHeader(dst []byte, kind format.CodecKind, payload []byte) []byte {
	dst = itf8.Append(dst, int32(kind))
	dst = itf8.Append(dst, int32(len(payload))) //nolint:gosec

	return append(dst, payload...)
}

// headerReader reads the fields of one header payload and checks that the
// payload is consumed exactly.
type headerReader struct {
	data []byte
	pos  int
	kind format.CodecKind
}

func newHeaderReader(kind format.CodecKind, payload []byte) *headerReader {
	return &headerReader{kind: kind, data: payload}
}

func (r *headerReader) itf8() (int32, error) {
	v, n, err := itf8.Decode(r.data[r.pos:])
	if err != nil {
		return 0, fmt.Errorf("%w: %s at offset %d: %w", errs.ErrMalformedHeader, r.kind, r.pos, err)
	}
	r.pos += n

	return v, nil
}

func (r *headerReader) bytes(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, fmt.Errorf("%w: %s needs %d bytes at offset %d, payload is %d bytes",
			errs.ErrMalformedHeader, r.kind, n, r.pos, len(r.data))
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n

	return out, nil
}

// subHeader reads one nested kind/length/payload header.
func (r *headerReader) subHeader() (format.CodecKind, []byte, error) {
	kind, payload, n, err := ParseHeader(r.data[r.pos:])
	if err != nil {
		return 0, nil, fmt.Errorf("%s sub-header at offset %d: %w", r.kind, r.pos, err)
	}
	r.pos += n

	return kind, payload, nil
}

func (r *headerReader) remaining() int {
	return len(r.data) - r.pos
}

// done fails unless every payload byte was consumed.
func (r *headerReader) done() error {
	if r.pos != len(r.data) {
		return r.malformed("consumed %d of %d payload bytes", r.pos, len(r.data))
	}

	return nil
}

func (r *headerReader) malformed(msg string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", errs.ErrMalformedHeader, r.kind, fmt.Sprintf(msg, args...))
}
