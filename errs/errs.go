// Package errs defines the sentinel errors returned by cramcodec packages.
//
// Errors are wrapped with context using fmt.Errorf and the %w verb, so callers
// should match them with errors.Is:
//
//	dec, err := codec.DecoderInit(kind, payload, format.TypeInt)
//	if errors.Is(err, errs.ErrMalformedHeader) {
//	    // header bytes did not match the declared size
//	}
package errs

import "errors"

// Codec construction errors.
var (
	// ErrMalformedHeader is returned when the bytes consumed while parsing a
	// codec header differ from the declared header size.
	ErrMalformedHeader = errors.New("malformed codec header")
	// ErrUnsupportedCodec is returned when no constructor exists for a codec kind.
	ErrUnsupportedCodec = errors.New("unsupported codec")
	// ErrMissingSubcodec is returned when a composite codec has no usable sub-codec.
	ErrMissingSubcodec = errors.New("missing sub-codec")
	// ErrEmptyStatistics is returned when an encoder is requested for a
	// frequency table without any positive entries.
	ErrEmptyStatistics = errors.New("empty statistics")
	// ErrInvalidOption is returned when encoder options are missing or inconsistent.
	ErrInvalidOption = errors.New("invalid codec option")
)

// Decode and encode errors.
var (
	// ErrBlockNotFound is returned when a codec cannot resolve its external block.
	ErrBlockNotFound = errors.New("external block not found")
	// ErrBlockOverrun is returned when a read runs past the end of a block.
	// It indicates corrupt input and is never recovered from.
	ErrBlockOverrun = errors.New("block overrun")
	// ErrUnknownSymbol is returned when an encoder is asked to emit a symbol
	// that is absent from its code table.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrNotImplemented is returned by codec operations a variant does not provide.
	ErrNotImplemented = errors.New("not implemented")
	// ErrCodecReleased is returned when a codec is used after Release.
	ErrCodecReleased = errors.New("codec released")
	// ErrBitstreamExhausted is returned when a bit read runs past the end of the stream.
	ErrBitstreamExhausted = errors.New("bitstream exhausted")
	// ErrInvalidCode is returned when a bit sequence matches no code or encodes
	// a value wider than 32 bits.
	ErrInvalidCode = errors.New("invalid code")
	// ErrTruncatedVarint is returned when an ITF8 integer is cut short.
	ErrTruncatedVarint = errors.New("truncated itf8 integer")
)

// Block errors.
var (
	// ErrUnsupportedMethod is returned for an unknown block compression method.
	ErrUnsupportedMethod = errors.New("unsupported block compression method")
	// ErrChecksumMismatch is returned when a block payload fails verification.
	ErrChecksumMismatch = errors.New("block checksum mismatch")
)
