package codec

import (
	"fmt"

	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/internal/options"
	"github.com/arloliu/cramcodec/stats"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Registry constructs codecs by kind.
//
// Decoding is provided for EXTERNAL, HUFFMAN, BYTE_ARRAY_LEN,
// BYTE_ARRAY_STOP, BETA, SUBEXP and GAMMA; encoding for EXTERNAL, HUFFMAN,
// BYTE_ARRAY_LEN and BYTE_ARRAY_STOP. Every other kind fails with
// errs.ErrUnsupportedCodec. A Registry is safe for concurrent use.
type Registry struct {
	logger  log.Logger
	metrics *Metrics
}

// NewRegistry creates a registry. Without options it logs nothing and
// records no metrics.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{logger: log.NewNopLogger()}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	return r, nil
}

var defaultRegistry = &Registry{logger: log.NewNopLogger()}

// DecoderInit builds a decoder with the default registry.
func DecoderInit(kind format.CodecKind, payload []byte, dataType format.DataType) (Codec, error) {
	return defaultRegistry.DecoderInit(kind, payload, dataType)
}

// EncoderInit builds an encoder with the default registry.
func EncoderInit(kind format.CodecKind, st *stats.Stats, opts ...EncoderOption) (Codec, error) {
	return defaultRegistry.EncoderInit(kind, st, opts...)
}

// ParseDecoder builds a decoder from a complete header with the default
// registry.
func ParseDecoder(blob []byte, dataType format.DataType) (Codec, int, error) {
	return defaultRegistry.ParseDecoder(blob, dataType)
}

// DecoderInit builds a decoder of kind from a header payload, the bytes
// following the kind tag and payload length.
//
// Parameters:
//   - kind: codec kind from the header
//   - payload: header payload, which must be consumed exactly
//   - dataType: element type of the series being decoded
//
// Returns:
//   - Codec: decode-only codec
//   - error: ErrUnsupportedCodec, ErrMalformedHeader or ErrMissingSubcodec
func (r *Registry) DecoderInit(kind format.CodecKind, payload []byte, dataType format.DataType) (Codec, error) {
	c, err := r.decoderInit(kind, payload, dataType)
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to build decoder", "kind", kind, "type", dataType, "err", err)
		return nil, err
	}

	return c, nil
}

func (r *Registry) decoderInit(kind format.CodecKind, payload []byte, dataType format.DataType) (c Codec, err error) {
	defer func() { r.metrics.observeInit(kind, directionDecode, err) }()

	switch kind {
	case format.KindExternal:
		d, err := newExternalDecoder(payload, dataType)
		if err != nil {
			return nil, err
		}
		d.metrics = r.metrics

		return d, nil
	case format.KindHuffman:
		d, err := newHuffmanDecoder(payload)
		if err != nil {
			return nil, err
		}
		d.metrics = r.metrics

		return d, nil
	case format.KindByteArrayLen:
		return r.newByteArrayLenDecoder(payload, dataType)
	case format.KindByteArrayStop:
		d, err := newByteArrayStopDecoder(payload)
		if err != nil {
			return nil, err
		}
		d.metrics = r.metrics

		return d, nil
	case format.KindBeta:
		d, err := newBetaDecoder(payload)
		if err != nil {
			return nil, err
		}
		d.metrics = r.metrics

		return d, nil
	case format.KindSubexp:
		d, err := newSubexpDecoder(payload)
		if err != nil {
			return nil, err
		}
		d.metrics = r.metrics

		return d, nil
	case format.KindGamma:
		d, err := newGammaDecoder(payload)
		if err != nil {
			return nil, err
		}
		d.metrics = r.metrics

		return d, nil
	case format.KindNull, format.KindGolomb, format.KindGolombRice:
		return nil, unsupported(kind, directionDecode)
	default:
		return nil, unsupported(kind, directionDecode)
	}
}

// ParseDecoder reads a complete header (kind tag, payload length, payload)
// from the start of blob and builds its decoder.
//
// Returns:
//   - Codec: decode-only codec
//   - int: number of header bytes consumed from blob
//   - error: as DecoderInit, or ErrMalformedHeader for a truncated prefix
func (r *Registry) ParseDecoder(blob []byte, dataType format.DataType) (Codec, int, error) {
	kind, payload, n, err := ParseHeader(blob)
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to parse codec header", "err", err)
		return nil, 0, err
	}

	c, err := r.DecoderInit(kind, payload, dataType)
	if err != nil {
		return nil, 0, err
	}

	return c, n, nil
}

// EncoderInit builds an encoder of kind.
//
// Statistics drive HUFFMAN and must hold at least one symbol. The other kinds
// take their configuration from opts and accept nil statistics, but still
// refuse statistics without any symbol.
//
// Returns:
//   - Codec: encode-only codec
//   - error: ErrUnsupportedCodec, ErrEmptyStatistics or ErrInvalidOption
func (r *Registry) EncoderInit(kind format.CodecKind, st *stats.Stats, opts ...EncoderOption) (Codec, error) {
	c, err := r.encoderInit(kind, st, opts...)
	r.metrics.observeInit(kind, directionEncode, err)
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to build encoder", "kind", kind, "err", err)
		return nil, err
	}

	return c, nil
}

func (r *Registry) encoderInit(kind format.CodecKind, st *stats.Stats, opts ...EncoderOption) (Codec, error) {
	if st != nil && st.NVals() == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrEmptyStatistics, kind)
	}

	cfg := &encoderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	switch kind {
	case format.KindExternal:
		if !cfg.hasContentID {
			return nil, fmt.Errorf("%w: %s needs a content id", errs.ErrInvalidOption, kind)
		}

		return NewExternalEncoder(cfg.contentID), nil
	case format.KindHuffman:
		return NewHuffmanEncoder(st)
	case format.KindByteArrayLen:
		if len(cfg.lenHeader) == 0 || len(cfg.valHeader) == 0 {
			return nil, fmt.Errorf("%w: %s needs length and value sub-headers", errs.ErrInvalidOption, kind)
		}

		return NewByteArrayLenEncoder(cfg.lenHeader, cfg.valHeader), nil
	case format.KindByteArrayStop:
		if !cfg.hasStop || !cfg.hasContentID {
			return nil, fmt.Errorf("%w: %s needs a stop byte and a content id", errs.ErrInvalidOption, kind)
		}

		return NewByteArrayStopEncoder(cfg.stop, cfg.contentID), nil
	case format.KindNull, format.KindGolomb, format.KindGolombRice,
		format.KindBeta, format.KindSubexp, format.KindGamma:
		return nil, unsupported(kind, directionEncode)
	default:
		return nil, unsupported(kind, directionEncode)
	}
}

func unsupported(kind format.CodecKind, direction string) error {
	return fmt.Errorf("%w: no %s constructor for %s", errs.ErrUnsupportedCodec, direction, kind)
}
