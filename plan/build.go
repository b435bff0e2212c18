package plan

import (
	"fmt"

	"github.com/arloliu/cramcodec/codec"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/stats"
)

// Built pairs a planned series with its codec.
type Built struct {
	Name     string
	DataType format.DataType
	Codec    codec.Codec
}

// Build creates the encoder for every series of the plan, in order.
//
// Parameters:
//   - r: registry used for EXTERNAL, HUFFMAN, BYTE_ARRAY_LEN and
//     BYTE_ARRAY_STOP; nil selects a registry without logging or metrics
//   - st: statistics keyed by series name; may be nil
//
// Returns:
//   - []Built: one encoder per series; release with Release
//   - error: the first construction failure
func (p *Plan) Build(r *codec.Registry, st map[string]*stats.Stats) ([]Built, error) {
	r, err := registryOrDefault(r)
	if err != nil {
		return nil, err
	}

	built := make([]Built, 0, len(p.Series))
	for _, s := range p.Series {
		dt, err := s.DataType()
		if err != nil {
			Release(built)
			return nil, err
		}

		enc, err := s.Encoding.build(r, s.Name, st)
		if err != nil {
			Release(built)
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}

		built = append(built, Built{Name: s.Name, DataType: dt, Codec: enc})
	}

	return built, nil
}

func (e *Encoding) build(r *codec.Registry, key string, st map[string]*stats.Stats) (codec.Codec, error) {
	kind, err := e.Kind()
	if err != nil {
		return nil, err
	}

	switch kind {
	case format.KindExternal:
		return r.EncoderInit(kind, nil, codec.WithContentID(e.ContentID))
	case format.KindHuffman:
		return r.EncoderInit(kind, e.statistics(key, st))
	case format.KindByteArrayStop:
		if e.StopByte == nil {
			return nil, e.validate()
		}

		return r.EncoderInit(kind, nil, codec.WithStopByte(byte(*e.StopByte)), codec.WithContentID(e.ContentID)) //nolint:gosec
	case format.KindByteArrayLen:
		if e.Length == nil || e.Value == nil {
			return nil, e.validate()
		}

		lenHeader, err := e.Length.header(r, key+"/length", st)
		if err != nil {
			return nil, fmt.Errorf("length: %w", err)
		}
		valHeader, err := e.Value.header(r, key+"/value", st)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}

		return r.EncoderInit(kind, nil, codec.WithSubHeaders(lenHeader, valHeader))
	case format.KindBeta:
		return codec.NewBetaEncoder(e.Offset, e.NBits), nil
	case format.KindSubexp:
		return codec.NewSubexpEncoder(e.Offset, e.K), nil
	case format.KindGamma:
		return codec.NewGammaEncoder(e.Offset), nil
	case format.KindNull, format.KindGolomb, format.KindGolombRice:
		return nil, e.validate()
	default:
		return nil, e.validate()
	}
}

// header builds the encoder for a nested encoding and returns its header.
func (e *Encoding) header(r *codec.Registry, key string, st map[string]*stats.Stats) ([]byte, error) {
	enc, err := e.build(r, key, st)
	if err != nil {
		return nil, err
	}
	defer enc.Release()

	return enc.AppendHeader(nil)
}

func (e *Encoding) statistics(key string, st map[string]*stats.Stats) *stats.Stats {
	if s, ok := st[key]; ok {
		return s
	}
	if len(e.Frequencies) == 0 {
		return nil
	}

	s := stats.New()
	for sym, f := range e.Frequencies {
		s.AddN(sym, f)
	}

	return s
}

// AppendHeaders appends the header of every built encoder to dst, in order.
func AppendHeaders(dst []byte, built []Built) ([]byte, error) {
	for _, b := range built {
		var err error
		if dst, err = b.Codec.AppendHeader(dst); err != nil {
			return dst, fmt.Errorf("series %q: %w", b.Name, err)
		}
	}

	return dst, nil
}

// Decode parses one header per series from blob, in plan order, and returns
// the decoders. It is the inverse of Build followed by AppendHeaders.
func (p *Plan) Decode(r *codec.Registry, blob []byte) ([]Built, error) {
	r, err := registryOrDefault(r)
	if err != nil {
		return nil, err
	}

	decoded, err := p.decode(blob, r.ParseDecoder)
	if err != nil {
		Release(decoded)
		return nil, err
	}

	return decoded, nil
}

// DecodeCached is Decode with decoders shared through c. The returned
// decoders are owned by c and must not be released.
func (p *Plan) DecodeCached(c *codec.Cache, blob []byte) ([]Built, error) {
	return p.decode(blob, c.Get)
}

func (p *Plan) decode(blob []byte, parse func([]byte, format.DataType) (codec.Codec, int, error)) ([]Built, error) {
	decoded := make([]Built, 0, len(p.Series))
	pos := 0
	for _, s := range p.Series {
		dt, err := s.DataType()
		if err != nil {
			return decoded, err
		}

		dec, n, err := parse(blob[pos:], dt)
		if err != nil {
			return decoded, fmt.Errorf("series %q at offset %d: %w", s.Name, pos, err)
		}
		pos += n

		decoded = append(decoded, Built{Name: s.Name, DataType: dt, Codec: dec})
	}

	if pos != len(blob) {
		return decoded, fmt.Errorf("%w: %d trailing bytes after %d series headers", errs.ErrMalformedHeader, len(blob)-pos, len(p.Series))
	}

	return decoded, nil
}

// Release releases every built encoder.
func Release(built []Built) {
	for _, b := range built {
		b.Codec.Release()
	}
}

func registryOrDefault(r *codec.Registry) (*codec.Registry, error) {
	if r != nil {
		return r, nil
	}

	return codec.NewRegistry()
}
