package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"gopkg.in/yaml.v3"
)

// Plan maps data series to encodings.
type Plan struct {
	Series []Series `yaml:"series"`
}

// Series is one named data series and its encoding.
type Series struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Encoding `yaml:",inline"`
}

// Encoding selects a codec kind and its parameters. Fields unused by the
// kind are ignored.
type Encoding struct {
	Codec       string          `yaml:"codec"`
	ContentID   int32           `yaml:"content_id,omitempty"`
	StopByte    *int            `yaml:"stop_byte,omitempty"`
	Offset      int32           `yaml:"offset,omitempty"`
	NBits       int             `yaml:"nbits,omitempty"`
	K           int             `yaml:"k,omitempty"`
	Frequencies map[int32]int64 `yaml:"frequencies,omitempty"`
	Length      *Encoding       `yaml:"length,omitempty"`
	Value       *Encoding       `yaml:"value,omitempty"`
}

// Default returns a plan covering common alignment data series.
func Default() *Plan {
	tab := 9

	return &Plan{Series: []Series{
		{Name: "BF", Type: "Int", Encoding: Encoding{Codec: "EXTERNAL", ContentID: 1}},
		{Name: "AP", Type: "Int", Encoding: Encoding{Codec: "EXTERNAL", ContentID: 2}},
		{Name: "RL", Type: "Int", Encoding: Encoding{Codec: "HUFFMAN", Frequencies: map[int32]int64{100: 1}}},
		{Name: "MQ", Type: "Int", Encoding: Encoding{Codec: "BETA", NBits: 8}},
		{Name: "FN", Type: "Int", Encoding: Encoding{Codec: "GAMMA", Offset: 1}},
		{Name: "DL", Type: "Int", Encoding: Encoding{Codec: "SUBEXP", K: 2}},
		{Name: "RN", Type: "ByteArray", Encoding: Encoding{Codec: "BYTE_ARRAY_STOP", StopByte: &tab, ContentID: 3}},
		{Name: "QS", Type: "ByteArray", Encoding: Encoding{
			Codec:  "BYTE_ARRAY_LEN",
			Length: &Encoding{Codec: "EXTERNAL", ContentID: 4},
			Value:  &Encoding{Codec: "EXTERNAL", ContentID: 5},
		}},
	}}
}

// Load reads and validates the plan file at path.
func Load(path string) (*Plan, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML plan. Unknown fields are rejected.
func Parse(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Marshal encodes the plan as YAML.
func (p *Plan) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	return data, nil
}

// Validate checks series names, data types and encoding parameters.
func (p *Plan) Validate() error {
	if len(p.Series) == 0 {
		return fmt.Errorf("%w: plan has no series", errs.ErrInvalidOption)
	}

	seen := make(map[string]struct{}, len(p.Series))
	for i, s := range p.Series {
		if s.Name == "" {
			return fmt.Errorf("%w: series %d has no name", errs.ErrInvalidOption, i)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: duplicate series %q", errs.ErrInvalidOption, s.Name)
		}
		seen[s.Name] = struct{}{}

		if _, err := s.DataType(); err != nil {
			return err
		}
		if err := s.Encoding.validate(); err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
	}

	return nil
}

// DataType parses the series type name.
func (s *Series) DataType() (format.DataType, error) {
	for _, t := range []format.DataType{format.TypeInt, format.TypeLong, format.TypeByte, format.TypeByteArray} {
		if t.String() == s.Type {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: series %q has unknown type %q", errs.ErrInvalidOption, s.Name, s.Type)
}

// Kind parses the codec name.
func (e *Encoding) Kind() (format.CodecKind, error) {
	kind, ok := format.ParseCodecKind(e.Codec)
	if !ok {
		return 0, fmt.Errorf("%w: unknown codec %q", errs.ErrUnsupportedCodec, e.Codec)
	}

	return kind, nil
}

func (e *Encoding) validate() error {
	kind, err := e.Kind()
	if err != nil {
		return err
	}

	switch kind {
	case format.KindExternal, format.KindHuffman, format.KindGamma:
	case format.KindBeta:
		if e.NBits < 0 || e.NBits > 32 {
			return fmt.Errorf("%w: nbits %d out of range [0, 32]", errs.ErrInvalidOption, e.NBits)
		}
	case format.KindSubexp:
		if e.K < 0 || e.K > 32 {
			return fmt.Errorf("%w: k %d out of range [0, 32]", errs.ErrInvalidOption, e.K)
		}
	case format.KindByteArrayStop:
		if e.StopByte == nil || *e.StopByte < 0 || *e.StopByte > 0xff {
			return fmt.Errorf("%w: %s needs stop_byte in [0, 255]", errs.ErrInvalidOption, kind)
		}
	case format.KindByteArrayLen:
		if e.Length == nil || e.Value == nil {
			return fmt.Errorf("%w: %s needs length and value encodings", errs.ErrInvalidOption, kind)
		}
		if err := e.Length.validate(); err != nil {
			return fmt.Errorf("length: %w", err)
		}
		if err := e.Value.validate(); err != nil {
			return fmt.Errorf("value: %w", err)
		}
	case format.KindNull, format.KindGolomb, format.KindGolombRice:
		return fmt.Errorf("%w: %s cannot be planned", errs.ErrUnsupportedCodec, kind)
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, kind)
	}

	return nil
}
