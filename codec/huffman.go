package codec

import (
	"fmt"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/internal/pool"
	"github.com/arloliu/cramcodec/itf8"
	"github.com/arloliu/cramcodec/stats"
)

// HuffmanDecoder decodes canonical Huffman codes.
type HuffmanDecoder struct {
	base
	codes  []Code
	starts []int // starts[l] is the index of the first code with length >= l
	maxLen int
}

var _ Codec = (*HuffmanDecoder)(nil)

func newHuffmanDecoder(payload []byte) (*HuffmanDecoder, error) {
	r := newHeaderReader(format.KindHuffman, payload)

	ncodes, err := r.itf8()
	if err != nil {
		return nil, err
	}
	// Every symbol and every length takes at least one byte.
	if ncodes <= 0 || int(ncodes) > r.remaining() {
		return nil, r.malformed("symbol count %d with %d payload bytes", ncodes, len(payload))
	}

	codes := make([]Code, ncodes)
	for i := range codes {
		if codes[i].Symbol, err = r.itf8(); err != nil {
			return nil, err
		}
	}

	nlens, err := r.itf8()
	if err != nil {
		return nil, err
	}
	if nlens != ncodes {
		return nil, r.malformed("%d symbols but %d lengths", ncodes, nlens)
	}

	for i := range codes {
		l, err := r.itf8()
		if err != nil {
			return nil, err
		}
		if l < 0 || l > MaxCodeLen {
			return nil, r.malformed("code length %d out of range [0, %d]", l, MaxCodeLen)
		}
		codes[i].Len = int(l)
	}

	if err := r.done(); err != nil {
		return nil, err
	}

	return NewHuffmanDecoder(codes), nil
}

// NewHuffmanDecoder creates a decoder for a table of symbols and code
// lengths. Codes are assigned canonically; any Code values in codes are
// ignored.
func NewHuffmanDecoder(codes []Code) *HuffmanDecoder {
	codes = CanonicalCodes(codes)

	maxLen := 0
	if len(codes) > 0 {
		maxLen = codes[len(codes)-1].Len
	}

	starts := make([]int, maxLen+1)
	j := 0
	for i, c := range codes {
		for j <= c.Len {
			starts[j] = i
			j++
		}
	}

	return &HuffmanDecoder{
		base:   base{kind: format.KindHuffman},
		codes:  codes,
		starts: starts,
		maxLen: maxLen,
	}
}

// Codes returns the code table sorted by (length, symbol).
func (d *HuffmanDecoder) Codes() []Code {
	return d.codes
}

// DecodeInts decodes len(out) symbols. A table whose shortest code has zero
// length decodes every value to that symbol without reading bits.
func (d *HuffmanDecoder) DecodeInts(_ *block.Slice, in *bitstream.Reader, out []int32) error {
	if err := d.check(); err != nil {
		return err
	}

	if len(d.codes) == 0 {
		return fmt.Errorf("%w: empty huffman table", errs.ErrInvalidCode)
	}

	if d.codes[0].Len == 0 {
		for i := range out {
			out[i] = d.codes[0].Symbol
		}
		d.observe(len(out))

		return nil
	}

	for i := range out {
		sym, err := d.decodeOne(in)
		if err != nil {
			return err
		}
		out[i] = sym
	}
	d.observe(len(out))

	return nil
}

func (d *HuffmanDecoder) decodeOne(in *bitstream.Reader) (int32, error) {
	var val uint32
	for l := 1; l <= d.maxLen; l++ {
		bit, err := in.ReadBit()
		if err != nil {
			return 0, err
		}
		val = val<<1 | bit

		for idx := d.starts[l]; idx < len(d.codes) && d.codes[idx].Len == l; idx++ {
			if d.codes[idx].Code == val {
				return d.codes[idx].Symbol, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: no code matches %0*b", errs.ErrInvalidCode, d.maxLen, val)
}

// DecodeBytes decodes len(out) symbols narrowed to bytes.
func (d *HuffmanDecoder) DecodeBytes(s *block.Slice, in *bitstream.Reader, out []byte) (int, error) {
	return decodeNarrowed(d, s, in, out)
}

// AppendHeader appends a header for the decoder's table, with symbols in
// canonical order.
func (d *HuffmanDecoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := d.check(); err != nil {
		return dst, err
	}

	return appendHuffmanHeader(dst, d.codes), nil
}

// Release drops the code table.
func (d *HuffmanDecoder) Release() {
	d.codes = nil
	d.starts = nil
	d.base.Release()
}

// HuffmanEncoder writes canonical Huffman codes built from symbol
// frequencies.
type HuffmanEncoder struct {
	base
	codes []Code
	index map[int32]int
}

var _ Codec = (*HuffmanEncoder)(nil)

// NewHuffmanEncoder builds an encoder from the frequencies in st.
func NewHuffmanEncoder(st *stats.Stats) (*HuffmanEncoder, error) {
	codes, err := BuildCodeTable(st)
	if err != nil {
		return nil, err
	}

	index := make(map[int32]int, len(codes))
	for i, c := range codes {
		index[c.Symbol] = i
	}

	return &HuffmanEncoder{
		base:  base{kind: format.KindHuffman},
		codes: codes,
		index: index,
	}, nil
}

// Codes returns the code table sorted by (length, symbol).
func (e *HuffmanEncoder) Codes() []Code {
	return e.codes
}

// EncodeInts writes the code of every symbol in in. A single-symbol table
// has a zero-length code and writes nothing.
func (e *HuffmanEncoder) EncodeInts(out *bitstream.Writer, in []int32) error {
	if err := e.check(); err != nil {
		return err
	}

	if e.codes[0].Len == 0 {
		return nil
	}

	for _, sym := range in {
		i, ok := e.index[sym]
		if !ok {
			return fmt.Errorf("%w: %d", errs.ErrUnknownSymbol, sym)
		}

		c := e.codes[i]
		if err := out.WriteBits(c.Code, c.Len); err != nil {
			return err
		}
	}

	return nil
}

// AppendHeader appends the kind tag, payload length, symbol list and length
// list.
func (e *HuffmanEncoder) AppendHeader(dst []byte) ([]byte, error) {
	if err := e.check(); err != nil {
		return dst, err
	}

	return appendHuffmanHeader(dst, e.codes), nil
}

// Release drops the code table.
func (e *HuffmanEncoder) Release() {
	e.codes = nil
	e.index = nil
	e.base.Release()
}

func appendHuffmanHeader(dst []byte, codes []Code) []byte {
	buf := pool.GetHeaderBuffer()
	defer pool.PutHeaderBuffer(buf)

	n := int32(len(codes)) //nolint:gosec
	p := itf8.Append(buf.B, n)
	for _, c := range codes {
		p = itf8.Append(p, c.Symbol)
	}
	p = itf8.Append(p, n)
	for _, c := range codes {
		p = itf8.Append(p, int32(c.Len)) //nolint:gosec
	}
	buf.B = p

	return appendHeader(dst, format.KindHuffman, p)
}
