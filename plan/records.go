package plan

import (
	"bytes"
	"context"
	"fmt"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/codec"
	"github.com/arloliu/cramcodec/format"
)

// MaxElementSize bounds a single decoded byte array.
const MaxElementSize = 1 << 16

// Column holds the values of one series in record order. Byte-array series
// fill Arrays; every other series fills Ints.
type Column struct {
	Name   string
	Ints   []int32
	Arrays [][]byte
}

// Batch is a slice and the number of records stored in it.
type Batch struct {
	Slice   *block.Slice
	Records int
}

// ReadRecords decodes n records from s. Each record holds one value per
// series, read in the order of decoders; bits come from the slice's core
// block.
func ReadRecords(decoders []Built, s *block.Slice, n int) ([]Column, error) {
	var core []byte
	if b := s.Core(); b != nil {
		core = b.Data()
	}
	in := bitstream.NewReader(core)

	cols := make([]Column, len(decoders))
	for i, d := range decoders {
		cols[i].Name = d.Name
	}

	var buf []byte
	var one [1]int32
	for rec := range n {
		for i, d := range decoders {
			if d.DataType == format.TypeByteArray {
				if buf == nil {
					buf = make([]byte, MaxElementSize)
				}
				size, err := d.Codec.DecodeBytes(s, in, buf)
				if err != nil {
					return nil, fmt.Errorf("record %d series %q: %w", rec, d.Name, err)
				}
				cols[i].Arrays = append(cols[i].Arrays, bytes.Clone(buf[:size]))

				continue
			}

			if err := d.Codec.DecodeInts(s, in, one[:]); err != nil {
				return nil, fmt.Errorf("record %d series %q: %w", rec, d.Name, err)
			}
			cols[i].Ints = append(cols[i].Ints, one[0])
		}
	}

	return cols, nil
}

// DecodeSlices decodes every batch with the decoders for the headers in
// blob. The decoders are resolved once through c and shared by all batches,
// which run concurrently on at most limit goroutines (no limit when
// limit <= 0).
//
// Returns:
//   - [][]Column: the columns of each batch, in batch order
//   - error: the first header or decode failure
func (p *Plan) DecodeSlices(ctx context.Context, c *codec.Cache, blob []byte, batches []Batch, limit int) ([][]Column, error) {
	decoders, err := p.DecodeCached(c, blob)
	if err != nil {
		return nil, err
	}

	slices := make([]*block.Slice, len(batches))
	for i, b := range batches {
		slices[i] = b.Slice
	}

	results := make([][]Column, len(batches))
	err = block.ForEach(ctx, slices, limit, func(_ context.Context, i int, s *block.Slice) error {
		cols, err := ReadRecords(decoders, s, batches[i].Records)
		if err != nil {
			return fmt.Errorf("slice %d: %w", i, err)
		}
		results[i] = cols

		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}
