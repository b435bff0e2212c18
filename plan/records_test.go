package plan

import (
	"context"
	"testing"

	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/codec"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/stretchr/testify/require"
)

func recordsPlan() *Plan {
	tab := 9

	return &Plan{Series: []Series{
		{Name: "RL", Type: "Int", Encoding: Encoding{Codec: "HUFFMAN", Frequencies: map[int32]int64{100: 1}}},
		{Name: "FN", Type: "Int", Encoding: Encoding{Codec: "GAMMA", Offset: 1}},
		{Name: "RN", Type: "ByteArray", Encoding: Encoding{Codec: "BYTE_ARRAY_STOP", StopByte: &tab, ContentID: 3}},
		{Name: "QS", Type: "ByteArray", Encoding: Encoding{
			Codec:  "BYTE_ARRAY_LEN",
			Length: &Encoding{Codec: "EXTERNAL", ContentID: 4},
			Value:  &Encoding{Codec: "EXTERNAL", ContentID: 5},
		}},
	}}
}

func recordsHeaders(t *testing.T, p *Plan) []byte {
	t.Helper()

	built, err := p.Build(nil, nil)
	require.NoError(t, err)
	defer Release(built)

	blob, err := AppendHeaders(nil, built)
	require.NoError(t, err)

	return blob
}

func recordsSlice(core byte, names string, lens []int32, quals string) *block.Slice {
	lenBlock := block.NewExternal(4, nil)
	for _, l := range lens {
		lenBlock.AppendITF8(l)
	}

	return block.NewSlice(
		block.New(format.ContentCore, 0, []byte{core}),
		block.NewExternal(3, []byte(names)),
		lenBlock,
		block.NewExternal(5, []byte(quals)),
	)
}

func arrays(col Column) []string {
	out := make([]string, len(col.Arrays))
	for i, a := range col.Arrays {
		out[i] = string(a)
	}

	return out
}

func TestDecodeSlices(t *testing.T) {
	p := recordsPlan()
	blob := recordsHeaders(t, p)

	c := codec.NewCache(nil)
	defer c.Close()

	batches := []Batch{
		// FN gamma codes 1, 010 -> 0, 1
		{Slice: recordsSlice(0xa0, "hi\tok\t", []int32{2, 1}, "IIH"), Records: 2},
		// FN gamma codes 1, 1, 011 -> 0, 0, 2
		{Slice: recordsSlice(0xd8, "a\tb\tc\t", []int32{0, 1, 0}, "Z"), Records: 3},
	}

	results, err := p.DecodeSlices(context.Background(), c, blob, batches, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	require.Equal(t, "RL", first[0].Name)
	require.Equal(t, []int32{100, 100}, first[0].Ints)
	require.Equal(t, []int32{0, 1}, first[1].Ints)
	require.Equal(t, []string{"hi", "ok"}, arrays(first[2]))
	require.Equal(t, []string{"II", "H"}, arrays(first[3]))

	second := results[1]
	require.Equal(t, []int32{100, 100, 100}, second[0].Ints)
	require.Equal(t, []int32{0, 0, 2}, second[1].Ints)
	require.Equal(t, []string{"a", "b", "c"}, arrays(second[2]))
	require.Equal(t, []string{"", "Z", ""}, arrays(second[3]))

	for _, b := range batches {
		for _, id := range []int32{3, 4, 5} {
			blk, err := b.Slice.Lookup(id)
			require.NoError(t, err)
			require.Zero(t, blk.Remaining())
		}
	}
	require.Equal(t, 4, c.Len())

	// A second container with the same headers reuses the cached decoders.
	again := []Batch{{Slice: recordsSlice(0x80, "x\t", []int32{1}, "Q"), Records: 1}}
	results, err = p.DecodeSlices(context.Background(), c, blob, again, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, arrays(results[0][2]))
	require.Equal(t, 4, c.Len())
}

func TestDecodeSlices_Errors(t *testing.T) {
	p := recordsPlan()
	blob := recordsHeaders(t, p)

	c := codec.NewCache(nil)
	defer c.Close()

	missing := block.NewSlice(block.New(format.ContentCore, 0, []byte{0x80}))
	_, err := p.DecodeSlices(context.Background(), c, blob, []Batch{
		{Slice: recordsSlice(0x80, "x\t", []int32{1}, "Q"), Records: 1},
		{Slice: missing, Records: 1},
	}, 0)
	require.ErrorIs(t, err, errs.ErrBlockNotFound)
	require.ErrorContains(t, err, "slice 1")
	require.ErrorContains(t, err, `series "RN"`)

	_, err = p.DecodeSlices(context.Background(), c, blob[:len(blob)-1], nil, 0)
	require.ErrorIs(t, err, errs.ErrMalformedHeader)
}

func TestReadRecords_NoCore(t *testing.T) {
	p := &Plan{Series: []Series{{Name: "AP", Type: "Int", Encoding: Encoding{Codec: "EXTERNAL", ContentID: 2}}}}
	decoded, err := p.Decode(nil, recordsHeaders(t, p))
	require.NoError(t, err)
	defer Release(decoded)

	ext := block.NewExternal(2, nil)
	ext.AppendITF8(5)
	ext.AppendITF8(300)

	cols, err := ReadRecords(decoded, block.NewSlice(ext), 2)
	require.NoError(t, err)
	require.Equal(t, []int32{5, 300}, cols[0].Ints)
}
