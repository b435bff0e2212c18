package codec

import (
	"strings"
	"testing"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/arloliu/cramcodec/block"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/stretchr/testify/require"
)

func decoderFor(t *testing.T, enc Codec, dataType format.DataType) Codec {
	t.Helper()

	dec, n, err := ParseDecoder(mustHeader(t, enc), dataType)
	require.NoError(t, err)
	require.Positive(t, n)

	return dec
}

func TestBetaDecoder(t *testing.T) {
	t.Run("zero width yields -offset", func(t *testing.T) {
		dec := decoderFor(t, NewBetaEncoder(5, 0), format.TypeInt)
		in := bitstream.NewReader(nil)

		out := make([]int32, 7)
		require.NoError(t, dec.DecodeInts(nil, in, out))
		for _, v := range out {
			require.Equal(t, int32(-5), v)
		}
		require.Zero(t, in.BitsRead())
	})

	t.Run("fixed width", func(t *testing.T) {
		dec := decoderFor(t, NewBetaEncoder(1, 3), format.TypeInt)

		out := make([]int32, 3)
		require.NoError(t, dec.DecodeInts(nil, bitsOf(t, "101 000 111"), out))
		require.Equal(t, []int32{4, -1, 6}, out)
	})

	t.Run("full width", func(t *testing.T) {
		dec := decoderFor(t, NewBetaEncoder(0, 32), format.TypeInt)

		out := make([]int32, 1)
		require.NoError(t, dec.DecodeInts(nil, bitsOf(t, "11111111 11111111 11111111 11111110"), out))
		require.Equal(t, int32(-2), out[0])
	})

	t.Run("bytes", func(t *testing.T) {
		dec := decoderFor(t, NewBetaEncoder(0, 8), format.TypeByte)

		out := make([]byte, 2)
		n, err := dec.DecodeBytes(nil, bitsOf(t, "01000001 01000010"), out)
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.Equal(t, []byte("AB"), out)
	})

	t.Run("exhausted", func(t *testing.T) {
		dec := decoderFor(t, NewBetaEncoder(0, 8), format.TypeInt)

		out := make([]int32, 2)
		err := dec.DecodeInts(nil, bitsOf(t, "01000001"), out)
		require.ErrorIs(t, err, errs.ErrBitstreamExhausted)
	})
}

func TestGammaDecoder(t *testing.T) {
	t.Run("single value", func(t *testing.T) {
		dec := decoderFor(t, NewGammaEncoder(0), format.TypeInt)
		in := bitsOf(t, "0110")

		out := make([]int32, 1)
		require.NoError(t, dec.DecodeInts(nil, in, out))
		require.Equal(t, int32(3), out[0])
		require.Equal(t, int64(3), in.BitsRead())
	})

	t.Run("sequence with offset", func(t *testing.T) {
		dec := decoderFor(t, NewGammaEncoder(1), format.TypeInt)

		// 1, 2, 5, 8 as gamma codes.
		out := make([]int32, 4)
		require.NoError(t, dec.DecodeInts(nil, bitsOf(t, "1 010 00101 0001000"), out))
		require.Equal(t, []int32{0, 1, 4, 7}, out)
	})

	t.Run("exhausted", func(t *testing.T) {
		dec := decoderFor(t, NewGammaEncoder(0), format.TypeInt)

		out := make([]int32, 1)
		require.ErrorIs(t, dec.DecodeInts(nil, bitsOf(t, "0000"), out), errs.ErrBitstreamExhausted)
	})

	t.Run("run too long for 32 bits", func(t *testing.T) {
		dec := decoderFor(t, NewGammaEncoder(0), format.TypeInt)

		out := make([]int32, 1)
		err := dec.DecodeInts(nil, bitsOf(t, strings.Repeat("0", 32)+"1"+strings.Repeat("0", 32)), out)
		require.ErrorIs(t, err, errs.ErrInvalidCode)
	})

	t.Run("widest run", func(t *testing.T) {
		dec := decoderFor(t, NewGammaEncoder(0), format.TypeInt)

		out := make([]int32, 1)
		require.NoError(t, dec.DecodeInts(nil, bitsOf(t, strings.Repeat("0", 30)+"1"+strings.Repeat("1", 30)), out))
		require.Equal(t, int32(1<<31-1), out[0])
	})
}

func TestSubexpDecoder(t *testing.T) {
	t.Run("zero run reads k bits", func(t *testing.T) {
		dec := decoderFor(t, NewSubexpEncoder(0, 2), format.TypeInt)
		in := bitsOf(t, "0 01")

		out := make([]int32, 1)
		require.NoError(t, dec.DecodeInts(nil, in, out))
		require.Equal(t, int32(1), out[0])
		require.Equal(t, int64(3), in.BitsRead())
	})

	t.Run("one run", func(t *testing.T) {
		dec := decoderFor(t, NewSubexpEncoder(0, 2), format.TypeInt)

		// i=1: 1<<2 + 2 bits; i=2: 1<<3 + 3 bits.
		out := make([]int32, 2)
		require.NoError(t, dec.DecodeInts(nil, bitsOf(t, "10 11 110 101"), out))
		require.Equal(t, []int32{7, 13}, out)
	})

	t.Run("offset", func(t *testing.T) {
		dec := decoderFor(t, NewSubexpEncoder(3, 0), format.TypeInt)

		// k=0: i=0 reads nothing, i=1 reads no bits either.
		out := make([]int32, 3)
		require.NoError(t, dec.DecodeInts(nil, bitsOf(t, "0 10 110 1"), out))
		require.Equal(t, []int32{-3, -2, 0}, out)
	})

	t.Run("tail too long for 32 bits", func(t *testing.T) {
		dec := decoderFor(t, NewSubexpEncoder(0, 32), format.TypeInt)

		out := make([]int32, 1)
		err := dec.DecodeInts(nil, bitsOf(t, "10"+strings.Repeat("0", 32)), out)
		require.ErrorIs(t, err, errs.ErrInvalidCode)
	})

	t.Run("k of 32 without a run", func(t *testing.T) {
		dec := decoderFor(t, NewSubexpEncoder(0, 32), format.TypeInt)

		out := make([]int32, 1)
		require.NoError(t, dec.DecodeInts(nil, bitsOf(t, "0"+strings.Repeat("0", 31)+"1"), out))
		require.Equal(t, int32(1), out[0])
	})
}

func TestExternalDecoder(t *testing.T) {
	t.Run("integers", func(t *testing.T) {
		b := block.NewExternal(4, nil)
		for _, v := range []int32{1, 200, -3} {
			b.AppendITF8(v)
		}
		s := block.NewSlice(b)
		dec := decoderFor(t, NewExternalEncoder(4), format.TypeInt)

		out := make([]int32, 3)
		require.NoError(t, dec.DecodeInts(s, nil, out))
		require.Equal(t, []int32{1, 200, -3}, out)
		require.Zero(t, b.Remaining())
	})

	t.Run("raw bytes", func(t *testing.T) {
		b := block.NewExternal(9, []byte("ACGTACGT"))
		s := block.NewSlice(b)
		s.Index()
		dec := decoderFor(t, NewExternalEncoder(9), format.TypeByteArray)

		out := make([]byte, 3)
		n, err := dec.DecodeBytes(s, nil, out)
		require.NoError(t, err)
		require.Equal(t, 3, n)
		require.Equal(t, []byte("ACG"), out)

		ints := make([]int32, 2)
		require.NoError(t, dec.DecodeInts(s, nil, ints))
		require.Equal(t, []int32{'T', 'A'}, ints)
		require.Equal(t, 5, b.Pos())
	})

	t.Run("integers narrowed to bytes", func(t *testing.T) {
		b := block.NewExternal(2, nil)
		b.AppendITF8(65)
		b.AppendITF8(66)
		dec := decoderFor(t, NewExternalEncoder(2), format.TypeLong)

		out := make([]byte, 2)
		n, err := dec.DecodeBytes(block.NewSlice(b), nil, out)
		require.NoError(t, err)
		require.Equal(t, 2, n)
		require.Equal(t, []byte("AB"), out)
	})

	t.Run("block not found", func(t *testing.T) {
		s := block.NewSlice(block.New(format.ContentCore, 4, []byte{1}))
		dec := decoderFor(t, NewExternalEncoder(4), format.TypeInt)

		err := dec.DecodeInts(s, nil, make([]int32, 1))
		require.ErrorIs(t, err, errs.ErrBlockNotFound)
	})

	t.Run("overrun", func(t *testing.T) {
		s := block.NewSlice(block.NewExternal(4, []byte("AC")))
		dec := decoderFor(t, NewExternalEncoder(4), format.TypeByte)

		_, err := dec.DecodeBytes(s, nil, make([]byte, 3))
		require.ErrorIs(t, err, errs.ErrBlockOverrun)
	})
}
