package bitstream

import (
	"bytes"
	"testing"

	"github.com/arloliu/cramcodec/errs"
	"github.com/stretchr/testify/require"
)

func TestReader_MSBFirst(t *testing.T) {
	r := NewReader([]byte{0b1010_0000})

	for _, want := range []uint32{1, 0, 1, 0} {
		got, err := r.ReadBit()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.Equal(t, int64(4), r.BitsRead())
}

func TestReader_ReadBits(t *testing.T) {
	r := NewReader([]byte{0xAB, 0xCD})

	v, err := r.ReadBits(4)
	require.NoError(t, err)
	require.Equal(t, uint32(0xA), v)

	v, err = r.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, uint32(0xBC), v)

	v, err = r.ReadBits(0)
	require.NoError(t, err)
	require.Zero(t, v)

	v, err = r.ReadBits(4)
	require.NoError(t, err)
	require.Equal(t, uint32(0xD), v)

	_, err = r.ReadBit()
	require.ErrorIs(t, err, errs.ErrBitstreamExhausted)
}

func TestReader_Runs(t *testing.T) {
	// 1110 0001 -> ReadOnes=3 (consumes the 0), ReadZeros=3 (consumes the 1)
	r := NewReader([]byte{0b1110_0001})

	ones, err := r.ReadOnes()
	require.NoError(t, err)
	require.Equal(t, 3, ones)

	zeros, err := r.ReadZeros()
	require.NoError(t, err)
	require.Equal(t, 3, zeros)
	require.Equal(t, int64(8), r.BitsRead())
}

func TestReader_RunExhausted(t *testing.T) {
	r := NewReader([]byte{0xFF})

	_, err := r.ReadOnes()
	require.ErrorIs(t, err, errs.ErrBitstreamExhausted)
}

func TestWriter_RoundTrip(t *testing.T) {
	w := NewWriter()
	defer w.Finish()

	require.NoError(t, w.WriteBit(1))
	require.NoError(t, w.WriteBits(0x5, 3))
	require.NoError(t, w.WriteOnes(2))
	require.NoError(t, w.WriteZeros(4))
	require.NoError(t, w.WriteBits(0xFFFFFFFF, 32))
	require.Equal(t, int64(1+3+3+5+32), w.BitsWritten())

	data := bytes.Clone(w.Bytes())
	require.Len(t, data, 6)

	r := NewReader(data)
	bit, err := r.ReadBit()
	require.NoError(t, err)
	require.Equal(t, uint32(1), bit)

	v, err := r.ReadBits(3)
	require.NoError(t, err)
	require.Equal(t, uint32(5), v)

	ones, err := r.ReadOnes()
	require.NoError(t, err)
	require.Equal(t, 2, ones)

	zeros, err := r.ReadZeros()
	require.NoError(t, err)
	require.Equal(t, 4, zeros)

	v, err = r.ReadBits(32)
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFFFFFF), v)
}

func TestWriter_MasksHighBits(t *testing.T) {
	w := NewWriter()
	defer w.Finish()

	require.NoError(t, w.WriteBits(0xFF, 4))
	require.Equal(t, []byte{0xF0}, w.Bytes())
}

func TestWriter_InvalidCount(t *testing.T) {
	w := NewWriter()
	defer w.Finish()

	require.Error(t, w.WriteBits(1, 33))
	require.NoError(t, w.WriteBits(1, 0))
	require.Empty(t, w.Bytes())
}
