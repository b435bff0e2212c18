package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(8)

	n, err := bb.Write([]byte("ab"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.NoError(t, bb.WriteByte('c'))
	require.Equal(t, []byte("abc"), bb.Bytes())
	require.Equal(t, 3, bb.Len())

	capBefore := cap(bb.B)
	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, capBefore, cap(bb.B))
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(4, 16)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	bb.B = make([]byte, 0, 64)
	p.Put(bb) // dropped, must not panic
	p.Put(nil)

	got := p.Get()
	require.NotNil(t, got)
	require.Equal(t, 0, got.Len())
}

func TestHeaderBuffer_ReturnsEmpty(t *testing.T) {
	bb := GetHeaderBuffer()
	bb.MustWrite([]byte{1, 2, 3})
	PutHeaderBuffer(bb)

	again := GetHeaderBuffer()
	require.Equal(t, 0, again.Len())
	PutHeaderBuffer(again)
}

func TestGetInt32Slice(t *testing.T) {
	s, cleanup := GetInt32Slice(10)
	require.Len(t, s, 10)
	cleanup()

	s, cleanup = GetInt32Slice(3)
	defer cleanup()
	require.Len(t, s, 3)
}
