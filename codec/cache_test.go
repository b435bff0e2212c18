package codec

import (
	"sync"
	"testing"

	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/stretchr/testify/require"
)

func TestCache_Get(t *testing.T) {
	c := NewCache(nil)
	defer c.Close()

	header := mustHeader(t, NewExternalEncoder(12))

	first, n, err := c.Get(header, format.TypeInt)
	require.NoError(t, err)
	require.Equal(t, len(header), n)

	second, _, err := c.Get(header, format.TypeInt)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, c.Len())

	// The data type changes how external data is read, so it is part of the key.
	raw, _, err := c.Get(header, format.TypeByteArray)
	require.NoError(t, err)
	require.NotSame(t, first, raw)
	require.Equal(t, 2, c.Len())
}

func TestCache_DigestCollision(t *testing.T) {
	c := NewCache(nil)
	defer c.Close()
	c.sum = func(int32, uint8, []byte) uint64 { return 0x5eed }

	gammaHeader := mustHeader(t, NewGammaEncoder(1))
	betaHeader := mustHeader(t, NewBetaEncoder(0, 4))

	gamma, _, err := c.Get(gammaHeader, format.TypeInt)
	require.NoError(t, err)
	beta, _, err := c.Get(betaHeader, format.TypeInt)
	require.NoError(t, err)

	require.NotSame(t, gamma, beta)
	require.Equal(t, format.KindGamma, gamma.Kind())
	require.Equal(t, format.KindBeta, beta.Kind())
	require.Equal(t, 2, c.Len())
	require.Equal(t, 1, c.Collisions())

	// Same digest, same data type, different configuration.
	shifted, _, err := c.Get(mustHeader(t, NewGammaEncoder(2)), format.TypeInt)
	require.NoError(t, err)
	require.NotSame(t, gamma, shifted)

	out := make([]int32, 1)
	require.NoError(t, shifted.DecodeInts(nil, bitsOf(t, "1"), out))
	require.Equal(t, int32(-1), out[0])

	again, _, err := c.Get(gammaHeader, format.TypeInt)
	require.NoError(t, err)
	require.Same(t, gamma, again)
	require.Equal(t, 3, c.Len())
}

func TestCache_Errors(t *testing.T) {
	c := NewCache(nil)
	defer c.Close()

	_, _, err := c.Get([]byte{0x02, 0x00}, format.TypeInt)
	require.ErrorIs(t, err, errs.ErrUnsupportedCodec)

	_, _, err = c.Get([]byte{0x01}, format.TypeInt)
	require.ErrorIs(t, err, errs.ErrMalformedHeader)
	require.Zero(t, c.Len())
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache(nil)
	defer c.Close()

	headers := [][]byte{
		mustHeader(t, NewExternalEncoder(1)),
		mustHeader(t, NewGammaEncoder(3)),
		mustHeader(t, NewBetaEncoder(0, 7)),
	}

	var wg sync.WaitGroup
	got := make([]Codec, 64)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dec, _, err := c.Get(headers[i%len(headers)], format.TypeInt)
			if err == nil {
				got[i] = dec
			}
		}()
	}
	wg.Wait()

	require.Equal(t, len(headers), c.Len())
	for i, dec := range got {
		require.NotNil(t, dec)
		require.Same(t, got[i%len(headers)], dec)
	}
}

func TestCache_Close(t *testing.T) {
	c := NewCache(nil)

	dec, _, err := c.Get(mustHeader(t, NewGammaEncoder(0)), format.TypeInt)
	require.NoError(t, err)

	c.Close()
	require.Zero(t, c.Len())
	require.ErrorIs(t, dec.DecodeInts(nil, bitsOf(t, "1"), make([]int32, 1)), errs.ErrCodecReleased)
}
