package codec

import (
	"bytes"
	"testing"

	"github.com/arloliu/cramcodec/bitstream"
	"github.com/stretchr/testify/require"
)

// bitsOf builds a reader over a bit pattern such as "0 110"; spaces are
// ignored.
func bitsOf(t *testing.T, pattern string) *bitstream.Reader {
	t.Helper()

	w := bitstream.NewWriter()
	defer w.Finish()

	for _, c := range pattern {
		switch c {
		case '0', '1':
			require.NoError(t, w.WriteBit(uint32(c-'0')))
		case ' ':
		default:
			t.Fatalf("invalid bit %q in pattern %q", c, pattern)
		}
	}

	return bitstream.NewReader(bytes.Clone(w.Bytes()))
}

func mustHeader(t *testing.T, c Codec) []byte {
	t.Helper()

	h, err := c.AppendHeader(nil)
	require.NoError(t, err)

	return h
}
