package itf8

import (
	"math"
	"testing"

	"github.com/arloliu/cramcodec/errs"
	"github.com/stretchr/testify/require"
)

func TestAppend_KnownEncodings(t *testing.T) {
	tests := []struct {
		name string
		val  int32
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"max 1 byte", 0x7f, []byte{0x7f}},
		{"min 2 bytes", 0x80, []byte{0x80, 0x80}},
		{"max 2 bytes", 0x3fff, []byte{0xbf, 0xff}},
		{"min 3 bytes", 0x4000, []byte{0xc0, 0x40, 0x00}},
		{"min 4 bytes", 0x200000, []byte{0xe0, 0x20, 0x00, 0x00}},
		{"min 5 bytes", 0x10000000, []byte{0xf1, 0x00, 0x00, 0x00, 0x00}},
		{"minus one", -1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Append(nil, tt.val)
			require.Equal(t, tt.want, got)
			require.Equal(t, len(tt.want), Size(tt.val))
			require.Equal(t, len(tt.want), Len(got[0]))

			v, n, err := Decode(got)
			require.NoError(t, err)
			require.Equal(t, len(tt.want), n)
			require.Equal(t, tt.val, v)
		})
	}
}

func TestDecode_Boundaries(t *testing.T) {
	values := []int32{
		1, 127, 128, 255, 16383, 16384, 2097151, 2097152,
		268435455, 268435456, math.MaxInt32, math.MinInt32, -5,
	}

	buf := make([]byte, 0, len(values)*MaxLen)
	for _, v := range values {
		buf = Append(buf, v)
	}

	for _, want := range values {
		got, n, err := Decode(buf)
		require.NoError(t, err)
		require.Equal(t, want, got)
		buf = buf[n:]
	}
	require.Empty(t, buf)
}

func TestDecode_Truncated(t *testing.T) {
	_, _, err := Decode(nil)
	require.ErrorIs(t, err, errs.ErrTruncatedVarint)

	_, _, err = Decode([]byte{0xc0, 0x40})
	require.ErrorIs(t, err, errs.ErrTruncatedVarint)
}
