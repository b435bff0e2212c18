package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLittleEndianEngine_ContentID(t *testing.T) {
	engine := GetLittleEndianEngine()

	b := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
	require.Equal(t, uint32(0x01020304), engine.Uint32(b))
}

func TestBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()

	b := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, b)
}
