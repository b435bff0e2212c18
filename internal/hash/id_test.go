package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum64_Deterministic(t *testing.T) {
	data := []byte("external block payload")
	require.Equal(t, Sum64(data), Sum64(data))
	require.NotEqual(t, Sum64(data), Sum64([]byte("other payload")))
}

func TestHeaderKey_DistinguishesInputs(t *testing.T) {
	payload := []byte{0x01, 0x02}

	base := HeaderKey(3, 1, payload)
	require.Equal(t, base, HeaderKey(3, 1, payload))
	require.NotEqual(t, base, HeaderKey(1, 1, payload), "kind must be part of the key")
	require.NotEqual(t, base, HeaderKey(3, 4, payload), "data type must be part of the key")
	require.NotEqual(t, base, HeaderKey(3, 1, []byte{0x01}), "payload must be part of the key")
}
