package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 digest of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// HeaderKey computes a digest identifying a codec header: the codec kind, the
// data type it decodes into, and the header payload bytes.
func HeaderKey(kind int32, dataType uint8, payload []byte) uint64 {
	d := xxhash.New()
	var prefix [5]byte
	prefix[0] = byte(kind)
	prefix[1] = byte(kind >> 8)
	prefix[2] = byte(kind >> 16)
	prefix[3] = byte(kind >> 24)
	prefix[4] = dataType
	_, _ = d.Write(prefix[:])
	_, _ = d.Write(payload)

	return d.Sum64()
}
