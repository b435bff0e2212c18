package compress

import (
	"fmt"

	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
)

// Compressor compresses a block payload.
type Compressor interface {
	// Compress returns the compressed form of data. The input slice is not
	// modified. Implementations may return the input itself when no
	// transformation is applied.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a block payload.
type Decompressor interface {
	// Decompress returns the original bytes of data, or an error if data is
	// corrupt or was produced by a different method.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.BlockMethod]Codec{
	format.MethodRaw:  NewNoOpCompressor(),
	format.MethodGzip: NewGzipCompressor(),
	format.MethodZstd: NewZstdCompressor(),
	format.MethodS2:   NewS2Compressor(),
	format.MethodLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for method.
//
// Returns:
//   - Codec: shared, stateless codec instance
//   - error: ErrUnsupportedMethod for unknown methods
func GetCodec(method format.BlockMethod) (Codec, error) {
	if codec, ok := builtinCodecs[method]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (%d)", errs.ErrUnsupportedMethod, method, uint8(method))
}
