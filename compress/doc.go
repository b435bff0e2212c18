// Package compress provides the payload compressors applied to data blocks.
//
// Codecs produce raw block contents: ITF8 integers and bytes in external
// blocks, MSB-first bits in the core block. Before a block is stored it may be
// compressed with one of the methods in format.BlockMethod:
//
//	Method | Implementation                          | Notes
//	-------|-----------------------------------------|-------------------------------
//	Raw    | NoOpCompressor                          | payload stored as-is
//	Gzip   | klauspost/compress/gzip                 | interoperable default
//	Zstd   | klauspost/compress/zstd (or gozstd)     | best ratio, build tag gozstd for cgo
//	S2     | klauspost/compress/s2                   | fastest
//	LZ4    | pierrec/lz4/v4 block format             | fast, small decoder
//
// # Usage
//
//	c, err := compress.GetCodec(format.MethodGzip)
//	if err != nil {
//	    return err
//	}
//	packed, err := c.Compress(blk.Data())
//
// All compressors are stateless values and safe for concurrent use; encoders
// and decoders are pooled internally where the underlying library benefits
// from reuse.
package compress
