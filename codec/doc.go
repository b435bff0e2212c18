// Package codec implements the entropy codecs that translate between typed
// value streams and the bit and byte representations stored in data blocks.
//
// Every codec is self-describing: its configuration is serialized into a
// small header blob that a reader parses to reconstruct an equivalent
// decoder. A header is laid out as
//
//	ITF8 kind | ITF8 payload length | payload
//
// where the payload layout depends on the codec kind:
//
//	EXTERNAL         ITF8 content id
//	HUFFMAN          ITF8 n, n x ITF8 symbol, ITF8 n, n x ITF8 bit length
//	BYTE_ARRAY_LEN   length codec header, value codec header
//	BYTE_ARRAY_STOP  1 byte stop value, 4 byte little-endian content id
//	BETA             ITF8 offset, ITF8 bit width
//	SUBEXP           ITF8 offset, ITF8 k
//	GAMMA            ITF8 offset
//
// # Building Codecs
//
// Decoders are built from header payloads with DecoderInit, or from complete
// header blobs with ParseDecoder. Encoders are built from frequency statistics
// with EncoderInit:
//
//	st := stats.FromValues(values)
//	enc, err := codec.EncoderInit(format.KindHuffman, st)
//	if err != nil {
//	    return err
//	}
//	defer enc.Release()
//
//	header, _ := enc.AppendHeader(nil)
//	dec, _, err := codec.ParseDecoder(header, format.TypeInt)
//
// A Registry carries the logger and metrics used during construction; the
// package-level functions use a registry that logs nothing.
//
// # Decoding State
//
// Codecs themselves are immutable once built. The bit reader and the slice
// owning the external blocks are passed into every decode call, and only
// their cursors advance. A decoder may therefore be shared by decode passes
// over independent slices running on different goroutines.
package codec
