// Package bitstream provides MSB-first bit-level reading and writing over byte
// buffers.
//
// Bits are consumed from the most significant bit of each byte first. This
// order is part of the wire format: every bit-coded codec (Huffman, Beta,
// Subexp, Gamma) reads and writes through these types.
//
// Besides plain bit reads, the Reader exposes the two run primitives used by
// unary-prefixed codes:
//
//	ReadOnes()  counts 1 bits up to and including the terminating 0 bit
//	ReadZeros() counts 0 bits up to and including the terminating 1 bit
//
// and the Writer exposes their duals, WriteOnes and WriteZeros.
//
// # Thread Safety
//
// Readers and Writers are stateful and must not be shared between goroutines
// without external synchronization.
package bitstream
