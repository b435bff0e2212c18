package bitstream

import (
	"fmt"

	"github.com/arloliu/cramcodec/internal/pool"
	"github.com/icza/bitio"
)

// Writer writes bits MSB-first into a pooled byte buffer.
//
// Call Bytes once all bits are written; it pads the final partial byte with
// zero bits. Call Finish when the writer is no longer needed to return its
// buffer to the pool.
type Writer struct {
	buf  *pool.ByteBuffer
	w    *bitio.Writer
	bits int64
}

// NewWriter creates an empty bit writer.
func NewWriter() *Writer {
	buf := pool.GetBitBuffer()

	return &Writer{
		buf: buf,
		w:   bitio.NewWriter(buf),
	}
}

// BitsWritten returns the number of bits written, excluding padding.
func (w *Writer) BitsWritten() int64 {
	return w.bits
}

// WriteBit writes the lowest bit of bit.
func (w *Writer) WriteBit(bit uint32) error {
	if w.buf == nil {
		panic("bitstream: writer already finished")
	}

	if err := w.w.WriteBool(bit&1 == 1); err != nil {
		return err
	}
	w.bits++

	return nil
}

// WriteBits writes the n (0-32) lowest bits of v, most significant first.
func (w *Writer) WriteBits(v uint32, n int) error {
	if w.buf == nil {
		panic("bitstream: writer already finished")
	}
	if n == 0 {
		return nil
	}
	if n < 0 || n > 32 {
		return fmt.Errorf("bitstream: invalid bit count %d", n)
	}

	masked := uint64(v) & (1<<uint(n) - 1)
	if err := w.w.WriteBits(masked, uint8(n)); err != nil { //nolint:gosec
		return err
	}
	w.bits += int64(n)

	return nil
}

// WriteOnes writes n 1 bits followed by a terminating 0 bit.
func (w *Writer) WriteOnes(n int) error {
	for range n {
		if err := w.WriteBit(1); err != nil {
			return err
		}
	}

	return w.WriteBit(0)
}

// WriteZeros writes n 0 bits followed by a terminating 1 bit.
func (w *Writer) WriteZeros(n int) error {
	for range n {
		if err := w.WriteBit(0); err != nil {
			return err
		}
	}

	return w.WriteBit(1)
}

// Bytes pads the pending partial byte with zero bits and returns the encoded
// bytes. The returned slice references the internal buffer and is valid
// until Finish.
func (w *Writer) Bytes() []byte {
	if w.buf == nil {
		panic("bitstream: writer already finished")
	}

	// Align on a ByteBuffer cannot fail.
	_, _ = w.w.Align()

	return w.buf.Bytes()
}

// Finish returns the buffer to the pool. The writer is unusable afterwards.
func (w *Writer) Finish() {
	if w.buf == nil {
		return
	}

	pool.PutBitBuffer(w.buf)
	w.buf = nil
	w.w = nil
}
