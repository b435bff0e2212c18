package pool

import (
	"io"
	"sync"
)

const (
	// BitBufferDefaultSize is the initial capacity of buffers backing bitstream writers.
	BitBufferDefaultSize = 1024 * 4 // 4KiB
	// BitBufferMaxThreshold is the largest bitstream buffer kept for reuse.
	BitBufferMaxThreshold = 1024 * 256 // 256KiB
	// HeaderBufferDefaultSize is the initial capacity of codec header scratch buffers.
	HeaderBufferDefaultSize = 256
	// HeaderBufferMaxThreshold is the largest header scratch buffer kept for reuse.
	HeaderBufferMaxThreshold = 1024 * 16 // 16KiB
)

// ByteBuffer is an append-only byte slice that satisfies io.Writer and
// io.ByteWriter, so bit writers can emit bytes directly into it.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

var (
	_ io.Writer     = (*ByteBuffer)(nil)
	_ io.ByteWriter = (*ByteBuffer)(nil)
)

// NewByteBuffer creates a new ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// ByteBufferPool is a sync.Pool of ByteBuffers that drops buffers grown past
// maxThreshold instead of retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start with defaultSize capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. Nil and oversized buffers are discarded.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	bitDefaultPool    = NewByteBufferPool(BitBufferDefaultSize, BitBufferMaxThreshold)
	headerDefaultPool = NewByteBufferPool(HeaderBufferDefaultSize, HeaderBufferMaxThreshold)
)

// GetBitBuffer retrieves a buffer for a bitstream writer.
func GetBitBuffer() *ByteBuffer {
	return bitDefaultPool.Get()
}

// PutBitBuffer returns a bitstream buffer to the pool.
func PutBitBuffer(bb *ByteBuffer) {
	bitDefaultPool.Put(bb)
}

// GetHeaderBuffer retrieves a scratch buffer for building codec header payloads.
func GetHeaderBuffer() *ByteBuffer {
	return headerDefaultPool.Get()
}

// PutHeaderBuffer returns a header scratch buffer to the pool.
func PutHeaderBuffer(bb *ByteBuffer) {
	headerDefaultPool.Put(bb)
}
