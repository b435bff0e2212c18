package block

import (
	"fmt"

	"github.com/arloliu/cramcodec/compress"
	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/internal/hash"
	"github.com/arloliu/cramcodec/itf8"
)

// Block is a content-tagged byte buffer with a read cursor.
type Block struct {
	data        []byte
	idx         int
	contentID   int32
	contentType format.ContentType
}

// New creates a block over data. The block references data without copying.
func New(contentType format.ContentType, contentID int32, data []byte) *Block {
	return &Block{
		contentType: contentType,
		contentID:   contentID,
		data:        data,
	}
}

// NewExternal creates an external block for the data series with contentID.
func NewExternal(contentID int32, data []byte) *Block {
	return New(format.ContentExternal, contentID, data)
}

// ContentType returns the block's content type tag.
func (b *Block) ContentType() format.ContentType {
	return b.contentType
}

// ContentID returns the block's content id.
func (b *Block) ContentID() int32 {
	return b.contentID
}

// Data returns the full block payload regardless of the cursor.
func (b *Block) Data() []byte {
	return b.data
}

// Len returns the payload size in bytes.
func (b *Block) Len() int {
	return len(b.data)
}

// Pos returns the cursor position.
func (b *Block) Pos() int {
	return b.idx
}

// Remaining returns the number of bytes after the cursor.
func (b *Block) Remaining() int {
	return len(b.data) - b.idx
}

// Seek moves the cursor to pos.
func (b *Block) Seek(pos int) error {
	if pos < 0 || pos > len(b.data) {
		return fmt.Errorf("%w: seek to %d in block %d of %d bytes", errs.ErrBlockOverrun, pos, b.contentID, len(b.data))
	}
	b.idx = pos

	return nil
}

// Reset rewinds the cursor to the start of the block.
func (b *Block) Reset() {
	b.idx = 0
}

// Extract returns the next n bytes and advances the cursor past them. The
// returned slice aliases the block payload.
func (b *Block) Extract(n int) ([]byte, error) {
	if n < 0 || n > b.Remaining() {
		return nil, fmt.Errorf("%w: extract %d bytes at %d from block %d of %d bytes",
			errs.ErrBlockOverrun, n, b.idx, b.contentID, len(b.data))
	}

	out := b.data[b.idx : b.idx+n]
	b.idx += n

	return out, nil
}

// ReadByte returns the byte at the cursor and advances by one.
func (b *Block) ReadByte() (byte, error) {
	if b.idx >= len(b.data) {
		return 0, fmt.Errorf("%w: read at %d from block %d of %d bytes",
			errs.ErrBlockOverrun, b.idx, b.contentID, len(b.data))
	}
	c := b.data[b.idx]
	b.idx++

	return c, nil
}

// ReadITF8 decodes one ITF8 integer at the cursor and advances past it.
func (b *Block) ReadITF8() (int32, error) {
	v, n, err := itf8.Decode(b.data[b.idx:])
	if err != nil {
		return 0, fmt.Errorf("%w: block %d at %d: %w", errs.ErrBlockOverrun, b.contentID, b.idx, err)
	}
	b.idx += n

	return v, nil
}

// Write appends p to the payload. Used when building blocks for encoding.
func (b *Block) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// WriteByte appends c to the payload.
func (b *Block) WriteByte(c byte) error {
	b.data = append(b.data, c)
	return nil
}

// AppendITF8 appends v in ITF8 form to the payload.
func (b *Block) AppendITF8(v int32) {
	b.data = itf8.Append(b.data, v)
}

// Checksum returns the xxHash64 digest of the payload.
func (b *Block) Checksum() uint64 {
	return hash.Sum64(b.data)
}

// Verify checks the payload against a digest produced by Checksum.
func (b *Block) Verify(sum uint64) error {
	if got := b.Checksum(); got != sum {
		return fmt.Errorf("%w: block %d: got %016x, want %016x", errs.ErrChecksumMismatch, b.contentID, got, sum)
	}

	return nil
}

// Compress returns the payload compressed with method. The block is unchanged.
func (b *Block) Compress(method format.BlockMethod) ([]byte, error) {
	c, err := compress.GetCodec(method)
	if err != nil {
		return nil, err
	}

	out, err := c.Compress(b.data)
	if err != nil {
		return nil, fmt.Errorf("failed to compress block %d: %w", b.contentID, err)
	}

	return out, nil
}

// Decompress creates a block from a payload compressed with method.
func Decompress(contentType format.ContentType, contentID int32, method format.BlockMethod, payload []byte) (*Block, error) {
	c, err := compress.GetCodec(method)
	if err != nil {
		return nil, err
	}

	data, err := c.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress block %d: %w", contentID, err)
	}

	return New(contentType, contentID, data), nil
}
