package block

import (
	"context"
	"fmt"

	"github.com/arloliu/cramcodec/errs"
	"github.com/arloliu/cramcodec/format"
	"golang.org/x/sync/errgroup"
)

// Slice owns the blocks of one batch of records.
type Slice struct {
	blocks []*Block
	byID   map[int32]*Block
}

// NewSlice creates a slice owning blocks. Lookups scan linearly until Index
// is called.
func NewSlice(blocks ...*Block) *Slice {
	return &Slice{blocks: blocks}
}

// Add appends a block to the slice, updating the id index if one is built.
func (s *Slice) Add(b *Block) {
	s.blocks = append(s.blocks, b)
	if s.byID != nil && b.contentType == format.ContentExternal {
		if _, ok := s.byID[b.contentID]; !ok {
			s.byID[b.contentID] = b
		}
	}
}

// Blocks returns the slice's blocks in insertion order.
func (s *Slice) Blocks() []*Block {
	return s.blocks
}

// Index builds the direct content id lookup table over external blocks. When
// two external blocks share an id the first one wins, as with a linear scan.
func (s *Slice) Index() {
	s.byID = make(map[int32]*Block, len(s.blocks))
	for _, b := range s.blocks {
		if b.contentType != format.ContentExternal {
			continue
		}
		if _, ok := s.byID[b.contentID]; !ok {
			s.byID[b.contentID] = b
		}
	}
}

// Core returns the first core data block of the slice, or nil when it has
// none.
func (s *Slice) Core() *Block {
	for _, b := range s.blocks {
		if b.contentType == format.ContentCore {
			return b
		}
	}

	return nil
}

// Indexed reports whether Index has built the id lookup table.
func (s *Slice) Indexed() bool {
	return s.byID != nil
}

// Lookup returns the external block with contentID, using the id index when
// present and a linear scan over external blocks otherwise.
func (s *Slice) Lookup(contentID int32) (*Block, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: content id %d: no slice", errs.ErrBlockNotFound, contentID)
	}

	if s.byID != nil {
		if b, ok := s.byID[contentID]; ok {
			return b, nil
		}

		return nil, fmt.Errorf("%w: content id %d", errs.ErrBlockNotFound, contentID)
	}

	for _, b := range s.blocks {
		if b.contentType == format.ContentExternal && b.contentID == contentID {
			return b, nil
		}
	}

	return nil, fmt.Errorf("%w: content id %d", errs.ErrBlockNotFound, contentID)
}

// Reset rewinds the cursor of every block.
func (s *Slice) Reset() {
	for _, b := range s.blocks {
		b.Reset()
	}
}

// ForEach calls fn once per slice with the slice's index, running at most
// limit calls concurrently (no limit when limit <= 0). The first error cancels
// the context passed to the remaining calls and is returned.
func ForEach(ctx context.Context, slices []*Slice, limit int, fn func(ctx context.Context, i int, s *Slice) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, s := range slices {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return fn(ctx, i, s)
		})
	}

	return g.Wait()
}
