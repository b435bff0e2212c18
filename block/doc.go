// Package block models the data blocks codecs read from and write to.
//
// A Block is a byte buffer tagged with a content type and content id. External
// blocks carry one data series each and keep a read cursor that advances as
// codecs consume values. A Slice owns the blocks decoded together for one
// batch of records and resolves content ids to blocks.
//
// # Cursor Ownership
//
// Block cursors are the only mutable state touched by decoding. A Slice and
// its blocks must be consumed by exactly one decode pass at a time. Separate
// slices share nothing and may be decoded concurrently; ForEach runs one pass
// per slice on a bounded set of goroutines.
package block
