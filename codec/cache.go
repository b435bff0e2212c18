package codec

import (
	"sync"

	"github.com/arloliu/cramcodec/format"
	"github.com/arloliu/cramcodec/internal/collision"
	"github.com/arloliu/cramcodec/internal/hash"
)

// Cache shares decoders between headers with identical bytes. Column headers
// repeat across containers, so each distinct header is parsed once.
//
// Entries are found by an xxHash64 digest of the header and confirmed by
// comparing the header bytes, so headers with colliding digests get their
// own decoders.
//
// Decoders returned by Get are owned by the cache: callers must not Release
// them. Close releases every cached decoder.
type Cache struct {
	registry *Registry
	sum      func(kind int32, dataType uint8, payload []byte) uint64
	mu       sync.RWMutex
	entries  *collision.Table[Codec]
}

// NewCache creates a cache building decoders with registry, or with the
// default registry when registry is nil.
func NewCache(registry *Registry) *Cache {
	if registry == nil {
		registry = defaultRegistry
	}

	return &Cache{
		registry: registry,
		sum:      hash.HeaderKey,
		entries:  collision.NewTable[Codec](),
	}
}

// Get returns the decoder for the header at the start of blob, building it
// on first use.
//
// Returns:
//   - Codec: shared decoder
//   - int: header bytes consumed from blob
//   - error: as Registry.ParseDecoder
func (c *Cache) Get(blob []byte, dataType format.DataType) (Codec, int, error) {
	kind, payload, n, err := ParseHeader(blob)
	if err != nil {
		return nil, 0, err
	}

	digest := c.sum(int32(kind), uint8(dataType), payload)
	key := make([]byte, 0, n+1)
	key = append(key, uint8(dataType))
	key = append(key, blob[:n]...)

	c.mu.RLock()
	dec, ok := c.entries.Get(digest, key)
	c.mu.RUnlock()
	if ok {
		return dec, n, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if dec, ok := c.entries.Get(digest, key); ok {
		return dec, n, nil
	}

	dec, err = c.registry.DecoderInit(kind, payload, dataType)
	if err != nil {
		return nil, 0, err
	}
	c.entries.Put(digest, key, dec)

	return dec, n, nil
}

// Len returns the number of cached decoders.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.entries.Count()
}

// Collisions returns how many cached headers share a digest with another
// cached header.
func (c *Cache) Collisions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.entries.Collisions()
}

// Close releases every cached decoder and empties the cache.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for dec := range c.entries.Values() {
		dec.Release()
	}
	c.entries.Reset()
}
