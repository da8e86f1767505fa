package nn

import "github.com/microgpt-ml/microgpt/internal/autograd"

// KVCache holds the per-layer key and value projections of every position
// processed so far, enabling O(1) incremental decoding per step.
//
// Cached rows point into the step arena that produced them, so a cache is
// only valid as long as that arena: one cache per training step or per
// generation run, discarded together with the arena.
type KVCache struct {
	keys   [][][]*autograd.Value // [layer][position][embd]
	values [][][]*autograd.Value
}

// NewKVCache creates an empty cache for numLayers transformer layers.
func NewKVCache(numLayers int) *KVCache {
	return &KVCache{
		keys:   make([][][]*autograd.Value, numLayers),
		values: make([][][]*autograd.Value, numLayers),
	}
}

// Append records the key and value rows for the next position of one layer.
func (c *KVCache) Append(layer int, k, v []*autograd.Value) {
	c.keys[layer] = append(c.keys[layer], k)
	c.values[layer] = append(c.values[layer], v)
}

// Keys returns all cached key rows of one layer, oldest first.
func (c *KVCache) Keys(layer int) [][]*autograd.Value { return c.keys[layer] }

// Values returns all cached value rows of one layer, oldest first.
func (c *KVCache) Values(layer int) [][]*autograd.Value { return c.values[layer] }

// Len returns the number of cached positions.
func (c *KVCache) Len() int {
	if len(c.keys) == 0 {
		return 0
	}
	return len(c.keys[0])
}

// Reset drops all cached positions but keeps the layer structure.
func (c *KVCache) Reset() {
	for i := range c.keys {
		c.keys[i] = nil
		c.values[i] = nil
	}
}
