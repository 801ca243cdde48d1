package mode

import "sync"

// iconScale is the scale factor in every cache key. The host does not
// pass one.
const iconScale = 1

type iconKey struct {
	line   uint32
	height uint32
	scale  uint32
}

// iconCache maps rows to resolved icon handles. Entries are never
// evicted while the state lives.
type iconCache struct {
	entries map[iconKey]uint32
	mu      sync.Mutex
}

func newIconCache() *iconCache {
	return &iconCache{entries: make(map[iconKey]uint32)}
}

// resolve returns the cached handle for key, or calls fetch and caches
// what it returns. fetch reporting false caches nothing.
//
// The lock is held across fetch. That is only acceptable because the host
// never calls into one table concurrently.
func (c *iconCache) resolve(key iconKey, fetch func() (uint32, bool)) (uint32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.entries[key]; ok {
		return h, true
	}
	h, ok := fetch()
	if !ok {
		return 0, false
	}
	c.entries[key] = h
	return h, true
}

func (c *iconCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *iconCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[iconKey]uint32)
}
