package statestore

// Cache is a write-buffering overlay on a parent KV. Reads fall through to
// the parent for keys the cache has not touched; writes and deletes stay in
// the overlay until Write flushes them. Discarding the cache leaves the
// parent untouched, which is what gives operations their all-or-nothing
// commit semantics.
type Cache struct {
	parent  KV
	writes  map[string][]byte
	deletes map[string]struct{}
}

// NewCache creates an empty overlay over parent.
func NewCache(parent KV) *Cache {
	return &Cache{
		parent:  parent,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

func (c *Cache) Get(key []byte) []byte {
	if value, ok := c.writes[string(key)]; ok {
		cp := make([]byte, len(value))
		copy(cp, value)
		return cp
	}
	if _, ok := c.deletes[string(key)]; ok {
		return nil
	}
	return c.parent.Get(key)
}

func (c *Cache) Has(key []byte) bool {
	if _, ok := c.writes[string(key)]; ok {
		return true
	}
	if _, ok := c.deletes[string(key)]; ok {
		return false
	}
	return c.parent.Has(key)
}

func (c *Cache) Set(key, value []byte) {
	cp := make([]byte, len(value))
	copy(cp, value)
	c.writes[string(key)] = cp
	delete(c.deletes, string(key))
}

func (c *Cache) Delete(key []byte) {
	delete(c.writes, string(key))
	c.deletes[string(key)] = struct{}{}
}

// Write flushes the overlay to the parent and resets the cache. The flush
// order is not deterministic; callers must not rely on key ordering.
func (c *Cache) Write() {
	for key := range c.deletes {
		c.parent.Delete([]byte(key))
	}
	for key, value := range c.writes {
		c.parent.Set([]byte(key), value)
	}
	c.Discard()
}

// Discard drops all buffered writes and deletes.
func (c *Cache) Discard() {
	c.writes = make(map[string][]byte)
	c.deletes = make(map[string]struct{})
}
