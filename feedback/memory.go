package feedback

import (
	"context"
	"sync"
)

// MemoryCache is an in-process Cache implementation. Each key gets its
// own mutex (created on first use) so recording an observation for
// "purchase/value" never blocks one for "view_item/item_id".
type MemoryCache struct {
	mu   sync.RWMutex // guards the top-level map structure only
	data map[string][]Observation
	locks map[string]*sync.Mutex
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data:  make(map[string][]Observation),
		locks: make(map[string]*sync.Mutex),
	}
}

func (c *MemoryCache) lockFor(k string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[k]
	if !ok {
		l = &sync.Mutex{}
		c.locks[k] = l
	}
	return l
}

func (c *MemoryCache) Record(ctx context.Context, obs Observation) error {
	k := key(obs.EventName, obs.Parameter)
	lock := c.lockFor(k)
	lock.Lock()
	defer lock.Unlock()

	c.mu.Lock()
	c.data[k] = append(c.data[k], obs)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) History(ctx context.Context, eventName, parameter string) ([]Observation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	k := key(eventName, parameter)
	out := make([]Observation, len(c.data[k]))
	copy(out, c.data[k])
	return out, nil
}

func (c *MemoryCache) Stats(ctx context.Context) (int, int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, v := range c.data {
		total += len(v)
	}
	return len(c.data), total, nil
}
