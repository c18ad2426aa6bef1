package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	v      []byte
	exp    time.Time
	access time.Time
}

// TTLCache is an in-process BytesCache. When full, expired entries are
// dropped first, then the least recently read one.
type TTLCache struct {
	mu      sync.Mutex
	m       map[string]*entry
	maxSize int
	now     func() time.Time
}

func NewTTLCache(maxSize int) *TTLCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &TTLCache{m: make(map[string]*entry), maxSize: maxSize, now: time.Now}
}

func (c *TTLCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok {
		return nil, false, nil
	}
	now := c.now()
	if !e.exp.IsZero() && now.After(e.exp) {
		delete(c.m, key)
		return nil, false, nil
	}
	e.access = now
	return e.v, true, nil
}

// SetBytes stores a copy of value; ttl <= 0 never expires.
func (c *TTLCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if _, exists := c.m[key]; !exists && len(c.m) >= c.maxSize {
		c.evict(now)
	}
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	c.m[key] = &entry{v: append([]byte(nil), value...), exp: exp, access: now}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

func (c *TTLCache) evict(now time.Time) {
	for k, e := range c.m {
		if !e.exp.IsZero() && now.After(e.exp) {
			delete(c.m, k)
		}
	}
	if len(c.m) < c.maxSize {
		return
	}
	var oldestKey string
	var oldest time.Time
	for k, e := range c.m {
		if oldestKey == "" || e.access.Before(oldest) {
			oldestKey, oldest = k, e.access
		}
	}
	delete(c.m, oldestKey)
}

var _ BytesCache = (*TTLCache)(nil)
