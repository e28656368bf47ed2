package textmeasure

import (
	"container/list"
	"sync"
)

type lruEntry struct {
	key   string
	value float64
}

// lru is a small string->width cache; re-measuring the same text on every
// pass is the common case.
type lru struct {
	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
	size  int
}

func newLRU(size int) *lru {
	return &lru{
		items: make(map[string]*list.Element, size),
		order: list.New(),
		size:  size,
	}
}

func (c *lru) get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return 0, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(lruEntry).value, true
}

func (c *lru) put(key string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		elem.Value = lruEntry{key: key, value: value}
		c.order.MoveToFront(elem)
		return
	}
	if c.order.Len() >= c.size {
		if back := c.order.Back(); back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(lruEntry).key)
		}
	}
	c.items[key] = c.order.PushFront(lruEntry{key: key, value: value})
}

func (c *lru) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
