package manager

import (
	"sync"
	"time"
)

// cache 以 ID 为键的内存存储，远端成功读取时整体替换，
// 降级写入时单条修改。读多写少，用读写锁保护。
type cache[T any] struct {
	mu          sync.RWMutex
	items       map[string]*T
	synced      bool      // 是否被远端数据填充过
	lastUpdated time.Time // 最近一次远端同步时间
}

func newCache[T any]() *cache[T] {
	return &cache[T]{items: make(map[string]*T)}
}

// replaceAll 用远端数据整体替换并刷新同步时间
func (c *cache[T]) replaceAll(items map[string]*T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.synced = true
	c.lastUpdated = time.Now()
}

// prime 填入兜底数据，不改变同步状态
func (c *cache[T]) prime(items map[string]*T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, v := range items {
		if _, exists := c.items[id]; !exists {
			c.items[id] = v
		}
	}
}

func (c *cache[T]) get(id string) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

func (c *cache[T]) put(id string, v *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[id] = v
}

func (c *cache[T]) delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[id]
	delete(c.items, id)
	return ok
}

func (c *cache[T]) list() []*T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*T, 0, len(c.items))
	for _, v := range c.items {
		out = append(out, v)
	}
	return out
}

func (c *cache[T]) keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.items))
	for id := range c.items {
		out = append(out, id)
	}
	return out
}

func (c *cache[T]) lastSynced() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdated, c.synced
}
