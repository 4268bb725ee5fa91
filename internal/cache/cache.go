package cache

import "sync"

// Cache is a thread-safe LRU cache bounded by the total cost of its
// entries. A budget of 0 means unlimited.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*cacheEntry[K, V]
	order   lruList[K]
	budget  int64
	cost    int64
	evicted uint64
}

type cacheEntry[K comparable, V any] struct {
	value V
	cost  int64
	node  *lruNode[K]
}

// New creates a cache with the given cost budget.
func New[K comparable, V any](budget int64) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*cacheEntry[K, V]),
		budget:  budget,
	}
}

// Get retrieves a value and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(e.node)
	return e.value, true
}

// Set stores a value with its cost, replacing any previous value for key.
// An entry that alone exceeds the budget is still stored; it evicts
// everything else and is itself evicted by the next Set.
func (c *Cache[K, V]) Set(key K, value V, cost int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.cost += cost - e.cost
		e.value, e.cost = value, cost
		c.order.MoveToFront(e.node)
	} else {
		c.entries[key] = &cacheEntry[K, V]{value: value, cost: cost, node: c.order.PushFront(key)}
		c.cost += cost
	}

	if c.budget > 0 && c.cost > c.budget {
		c.evict(key)
	}
}

// Delete removes an entry. Returns true if the entry was found.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.remove(key, e)
	return true
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[K, V])
	c.order = lruList[K]{}
	c.cost = 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: len(c.entries), Cost: c.cost, Budget: c.budget, Evicted: c.evicted}
}

// evict removes least recently used entries other than keep until the
// total cost is at most three quarters of the budget.
// Caller must hold c.mu.
func (c *Cache[K, V]) evict(keep K) {
	target := c.budget * 3 / 4
	for c.cost > target {
		node := c.order.Oldest()
		if node == nil || node.key == keep {
			return
		}
		c.remove(node.key, c.entries[node.key])
		c.evicted++
	}
}

// remove drops an entry. Caller must hold c.mu.
func (c *Cache[K, V]) remove(key K, e *cacheEntry[K, V]) {
	c.order.Remove(e.node)
	c.cost -= e.cost
	delete(c.entries, key)
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Cost is the summed cost of all entries.
	Cost int64
	// Budget is the cost limit, 0 when unlimited.
	Budget int64
	// Evicted counts entries removed to stay within the budget.
	Evicted uint64
}
