// Package cache provides a cost-bounded LRU cache.
//
// Each entry carries a cost, typically its size in bytes. When the total
// cost exceeds the budget, least recently used entries are evicted until
// the total is back under three quarters of the budget:
//
//	c := cache.New[string, *texconv.Buffer](512 << 20)
//	c.Set("albedo", buf, int64(len(buf.Data())*4))
//	buf, ok := c.Get("albedo")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
