package mpath

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of queries kept by a Cache created with a
// non-positive size.
const DefaultCacheSize = 256

// Cache holds recently compiled queries. It is safe for concurrent use.
type Cache struct {
	queries *lru.Cache[string, *Query]
}

func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, *Query](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Cache{queries: c}
}

// Compile returns the cached query for expr, compiling and adding it on a
// miss. A nil Cache compiles every time.
func (c *Cache) Compile(expr string) (*Query, error) {
	if c == nil {
		return Compile(expr)
	}
	if q, ok := c.queries.Get(expr); ok {
		return q, nil
	}
	q, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	c.queries.Add(expr, q)
	return q, nil
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.queries.Len()
}
