package filter

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of distinct expressions CachingParser keeps.
const DefaultCacheSize = 256

type parsed struct {
	node Node
	err  error
}

// CachingParser memoizes another Parser. Nodes are immutable, so one
// parsed tree can be shared by every query that uses the same expression.
type CachingParser struct {
	next  Parser
	cache *lru.Cache
}

// NewCachingParser wraps next with an LRU cache of the given size.
func NewCachingParser(next Parser, size int) (*CachingParser, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create expression cache: %w", err)
	}
	return &CachingParser{next: next, cache: cache}, nil
}

// Parse implements Parser. Parse errors are cached too.
func (c *CachingParser) Parse(expr string) (Node, error) {
	if v, ok := c.cache.Get(expr); ok {
		p := v.(parsed)
		return p.node, p.err
	}
	node, err := c.next.Parse(expr)
	c.cache.Add(expr, parsed{node: node, err: err})
	return node, err
}

// Len reports how many expressions are cached.
func (c *CachingParser) Len() int {
	return c.cache.Len()
}
