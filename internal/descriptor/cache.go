package descriptor

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// pair identifies one comparison. Descriptors are immutable, so pointer
// identity is a sound cache key.
type pair struct {
	a, b *LibraryDescriptor
}

// CachingChecker memoises the answers of another Checker. It is safe for
// concurrent use, so one instance can serve every project of a run.
type CachingChecker struct {
	next  Checker
	cache *lru.Cache[pair, bool]
}

// NewCachingChecker wraps next with an LRU cache holding up to size answers.
func NewCachingChecker(next Checker, size int) (*CachingChecker, error) {
	cache, err := lru.New[pair, bool](size)
	if err != nil {
		return nil, fmt.Errorf("creating equivalence cache: %w", err)
	}
	return &CachingChecker{next: next, cache: cache}, nil
}

// Equivalent answers from the cache when either ordering of the pair was
// seen before, and asks the wrapped Checker otherwise.
func (c *CachingChecker) Equivalent(a, b *LibraryDescriptor) bool {
	if v, ok := c.cache.Get(pair{a, b}); ok {
		return v
	}
	if v, ok := c.cache.Get(pair{b, a}); ok {
		return v
	}
	v := c.next.Equivalent(a, b)
	c.cache.Add(pair{a, b}, v)
	return v
}

// Len returns the number of cached answers.
func (c *CachingChecker) Len() int {
	return c.cache.Len()
}
