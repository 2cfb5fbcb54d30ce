// Package cache provides caching utilities for the MCP server.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// ThreadCache provides thread-safe LRU caching for assembled question
// threads. Threads fetched with and without comments are cached under
// distinct keys so a comment-less hit never hides requested comments.
type ThreadCache struct {
	cache *lru.Cache[string, *stackexchange.Thread]
}

// NewThreadCache creates a new LRU cache with the specified maximum
// number of items.
func NewThreadCache(maxItems int) (*ThreadCache, error) {
	c, err := lru.New[string, *stackexchange.Thread](maxItems)
	if err != nil {
		return nil, err
	}
	return &ThreadCache{cache: c}, nil
}

// Get retrieves a cached thread.
func (c *ThreadCache) Get(questionID int64, withComments bool) (*stackexchange.Thread, bool) {
	return c.cache.Get(key(questionID, withComments))
}

// Put adds or updates a thread in the cache.
func (c *ThreadCache) Put(questionID int64, withComments bool, t *stackexchange.Thread) {
	c.cache.Add(key(questionID, withComments), t)
}

// Len returns the current number of items in the cache.
func (c *ThreadCache) Len() int {
	return c.cache.Len()
}

func key(questionID int64, withComments bool) string {
	return fmt.Sprintf("%d/comments=%t", questionID, withComments)
}
