package client

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"go-chatrelay-svc/internal/workspace"
)

const collectionsCacheKey = "collections"

// CachedWorkspace is a read-through TTL cache over a workspace client.
// Listing and search results are cached; entry creation passes through
// and invalidates the cache so fresh notes become searchable.
type CachedWorkspace struct {
	inner workspace.Client
	cache *gocache.Cache
}

// NewCachedWorkspace wraps inner with a cache holding results for ttl.
func NewCachedWorkspace(inner workspace.Client, ttl time.Duration) *CachedWorkspace {
	return &CachedWorkspace{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachedWorkspace) ListCollections(ctx context.Context) ([]workspace.Collection, error) {
	if v, ok := c.cache.Get(collectionsCacheKey); ok {
		return v.([]workspace.Collection), nil
	}
	cols, err := c.inner.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(collectionsCacheKey, cols, gocache.DefaultExpiration)
	return cols, nil
}

func (c *CachedWorkspace) Search(ctx context.Context, query string) ([]workspace.SearchResult, error) {
	key := "search:" + query
	if v, ok := c.cache.Get(key); ok {
		return v.([]workspace.SearchResult), nil
	}
	results, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, results, gocache.DefaultExpiration)
	return results, nil
}

func (c *CachedWorkspace) CreateEntry(ctx context.Context, title, body string) (*workspace.Entry, error) {
	entry, err := c.inner.CreateEntry(ctx, title, body)
	if err != nil {
		return nil, err
	}
	c.cache.Flush()
	return entry, nil
}
