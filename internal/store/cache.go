package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sysdash/sysdash/internal/metrics"
)

// Loader produces the raw metrics table.
type Loader interface {
	Load(ctx context.Context) *metrics.Table
}

// Cache keeps one loaded table per session. Keying by session rather than
// process-wide keeps a refresh in one session from changing what another
// session is looking at. Entries are replaced wholesale on invalidation;
// there are no staleness bounds for consumers to depend on.
type Cache struct {
	loader Loader

	mu      sync.Mutex
	entries map[string]*metrics.Table
}

// NewCache creates a cache over the given loader.
func NewCache(loader Loader) *Cache {
	return &Cache{
		loader:  loader,
		entries: make(map[string]*metrics.Table),
	}
}

// Get returns the cached table for the session, loading it on first use.
func (c *Cache) Get(ctx context.Context, sessionID string) *metrics.Table {
	c.mu.Lock()
	if table, ok := c.entries[sessionID]; ok {
		c.mu.Unlock()
		return table
	}
	c.mu.Unlock()

	// Load outside the lock; a concurrent request for the same session
	// may load twice, which is harmless for a read-only source.
	table := c.loader.Load(ctx)

	c.mu.Lock()
	c.entries[sessionID] = table
	c.mu.Unlock()
	return table
}

// Invalidate drops the session's cached table so the next Get reloads.
func (c *Cache) Invalidate(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[sessionID]; ok {
		delete(c.entries, sessionID)
		log.Debug().Str("session", shortID(sessionID)).Msg("Invalidated cached log table")
	}
}

// shortID truncates a session ID for logging.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
