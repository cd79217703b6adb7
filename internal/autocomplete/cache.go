package autocomplete

import (
	"slices"
	"sync"

	"autosuggest/internal/models"
)

// Cache maps a normalized query to the last ranked result seen for it.
// Entries never expire and are not invalidated by popularity changes.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]models.Suggestion
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]models.Suggestion)}
}

// Get returns a copy of the cached suggestions for query.
func (c *Cache) Get(query string) ([]models.Suggestion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.entries[query]
	if !ok {
		return nil, false
	}
	return clone(s), true
}

// Put stores a copy of suggestions under query, replacing any previous entry.
func (c *Cache) Put(query string, suggestions []models.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = clone(suggestions)
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func clone(s []models.Suggestion) []models.Suggestion {
	if s == nil {
		return []models.Suggestion{}
	}
	return slices.Clone(s)
}
