package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/regula/pkg/ports"
)

// Catalog implements ports.Catalog in memory.
// Safe for concurrent use.
type Catalog struct {
	entries map[string]ports.Entry
	mu      sync.RWMutex
}

// NewCatalog creates a catalog seeded with entries.
func NewCatalog(entries ...ports.Entry) *Catalog {
	c := &Catalog{entries: make(map[string]ports.Entry, len(entries))}
	for _, e := range entries {
		c.entries[e.ID] = e
	}
	return c
}

// Add inserts or replaces an entry.
func (c *Catalog) Add(e ports.Entry) error {
	if e.ID == "" {
		return fmt.Errorf("entry missing ID")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.ID] = e
	return nil
}

// Get retrieves an entry by id.
func (c *Catalog) Get(ctx context.Context, id string) (ports.Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok {
		return ports.Entry{}, fmt.Errorf("%w: %s", ports.ErrEntryNotFound, id)
	}
	return e, nil
}

// List returns every entry ordered by id.
func (c *Catalog) List(ctx context.Context) ([]ports.Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ports.Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b ports.Entry) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}
