package organizer

import (
	"sync"
	"time"

	"github.com/farxc/listagem-empenhos/internal/sheet"
)

// readCache keeps the last full-dataset read for a short window so the
// browsing view does not hammer the store on every page change. It is
// invalidated by time only; a write immediately followed by a read may
// observe data up to the TTL old.
type readCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	table    sheet.Table
	loadedAt time.Time
	loaded   bool
}

func newReadCache(ttl time.Duration) *readCache {
	return &readCache{ttl: ttl}
}

func (c *readCache) get(now time.Time, load func() (sheet.Table, error)) (sheet.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && now.Sub(c.loadedAt) < c.ttl {
		return c.table, nil
	}

	table, err := load()
	if err != nil {
		return sheet.Table{}, err
	}
	c.table = table
	c.loadedAt = now
	c.loaded = true
	return table, nil
}
