package game

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/hailam/chesscore/internal/board"
)

// StatusCache memoizes board.StatusOf by position key. It is safe for
// concurrent use and may be shared between games.
type StatusCache struct {
	cache *ristretto.Cache[uint64, board.Status]
}

// NewStatusCache creates a cache holding about maxEntries positions.
func NewStatusCache(maxEntries int64) (*StatusCache, error) {
	if maxEntries <= 0 {
		maxEntries = 1 << 16
	}
	c, err := ristretto.NewCache(&ristretto.Config[uint64, board.Status]{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("status cache: %w", err)
	}
	return &StatusCache{cache: c}, nil
}

// Status returns the status of side on b, computing and storing it on a
// miss. Errors are not cached.
func (c *StatusCache) Status(b *board.Board, side board.Color) (board.Status, error) {
	key := b.Key(side)
	if st, ok := c.cache.Get(key); ok {
		return st, nil
	}

	st, err := board.StatusOf(b, side)
	if err != nil {
		return st, err
	}
	c.cache.Set(key, st, 1)
	return st, nil
}

// Wait blocks until pending writes are visible to Status.
func (c *StatusCache) Wait() {
	c.cache.Wait()
}

// Close stops the cache's background goroutines.
func (c *StatusCache) Close() {
	c.cache.Close()
}
