package messagelog

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const snapshotKey = "messages"

// CachedLog serves Load from memory for up to ttl and drops the cached
// snapshot whenever the log is mutated through it.
type CachedLog struct {
	store *Store
	cache *cache.Cache
	load  func() ([]Record, error)

	// mu guards generation, which invalidate bumps so a Load that raced a
	// mutation does not cache the snapshot it read before the mutation.
	mu         sync.Mutex
	generation uint64
}

// NewCachedLog wraps store. A ttl of zero or less disables caching.
func NewCachedLog(store *Store, ttl time.Duration) *CachedLog {
	cl := &CachedLog{store: store, load: store.Load}
	if ttl > 0 {
		cl.cache = cache.New(ttl, 2*ttl)
	}
	return cl
}

// Load returns the cached records when present, reading the store otherwise.
func (c *CachedLog) Load() ([]Record, error) {
	if c.cache == nil {
		return c.load()
	}
	if cached, found := c.cache.Get(snapshotKey); found {
		return copyRecords(cached.([]Record)), nil
	}

	c.mu.Lock()
	generation := c.generation
	c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation == generation {
		c.cache.SetDefault(snapshotKey, records)
	}
	c.mu.Unlock()
	return copyRecords(records), nil
}

// Append stores payload and invalidates the cached snapshot.
func (c *CachedLog) Append(payload any) (Record, error) {
	defer c.invalidate()
	return c.store.Append(payload)
}

// Clear empties the log and invalidates the cached snapshot.
func (c *CachedLog) Clear() error {
	defer c.invalidate()
	return c.store.Clear()
}

func (c *CachedLog) invalidate() {
	if c.cache == nil {
		return
	}
	c.mu.Lock()
	c.generation++
	c.cache.Delete(snapshotKey)
	c.mu.Unlock()
}

func copyRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
