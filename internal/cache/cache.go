package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Clock supplies the current time. Injected so expiry is testable without
// sleeping through real days.
type Clock func() time.Time

// PersistentCache is a TTL-governed key-value store mirrored to a single JSON
// file. One instance exclusively owns its file path; there is no file locking
// and no internal synchronization, the host serializes all calls.
type PersistentCache struct {
	path    string
	ttlDays int
	now     Clock
	store   map[string]Entry
	logger  zerolog.Logger
}

// New creates a PersistentCache bound to path with a TTL in days (0 disables
// the cache) and synchronously loads any existing store from disk.
func New(path string, ttlDays int, logger zerolog.Logger) *PersistentCache {
	return NewWithClock(path, ttlDays, logger, time.Now)
}

// NewWithClock is New with an injected clock.
func NewWithClock(path string, ttlDays int, logger zerolog.Logger, now Clock) *PersistentCache {
	c := &PersistentCache{
		path:    path,
		ttlDays: ttlDays,
		now:     now,
		store:   make(map[string]Entry),
		logger:  logger.With().Str("cache_file", filepath.Base(path)).Logger(),
	}
	c.load()
	return c
}

// Get looks up the value stored under the key derived from args. It reports a
// miss when the cache is disabled, the key is absent, or the entry has
// expired. Expired entries are removed and the store is persisted.
func (c *PersistentCache) Get(args ...string) (json.RawMessage, bool) {
	if c.ttlDays == 0 {
		return nil, false
	}

	key := Key(args...)
	entry, ok := c.store[key]
	if !ok {
		c.logger.Debug().Str("key", shortKey(key)).Msg("cache miss")
		return nil, false
	}

	if c.expired(entry) {
		c.logger.Debug().Str("key", shortKey(key)).Msg("cache entry expired")
		delete(c.store, key)
		c.save()
		return nil, false
	}

	c.logger.Debug().Str("key", shortKey(key)).Msg("cache hit")
	return entry.Value, true
}

// Set stores value under the key derived from args, overwriting any prior
// entry, and persists the whole store to disk. A disabled cache makes Set a
// no-op. Failures are logged, never returned.
func (c *PersistentCache) Set(value any, args ...string) {
	if c.ttlDays == 0 {
		return
	}

	key := Key(args...)
	entry, err := newEntry(value, c.now())
	if err != nil {
		c.logger.Error().Err(err).Str("key", shortKey(key)).Msg("failed to encode cache value")
		return
	}

	c.store[key] = entry
	c.save()
	c.logger.Debug().Str("key", shortKey(key)).Msg("cached value")
}

// Clear empties the entire store and persists the empty store to disk.
func (c *PersistentCache) Clear() {
	c.store = make(map[string]Entry)
	c.save()
	c.logger.Info().Msg("cleared cache")
}

// UpdateTTL replaces the TTL at runtime. A new TTL of 0 clears the cache
// outright rather than leaving stale data behind a disabled cache. Otherwise
// every entry is re-checked against the new TTL using its original write
// timestamp, and the store is persisted once if anything was evicted.
func (c *PersistentCache) UpdateTTL(ttlDays int) {
	old := c.ttlDays
	c.ttlDays = ttlDays
	c.logger.Info().Int("old_ttl_days", old).Int("new_ttl_days", ttlDays).Msg("updated cache TTL")

	if ttlDays == 0 {
		c.Clear()
		return
	}

	evicted := 0
	for key, entry := range c.store {
		if c.expired(entry) {
			delete(c.store, key)
			evicted++
		}
	}
	if evicted > 0 {
		c.save()
		c.logger.Info().Int("evicted", evicted).Msg("removed expired entries after TTL update")
	}
}

// Len returns the number of stored entries, including any not yet observed to
// be expired.
func (c *PersistentCache) Len() int {
	return len(c.store)
}

// TTLDays returns the current TTL in days.
func (c *PersistentCache) TTLDays() int {
	return c.ttlDays
}

// Path returns the backing file path.
func (c *PersistentCache) Path() string {
	return c.path
}

// expired reports whether entry has aged past the current TTL. An
// unparseable timestamp counts as expired: a miss is safer than serving data
// of unknown age.
func (c *PersistentCache) expired(entry Entry) bool {
	written, err := entry.writtenAt()
	if err != nil {
		c.logger.Error().Err(err).Str("timestamp", entry.Timestamp).Msg("failed to parse cache timestamp")
		return true
	}
	expiry := written.AddDate(0, 0, c.ttlDays)
	return !c.now().Before(expiry)
}

// load reads the store from disk. A missing file is a cold cache; a corrupt
// file degrades to a cold cache with a logged warning. Never fatal.
func (c *PersistentCache) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn().Err(err).Msg("failed to read cache file, starting empty")
		}
		return
	}

	if err := json.Unmarshal(data, &c.store); err != nil {
		c.logger.Warn().Err(err).Msg("failed to parse cache file, starting empty")
		c.store = make(map[string]Entry)
		return
	}
	c.logger.Info().Int("entries", len(c.store)).Msg("loaded cache")
}

// save rewrites the whole store to disk. Errors are logged and swallowed; the
// in-memory store stays authoritative for the rest of the process.
func (c *PersistentCache) save() {
	if err := os.MkdirAll(filepath.Dir(c.path), 0750); err != nil {
		c.logger.Error().Err(err).Msg("failed to create cache directory")
		return
	}

	data, err := json.MarshalIndent(c.store, "", "  ")
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to encode cache store")
		return
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		c.logger.Error().Err(err).Msg("failed to write cache file")
		return
	}
	c.logger.Debug().Int("entries", len(c.store)).Msg("saved cache")
}
