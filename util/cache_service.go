// api/util/cache_service.go

package util

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/farrowscore/api/logging"
)

// CacheEntry is a cached payload and the time it was stored. Its validity is
// decided by the reader's TTL, not by the entry.
type CacheEntry struct {
	Payload  json.RawMessage `json:"payload"`
	StoredAt time.Time       `json:"stored_at"`
}

// CacheStore is the raw key/value backend behind CacheService. Get returns
// nil, nil on a miss.
type CacheStore interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry CacheEntry) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

type CacheStats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

type CacheService struct {
	store CacheStore
	now   func() time.Time
}

func NewCacheService(store CacheStore) *CacheService {
	return &CacheService{
		store: store,
		now:   time.Now,
	}
}

// SetClock replaces the time source used for storing and expiring entries.
func (c *CacheService) SetClock(now func() time.Time) {
	c.now = now
}

// Get decodes the entry stored under key into dest. It reports false when the
// key is absent or older than ttl; stale and undecodable entries are evicted.
func (c *CacheService) Get(ctx context.Context, key string, ttl time.Duration, dest interface{}) (bool, error) {
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	if entry == nil {
		logger.Debug("Cache miss", logger.ResourceKey(key))
		return false, nil
	}

	if c.now().Sub(entry.StoredAt) > ttl {
		logger.Debug("Cache entry expired", logger.ResourceKey(key), zap.Time("storedAt", entry.StoredAt))
		c.evict(ctx, key)
		return false, nil
	}

	if err := json.Unmarshal(entry.Payload, dest); err != nil {
		logger.Warn("Dropping undecodable cache entry", logger.ResourceKey(key), zap.Error(err))
		c.evict(ctx, key)
		return false, nil
	}

	logger.Debug("Cache hit", logger.ResourceKey(key))
	return true, nil
}

func (c *CacheService) evict(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		logger.Warn("Failed to evict cache entry", logger.ResourceKey(key), zap.Error(err))
	}
}

// Set stores value under key, stamped with the current time.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, CacheEntry{Payload: payload, StoredAt: c.now()}); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

func (c *CacheService) Stats(ctx context.Context) (CacheStats, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to list cache keys: %w", err)
	}
	sort.Strings(keys)
	return CacheStats{Size: len(keys), Keys: keys}, nil
}

func (c *CacheService) Clear(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	logger.Info("Cache cleared")
	return nil
}

// MemoryCacheStore keeps entries in a process-local map.
type MemoryCacheStore struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{entries: make(map[string]CacheEntry)}
}

func (m *MemoryCacheStore) Get(_ context.Context, key string) (*CacheEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (m *MemoryCacheStore) Set(_ context.Context, key string, entry CacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
	return nil
}

func (m *MemoryCacheStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryCacheStore) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	return keys, nil
}

func (m *MemoryCacheStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]CacheEntry)
	return nil
}
