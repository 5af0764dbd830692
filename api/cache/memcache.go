package cache

import (
	"context"
	"sync"
	"time"
)

const cleanupInterval = 5 * time.Minute

// MemCache is the process local cache. Expired items are dropped on read
// and by a background sweep.
type MemCache[T any] struct {
	memoryCache   sync.Map
	cleanupTicker *time.Ticker
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	now           func() time.Time
}

// Single cached value.
type memCacheItem[T any] struct {
	value T
	ttl   time.Time
}

// NewMemCache creates a new memory cache.
func NewMemCache[T any]() *MemCache[T] {
	ctx, cancel := context.WithCancel(context.Background())
	mc := &MemCache[T]{
		cancel:        cancel,
		cleanupTicker: time.NewTicker(cleanupInterval),
		ctx:           ctx,
		now:           time.Now,
	}
	mc.startCleanupWorker()

	return mc
}

// startCleanupWorker starts the background worker for memory cleaning.
func (mc *MemCache[T]) startCleanupWorker() {
	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		for {
			select {
			case <-mc.cleanupTicker.C:
				mc.cleanup()
			case <-mc.ctx.Done():
				return
			}
		}
	}()
}

// cleanup go through each key and clean any expired key.
func (mc *MemCache[T]) cleanup() {
	now := mc.now()
	mc.memoryCache.Range(func(key, value any) bool {
		item := value.(*memCacheItem[T])
		if now.After(item.ttl) {
			mc.memoryCache.CompareAndDelete(key, item)
		}
		return true
	})
}

// Close shutdown the memory cache worker.
func (mc *MemCache[T]) Close() {
	mc.cancel()
	mc.cleanupTicker.Stop()
	mc.wg.Wait()
}

// Get returns the value of a key if it didn't expire.
func (mc *MemCache[T]) Get(_ context.Context, key string) (T, bool, error) {
	var zero T

	value, exists := mc.memoryCache.Load(key)
	if !exists {
		return zero, false, nil
	}

	item := value.(*memCacheItem[T])

	// If the reset time was reached, remove the cache.
	// CompareAndDelete keeps a newer Set of the same key.
	if mc.now().After(item.ttl) {
		mc.memoryCache.CompareAndDelete(key, item)
		return zero, false, nil
	}

	return item.value, true, nil
}

// Set a given key on the cache. The last Set wins.
func (mc *MemCache[T]) Set(_ context.Context, key string, value T, ttl time.Duration) error {
	mc.memoryCache.Store(key, &memCacheItem[T]{
		value: value,
		ttl:   mc.now().Add(ttl),
	})
	return nil
}

// Len counts the stored items, expired ones included until swept.
func (mc *MemCache[T]) Len() int {
	count := 0
	mc.memoryCache.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
