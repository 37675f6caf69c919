package adapters

import (
	"context"
	"sync"
	"time"
	"weak"

	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
)

type bytecodeItem struct {
	value     []byte
	expiresAt time.Time
	endless   bool
}

func (i bytecodeItem) isExpired() bool {
	return !i.endless && time.Now().After(i.expiresAt)
}

// BytecodeCache is a single-mutex, map-backed in-process tier, directly
// adapted from yacache/memory.go's Memory type: one RWMutex guards the whole
// map and a weak-pointer-driven goroutine sweeps expired entries on a
// ticker, so a cache whose handle goes out of scope lets its sweeper exit
// instead of leaking. It is kept distinct from InProcessArray (no sharding)
// because this tier models smaller, compiled-artifact-sized payloads where
// single-lock contention is not the bottleneck.
type BytecodeCache struct {
	inner map[string]bytecodeItem
	mutex sync.RWMutex
	spec  tier.Spec
	done  chan struct{}
}

// NewBytecodeCache builds a BytecodeCache and starts its sweeper.
func NewBytecodeCache(spec tier.Spec, sweepInterval time.Duration) *BytecodeCache {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	c := &BytecodeCache{
		inner: make(map[string]bytecodeItem),
		spec:  spec,
		done:  make(chan struct{}),
	}

	go bytecodeSweep(weak.Make(c), sweepInterval, c.done)

	return c
}

func bytecodeSweep(pointer weak.Pointer[BytecodeCache], interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cache := pointer.Value()
			if cache == nil {
				return
			}

			cache.mutex.Lock()

			for key, item := range cache.inner {
				if item.isExpired() {
					delete(cache.inner, key)
				}
			}

			cache.mutex.Unlock()
		case <-done:
			return
		}
	}
}

func (c *BytecodeCache) Probe(_ context.Context) yaerrors.Error {
	return nil
}

func (c *BytecodeCache) Get(_ context.Context, tierLocalKey string) ([]byte, tier.Outcome, yaerrors.Error) {
	c.mutex.RLock()
	item, ok := c.inner[tierLocalKey]
	c.mutex.RUnlock()

	if !ok {
		return nil, tier.NotFound, nil
	}

	if item.isExpired() {
		c.mutex.Lock()
		delete(c.inner, tierLocalKey)
		c.mutex.Unlock()

		return nil, tier.NotFound, nil
	}

	out := make([]byte, len(item.value))
	copy(out, item.value)

	return out, tier.Found, nil
}

func (c *BytecodeCache) Set(
	_ context.Context,
	tierLocalKey string,
	value []byte,
	ttl time.Duration,
) yaerrors.Error {
	stored := make([]byte, len(value))
	copy(stored, value)

	item := bytecodeItem{value: stored, endless: ttl <= 0}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}

	c.mutex.Lock()
	c.inner[tierLocalKey] = item
	c.mutex.Unlock()

	return nil
}

func (c *BytecodeCache) Delete(_ context.Context, tierLocalKey string) yaerrors.Error {
	c.mutex.Lock()
	delete(c.inner, tierLocalKey)
	c.mutex.Unlock()

	return nil
}

func (c *BytecodeCache) Clear(_ context.Context) yaerrors.Error {
	c.mutex.Lock()
	c.inner = make(map[string]bytecodeItem)
	c.mutex.Unlock()

	return nil
}

func (c *BytecodeCache) Stats(_ context.Context) tier.Stats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return tier.Stats{EntryCount: int64(len(c.inner))}
}

func (c *BytecodeCache) Spec() tier.Spec {
	return c.spec
}

// RemainingTTL implements tier.TTLReporter.
func (c *BytecodeCache) RemainingTTL(_ context.Context, tierLocalKey string) (time.Duration, yaerrors.Error) {
	c.mutex.RLock()
	item, ok := c.inner[tierLocalKey]
	c.mutex.RUnlock()

	if !ok || item.endless {
		return 0, nil
	}

	remaining := time.Until(item.expiresAt)
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}

// Close signals the sweeper goroutine to exit.
func (c *BytecodeCache) Close() {
	close(c.done)
}
