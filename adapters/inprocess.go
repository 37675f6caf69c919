package adapters

import (
	"context"
	"sync"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
	"github.com/cespare/xxhash/v2"
)

const inProcessShardCount = 32

type inProcessItem struct {
	value     []byte
	expiresAt time.Time
	endless   bool
}

func (i inProcessItem) isExpired(now time.Time) bool {
	return !i.endless && now.After(i.expiresAt)
}

type inProcessShard struct {
	mu    sync.RWMutex
	items map[string]inProcessItem
}

// InProcessArray is the fastest, closest-to-CPU tier: a process-local map
// sharded by the fast non-cryptographic hash of the tier-local key, so
// concurrent callers touching different keys rarely contend on the same
// mutex. TTL is native: expired entries are evicted lazily on Get and swept
// periodically in the background, the same two-pronged approach
// yacache/memory.go uses for its single-mutex map.
type InProcessArray struct {
	shards [inProcessShardCount]*inProcessShard
	spec   tier.Spec
	ticker *time.Ticker
	done   chan struct{}
	closed sync.Once
}

// NewInProcessArray builds an InProcessArray and starts its background
// sweeper at sweepInterval.
func NewInProcessArray(spec tier.Spec, sweepInterval time.Duration) *InProcessArray {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	a := &InProcessArray{
		spec:   spec,
		ticker: time.NewTicker(sweepInterval),
		done:   make(chan struct{}),
	}

	for i := range a.shards {
		a.shards[i] = &inProcessShard{items: make(map[string]inProcessItem)}
	}

	go a.sweep()

	return a
}

func (a *InProcessArray) shardFor(key string) *inProcessShard {
	h := xxhash.Sum64String(key)

	return a.shards[h%inProcessShardCount]
}

func (a *InProcessArray) sweep() {
	for {
		select {
		case <-a.ticker.C:
			now := time.Now()

			for _, shard := range a.shards {
				shard.mu.Lock()

				for key, item := range shard.items {
					if item.isExpired(now) {
						delete(shard.items, key)
					}
				}

				shard.mu.Unlock()
			}
		case <-a.done:
			return
		}
	}
}

func (a *InProcessArray) Probe(_ context.Context) yaerrors.Error {
	return nil
}

func (a *InProcessArray) Get(_ context.Context, tierLocalKey string) ([]byte, tier.Outcome, yaerrors.Error) {
	shard := a.shardFor(tierLocalKey)

	shard.mu.RLock()
	item, ok := shard.items[tierLocalKey]
	shard.mu.RUnlock()

	if !ok {
		return nil, tier.NotFound, nil
	}

	if item.isExpired(time.Now()) {
		shard.mu.Lock()
		delete(shard.items, tierLocalKey)
		shard.mu.Unlock()

		return nil, tier.NotFound, nil
	}

	out := make([]byte, len(item.value))
	copy(out, item.value)

	return out, tier.Found, nil
}

func (a *InProcessArray) Set(
	_ context.Context,
	tierLocalKey string,
	value []byte,
	ttl time.Duration,
) yaerrors.Error {
	shard := a.shardFor(tierLocalKey)

	stored := make([]byte, len(value))
	copy(stored, value)

	item := inProcessItem{value: stored, endless: ttl <= 0}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}

	shard.mu.Lock()
	shard.items[tierLocalKey] = item
	shard.mu.Unlock()

	return nil
}

func (a *InProcessArray) Delete(_ context.Context, tierLocalKey string) yaerrors.Error {
	shard := a.shardFor(tierLocalKey)

	shard.mu.Lock()
	delete(shard.items, tierLocalKey)
	shard.mu.Unlock()

	return nil
}

func (a *InProcessArray) Clear(_ context.Context) yaerrors.Error {
	for _, shard := range a.shards {
		shard.mu.Lock()
		shard.items = make(map[string]inProcessItem)
		shard.mu.Unlock()
	}

	return nil
}

func (a *InProcessArray) Stats(_ context.Context) tier.Stats {
	var count int64

	for _, shard := range a.shards {
		shard.mu.RLock()
		count += int64(len(shard.items))
		shard.mu.RUnlock()
	}

	return tier.Stats{EntryCount: count}
}

func (a *InProcessArray) Spec() tier.Spec {
	return a.spec
}

// RemainingTTL implements tier.TTLReporter: endless entries report zero,
// the dispatcher's promotion caller treats that as "fall back to the
// configured fixed promotion TTL".
func (a *InProcessArray) RemainingTTL(_ context.Context, tierLocalKey string) (time.Duration, yaerrors.Error) {
	shard := a.shardFor(tierLocalKey)

	shard.mu.RLock()
	item, ok := shard.items[tierLocalKey]
	shard.mu.RUnlock()

	if !ok || item.endless {
		return 0, nil
	}

	remaining := time.Until(item.expiresAt)
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}

// Close stops the background sweeper. Safe to call more than once.
func (a *InProcessArray) Close() {
	a.closed.Do(func() {
		a.ticker.Stop()
		close(a.done)
	})
}
