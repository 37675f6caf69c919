// Package tier defines the closed enumeration of cache backends, the
// capability contract every backend adapter must implement, and the shared
// error taxonomy used across the registry, pool, health monitor and
// dispatcher packages.
package tier

import (
	"context"
	"regexp"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
)

// Name identifies one backend in the closed enumeration. New backends are
// not expected to be added at runtime — the set is fixed at compile time.
type Name string

const (
	InProcessArray   Name = "in_process_array"
	BytecodeCache    Name = "bytecode_cache"
	SharedMemory     Name = "shared_memory"
	UserSharedMemory Name = "user_shared_memory"
	ScratchMemory    Name = "scratch_memory"
	MemoryMappedFile Name = "memory_mapped_file"
	NetworkRedis     Name = "network_redis"
	NetworkMemcached Name = "network_memcached"
	OnDiskFile       Name = "on_disk_file"
)

// Kind groups tiers by substrate so the dispatcher and key manager can apply
// kind-specific rules (e.g. only network kinds go through a connection pool).
type Kind uint8

const (
	KindInProcess Kind = iota
	KindSharedMemory
	KindNetwork
	KindOnDisk
)

// Spec is the fixed, compile-time description of one tier. Priority order
// across all Specs is the read-scan and promotion-target order: smaller
// Priority means faster/closer to the CPU.
type Spec struct {
	Name              Name
	Priority          int
	Kind              Kind
	SupportsNativeTTL bool
	MaxKeyLength      int
	AllowedKeyCharset *regexp.Regexp
}

var alnumColonDash = regexp.MustCompile(`^[A-Za-z0-9:_\-.]+$`)

// DefaultOrder is the fixed priority order of the closed tier enumeration,
// fastest/closest first, on-disk last. Adapters are matched to a Spec by
// Name when the engine is assembled; a deployment is free to enable any
// subset of this list.
var DefaultOrder = []Spec{
	{Name: InProcessArray, Priority: 0, Kind: KindInProcess, SupportsNativeTTL: true, MaxKeyLength: 4096, AllowedKeyCharset: alnumColonDash},
	{Name: BytecodeCache, Priority: 1, Kind: KindInProcess, SupportsNativeTTL: true, MaxKeyLength: 4096, AllowedKeyCharset: alnumColonDash},
	{Name: SharedMemory, Priority: 2, Kind: KindSharedMemory, SupportsNativeTTL: false, MaxKeyLength: 250, AllowedKeyCharset: alnumColonDash},
	{Name: UserSharedMemory, Priority: 3, Kind: KindSharedMemory, SupportsNativeTTL: false, MaxKeyLength: 250, AllowedKeyCharset: alnumColonDash},
	{Name: ScratchMemory, Priority: 4, Kind: KindSharedMemory, SupportsNativeTTL: false, MaxKeyLength: 250, AllowedKeyCharset: alnumColonDash},
	{Name: MemoryMappedFile, Priority: 5, Kind: KindOnDisk, SupportsNativeTTL: false, MaxKeyLength: 200, AllowedKeyCharset: alnumColonDash},
	{Name: NetworkRedis, Priority: 6, Kind: KindNetwork, SupportsNativeTTL: true, MaxKeyLength: 512 * 1024 * 1024, AllowedKeyCharset: nil},
	{Name: NetworkMemcached, Priority: 7, Kind: KindNetwork, SupportsNativeTTL: true, MaxKeyLength: 250, AllowedKeyCharset: alnumColonDash},
	{Name: OnDiskFile, Priority: 8, Kind: KindOnDisk, SupportsNativeTTL: false, MaxKeyLength: 255, AllowedKeyCharset: alnumColonDash},
}

// Outcome distinguishes a successful-but-absent read from a genuine error.
type Outcome uint8

const (
	Found Outcome = iota
	NotFound
)

// Stats is the cheap, best-effort snapshot returned by Adapter.Stats.
// Fields are left at zero value when the underlying backend cannot report
// them cheaply.
type Stats struct {
	EntryCount int64
	ByteSize   int64
	Extra      map[string]string
}

// Sweeper is implemented by adapters whose substrate lacks native TTL and
// therefore needs the dispatcher's expiration sweep (cleanup_expired). The
// three shared-memory variants, the memory-mapped file tier, and the
// on-disk file tier implement this; backends with native TTL (in-process,
// bytecode cache, Redis-like, Memcached-like) do not.
type Sweeper interface {
	CleanupExpired(ctx context.Context) (int, yaerrors.Error)
}

// TTLReporter is implemented by adapters that can cheaply report how much
// TTL remains on an entry, letting the dispatcher promote a hit with its
// actual remaining lifetime instead of always handing it a fresh full
// promotion TTL. Adapters for which this is not cheap (Memcached has no TTL
// query in its wire protocol) simply do not implement it; the dispatcher
// falls back to the configured fixed promotion TTL.
type TTLReporter interface {
	RemainingTTL(ctx context.Context, tierLocalKey string) (time.Duration, yaerrors.Error)
}

// PathMutable is implemented by adapters rooted at a filesystem path
// (on-disk file, memory-mapped file) so the dispatcher's
// set_cache_path/get_cache_path/migrate_cache_path operations can retarget
// them without rebuilding the whole adapter.
type PathMutable interface {
	Path() string
	SetPath(path string) yaerrors.Error
}

// Adapter is the capability set every backend variant implements. The
// dispatcher never knows about Redis, shared memory or files directly — it
// only ever talks to this interface, selected by Spec().Name.
type Adapter interface {
	// Probe performs a cheap one-time reachability check, called once at
	// discovery and periodically by the health monitor.
	Probe(ctx context.Context) yaerrors.Error

	// Get fetches tierLocalKey. A missing or expired entry is NotFound, not
	// an error; the adapter is responsible for deleting its own expired
	// entries on read (TTL-less backends prefix-encode expiry).
	Get(ctx context.Context, tierLocalKey string) ([]byte, Outcome, yaerrors.Error)

	// Set stores/overwrites tierLocalKey with the given TTL. ttl == 0 means
	// "store indefinitely" for backends that support it.
	Set(ctx context.Context, tierLocalKey string, value []byte, ttl time.Duration) yaerrors.Error

	// Delete removes tierLocalKey. Deleting an absent key is Ok, not an
	// error.
	Delete(ctx context.Context, tierLocalKey string) yaerrors.Error

	// Clear removes every entry owned by this adapter without touching
	// sibling data in a shared substrate.
	Clear(ctx context.Context) yaerrors.Error

	// Stats returns a best-effort snapshot for debug()/get_stats().
	Stats(ctx context.Context) Stats

	// Spec returns this adapter's fixed tier description.
	Spec() Spec
}
