package adapters

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
	"golang.org/x/sys/unix"
)

// SegmentOptions configures a Segment adapter. Zero values fall back to the
// package defaults (1 MiB segments, base numeric key 0x12345000).
type SegmentOptions struct {
	BaseDir          string
	SegmentSizeBytes int64  `default:"1048576"`
	BaseNumericKey   int64  `default:"305418240"`
	Prefix           string `default:"app"`
}

const (
	defaultSegmentSize     = 1 << 20
	defaultBaseNumericKey  = 0x12345000
	segmentDirPermissions  = 0o755
	segmentFilePermissions = 0o644
)

// Segment backs the three shared-memory-flavored tiers (system-wide shared
// memory, user-scoped shared memory, scratch memory). Go's standard library
// has no portable SysV shared-memory syscalls, so each segment is a
// fixed-size file memory-mapped MAP_SHARED — the standard Unix substitute,
// typically rooted at a tmpfs directory (/dev/shm) for the system-wide
// variant. Segments are addressed by base_numeric_key + offset(hash(key)),
// per the tier's "numeric identifier space" contract; an advisory flock
// guards each segment file for the duration of a read or write, always
// released via defer on every exit path.
//
// Three named tiers share this one implementation, differing only in which
// base directory and numeric key space they're configured with — see
// NewSharedMemory, NewUserSharedMemory, NewScratchMemory.
type Segment struct {
	mu    sync.Mutex
	opts  SegmentOptions
	spec  tier.Spec
	index map[string]string // filename -> full path, rehydrated by Probe
}

func newSegment(spec tier.Spec, opts SegmentOptions) *Segment {
	if opts.SegmentSizeBytes <= 0 {
		opts.SegmentSizeBytes = defaultSegmentSize
	}

	if opts.BaseNumericKey == 0 {
		opts.BaseNumericKey = defaultBaseNumericKey
	}

	if opts.Prefix == "" {
		opts.Prefix = "app"
	}

	return &Segment{opts: opts, spec: spec, index: make(map[string]string)}
}

// NewSharedMemory builds the system-wide shared-memory tier adapter.
func NewSharedMemory(spec tier.Spec, opts SegmentOptions) *Segment {
	return newSegment(spec, opts)
}

// NewUserSharedMemory builds the per-user shared-memory tier adapter.
// Callers typically point BaseDir at a per-user subdirectory so segments
// from different users never collide.
func NewUserSharedMemory(spec tier.Spec, opts SegmentOptions) *Segment {
	return newSegment(spec, opts)
}

// NewScratchMemory builds the scratch-memory tier adapter. Callers typically
// point BaseDir at a process-ephemeral directory (e.g. under os.TempDir())
// since scratch segments are not expected to outlive the process.
func NewScratchMemory(spec tier.Spec, opts SegmentOptions) *Segment {
	return newSegment(spec, opts)
}

func (s *Segment) segmentName(tierLocalKey string) string {
	segKey := s.opts.BaseNumericKey + int64Offset(tierLocalKey)

	return fmt.Sprintf("%s-%d.seg", s.opts.Prefix, segKey)
}

func (s *Segment) segmentPath(tierLocalKey string) string {
	return filepath.Join(s.opts.BaseDir, s.segmentName(tierLocalKey))
}

// Probe ensures the base directory exists and rehydrates the in-engine
// index by enumerating entries bearing this adapter's prefix, per the
// "rebuild the index on startup" design note for per-process indices over a
// persistent substrate.
func (s *Segment) Probe(_ context.Context) yaerrors.Error {
	if err := os.MkdirAll(s.opts.BaseDir, segmentDirPermissions); err != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			tier.ErrTierUnavailable,
			"[SEGMENT] base dir unavailable: "+err.Error(),
		)
	}

	entries, err := os.ReadDir(s.opts.BaseDir)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), s.opts.Prefix+"-") {
			continue
		}

		s.index[entry.Name()] = filepath.Join(s.opts.BaseDir, entry.Name())
	}

	return nil
}

func (s *Segment) backendError(code string, err error) yaerrors.Error {
	return tier.BackendError(s.spec.Name, code, err.Error())
}

func (s *Segment) Get(_ context.Context, tierLocalKey string) ([]byte, tier.Outcome, yaerrors.Error) {
	path := s.segmentPath(tierLocalKey)

	file, err := os.OpenFile(path, os.O_RDWR, segmentFilePermissions)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tier.NotFound, nil
		}

		return nil, tier.NotFound, s.backendError("segment_open", err)
	}
	defer file.Close()

	if err := unix.Flock(int(file.Fd()), unix.LOCK_SH); err != nil {
		return nil, tier.NotFound, s.backendError("segment_lock", err)
	}
	defer unix.Flock(int(file.Fd()), unix.LOCK_UN)

	info, err := file.Stat()
	if err != nil {
		return nil, tier.NotFound, s.backendError("segment_stat", err)
	}

	mapped, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, tier.NotFound, s.backendError("segment_mmap", err)
	}
	defer unix.Munmap(mapped)

	rec, decErr := decodeRecord(mapped)
	if decErr != nil {
		return nil, tier.NotFound, nil
	}

	if rec.expired(time.Now()) {
		_ = os.Remove(path)

		return nil, tier.NotFound, nil
	}

	out := make([]byte, len(rec.Value))
	copy(out, rec.Value)

	return out, tier.Found, nil
}

func (s *Segment) Set(
	_ context.Context,
	tierLocalKey string,
	value []byte,
	ttl time.Duration,
) yaerrors.Error {
	data, yerr := encodeRecord(value, ttl)
	if yerr != nil {
		return yerr
	}

	if int64(len(data)) > s.opts.SegmentSizeBytes {
		return yaerrors.FromError(
			http.StatusRequestEntityTooLarge,
			tier.ErrIO,
			"[SEGMENT] record exceeds segment size",
		)
	}

	path := s.segmentPath(tierLocalKey)

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, segmentFilePermissions)
	if err != nil {
		return s.backendError("segment_open", err)
	}
	defer file.Close()

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX); err != nil {
		return s.backendError("segment_lock", err)
	}
	defer unix.Flock(int(file.Fd()), unix.LOCK_UN)

	if err := file.Truncate(s.opts.SegmentSizeBytes); err != nil {
		return s.backendError("segment_truncate", err)
	}

	mapped, err := unix.Mmap(
		int(file.Fd()),
		0,
		int(s.opts.SegmentSizeBytes),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		return s.backendError("segment_mmap", err)
	}
	defer unix.Munmap(mapped)

	clear(mapped)
	copy(mapped, data)

	s.mu.Lock()
	s.index[s.segmentName(tierLocalKey)] = path
	s.mu.Unlock()

	return nil
}

func (s *Segment) Delete(_ context.Context, tierLocalKey string) yaerrors.Error {
	path := s.segmentPath(tierLocalKey)

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return s.backendError("segment_delete", err)
	}

	s.mu.Lock()
	delete(s.index, s.segmentName(tierLocalKey))
	s.mu.Unlock()

	return nil
}

// Clear removes every segment this adapter owns, per the namespace-prefixed
// index rather than wiping the whole base directory (which may be shared
// with sibling adapters on the same substrate).
func (s *Segment) Clear(_ context.Context) yaerrors.Error {
	s.mu.Lock()
	paths := make([]string, 0, len(s.index))

	for _, path := range s.index {
		paths = append(paths, path)
	}

	s.index = make(map[string]string)
	s.mu.Unlock()

	var firstErr error

	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return s.backendError("segment_clear", firstErr)
	}

	return nil
}

// CleanupExpired decodes every owned segment's record and removes the ones
// whose expires_at has elapsed. Returns the count removed.
func (s *Segment) CleanupExpired(_ context.Context) (int, yaerrors.Error) {
	s.mu.Lock()
	paths := make(map[string]string, len(s.index))

	for name, path := range s.index {
		paths[name] = path
	}

	s.mu.Unlock()

	now := time.Now()
	removed := 0

	for name, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			continue
		}

		info, statErr := file.Stat()
		if statErr != nil {
			file.Close()

			continue
		}

		mapped, mmapErr := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
		if mmapErr != nil {
			file.Close()

			continue
		}

		rec, decErr := decodeRecord(mapped)
		unix.Munmap(mapped)
		file.Close()

		if decErr != nil {
			continue
		}

		if rec.expired(now) {
			if err := os.Remove(path); err == nil {
				removed++

				s.mu.Lock()
				delete(s.index, name)
				s.mu.Unlock()
			}
		}
	}

	return removed, nil
}

func (s *Segment) Stats(_ context.Context) tier.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return tier.Stats{
		EntryCount: int64(len(s.index)),
		Extra:      map[string]string{"base_dir": s.opts.BaseDir},
	}
}

func (s *Segment) Spec() tier.Spec {
	return s.spec
}

// RemainingTTL implements tier.TTLReporter by mapping the segment read-only
// and decoding its record, the same path Get uses.
func (s *Segment) RemainingTTL(_ context.Context, tierLocalKey string) (time.Duration, yaerrors.Error) {
	path := s.segmentPath(tierLocalKey)

	file, err := os.OpenFile(path, os.O_RDONLY, segmentFilePermissions)
	if err != nil {
		return 0, nil
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, nil
	}

	mapped, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return 0, nil
	}
	defer unix.Munmap(mapped)

	rec, decErr := decodeRecord(mapped)
	if decErr != nil || rec.ExpiresAt == 0 {
		return 0, nil
	}

	remaining := time.Until(time.Unix(rec.ExpiresAt, 0))
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}
