package adapters

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
	"golang.org/x/sys/unix"
)

// MMapOptions configures a MemoryMappedFile adapter.
type MMapOptions struct {
	BasePath      string `default:""`
	FileSizeBytes int64  `default:"1048576"`
	MaxFiles      int    `default:"1000"`
	Prefix        string `default:"app"`
}

const mmapFilePermissions = 0o644

// MemoryMappedFile stores one fixed-size, memory-mapped file per key under
// <BasePath>/<hash>.mmap, padded with nulls to FileSizeBytes. It shares its
// record format and locking discipline with Segment but is addressed by
// filesystem path (the hex digest of the tier-local key) rather than a
// numeric offset, matching the "one file per key under base_path/hash.mmap"
// layout.
type MemoryMappedFile struct {
	mu       sync.Mutex
	opts     MMapOptions
	spec     tier.Spec
	fileSet  map[string]struct{}
}

// NewMemoryMappedFile builds a MemoryMappedFile adapter.
func NewMemoryMappedFile(spec tier.Spec, opts MMapOptions) *MemoryMappedFile {
	if opts.FileSizeBytes <= 0 {
		opts.FileSizeBytes = defaultSegmentSize
	}

	if opts.MaxFiles <= 0 {
		opts.MaxFiles = 1000
	}

	if opts.Prefix == "" {
		opts.Prefix = "app"
	}

	return &MemoryMappedFile{opts: opts, spec: spec, fileSet: make(map[string]struct{})}
}

func (m *MemoryMappedFile) path(tierLocalKey string) string {
	return filepath.Join(m.opts.BasePath, hexName(tierLocalKey)+".mmap")
}

func (m *MemoryMappedFile) backendError(code string, err error) yaerrors.Error {
	return tier.BackendError(m.spec.Name, code, err.Error())
}

// Probe ensures the base directory exists and rehydrates the file-name
// index from what is already on disk, since the in-process set does not
// survive a restart.
func (m *MemoryMappedFile) Probe(_ context.Context) yaerrors.Error {
	if err := os.MkdirAll(m.opts.BasePath, segmentDirPermissions); err != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			tier.ErrTierUnavailable,
			"[MMAP] base path unavailable: "+err.Error(),
		)
	}

	entries, err := os.ReadDir(m.opts.BasePath)
	if err != nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range entries {
		if !entry.IsDir() {
			m.fileSet[entry.Name()] = struct{}{}
		}
	}

	return nil
}

func (m *MemoryMappedFile) Get(_ context.Context, tierLocalKey string) ([]byte, tier.Outcome, yaerrors.Error) {
	path := m.path(tierLocalKey)

	file, err := os.OpenFile(path, os.O_RDWR, mmapFilePermissions)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tier.NotFound, nil
		}

		return nil, tier.NotFound, m.backendError("mmap_open", err)
	}
	defer file.Close()

	if err := unix.Flock(int(file.Fd()), unix.LOCK_SH); err != nil {
		return nil, tier.NotFound, m.backendError("mmap_lock", err)
	}
	defer unix.Flock(int(file.Fd()), unix.LOCK_UN)

	info, err := file.Stat()
	if err != nil {
		return nil, tier.NotFound, m.backendError("mmap_stat", err)
	}

	mapped, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, tier.NotFound, m.backendError("mmap_mmap", err)
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

func (m *MemoryMappedFile) Set(
	_ context.Context,
	tierLocalKey string,
	value []byte,
	ttl time.Duration,
) yaerrors.Error {
	data, yerr := encodeRecord(value, ttl)
	if yerr != nil {
		return yerr
	}

	if int64(len(data)) > m.opts.FileSizeBytes {
		return yaerrors.FromError(
			http.StatusRequestEntityTooLarge,
			tier.ErrIO,
			"[MMAP] record exceeds file_size_bytes",
		)
	}

	path := m.path(tierLocalKey)
	name := filepath.Base(path)

	m.mu.Lock()
	_, exists := m.fileSet[name]

	if !exists && len(m.fileSet) >= m.opts.MaxFiles {
		m.mu.Unlock()

		return yaerrors.FromError(
			http.StatusInsufficientStorage,
			tier.ErrIO,
			"[MMAP] max_files limit reached",
		)
	}

	m.mu.Unlock()

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, mmapFilePermissions)
	if err != nil {
		return m.backendError("mmap_open", err)
	}
	defer file.Close()

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX); err != nil {
		return m.backendError("mmap_lock", err)
	}
	defer unix.Flock(int(file.Fd()), unix.LOCK_UN)

	if err := file.Truncate(m.opts.FileSizeBytes); err != nil {
		return m.backendError("mmap_truncate", err)
	}

	mapped, err := unix.Mmap(
		int(file.Fd()),
		0,
		int(m.opts.FileSizeBytes),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		return m.backendError("mmap_mmap", err)
	}
	defer unix.Munmap(mapped)

	clear(mapped)
	copy(mapped, data)

	m.mu.Lock()
	m.fileSet[name] = struct{}{}
	m.mu.Unlock()

	return nil
}

func (m *MemoryMappedFile) Delete(_ context.Context, tierLocalKey string) yaerrors.Error {
	path := m.path(tierLocalKey)

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return m.backendError("mmap_delete", err)
	}

	m.mu.Lock()
	delete(m.fileSet, filepath.Base(path))
	m.mu.Unlock()

	return nil
}

func (m *MemoryMappedFile) Clear(_ context.Context) yaerrors.Error {
	m.mu.Lock()
	names := make([]string, 0, len(m.fileSet))

	for name := range m.fileSet {
		names = append(names, name)
	}

	m.fileSet = make(map[string]struct{})
	m.mu.Unlock()

	var firstErr error

	for _, name := range names {
		path := filepath.Join(m.opts.BasePath, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return m.backendError("mmap_clear", firstErr)
	}

	return nil
}

// CleanupExpired decodes every owned file's record and deletes the ones
// whose expires_at has elapsed. Returns the count removed.
func (m *MemoryMappedFile) CleanupExpired(_ context.Context) (int, yaerrors.Error) {
	m.mu.Lock()
	names := make([]string, 0, len(m.fileSet))

	for name := range m.fileSet {
		names = append(names, name)
	}

	m.mu.Unlock()

	now := time.Now()
	removed := 0

	for _, name := range names {
		path := filepath.Join(m.opts.BasePath, name)

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		rec, decErr := decodeRecord(data)
		if decErr != nil {
			continue
		}

		if rec.expired(now) {
			if err := os.Remove(path); err == nil {
				removed++

				m.mu.Lock()
				delete(m.fileSet, name)
				m.mu.Unlock()
			}
		}
	}

	return removed, nil
}

// Path returns the base directory currently in use.
func (m *MemoryMappedFile) Path() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.opts.BasePath
}

// SetPath atomically swaps the base directory, creating it first. Existing
// files under the old path are abandoned (see OnDiskFile.SetPath).
func (m *MemoryMappedFile) SetPath(path string) yaerrors.Error {
	if err := os.MkdirAll(path, segmentDirPermissions); err != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			tier.ErrTierUnavailable,
			"[MMAP] failed to create new base path: "+err.Error(),
		)
	}

	m.mu.Lock()
	m.opts.BasePath = path
	m.fileSet = make(map[string]struct{})
	m.mu.Unlock()

	return nil
}

func (m *MemoryMappedFile) Stats(_ context.Context) tier.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return tier.Stats{
		EntryCount: int64(len(m.fileSet)),
		Extra:      map[string]string{"base_path": m.opts.BasePath},
	}
}

func (m *MemoryMappedFile) Spec() tier.Spec {
	return m.spec
}

// RemainingTTL implements tier.TTLReporter, reading the file directly rather
// than mapping it since only the small fixed record header is needed.
func (m *MemoryMappedFile) RemainingTTL(_ context.Context, tierLocalKey string) (time.Duration, yaerrors.Error) {
	path := m.path(tierLocalKey)

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil
	}

	rec, decErr := decodeRecord(data)
	if decErr != nil || rec.ExpiresAt == 0 {
		return 0, nil
	}

	remaining := time.Until(time.Unix(rec.ExpiresAt, 0))
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}
