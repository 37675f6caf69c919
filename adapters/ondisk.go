package adapters

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
	"github.com/YaCodeDev/GoMultiTierCache/yalogger"
	"golang.org/x/sys/unix"
)

// OnDiskOptions configures the on-disk file tier.
type OnDiskOptions struct {
	Path                 string      `default:""`
	DirectoryPermissions os.FileMode `default:"0755"`
	Prefix               string      `default:"app"`
}

// OnDiskFile stores one file per key, named by the hex SHA-256 digest of
// the tier-local key. File contents are a 10-character fixed-width decimal
// expires_at followed by the raw payload bytes. Writes are atomic
// (write-to-temp-file, fsync, rename) under an exclusive advisory lock, so
// a reader never observes a half-written entry.
type OnDiskFile struct {
	mu       sync.RWMutex
	opts     OnDiskOptions
	resolved string // the directory actually in use, chosen by resolvePath
	spec     tier.Spec
	log      yalogger.Logger
}

// NewOnDiskFile builds an OnDiskFile adapter. The directory is resolved
// lazily on the first Probe via the cascading strategy: caller-configured
// path, global-config path (opts.Path, already merged by the caller),
// system temp + PID-qualified default, last-resort uniquified temp.
func NewOnDiskFile(spec tier.Spec, opts OnDiskOptions, log yalogger.Logger) *OnDiskFile {
	if opts.DirectoryPermissions == 0 {
		opts.DirectoryPermissions = 0o755
	}

	if opts.Prefix == "" {
		opts.Prefix = "app"
	}

	return &OnDiskFile{opts: opts, spec: spec, log: log}
}

func (o *OnDiskFile) candidates() []string {
	candidates := make([]string, 0, 3)

	if o.opts.Path != "" {
		candidates = append(candidates, o.opts.Path)
	}

	candidates = append(
		candidates,
		filepath.Join(os.TempDir(), fmt.Sprintf("%s-cache-%d", o.opts.Prefix, os.Getpid())),
		filepath.Join(os.TempDir(), fmt.Sprintf("%s-cache-%d-%d", o.opts.Prefix, os.Getpid(), time.Now().UnixNano())),
	)

	return candidates
}

// Probe resolves and creates the cache directory via the cascading
// strategy, reporting Unavailable only if every candidate fails.
func (o *OnDiskFile) Probe(_ context.Context) yaerrors.Error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var lastErr error

	for _, candidate := range o.candidates() {
		if err := os.MkdirAll(candidate, o.opts.DirectoryPermissions); err != nil {
			lastErr = err

			continue
		}

		o.resolved = candidate

		return nil
	}

	if o.log != nil {
		o.log.Warnf("[ONDISK] every candidate cache directory failed, last error: %v", lastErr)
	}

	return yaerrors.FromError(
		http.StatusServiceUnavailable,
		tier.ErrTierUnavailable,
		"[ONDISK] no writable cache directory candidate",
	)
}

func (o *OnDiskFile) path(tierLocalKey string) string {
	return filepath.Join(o.resolved, hexName(tierLocalKey))
}

func (o *OnDiskFile) backendError(code string, err error) yaerrors.Error {
	return tier.BackendError(o.spec.Name, code, err.Error())
}

func (o *OnDiskFile) Get(_ context.Context, tierLocalKey string) ([]byte, tier.Outcome, yaerrors.Error) {
	o.mu.RLock()
	path := o.path(tierLocalKey)
	o.mu.RUnlock()

	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tier.NotFound, nil
		}

		return nil, tier.NotFound, o.backendError("file_open", err)
	}
	defer file.Close()

	if err := unix.Flock(int(file.Fd()), unix.LOCK_SH); err != nil {
		return nil, tier.NotFound, o.backendError("file_lock", err)
	}
	defer unix.Flock(int(file.Fd()), unix.LOCK_UN)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tier.NotFound, o.backendError("file_read", err)
	}

	expiresAt, value, ok := decodeOnDisk(data)
	if !ok {
		return nil, tier.NotFound, nil
	}

	if onDiskExpired(expiresAt, time.Now()) {
		_ = os.Remove(path)

		return nil, tier.NotFound, nil
	}

	out := make([]byte, len(value))
	copy(out, value)

	return out, tier.Found, nil
}

func (o *OnDiskFile) Set(
	_ context.Context,
	tierLocalKey string,
	value []byte,
	ttl time.Duration,
) yaerrors.Error {
	o.mu.RLock()
	path := o.path(tierLocalKey)
	o.mu.RUnlock()

	data := encodeOnDisk(value, ttl)

	tmpPath := path + fmt.Sprintf(".tmp-%d", time.Now().UnixNano())

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return o.backendError("file_create", err)
	}

	if err := unix.Flock(int(tmp.Fd()), unix.LOCK_EX); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)

		return o.backendError("file_lock", err)
	}

	if _, err := tmp.Write(data); err != nil {
		unix.Flock(int(tmp.Fd()), unix.LOCK_UN)
		tmp.Close()
		_ = os.Remove(tmpPath)

		return o.backendError("file_write", err)
	}

	if err := tmp.Sync(); err != nil {
		unix.Flock(int(tmp.Fd()), unix.LOCK_UN)
		tmp.Close()
		_ = os.Remove(tmpPath)

		return o.backendError("file_sync", err)
	}

	unix.Flock(int(tmp.Fd()), unix.LOCK_UN)
	tmp.Close()

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)

		return o.backendError("file_rename", err)
	}

	return nil
}

func (o *OnDiskFile) Delete(_ context.Context, tierLocalKey string) yaerrors.Error {
	o.mu.RLock()
	path := o.path(tierLocalKey)
	o.mu.RUnlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return o.backendError("file_delete", err)
	}

	return nil
}

func (o *OnDiskFile) Clear(_ context.Context) yaerrors.Error {
	o.mu.RLock()
	dir := o.resolved
	o.mu.RUnlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return o.backendError("dir_read", err)
	}

	var firstErr error

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return o.backendError("dir_clear", firstErr)
	}

	return nil
}

// CleanupExpired implements the core's cleanup_expired() sweep over this
// TTL-less adapter: decode every owned entry's expires_at prefix and delete
// the ones that have elapsed. Returns the count removed.
func (o *OnDiskFile) CleanupExpired(_ context.Context) (int, yaerrors.Error) {
	o.mu.RLock()
	dir := o.resolved
	o.mu.RUnlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}

		return 0, o.backendError("dir_read", err)
	}

	now := time.Now()
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		expiresAt, _, ok := decodeOnDisk(data)
		if !ok {
			continue
		}

		if onDiskExpired(expiresAt, now) {
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
	}

	return removed, nil
}

func (o *OnDiskFile) Stats(_ context.Context) tier.Stats {
	o.mu.RLock()
	dir := o.resolved
	o.mu.RUnlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return tier.Stats{Extra: map[string]string{"path": dir}}
	}

	var count int64

	for _, entry := range entries {
		if !entry.IsDir() {
			count++
		}
	}

	return tier.Stats{EntryCount: count, Extra: map[string]string{"path": dir}}
}

func (o *OnDiskFile) Spec() tier.Spec {
	return o.spec
}

// RemainingTTL implements tier.TTLReporter by re-decoding the fixed-width
// expires_at prefix already written by Set; it does not open a second
// advisory lock since a stale read here only costs the promotion a
// slightly-off TTL, never correctness.
func (o *OnDiskFile) RemainingTTL(_ context.Context, tierLocalKey string) (time.Duration, yaerrors.Error) {
	o.mu.RLock()
	path := o.path(tierLocalKey)
	o.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil
	}

	expiresAt, _, ok := decodeOnDisk(data)
	if !ok || expiresAt == 0 {
		return 0, nil
	}

	remaining := time.Until(time.Unix(expiresAt, 0))
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}

// Path returns the resolved cache directory currently in use.
func (o *OnDiskFile) Path() string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.resolved
}

// SetPath atomically swaps the resolved cache directory, creating it first.
// Existing files under the old path are left in place (abandoned), per the
// engine-level migrate_cache_path operation for callers who want copying
// instead.
func (o *OnDiskFile) SetPath(path string) yaerrors.Error {
	if err := os.MkdirAll(path, o.opts.DirectoryPermissions); err != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			tier.ErrTierUnavailable,
			"[ONDISK] failed to create new cache path: "+err.Error(),
		)
	}

	o.mu.Lock()
	o.resolved = path
	o.mu.Unlock()

	return nil
}
