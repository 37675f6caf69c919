// Package adapters implements one tier.Adapter per backend kind in the
// closed enumeration: in-process array, bytecode cache, three shared-memory
// variants (system, user, scratch), memory-mapped files, on-disk files,
// and the two network-KV backends (Redis-like, Memcached-like).
//
// Adapters are self-sufficient with respect to key addressing: the
// dispatcher always hands them the string produced by keymanager.TierLocalKey,
// and any adapter whose substrate is not string-addressed (shared memory's
// numeric segment keys, file-based tiers' filenames) derives its own
// address by hashing that string with SHA-256, matching the "filename is
// the hex hash of the tier-local key" / "segment at base_numeric_key +
// offset(hash)" wording in the tier contract.
package adapters

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
	"github.com/vmihailenco/msgpack/v5"
)

// hashKey returns the raw SHA-256 digest of a tier-local key.
func hashKey(tierLocalKey string) [32]byte {
	return sha256.Sum256([]byte(tierLocalKey))
}

// hexName turns a tier-local key into the filesystem-safe hex filename used
// by the on-disk and memory-mapped tiers.
func hexName(tierLocalKey string) string {
	sum := hashKey(tierLocalKey)

	return hex.EncodeToString(sum[:])
}

// int64Offset turns a tier-local key into a stable, non-negative offset used
// to address shared-memory segments.
func int64Offset(tierLocalKey string) int64 {
	sum := hashKey(tierLocalKey)

	var offset int64
	for _, b := range sum[:8] {
		offset = (offset << 8) | int64(b)
	}

	if offset < 0 {
		offset = -offset
	}

	return offset
}

// record is the {expires_at, value} payload written by every backend whose
// substrate lacks native TTL support and whose record format is not the
// fixed-width decimal prefix used by the on-disk file tier.
type record struct {
	ExpiresAt int64  `msgpack:"expires_at"`
	Value     []byte `msgpack:"value"`
}

// expired reports whether the record's TTL has elapsed as of now.
// ExpiresAt == 0 means "stored indefinitely".
func (r record) expired(now time.Time) bool {
	return r.ExpiresAt != 0 && now.Unix() >= r.ExpiresAt
}

func encodeRecord(value []byte, ttl time.Duration) ([]byte, yaerrors.Error) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}

	data, err := msgpack.Marshal(record{ExpiresAt: expiresAt, Value: value})
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			tier.ErrSerialization,
			"[ADAPTERS] failed to encode record: "+err.Error(),
		)
	}

	return data, nil
}

func decodeRecord(data []byte) (record, yaerrors.Error) {
	var rec record

	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return record{}, yaerrors.FromError(
			http.StatusInternalServerError,
			tier.ErrSerialization,
			"[ADAPTERS] failed to decode record: "+err.Error(),
		)
	}

	return rec, nil
}

const onDiskExpiresWidth = 10

// encodeOnDisk renders the fixed-width-decimal-prefix + payload layout used
// by the on-disk file tier.
func encodeOnDisk(value []byte, ttl time.Duration) []byte {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}

	prefix := fmt.Sprintf("%0*d", onDiskExpiresWidth, expiresAt)

	buf := make([]byte, 0, len(prefix)+len(value))
	buf = append(buf, prefix...)
	buf = append(buf, value...)

	return buf
}

func decodeOnDisk(data []byte) (expiresAt int64, value []byte, ok bool) {
	if len(data) < onDiskExpiresWidth {
		return 0, nil, false
	}

	n, err := strconv.ParseInt(string(data[:onDiskExpiresWidth]), 10, 64)
	if err != nil {
		return 0, nil, false
	}

	return n, data[onDiskExpiresWidth:], true
}

func onDiskExpired(expiresAt int64, now time.Time) bool {
	return expiresAt != 0 && now.Unix() >= expiresAt
}
