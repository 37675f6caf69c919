// Package keymanager derives tier-local keys from caller keys.
//
// The algorithm composes `[namespace][separator][tierScope][separator][callerKey]`
// and falls back to a SHA-256 digest whenever the composed string would
// overflow the target tier's length limit or contain characters outside its
// allowed charset — the same "bring your own salt, hash deterministically"
// shape as yahash, but fixed to a cryptographic digest because tier-local
// keys are permanent (not time-windowed tokens) and must be collision
// resistant across the whole lifetime of the cache.
package keymanager

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
)

// Options configures a Manager. Separator defaults to ":" and
// AutoHashLongKeys defaults to true. TierLocalKey does not read
// AutoHashLongKeys: a composed key that does not fit its tier is always
// hashed, whatever the option's value.
type Options struct {
	GlobalNamespace  string `default:""`
	Separator        string `default:":"`
	AutoHashLongKeys bool   `default:"true"`
}

// Manager derives tier-local keys. It is immutable once built: changing the
// namespace or separator invalidates every previously produced key, so
// callers construct a new Manager (and accept the resulting cache flush)
// instead of mutating one in place.
type Manager struct {
	opts Options
}

// New builds a Manager from opts, substituting ":" for an empty Separator.
// Other fields are used as given.
func New(opts Options) *Manager {
	if opts.Separator == "" {
		opts.Separator = ":"
	}

	return &Manager{opts: opts}
}

// scope returns the per-tier namespace segment used in the composed key.
func scope(spec tier.Spec) string {
	return string(spec.Name)
}

// compose builds the raw (pre-limit-check) tier-local key.
func (m *Manager) compose(callerKey string, spec tier.Spec) string {
	sep := m.opts.Separator

	if m.opts.GlobalNamespace == "" {
		return scope(spec) + sep + callerKey
	}

	return m.opts.GlobalNamespace + sep + scope(spec) + sep + callerKey
}

// digest returns the hex-encoded SHA-256 of composed, prefixed by the whole
// namespace and separator when both fit within the tier's limit; otherwise
// it returns the bare digest, truncated to the limit if needed.
func (m *Manager) digest(composed string, spec tier.Spec) string {
	sum := sha256.Sum256([]byte(composed))
	digest := hex.EncodeToString(sum[:])

	prefix := m.opts.GlobalNamespace + m.opts.Separator
	if spec.MaxKeyLength > 0 && len(prefix)+len(digest) <= spec.MaxKeyLength && m.opts.GlobalNamespace != "" {
		return prefix + digest
	}

	if spec.MaxKeyLength > 0 && len(digest) > spec.MaxKeyLength {
		return digest[:spec.MaxKeyLength]
	}

	return digest
}

func (m *Manager) fitsTier(composed string, spec tier.Spec) bool {
	if spec.MaxKeyLength > 0 && len(composed) > spec.MaxKeyLength {
		return false
	}

	if spec.AllowedKeyCharset != nil && !spec.AllowedKeyCharset.MatchString(composed) {
		return false
	}

	return true
}

// TierLocalKey derives the string key actually sent to the given tier's
// backend. Empty caller keys fail with tier.ErrInvalidKey.
func (m *Manager) TierLocalKey(callerKey string, spec tier.Spec) (string, yaerrors.Error) {
	if callerKey == "" {
		return "", yaerrors.FromError(
			http.StatusBadRequest,
			tier.ErrInvalidKey,
			"[KEYMANAGER] empty caller key",
		)
	}

	composed := m.compose(callerKey, spec)

	if m.fitsTier(composed, spec) {
		return composed, nil
	}

	return m.digest(composed, spec), nil
}

