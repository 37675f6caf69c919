package tier

import (
	"errors"
	"net/http"

	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
)

// Sentinel causes for the tier error taxonomy. These are joined into a
// yaerrors.Error via errors.Join the same way the original Redis wrapper
// joined driver errors with its own Err* sentinels, so callers can still
// errors.Is() the cause after it has been wrapped with traceback context.
var (
	ErrInvalidKey       = errors.New("tier: invalid key")
	ErrInvalidTier      = errors.New("tier: invalid tier")
	ErrTierUnavailable  = errors.New("tier: unavailable")
	ErrTierUnhealthy    = errors.New("tier: unhealthy")
	ErrEmptyValue       = errors.New("tier: empty value")
	ErrNotFound         = errors.New("tier: not found")
	ErrSerialization    = errors.New("tier: serialization error")
	ErrConnectionLost   = errors.New("tier: connection lost")
	ErrConnectionTimeout = errors.New("tier: connection timeout")
	ErrPoolExhausted    = errors.New("tier: pool exhausted")
	ErrIO               = errors.New("tier: io error")
	ErrPermissionDenied = errors.New("tier: permission denied")
)

// BackendError wraps a backend-specific code/message pair as a
// yaerrors.Error with the generic ErrIO cause joined in so callers can
// still match on the taxonomy.
func BackendError(name Name, code string, message string) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusBadGateway,
		errors.Join(ErrIO, errors.New(code+": "+message)),
		"["+string(name)+"] backend error",
	)
}
