// Package registry tracks which tiers are valid, available and healthy.
// Valid tiers are the closed enumeration known at compile time; available
// tiers are the subset discovered to respond at startup; healthy tiers are
// the subset the health monitor currently trusts. All three sets are
// reported in the fixed priority order of tier.DefaultOrder, never in
// discovery or insertion order.
package registry

import (
	"net/http"

	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
	"github.com/YaCodeDev/GoMultiTierCache/yathreadsafeset"
)

// Registry holds the three ordered tier sets. Membership is tracked with
// yathreadsafeset.ThreadSafeSet for safe concurrent discovery/health
// updates; priority order is recovered by filtering tier.DefaultOrder
// rather than storing an ordered structure, since DefaultOrder is already
// sorted by Spec.Priority.
type Registry struct {
	valid     *yathreadsafeset.ThreadSafeSet[tier.Name]
	available *yathreadsafeset.ThreadSafeSet[tier.Name]
	healthy   *yathreadsafeset.ThreadSafeSet[tier.Name]
}

// New builds a Registry whose valid set is every Name present in adapters.
// Adapters not present in adapters are simply never valid for this engine
// instance; a deployment is free to wire any subset of the closed
// enumeration.
func New(adapters map[tier.Name]tier.Adapter) *Registry {
	valid := yathreadsafeset.NewThreadSafeSet[tier.Name]()

	for name := range adapters {
		valid.Set(name)
	}

	return &Registry{
		valid:     valid,
		available: yathreadsafeset.NewThreadSafeSet[tier.Name](),
		healthy:   yathreadsafeset.NewThreadSafeSet[tier.Name](),
	}
}

// MarkAvailable records that a tier's probe succeeded at discovery. Marking
// a tier not in the valid set is a no-op — discovery only ever iterates
// valid tiers, so this should not happen in practice.
func (r *Registry) MarkAvailable(name tier.Name) {
	if r.valid.Has(name) {
		r.available.Set(name)
	}
}

// MarkUnavailable removes a tier from both available and healthy.
func (r *Registry) MarkUnavailable(name tier.Name) {
	r.available.Delete(name)
	r.healthy.Delete(name)
}

// MarkHealthy promotes an available tier to healthy. A tier must be
// available before it can be healthy; marking an unavailable tier healthy
// is a no-op.
func (r *Registry) MarkHealthy(name tier.Name) {
	if r.available.Has(name) {
		r.healthy.Set(name)
	}
}

// MarkUnhealthy demotes a tier out of the healthy set without touching its
// availability — an unhealthy tier is still listed for status reporting,
// just skipped for reads and writes.
func (r *Registry) MarkUnhealthy(name tier.Name) {
	r.healthy.Delete(name)
}

// IsValid reports whether name is part of this engine's wired tier set.
func (r *Registry) IsValid(name tier.Name) bool {
	return r.valid.Has(name)
}

// IsAvailable reports whether name passed discovery.
func (r *Registry) IsAvailable(name tier.Name) bool {
	return r.available.Has(name)
}

// IsHealthy reports whether name's most recent health check passed.
func (r *Registry) IsHealthy(name tier.Name) bool {
	return r.healthy.Has(name)
}

// ValidTiers returns the valid set in priority order.
func (r *Registry) ValidTiers() []tier.Name {
	return r.orderedFilter(r.valid)
}

// AvailableTiers returns the available set in priority order; this is the
// list the dispatcher's read/write scans iterate.
func (r *Registry) AvailableTiers() []tier.Name {
	return r.orderedFilter(r.available)
}

// HealthyTiers returns the healthy set in priority order.
func (r *Registry) HealthyTiers() []tier.Name {
	return r.orderedFilter(r.healthy)
}

func (r *Registry) orderedFilter(set *yathreadsafeset.ThreadSafeSet[tier.Name]) []tier.Name {
	ordered := make([]tier.Name, 0, len(tier.DefaultOrder))

	for _, spec := range tier.DefaultOrder {
		if set.Has(spec.Name) {
			ordered = append(ordered, spec.Name)
		}
	}

	return ordered
}

// RequireValid returns ErrInvalidTier wrapped as a 400 yaerrors.Error if
// name is not in this engine's valid set.
func RequireValid(r *Registry, name tier.Name) yaerrors.Error {
	if !r.IsValid(name) {
		return yaerrors.FromError(
			http.StatusBadRequest,
			tier.ErrInvalidTier,
			"[REGISTRY] tier "+string(name)+" is not wired for this engine",
		)
	}

	return nil
}

// RequireAvailable returns ErrTierUnavailable if name is valid but did not
// pass discovery; callers should check RequireValid first to distinguish
// "unknown tier" from "known but unavailable".
func RequireAvailable(r *Registry, name tier.Name) yaerrors.Error {
	if err := RequireValid(r, name); err != nil {
		return err
	}

	if !r.IsAvailable(name) {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			tier.ErrTierUnavailable,
			"[REGISTRY] tier "+string(name)+" did not pass discovery",
		)
	}

	return nil
}
