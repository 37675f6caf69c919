// Package yacache implements the multi-tier cache engine: a single
// get/set/delete/clear contract in front of up to nine heterogeneous
// backend tiers, with hierarchical read-path promotion, write-through,
// strict delete/clear semantics, and an expiration sweep for backends
// without native TTL.
//
// # Lifecycle
//
// An Engine is uninitialized until its first cache operation (Get, Set,
// Delete, Clear, the per-tier variants, CleanupExpired), which triggers
// discovery (probing every wired adapter), then stays initialized until
// Close drains pools and released handles. Calling a cache operation after
// Close re-initializes the engine rather than erroring, matching the
// "public API is idempotent across re-initialization" contract. The status,
// stats and cache-path methods do not trigger discovery.
//
// # Promotion
//
// On a cache hit, the Engine issues a write-through to every tier of
// strictly higher priority than the tier that served the read, before
// returning the value to the caller, so hot keys migrate toward faster
// tiers over time. Promotion failures are logged and otherwise ignored —
// they never fail the read that triggered them.
//
// # Diagnostics
//
// Every read and write path records the tier it last succeeded on
// (GetLastUsedTier) and the message of the last error any tier path
// produced (GetLastError), independent of the hot-path return values —
// NotFound and "every tier failed" are otherwise indistinguishable to a
// caller without inspecting these.
package yacache

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/health"
	"github.com/YaCodeDev/GoMultiTierCache/keymanager"
	"github.com/YaCodeDev/GoMultiTierCache/registry"
	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
	"github.com/YaCodeDev/GoMultiTierCache/yalogger"
)

// PromotionTTLPolicy selects how a promoted entry's TTL is computed.
type PromotionTTLPolicy uint8

const (
	// PromotionPreserveRemaining promotes with the source entry's remaining
	// TTL, capped at Options.PromotionTTL. This is the default: a key that
	// is about to expire in the slow tier should not be handed a full fresh
	// TTL in the fast tier.
	PromotionPreserveRemaining PromotionTTLPolicy = iota
	// PromotionFixedTTL always promotes with exactly Options.PromotionTTL,
	// regardless of how much TTL remained at the source tier.
	PromotionFixedTTL
)

const defaultPromotionTTL = time.Hour

// Options configures an Engine.
type Options struct {
	PromotionTTL       time.Duration      `default:"1h"`
	PromotionTTLPolicy PromotionTTLPolicy `default:"0"`
}

// TierStatus is the dispatcher-facing view of one tier, combining registry
// membership with the health monitor's cached verdict.
type TierStatus struct {
	Name      tier.Name
	Valid     bool
	Available bool
	Healthy   bool
	Health    health.Status
	Cause     string
}

// TierOutcome is one tier's result within a multi-tier fan-out
// (set_to_tiers / delete_from_tiers).
type TierOutcome struct {
	Err yaerrors.Error
}

// FanOutSummary is the {total, successful, failed} summary the multi-tier
// operations return alongside the per-tier result map.
type FanOutSummary struct {
	Total      int
	Successful int
	Failed     int
}

// Stats is the aggregated debug()/get_stats() snapshot: tier status, each
// adapter's own Stats(), and the health monitor's verdict distribution in
// one call, since an operator inspecting the engine wants all three
// together rather than three separate round trips.
type Stats struct {
	Tiers      []TierStatus
	TierStats  map[tier.Name]tier.Stats
	Monitoring health.MonitoringStats
}

// Engine is the dispatcher: the engine handle callers hold. The zero value
// is not usable; build one with New.
type Engine struct {
	mu       sync.RWMutex
	adapters map[tier.Name]tier.Adapter
	specs    map[tier.Name]tier.Spec
	km       *keymanager.Manager
	reg      *registry.Registry
	monitor  *health.Monitor
	opts     Options
	log      yalogger.Logger

	initOnce sync.Once
	initErr  yaerrors.Error
	closed   bool

	lastUsedTier tier.Name
	haveLastUsed bool
	lastError    string
}

// New builds an Engine over adapters, keyed by each adapter's own
// Spec().Name. Discovery does not run until the first public call.
// healthOpts configures the embedded health.Monitor; its zero value is
// substituted with health.New's own defaults (30s check interval, 3-probe
// failure threshold).
func New(
	adapters map[tier.Name]tier.Adapter,
	km *keymanager.Manager,
	opts Options,
	healthOpts health.Options,
	log yalogger.Logger,
) *Engine {
	if opts.PromotionTTL <= 0 {
		opts.PromotionTTL = defaultPromotionTTL
	}

	specs := make(map[tier.Name]tier.Spec, len(adapters))
	for name, a := range adapters {
		specs[name] = a.Spec()
	}

	reg := registry.New(adapters)

	return &Engine{
		adapters: adapters,
		specs:    specs,
		km:       km,
		reg:      reg,
		monitor:  health.New(adapters, reg, healthOpts, log),
		opts:     opts,
		log:      log,
	}
}

// ensureInit runs discovery exactly once per open lifetime: Close resets
// initOnce so the next public call re-initializes, per the engine's
// uninitialized→initialized→closed→initialized lifecycle.
func (e *Engine) ensureInit(ctx context.Context) yaerrors.Error {
	e.initOnce.Do(func() {
		e.mu.Lock()
		e.closed = false
		e.mu.Unlock()

		for name, adapter := range e.adapters {
			if err := adapter.Probe(ctx); err != nil {
				if e.log != nil {
					e.log.Warnf("[ENGINE] tier %s failed discovery probe: %s", name, err.Error())
				}

				continue
			}

			e.reg.MarkAvailable(name)
			e.reg.MarkHealthy(name)
		}
	})

	return e.initErr
}

// recordUsedTier records name as the most recent tier to successfully
// serve a read or accept a write, per the "last used tier" contract: for a
// fan-out write it is the first (highest-priority) tier that accepted it.
func (e *Engine) recordUsedTier(name tier.Name) {
	e.mu.Lock()
	e.lastUsedTier = name
	e.haveLastUsed = true
	e.mu.Unlock()
}

// recordError records err's message as the most recent error observed
// across any read or write path, for get_last_error()-style inspection. A
// nil err is a no-op — only genuine failures overwrite the last-error
// string.
func (e *Engine) recordError(err yaerrors.Error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	e.lastError = err.Error()
	e.mu.Unlock()
}

// GetLastUsedTier returns the tier that most recently served a read or
// accepted a write, and whether any tier has done so yet.
func (e *Engine) GetLastUsedTier() (tier.Name, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.lastUsedTier, e.haveLastUsed
}

// GetLastError returns the most recent error message observed across any
// read or write path, or "" if none has occurred yet.
func (e *Engine) GetLastError() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.lastError
}

func orderedTiers(e *Engine) []tier.Name {
	return e.reg.AvailableTiers()
}

func (e *Engine) adapterFor(name tier.Name) (tier.Adapter, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	a, ok := e.adapters[name]

	return a, ok
}

func (e *Engine) tierLocalKey(callerKey string, name tier.Name) (string, yaerrors.Error) {
	spec, ok := e.specs[name]
	if !ok {
		return "", yaerrors.FromError(
			http.StatusBadRequest,
			tier.ErrInvalidTier,
			"[ENGINE] tier "+string(name)+" is not wired",
		)
	}

	return e.km.TierLocalKey(callerKey, spec)
}

// Get performs the hierarchical read: scans available tiers in priority
// order, returns the first hit after promoting it toward every
// higher-priority tier, and returns NotFound only once every tier has been
// scanned without a hit. A per-tier error is logged and the scan continues.
func (e *Engine) Get(ctx context.Context, callerKey string) ([]byte, bool, yaerrors.Error) {
	if err := e.ensureInit(ctx); err != nil {
		return nil, false, err
	}

	tiers := orderedTiers(e)

	for i, name := range tiers {
		if !e.reg.IsHealthy(name) {
			continue
		}

		adapter, _ := e.adapterFor(name)

		localKey, err := e.tierLocalKey(callerKey, name)
		if err != nil {
			return nil, false, err
		}

		value, outcome, getErr := adapter.Get(ctx, localKey)
		if getErr != nil {
			e.recordError(getErr)

			if e.log != nil {
				e.log.Warnf("[ENGINE] get from tier %s errored: %s", name, getErr.Error())
			}

			continue
		}

		if outcome == tier.NotFound {
			continue
		}

		e.recordUsedTier(name)

		remaining := e.sourceRemainingTTL(ctx, adapter, localKey)
		e.promote(ctx, tiers[:i], callerKey, value, remaining)

		return value, true, nil
	}

	return nil, false, nil
}

// sourceRemainingTTL queries the serving adapter's remaining TTL when it
// cheaply exposes one, so the caller can preserve it across a promotion
// write. Returns 0 ("unknown") when the adapter doesn't implement
// tier.TTLReporter or the query itself fails.
func (e *Engine) sourceRemainingTTL(ctx context.Context, adapter tier.Adapter, localKey string) time.Duration {
	reporter, ok := adapter.(tier.TTLReporter)
	if !ok {
		return 0
	}

	remaining, err := reporter.RemainingTTL(ctx, localKey)
	if err != nil {
		return 0
	}

	return remaining
}

// promote writes value to every tier in higherPriority (tiers strictly
// faster than the one that served the hit), using sourceRemaining to resolve
// each write's TTL per Options.PromotionTTLPolicy. Failures are logged and
// otherwise ignored — a promotion is an optimization, never part of the
// read's correctness.
func (e *Engine) promote(
	ctx context.Context,
	higherPriority []tier.Name,
	callerKey string,
	value []byte,
	sourceRemaining time.Duration,
) {
	ttl := e.promotionTTL(sourceRemaining)

	for _, name := range higherPriority {
		if !e.reg.IsHealthy(name) {
			continue
		}

		adapter, _ := e.adapterFor(name)

		localKey, err := e.tierLocalKey(callerKey, name)
		if err != nil {
			continue
		}

		if setErr := adapter.Set(ctx, localKey, value, ttl); setErr != nil {
			if e.log != nil {
				e.log.Warnf("[ENGINE] promotion to tier %s failed: %s", name, setErr.Error())
			}
		}
	}
}

// promotionTTL resolves the TTL used for a promoted write. remaining is the
// TTL left on the entry at its source tier; 0 means "no TTL information
// available" (native-TTL backends rarely expose remaining TTL cheaply), in
// which case the fixed default is always used regardless of policy.
func (e *Engine) promotionTTL(remaining time.Duration) time.Duration {
	if e.opts.PromotionTTLPolicy == PromotionFixedTTL || remaining <= 0 {
		return e.opts.PromotionTTL
	}

	if remaining < e.opts.PromotionTTL {
		return remaining
	}

	return e.opts.PromotionTTL
}

// Set writes value to every available tier (write-through). Success iff at
// least one tier accepted the write; per-tier failures are collected but do
// not fail the call. GetLastUsedTier is updated to the first (highest
// priority) tier that accepted the write.
func (e *Engine) Set(ctx context.Context, callerKey string, value []byte, ttl time.Duration) yaerrors.Error {
	if err := e.ensureInit(ctx); err != nil {
		return err
	}

	if len(value) == 0 {
		return yaerrors.FromError(http.StatusBadRequest, tier.ErrEmptyValue, "[ENGINE] empty value")
	}

	var anySucceeded bool

	for _, name := range orderedTiers(e) {
		if !e.reg.IsHealthy(name) {
			continue
		}

		adapter, _ := e.adapterFor(name)

		localKey, err := e.tierLocalKey(callerKey, name)
		if err != nil {
			return err
		}

		if setErr := adapter.Set(ctx, localKey, value, ttl); setErr != nil {
			e.recordError(setErr)

			if e.log != nil {
				e.log.Warnf("[ENGINE] set to tier %s failed: %s", name, setErr.Error())
			}

			continue
		}

		if !anySucceeded {
			e.recordUsedTier(name)
		}

		anySucceeded = true
	}

	if !anySucceeded {
		err := yaerrors.FromError(
			http.StatusBadGateway,
			tier.ErrTierUnavailable,
			"[ENGINE] set failed on every available tier",
		)
		e.recordError(err)

		return err
	}

	return nil
}

// Delete fans delete out across every available tier. Success requires
// every tier to report Ok; a tier's NotFound counts as Ok.
func (e *Engine) Delete(ctx context.Context, callerKey string) yaerrors.Error {
	if err := e.ensureInit(ctx); err != nil {
		return err
	}

	for _, name := range orderedTiers(e) {
		if !e.reg.IsHealthy(name) {
			continue
		}

		adapter, _ := e.adapterFor(name)

		localKey, err := e.tierLocalKey(callerKey, name)
		if err != nil {
			return err
		}

		if delErr := adapter.Delete(ctx, localKey); delErr != nil {
			e.recordError(delErr)

			return delErr
		}

		e.recordUsedTier(name)
	}

	return nil
}

// Clear fans clear out across every available tier. Success requires every
// tier to succeed (strict, like Delete).
func (e *Engine) Clear(ctx context.Context) yaerrors.Error {
	if err := e.ensureInit(ctx); err != nil {
		return err
	}

	for _, name := range orderedTiers(e) {
		if !e.reg.IsHealthy(name) {
			continue
		}

		adapter, _ := e.adapterFor(name)

		if clearErr := adapter.Clear(ctx); clearErr != nil {
			e.recordError(clearErr)

			return clearErr
		}

		e.recordUsedTier(name)
	}

	return nil
}

// requireTier validates name against valid_tiers then available_tiers,
// returning the explicit error kinds the per-tier operations need.
func (e *Engine) requireTier(name tier.Name) yaerrors.Error {
	if err := registry.RequireValid(e.reg, name); err != nil {
		return err
	}

	return registry.RequireAvailable(e.reg, name)
}

// GetFromTier reads callerKey from exactly one named tier, bypassing the
// hierarchical scan and promotion.
func (e *Engine) GetFromTier(ctx context.Context, name tier.Name, callerKey string) ([]byte, bool, yaerrors.Error) {
	if err := e.ensureInit(ctx); err != nil {
		return nil, false, err
	}

	if err := e.requireTier(name); err != nil {
		return nil, false, err
	}

	adapter, _ := e.adapterFor(name)

	localKey, err := e.tierLocalKey(callerKey, name)
	if err != nil {
		return nil, false, err
	}

	value, outcome, getErr := adapter.Get(ctx, localKey)
	if getErr != nil {
		e.recordError(getErr)

		return nil, false, getErr
	}

	if outcome == tier.Found {
		e.recordUsedTier(name)
	}

	return value, outcome == tier.Found, nil
}

// SetToTier writes callerKey to exactly one named tier.
func (e *Engine) SetToTier(
	ctx context.Context,
	name tier.Name,
	callerKey string,
	value []byte,
	ttl time.Duration,
) yaerrors.Error {
	if err := e.ensureInit(ctx); err != nil {
		return err
	}

	if err := e.requireTier(name); err != nil {
		return err
	}

	if len(value) == 0 {
		return yaerrors.FromError(http.StatusBadRequest, tier.ErrEmptyValue, "[ENGINE] empty value")
	}

	adapter, _ := e.adapterFor(name)

	localKey, err := e.tierLocalKey(callerKey, name)
	if err != nil {
		return err
	}

	if setErr := adapter.Set(ctx, localKey, value, ttl); setErr != nil {
		e.recordError(setErr)

		return setErr
	}

	e.recordUsedTier(name)

	return nil
}

// DeleteFromTier deletes callerKey from exactly one named tier.
func (e *Engine) DeleteFromTier(ctx context.Context, name tier.Name, callerKey string) yaerrors.Error {
	if err := e.ensureInit(ctx); err != nil {
		return err
	}

	if err := e.requireTier(name); err != nil {
		return err
	}

	adapter, _ := e.adapterFor(name)

	localKey, err := e.tierLocalKey(callerKey, name)
	if err != nil {
		return err
	}

	if delErr := adapter.Delete(ctx, localKey); delErr != nil {
		e.recordError(delErr)

		return delErr
	}

	e.recordUsedTier(name)

	return nil
}

// SetToTiers writes callerKey to every tier in names, returning a per-tier
// result map plus a {total, successful, failed} summary.
func (e *Engine) SetToTiers(
	ctx context.Context,
	names []tier.Name,
	callerKey string,
	value []byte,
	ttl time.Duration,
) (map[tier.Name]yaerrors.Error, FanOutSummary) {
	results := make(map[tier.Name]yaerrors.Error, len(names))
	summary := FanOutSummary{Total: len(names)}

	for _, name := range names {
		err := e.SetToTier(ctx, name, callerKey, value, ttl)
		results[name] = err

		if err == nil {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}

	return results, summary
}

// DeleteFromTiers deletes callerKey from every tier in names, returning a
// per-tier result map plus a {total, successful, failed} summary.
func (e *Engine) DeleteFromTiers(
	ctx context.Context,
	names []tier.Name,
	callerKey string,
) (map[tier.Name]yaerrors.Error, FanOutSummary) {
	results := make(map[tier.Name]yaerrors.Error, len(names))
	summary := FanOutSummary{Total: len(names)}

	for _, name := range names {
		err := e.DeleteFromTier(ctx, name, callerKey)
		results[name] = err

		if err == nil {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}

	return results, summary
}

// GetWithTierPreference tries preferred first; on NotFound, it falls back
// to the ordinary hierarchical Get when fallback is true, otherwise it
// returns NotFound directly without scanning the rest of the hierarchy.
func (e *Engine) GetWithTierPreference(
	ctx context.Context,
	callerKey string,
	preferred tier.Name,
	fallback bool,
) ([]byte, bool, yaerrors.Error) {
	if err := e.ensureInit(ctx); err != nil {
		return nil, false, err
	}

	value, found, err := e.GetFromTier(ctx, preferred, callerKey)
	if err != nil {
		return nil, false, err
	}

	if found {
		return value, true, nil
	}

	if !fallback {
		return nil, false, nil
	}

	return e.Get(ctx, callerKey)
}

// IsTierValid reports whether name is part of this engine's wired tier set.
func (e *Engine) IsTierValid(name tier.Name) bool {
	return e.reg.IsValid(name)
}

// IsTierAvailable reports whether name passed discovery.
func (e *Engine) IsTierAvailable(name tier.Name) bool {
	return e.reg.IsAvailable(name)
}

// IsTierHealthy reports whether name's cached health verdict is Healthy.
func (e *Engine) IsTierHealthy(name tier.Name) bool {
	return e.reg.IsHealthy(name)
}

// GetAvailableTiers returns the available tiers in priority order — the
// same order Get/Set/Delete/Clear scan.
func (e *Engine) GetAvailableTiers() []tier.Name {
	return e.reg.AvailableTiers()
}

// GetTierStatus returns the combined registry/health view of one tier.
func (e *Engine) GetTierStatus(ctx context.Context, name tier.Name) TierStatus {
	status, cause := e.monitor.Check(ctx, name)

	return TierStatus{
		Name:      name,
		Valid:     e.reg.IsValid(name),
		Available: e.reg.IsAvailable(name),
		Healthy:   e.reg.IsHealthy(name),
		Health:    status,
		Cause:     cause,
	}
}

// CleanupExpired sweeps every adapter implementing tier.Sweeper (the
// TTL-less backends) and returns the total number of entries removed.
// Natively-TTLed backends are not swept.
func (e *Engine) CleanupExpired(ctx context.Context) (int, yaerrors.Error) {
	if err := e.ensureInit(ctx); err != nil {
		return 0, err
	}

	total := 0

	for name, adapter := range e.adapters {
		sweeper, ok := adapter.(tier.Sweeper)
		if !ok {
			continue
		}

		removed, err := sweeper.CleanupExpired(ctx)
		if err != nil {
			if e.log != nil {
				e.log.Warnf("[ENGINE] cleanup_expired on tier %s failed: %s", name, err.Error())
			}

			continue
		}

		total += removed
	}

	return total, nil
}

// GetCachePath returns the current filesystem root of every adapter
// implementing tier.PathMutable.
func (e *Engine) GetCachePath() map[tier.Name]string {
	paths := make(map[tier.Name]string)

	for name, adapter := range e.adapters {
		if pm, ok := adapter.(tier.PathMutable); ok {
			paths[name] = pm.Path()
		}
	}

	return paths
}

// SetCachePath retargets every tier.PathMutable adapter to path, abandoning
// whatever was stored at the old location — equivalent to
// MigrateCachePath(path, false).
func (e *Engine) SetCachePath(path string) yaerrors.Error {
	return e.MigrateCachePath(path, false)
}

// MigrateCachePath retargets every tier.PathMutable adapter to newPath.
// When copyExisting is true, each adapter's current directory contents are
// copied to newPath before the adapter's index is reset; when false, the
// old location's files are abandoned in place, matching SetPath's default
// behavior at the adapter level.
func (e *Engine) MigrateCachePath(newPath string, copyExisting bool) yaerrors.Error {
	for name, adapter := range e.adapters {
		pm, ok := adapter.(tier.PathMutable)
		if !ok {
			continue
		}

		if copyExisting {
			if err := copyDirContents(pm.Path(), newPath); err != nil {
				return yaerrors.FromError(
					http.StatusInternalServerError,
					tier.ErrIO,
					"[ENGINE] migrate_cache_path copy failed for tier "+string(name)+": "+err.Error(),
				)
			}
		}

		if err := pm.SetPath(newPath); err != nil {
			return err
		}
	}

	return nil
}

// Debug returns the aggregated operator-facing snapshot: tier status,
// per-adapter stats, and health monitor counters in one call.
func (e *Engine) Debug(ctx context.Context) Stats {
	return e.GetStats(ctx)
}

// GetStats returns the aggregated operator-facing snapshot: tier status,
// per-adapter stats, and health monitor counters in one call.
func (e *Engine) GetStats(ctx context.Context) Stats {
	stats := Stats{
		TierStats:  make(map[tier.Name]tier.Stats, len(e.adapters)),
		Monitoring: e.monitor.Stats(),
	}

	for _, spec := range tier.DefaultOrder {
		adapter, ok := e.adapters[spec.Name]
		if !ok {
			continue
		}

		stats.Tiers = append(stats.Tiers, e.GetTierStatus(ctx, spec.Name))
		stats.TierStats[spec.Name] = adapter.Stats(ctx)
	}

	return stats
}

// Close drains every connection pool-backed adapter and marks the engine
// closed; the next public call re-initializes it.
func (e *Engine) Close() yaerrors.Error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	var firstErr yaerrors.Error

	for name, adapter := range e.adapters {
		closer, ok := adapter.(interface{ Close() yaerrors.Error })
		if !ok {
			continue
		}

		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err.Wrap("[ENGINE] close failed for tier " + string(name))
		}
	}

	e.initOnce = sync.Once{}

	return firstErr
}
