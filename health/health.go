// Package health implements the periodic per-tier health monitor: cached,
// TTL-keyed probe verdicts that drive a tier between Healthy, Degraded and
// Unhealthy without ever removing it from the registry.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/registry"
	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yabackoff"
	"github.com/YaCodeDev/GoMultiTierCache/yalogger"
)

// Status is the Monitor's verdict for one tier, independent of the
// Unknown/Discovered/Closed states the registry and dispatcher track
// around it.
type Status uint8

const (
	StatusHealthy Status = iota
	StatusDegraded
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Options configures a Monitor.
type Options struct {
	// CheckInterval is the default TTL a cached verdict is trusted for
	// before check() re-probes.
	CheckInterval time.Duration `default:"30s"`
	// FailureThreshold is the number of consecutive failed probes that
	// demotes a Degraded tier to Unhealthy.
	FailureThreshold int `default:"3"`
}

const (
	defaultCheckInterval    = 30 * time.Second
	defaultFailureThreshold = 3
)

// verdict is the cached state for one tier.
type verdict struct {
	status              Status
	lastCheckedAt       time.Time
	consecutiveFailures int
	lastCause           string
	backoff             yabackoff.Exponential
}

// Monitor periodically re-probes each tier's Adapter and caches the
// verdict. A tier that fails repeatedly backs off its own re-check cadence
// with yabackoff.Exponential on top of CheckInterval, so a persistently
// unreachable tier is not hammered with probes every tick; a successful
// probe resets its backoff immediately.
type Monitor struct {
	mu       sync.Mutex
	verdicts map[tier.Name]*verdict
	adapters map[tier.Name]tier.Adapter
	reg      *registry.Registry
	opts     Options
	log      yalogger.Logger
}

// New builds a Monitor over the given adapters, demoting/restoring tiers in
// reg as checks run.
func New(adapters map[tier.Name]tier.Adapter, reg *registry.Registry, opts Options, log yalogger.Logger) *Monitor {
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = defaultCheckInterval
	}

	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = defaultFailureThreshold
	}

	return &Monitor{
		verdicts: make(map[tier.Name]*verdict),
		adapters: adapters,
		reg:      reg,
		opts:     opts,
		log:      log,
	}
}

// Check re-probes name if its cached verdict is stale, and returns the
// (possibly cached) status and last-known failure cause.
func (m *Monitor) Check(ctx context.Context, name tier.Name) (Status, string) {
	m.mu.Lock()
	v, ok := m.verdicts[name]
	if !ok {
		v = &verdict{status: StatusHealthy}
		m.verdicts[name] = v
	}
	stale := time.Since(v.lastCheckedAt) >= m.nextInterval(v)
	m.mu.Unlock()

	if !stale {
		m.mu.Lock()
		status, cause := v.status, v.lastCause
		m.mu.Unlock()

		return status, cause
	}

	return m.probe(ctx, name, v)
}

// CheckAll runs Check on every wired tier and returns the full verdict map;
// like Check, it re-probes only tiers whose cached verdict is stale.
func (m *Monitor) CheckAll(ctx context.Context) map[tier.Name]Status {
	result := make(map[tier.Name]Status, len(m.adapters))

	for name := range m.adapters {
		status, _ := m.Check(ctx, name)
		result[name] = status
	}

	return result
}

// MonitoringStats summarizes the current verdict distribution, returned by
// get_monitoring_stats().
type MonitoringStats struct {
	Healthy   int
	Degraded  int
	Unhealthy int
}

// Stats returns the current distribution of cached verdicts without
// forcing a re-probe.
func (m *Monitor) Stats() MonitoringStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stats MonitoringStats

	for _, v := range m.verdicts {
		switch v.status {
		case StatusHealthy:
			stats.Healthy++
		case StatusDegraded:
			stats.Degraded++
		case StatusUnhealthy:
			stats.Unhealthy++
		}
	}

	return stats
}

func (m *Monitor) nextInterval(v *verdict) time.Duration {
	if v.consecutiveFailures == 0 {
		return m.opts.CheckInterval
	}

	return m.opts.CheckInterval + v.backoff.Current()
}

func (m *Monitor) probe(ctx context.Context, name tier.Name, v *verdict) (Status, string) {
	adapter, ok := m.adapters[name]
	if !ok {
		return StatusUnhealthy, "tier not wired"
	}

	err := adapter.Probe(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	v.lastCheckedAt = time.Now()

	if err == nil {
		wasUnhealthy := v.status == StatusUnhealthy
		v.consecutiveFailures = 0
		v.lastCause = ""
		v.backoff.Reset()
		v.status = StatusHealthy

		m.reg.MarkHealthy(name)

		if wasUnhealthy && m.log != nil {
			m.log.Infof("[HEALTH] tier %s recovered", name)
		}

		return v.status, v.lastCause
	}

	v.consecutiveFailures++
	v.lastCause = err.Error()
	v.backoff.Next()

	if v.consecutiveFailures >= m.opts.FailureThreshold {
		v.status = StatusUnhealthy
		m.reg.MarkUnhealthy(name)

		if m.log != nil {
			m.log.Warnf("[HEALTH] tier %s unhealthy after %d consecutive failures: %s",
				name, v.consecutiveFailures, v.lastCause)
		}
	} else {
		v.status = StatusDegraded

		if m.log != nil {
			m.log.Warnf("[HEALTH] tier %s degraded (%d/%d): %s",
				name, v.consecutiveFailures, m.opts.FailureThreshold, v.lastCause)
		}
	}

	return v.status, v.lastCause
}
