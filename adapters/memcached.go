package adapters

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/pool"
	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
	"github.com/YaCodeDev/GoMultiTierCache/yalogger"
	"github.com/bradfitz/gomemcache/memcache"
)

// memcacheConn adapts a *memcache.Client to pool.Conn. Like go-redis's
// client, a gomemcache Client already manages its own internal connection
// pool per server; one leased "connection" here is one such client, giving
// the engine its own bounded lease/idle-reap layer on top, the same
// composition NetworkRedis uses.
type memcacheConn struct {
	client *memcache.Client
}

func (c *memcacheConn) Ping(_ context.Context) error {
	return c.client.Ping()
}

func (c *memcacheConn) Close() error {
	return nil
}

// NetworkMemcached implements tier.Adapter against a Memcached (or
// Memcached-protocol-compatible) server via github.com/bradfitz/gomemcache,
// the canonical Go client for this protocol — no example repo in the
// retrieval pack uses a memcache client, so this is named directly from the
// ecosystem rather than grounded on a pack file.
type NetworkMemcached struct {
	spec tier.Spec
	opts NetworkOptions
	pool *pool.Pool
}

// NewNetworkMemcached builds a NetworkMemcached adapter.
func NewNetworkMemcached(spec tier.Spec, opts NetworkOptions, log yalogger.Logger) *NetworkMemcached {
	addr := opts.Host
	if opts.Port != 0 {
		addr = addr + ":" + strconv.Itoa(int(opts.Port))
	}

	dial := func(_ context.Context) (pool.Conn, error) {
		client := memcache.New(addr)
		client.Timeout = opts.ReadTimeout

		if err := client.Ping(); err != nil {
			return nil, err
		}

		return &memcacheConn{client: client}, nil
	}

	p := pool.New(spec.Name, dial, pool.Options{
		Min:            opts.PoolMin,
		Max:            opts.PoolMax,
		IdleTimeout:    opts.PoolIdleTimeout,
		AcquireTimeout: opts.PoolAcquireTimeout,
	}, log)

	return &NetworkMemcached{spec: spec, opts: opts, pool: p}
}

func (m *NetworkMemcached) lease(ctx context.Context) (*memcache.Client, yaerrors.Error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	mc, ok := conn.(*memcacheConn)
	if !ok {
		m.pool.Discard(conn)

		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			tier.ErrIO,
			"[NETWORK_MEMCACHED] pool returned unexpected connection type",
		)
	}

	return mc.client, nil
}

func (m *NetworkMemcached) release(client *memcache.Client, healthy bool) {
	m.pool.Release(&memcacheConn{client: client}, healthy)
}

func (m *NetworkMemcached) connError(err error) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusBadGateway,
		errors.Join(tier.ErrConnectionLost, err),
		"[NETWORK_MEMCACHED] backend error",
	)
}

func (m *NetworkMemcached) Probe(ctx context.Context) yaerrors.Error {
	client, err := m.lease(ctx)
	if err != nil {
		return err
	}

	pingErr := client.Ping()
	m.release(client, pingErr == nil)

	if pingErr != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			errors.Join(tier.ErrTierUnavailable, pingErr),
			"[NETWORK_MEMCACHED] probe failed",
		)
	}

	return nil
}

func (m *NetworkMemcached) Get(ctx context.Context, tierLocalKey string) ([]byte, tier.Outcome, yaerrors.Error) {
	client, err := m.lease(ctx)
	if err != nil {
		return nil, tier.NotFound, err
	}

	item, mcErr := client.Get(tierLocalKey)
	m.release(client, mcErr == nil || errors.Is(mcErr, memcache.ErrCacheMiss))

	if errors.Is(mcErr, memcache.ErrCacheMiss) {
		return nil, tier.NotFound, nil
	}

	if mcErr != nil {
		return nil, tier.NotFound, m.connError(mcErr)
	}

	return item.Value, tier.Found, nil
}

func (m *NetworkMemcached) Set(
	ctx context.Context,
	tierLocalKey string,
	value []byte,
	ttl time.Duration,
) yaerrors.Error {
	client, err := m.lease(ctx)
	if err != nil {
		return err
	}

	setErr := client.Set(&memcache.Item{
		Key:        tierLocalKey,
		Value:      value,
		Expiration: int32(ttl.Seconds()),
	})
	m.release(client, setErr == nil)

	if setErr != nil {
		return m.connError(setErr)
	}

	return nil
}

func (m *NetworkMemcached) Delete(ctx context.Context, tierLocalKey string) yaerrors.Error {
	client, err := m.lease(ctx)
	if err != nil {
		return err
	}

	delErr := client.Delete(tierLocalKey)
	m.release(client, delErr == nil || errors.Is(delErr, memcache.ErrCacheMiss))

	if delErr != nil && !errors.Is(delErr, memcache.ErrCacheMiss) {
		return m.connError(delErr)
	}

	return nil
}

func (m *NetworkMemcached) Clear(ctx context.Context) yaerrors.Error {
	client, err := m.lease(ctx)
	if err != nil {
		return err
	}

	flushErr := client.DeleteAll()
	m.release(client, flushErr == nil)

	if flushErr != nil {
		return m.connError(flushErr)
	}

	return nil
}

// Stats returns an empty tier.Stats: gomemcache exposes no cheap
// entry-count or byte-size query, so no figures are reported.
func (m *NetworkMemcached) Stats(_ context.Context) tier.Stats {
	return tier.Stats{}
}

func (m *NetworkMemcached) Spec() tier.Spec {
	return m.spec
}

// NetworkMemcached deliberately does not implement tier.TTLReporter: the
// memcached wire protocol has no command to query a key's remaining
// expiry, so the dispatcher always promotes a hit from this tier using its
// configured fixed promotion TTL.

// Close drains the connection pool.
func (m *NetworkMemcached) Close() yaerrors.Error {
	return m.pool.CloseAll()
}
