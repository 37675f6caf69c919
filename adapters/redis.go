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
	"github.com/redis/go-redis/v9"
)

// NetworkOptions configures a network-backed tier adapter, Redis-like or
// Memcached-like.
type NetworkOptions struct {
	Host               string        `default:""`
	Port               uint16        `default:"0"`
	DatabaseIndex      int           `default:"0"`
	ConnectTimeout     time.Duration `default:"5s"`
	ReadTimeout        time.Duration `default:"3s"`
	Persistent         bool          `default:"true"`
	RetryAttempts      int           `default:"3"`
	RetryDelay         time.Duration `default:"100ms"`
	PoolMin            int           `default:"1"`
	PoolMax            int           `default:"8"`
	PoolIdleTimeout    time.Duration `default:"5m"`
	PoolAcquireTimeout time.Duration `default:"5s"`

	// KeyNamespace and KeySeparator are not independently configured: the
	// engine wiring that builds this adapter copies them verbatim from the
	// same keymanager.Options used to build the Manager, so Clear's scan
	// pattern always matches the keys Set actually wrote under.
	KeyNamespace string `default:""`
	KeySeparator string `default:""`
}

// redisConn adapts a *redis.Client to pool.Conn. go-redis clients are
// themselves connection-pooled internally; wrapping one client per pooled
// "connection" gives the engine its own bounded lease/idle-reap semantics
// on top.
type redisConn struct {
	client *redis.Client
}

func (c *redisConn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisConn) Close() error {
	return c.client.Close()
}

// NetworkRedis implements tier.Adapter against a Redis (or Redis-compatible,
// e.g. DragonflyDB) server, adapted from yacache/redis.go's *redis.Client
// wrapper but generalized from hash-field commands to the engine's flat
// get/set/delete/clear contract and routed through a pool.Pool instead of
// holding one client directly.
type NetworkRedis struct {
	spec tier.Spec
	opts NetworkOptions
	pool *pool.Pool
	log  yalogger.Logger
}

// NewNetworkRedis builds a NetworkRedis adapter. dial is called by the pool
// for each new connection; production callers pass a dialer built from
// NewRedisDialer, tests typically point it at a miniredis instance.
func NewNetworkRedis(spec tier.Spec, opts NetworkOptions, dial pool.Dialer, log yalogger.Logger) *NetworkRedis {
	p := pool.New(spec.Name, dial, pool.Options{
		Min:            opts.PoolMin,
		Max:            opts.PoolMax,
		IdleTimeout:    opts.PoolIdleTimeout,
		AcquireTimeout: opts.PoolAcquireTimeout,
	}, log)

	return &NetworkRedis{spec: spec, opts: opts, pool: p, log: log}
}

// NewRedisDialer builds a pool.Dialer that opens one *redis.Client per call,
// matching yacache/redis.go's NewRedisClient addr/password/db construction.
func NewRedisDialer(opts NetworkOptions, password string) pool.Dialer {
	addr := opts.Host
	if opts.Port != 0 {
		addr = addr + ":" + strconv.Itoa(int(opts.Port))
	}

	return func(ctx context.Context) (pool.Conn, error) {
		client := redis.NewClient(&redis.Options{
			Addr:        addr,
			Password:    password,
			DB:          opts.DatabaseIndex,
			DialTimeout: opts.ConnectTimeout,
			ReadTimeout: opts.ReadTimeout,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()

			return nil, err
		}

		return &redisConn{client: client}, nil
	}
}

func (r *NetworkRedis) lease(ctx context.Context) (*redis.Client, yaerrors.Error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	rc, ok := conn.(*redisConn)
	if !ok {
		r.pool.Discard(conn)

		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			tier.ErrIO,
			"[NETWORK_REDIS] pool returned unexpected connection type",
		)
	}

	return rc.client, nil
}

func (r *NetworkRedis) release(client *redis.Client, healthy bool) {
	r.pool.Release(&redisConn{client: client}, healthy)
}

func (r *NetworkRedis) backendError(code string, err error) yaerrors.Error {
	return tier.BackendError(r.spec.Name, code, err.Error())
}

func (r *NetworkRedis) Probe(ctx context.Context) yaerrors.Error {
	client, err := r.lease(ctx)
	if err != nil {
		return err
	}

	pingErr := client.Ping(ctx).Err()
	r.release(client, pingErr == nil)

	if pingErr != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			errors.Join(tier.ErrTierUnavailable, pingErr),
			"[NETWORK_REDIS] probe failed",
		)
	}

	return nil
}

func (r *NetworkRedis) Get(ctx context.Context, tierLocalKey string) ([]byte, tier.Outcome, yaerrors.Error) {
	client, err := r.lease(ctx)
	if err != nil {
		return nil, tier.NotFound, err
	}

	value, redisErr := client.Get(ctx, tierLocalKey).Bytes()
	r.release(client, redisErr == nil || errors.Is(redisErr, redis.Nil))

	if errors.Is(redisErr, redis.Nil) {
		return nil, tier.NotFound, nil
	}

	if redisErr != nil {
		return nil, tier.NotFound, r.connError(redisErr)
	}

	return value, tier.Found, nil
}

func (r *NetworkRedis) connError(err error) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusBadGateway,
		errors.Join(tier.ErrConnectionLost, err),
		"[NETWORK_REDIS] backend error",
	)
}

func (r *NetworkRedis) Set(
	ctx context.Context,
	tierLocalKey string,
	value []byte,
	ttl time.Duration,
) yaerrors.Error {
	client, err := r.lease(ctx)
	if err != nil {
		return err
	}

	setErr := client.Set(ctx, tierLocalKey, value, ttl).Err()
	r.release(client, setErr == nil)

	if setErr != nil {
		return r.connError(setErr)
	}

	return nil
}

func (r *NetworkRedis) Delete(ctx context.Context, tierLocalKey string) yaerrors.Error {
	client, err := r.lease(ctx)
	if err != nil {
		return err
	}

	delErr := client.Del(ctx, tierLocalKey).Err()
	r.release(client, delErr == nil)

	if delErr != nil {
		return r.connError(delErr)
	}

	return nil
}

// clearScanPrefix reconstructs the leading segment of every tier-local key
// keymanager.Manager composes for this tier: "[namespace][sep]<tier
// name>[sep]" when a namespace is set, "<tier name>[sep]" otherwise — see
// keymanager.Manager.compose. Scanning on this prefix (rather than an
// independently configured one) is what makes Clear actually match the
// keys Set wrote.
func (r *NetworkRedis) clearScanPrefix() string {
	sep := r.opts.KeySeparator
	if sep == "" {
		sep = ":"
	}

	scope := string(r.spec.Name)

	if r.opts.KeyNamespace == "" {
		return scope + sep
	}

	return r.opts.KeyNamespace + sep + scope + sep
}

func (r *NetworkRedis) Clear(ctx context.Context) yaerrors.Error {
	client, err := r.lease(ctx)
	if err != nil {
		return err
	}
	defer r.release(client, true)

	iter := client.Scan(ctx, 0, r.clearScanPrefix()+"*", 0).Iterator()

	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())

		if len(keys) >= 500 {
			if delErr := client.Del(ctx, keys...).Err(); delErr != nil {
				return r.connError(delErr)
			}

			keys = keys[:0]
		}
	}

	if err := iter.Err(); err != nil {
		return r.connError(err)
	}

	if len(keys) > 0 {
		if delErr := client.Del(ctx, keys...).Err(); delErr != nil {
			return r.connError(delErr)
		}
	}

	return nil
}

func (r *NetworkRedis) Stats(ctx context.Context) tier.Stats {
	client, err := r.lease(ctx)
	if err != nil {
		return tier.Stats{}
	}
	defer r.release(client, true)

	size, _ := client.DBSize(ctx).Result()

	return tier.Stats{EntryCount: size}
}

func (r *NetworkRedis) Spec() tier.Spec {
	return r.spec
}

// RemainingTTL implements tier.TTLReporter via the native TTL command. A
// persistent key (-1) or a missing one (-2) both report zero, which the
// promotion caller treats as "fall back to the configured fixed TTL".
func (r *NetworkRedis) RemainingTTL(ctx context.Context, tierLocalKey string) (time.Duration, yaerrors.Error) {
	client, err := r.lease(ctx)
	if err != nil {
		return 0, err
	}

	remaining, ttlErr := client.TTL(ctx, tierLocalKey).Result()
	r.release(client, ttlErr == nil)

	if ttlErr != nil {
		return 0, r.connError(ttlErr)
	}

	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}

// Close drains the connection pool.
func (r *NetworkRedis) Close() yaerrors.Error {
	return r.pool.CloseAll()
}
