// Package pool implements a bounded, leased connection pool shared by the
// network-backed tier adapters (Redis-like and Memcached-like). It keeps
// idle connections warm up to Min, hands out up to Max leased connections,
// blocks bounded callers when the pool is saturated, and reaps connections
// idle longer than IdleTimeout.
//
// The waiter design is grounded on the oriys-nova VM pool (FIFO waiters
// blocked until capacity frees up), adapted here to a buffered-channel
// semaphore instead of sync.Cond so Acquire can select over ctx.Done() and
// an acquire timeout without a helper goroutine per waiter.
package pool

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/YaCodeDev/GoMultiTierCache/yaerrors"
	"github.com/YaCodeDev/GoMultiTierCache/yalogger"
)

// Conn is the minimal capability a pooled connection must offer. Adapters
// wrap their concrete client (*redis.Client, *memcache.Client, ...) behind
// this interface.
type Conn interface {
	// Ping performs a cheap liveness check.
	Ping(ctx context.Context) error
	// Close releases the underlying resource for good.
	Close() error
}

// Dialer opens one new Conn.
type Dialer func(ctx context.Context) (Conn, error)

// Options configures a Pool. Zero Max, IdleTimeout and AcquireTimeout are
// replaced by the package defaults in New; a zero Min is kept (no pre-warmed
// connections), and only a negative Min is replaced by its default.
type Options struct {
	Min            int           `default:"1"`
	Max            int           `default:"8"`
	IdleTimeout    time.Duration `default:"5m"`
	AcquireTimeout time.Duration `default:"5s"`
}

const (
	defaultMin            = 1
	defaultMax            = 8
	defaultIdleTimeout    = 5 * time.Minute
	defaultAcquireTimeout = 5 * time.Second
)

type entry struct {
	conn       Conn
	createdAt  time.Time
	lastUsedAt time.Time
}

// Pool is a bounded, leased pool of Conn. The zero value is not usable; call
// New.
type Pool struct {
	mu     sync.Mutex
	idle   []*entry
	leased int

	// tokens represents connection slots not yet created. Creating a
	// connection permanently consumes one token until that connection is
	// closed or discarded, at which point the token is returned.
	tokens chan struct{}

	dial   Dialer
	opts   Options
	closed bool
	name   tier.Name
	log    yalogger.Logger
}

// New builds a Pool that dials through dial, pre-warming Min connections.
// Dial failures during pre-warm are logged and skipped; the pool still
// comes up, just under-provisioned until the first Acquire succeeds.
func New(name tier.Name, dial Dialer, opts Options, log yalogger.Logger) *Pool {
	if opts.Min < 0 {
		opts.Min = defaultMin
	}

	if opts.Max <= 0 {
		opts.Max = defaultMax
	}

	if opts.Min > opts.Max {
		opts.Min = opts.Max
	}

	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}

	if opts.AcquireTimeout <= 0 {
		opts.AcquireTimeout = defaultAcquireTimeout
	}

	p := &Pool{
		tokens: make(chan struct{}, opts.Max),
		dial:   dial,
		opts:   opts,
		name:   name,
		log:    log,
	}

	for range opts.Max {
		p.tokens <- struct{}{}
	}

	now := time.Now()

	for range opts.Min {
		<-p.tokens

		conn, err := dial(context.Background())
		if err != nil {
			if log != nil {
				log.Warnf("[POOL:%s] pre-warm dial failed: %s", name, err.Error())
			}

			p.tokens <- struct{}{}

			continue
		}

		p.idle = append(p.idle, &entry{conn: conn, createdAt: now, lastUsedAt: now})
	}

	return p
}

// Acquire returns a ready Conn, preferring an idle one. If the pool is
// saturated it blocks until a slot frees up, ctx is cancelled, or
// AcquireTimeout elapses, whichever comes first.
func (p *Pool) Acquire(ctx context.Context) (Conn, yaerrors.Error) {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()

		return nil, yaerrors.FromError(
			http.StatusServiceUnavailable,
			tier.ErrTierUnavailable,
			"["+string(p.name)+"] pool closed",
		)
	}

	if n := len(p.idle); n > 0 {
		e := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.leased++
		p.mu.Unlock()

		e.lastUsedAt = time.Now()

		return e.conn, nil
	}

	p.mu.Unlock()

	timer := time.NewTimer(p.opts.AcquireTimeout)
	defer timer.Stop()

	select {
	case <-p.tokens:
		conn, err := p.dial(ctx)
		if err != nil {
			p.tokens <- struct{}{}

			return nil, yaerrors.FromError(
				http.StatusBadGateway,
				tier.ErrConnectionLost,
				"["+string(p.name)+"] dial failed: "+err.Error(),
			)
		}

		p.mu.Lock()
		p.leased++
		p.mu.Unlock()

		return conn, nil

	case <-timer.C:
		return nil, yaerrors.FromError(
			http.StatusServiceUnavailable,
			tier.ErrPoolExhausted,
			"["+string(p.name)+"] acquire timed out",
		)

	case <-ctx.Done():
		return nil, yaerrors.FromError(
			http.StatusGatewayTimeout,
			tier.ErrConnectionTimeout,
			"["+string(p.name)+"] acquire cancelled: "+ctx.Err().Error(),
		)
	}
}

// Release returns conn to the idle set. Pass healthy=false (or call Discard)
// when the connection errored in a way that means it should not be reused.
func (p *Pool) Release(conn Conn, healthy bool) {
	p.mu.Lock()

	p.leased--

	if healthy && !p.closed {
		p.idle = append(p.idle, &entry{conn: conn, createdAt: time.Now(), lastUsedAt: time.Now()})
		p.mu.Unlock()

		return
	}

	p.mu.Unlock()

	_ = conn.Close()
	p.tokens <- struct{}{}
}

// Discard closes conn and returns its slot without offering it back to the
// idle set. Equivalent to Release(conn, false).
func (p *Pool) Discard(conn Conn) {
	p.Release(conn, false)
}

// ReapIdle closes idle connections older than IdleTimeout, keeping at least
// Min total connections alive, and returns how many it closed.
func (p *Pool) ReapIdle() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := time.Now().Add(-p.opts.IdleTimeout)

	kept := p.idle[:0]
	closed := 0

	for _, e := range p.idle {
		total := len(kept) + p.leased
		if e.lastUsedAt.Before(cutoff) && total >= p.opts.Min {
			_ = e.conn.Close()
			p.tokens <- struct{}{}
			closed++

			continue
		}

		kept = append(kept, e)
	}

	p.idle = kept

	return closed
}

// CloseAll closes every idle connection and marks the pool closed; leased
// connections close as callers Release/Discard them.
func (p *Pool) CloseAll() yaerrors.Error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true

	for _, e := range p.idle {
		_ = e.conn.Close()
	}

	p.idle = nil

	return nil
}

// Stats reports the current idle and leased connection counts.
func (p *Pool) Stats() (idle int, leased int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.idle), p.leased
}
