package pool_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/YaCodeDev/GoMultiTierCache/pool"
	"github.com/YaCodeDev/GoMultiTierCache/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id     int
	closed atomic.Bool
}

func (c *fakeConn) Ping(_ context.Context) error { return nil }

func (c *fakeConn) Close() error {
	c.closed.Store(true)

	return nil
}

func newCountingDialer() (pool.Dialer, *atomic.Int32) {
	var n atomic.Int32

	dial := func(_ context.Context) (pool.Conn, error) {
		id := n.Add(1)

		return &fakeConn{id: int(id)}, nil
	}

	return dial, &n
}

func TestPool_Acquire_ReusesReleasedConnection(t *testing.T) {
	dial, dials := newCountingDialer()
	p := pool.New(tier.NetworkRedis, dial, pool.Options{Min: 0, Max: 2, AcquireTimeout: time.Second}, nil)

	c1, err := p.Acquire(context.Background())
	require.Nil(t, err)

	p.Release(c1, true)

	c2, err := p.Acquire(context.Background())
	require.Nil(t, err)

	assert.Same(t, c1, c2)
	assert.Equal(t, int32(1), dials.Load())
}

func TestPool_Acquire_ExhaustedTimesOut(t *testing.T) {
	dial, _ := newCountingDialer()
	p := pool.New(tier.NetworkRedis, dial, pool.Options{Min: 0, Max: 1, AcquireTimeout: 20 * time.Millisecond}, nil)

	c1, err := p.Acquire(context.Background())
	require.Nil(t, err)

	_, err2 := p.Acquire(context.Background())
	require.NotNil(t, err2)

	p.Release(c1, true)
}

func TestPool_Acquire_RespectsContextCancel(t *testing.T) {
	dial, _ := newCountingDialer()
	p := pool.New(tier.NetworkRedis, dial, pool.Options{Min: 0, Max: 1, AcquireTimeout: time.Second}, nil)

	c1, err := p.Acquire(context.Background())
	require.Nil(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err2 := p.Acquire(ctx)
	require.NotNil(t, err2)

	p.Release(c1, true)
}

func TestPool_Discard_DoesNotReuseConnection(t *testing.T) {
	dial, dials := newCountingDialer()
	p := pool.New(tier.NetworkRedis, dial, pool.Options{Min: 0, Max: 2, AcquireTimeout: time.Second}, nil)

	c1, err := p.Acquire(context.Background())
	require.Nil(t, err)

	fc, ok := c1.(*fakeConn)
	require.True(t, ok)

	p.Discard(c1)
	assert.True(t, fc.closed.Load())

	c2, err := p.Acquire(context.Background())
	require.Nil(t, err)
	assert.NotSame(t, c1, c2)
	assert.Equal(t, int32(2), dials.Load())
}

func TestPool_ReapIdle_ClosesOldConnectionsAboveMin(t *testing.T) {
	dial, _ := newCountingDialer()
	p := pool.New(tier.NetworkRedis, dial, pool.Options{Min: 0, Max: 2, IdleTimeout: time.Millisecond, AcquireTimeout: time.Second}, nil)

	c1, err := p.Acquire(context.Background())
	require.Nil(t, err)
	p.Release(c1, true)

	time.Sleep(5 * time.Millisecond)

	closed := p.ReapIdle()
	assert.Equal(t, 1, closed)

	idle, leased := p.Stats()
	assert.Equal(t, 0, idle)
	assert.Equal(t, 0, leased)
}

func TestPool_CloseAll_RejectsFurtherAcquire(t *testing.T) {
	dial, _ := newCountingDialer()
	p := pool.New(tier.NetworkRedis, dial, pool.Options{Min: 1, Max: 2, AcquireTimeout: time.Second}, nil)

	require.Nil(t, p.CloseAll())

	_, err := p.Acquire(context.Background())
	require.NotNil(t, err)
}
