//
//  Copyright © Manetu Inc. All rights reserved.
//

package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	chtransport "github.com/Chavda-Mitul/AI-Logger/internal/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/metrics"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/options"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCoordinator(t *testing.T, opts ...options.LoggerOptionsFunc) (*Coordinator, *chtransport.ChannelTransport, chan chtransport.Request) {
	t.Helper()
	ch := make(chan chtransport.Request, 100)
	tr := chtransport.NewChannelTransport(ch)
	o := (&options.LoggerOptions{
		Name:          "test",
		BufferSize:    3,
		FlushInterval: time.Hour,
		PollInterval:  10 * time.Millisecond,
		Silent:        true,
	}).Apply(opts...)
	c := NewCoordinator(o, tr, metrics.New(o.Name))
	t.Cleanup(func() { c.Stop(context.Background()) })
	return c, tr, ch
}

func entry(n int) types.LogEntry {
	return types.LogEntry{"prompt": "p", "output": "o", "model": "m", "seq": n}
}

func batchOf(t *testing.T, req chtransport.Request) []types.LogEntry {
	t.Helper()
	assert.Equal(t, transport.BatchPath, req.Path)
	batch, ok := req.Body.(*transport.Batch)
	require.True(t, ok, "body must be a *transport.Batch")
	return batch.Logs
}

func seqs(entries []types.LogEntry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e["seq"].(int))
	}
	return out
}

func TestEnqueueSignalsCapacity(t *testing.T) {
	c, _, ch := newTestCoordinator(t)

	assert.False(t, c.Enqueue(entry(1)))
	assert.False(t, c.Enqueue(entry(2)))
	assert.True(t, c.Enqueue(entry(3)))
	assert.Equal(t, 3, c.Pending())
	assert.Len(t, ch, 0, "enqueue alone never sends")
}

func TestShouldFlush(t *testing.T) {
	clock := newFakeClock()
	c, _, _ := newTestCoordinator(t, options.WithClock(clock.Now))

	assert.False(t, c.ShouldFlush())

	c.Enqueue(entry(1))
	assert.False(t, c.ShouldFlush())

	clock.Advance(time.Hour)
	assert.True(t, c.ShouldFlush(), "interval elapsed")

	c.Flush(context.Background())
	assert.False(t, c.ShouldFlush())

	c.Enqueue(entry(2))
	c.Enqueue(entry(3))
	c.Enqueue(entry(4))
	assert.True(t, c.ShouldFlush(), "capacity reached")
}

func TestShouldFlushZeroInterval(t *testing.T) {
	c, _, _ := newTestCoordinator(t, options.WithFlushInterval(0))
	assert.True(t, c.ShouldFlush())
}

func TestFlushEmptyIsNoop(t *testing.T) {
	clock := newFakeClock()
	c, _, ch := newTestCoordinator(t, options.WithClock(clock.Now))
	before := c.State().LastFlush

	clock.Advance(time.Minute)
	res := c.Flush(context.Background())
	assert.Equal(t, types.FlushResult{}, res)
	assert.Len(t, ch, 0)
	assert.Equal(t, before, c.State().LastFlush)
}

func TestFlushSendsBatchInOrder(t *testing.T) {
	c, _, ch := newTestCoordinator(t, options.WithBufferSize(100))

	var want []int
	for round := 0; round < 3; round++ {
		for i := 0; i < 5; i++ {
			n := round*5 + i
			want = append(want, n)
			c.Enqueue(entry(n))
		}
		res := c.Flush(context.Background())
		require.NoError(t, res.Err)
		assert.Equal(t, 5, res.Entries)
		assert.Equal(t, 0, c.Pending())
	}

	require.Len(t, ch, 3)
	var got []int
	for i := 0; i < 3; i++ {
		got = append(got, seqs(batchOf(t, <-ch))...)
	}
	assert.Equal(t, want, got)
}

func TestFlushFailureDropsBatch(t *testing.T) {
	clock := newFakeClock()
	m := metrics.New("failing")
	ch := make(chan chtransport.Request, 10)
	tr := chtransport.NewChannelTransport(ch)
	tr.FailWith(func(chtransport.Request) error { return common.NewAPIError(500, "internal") })

	o := &options.LoggerOptions{Name: "failing", BufferSize: 10, FlushInterval: time.Hour, Silent: true, Clock: clock.Now}
	c := NewCoordinator(o, tr, m)

	c.Enqueue(entry(1))
	c.Enqueue(entry(2))
	before := c.State().LastFlush
	clock.Advance(time.Second)

	res := c.Flush(context.Background())
	require.Error(t, res.Err)
	assert.True(t, res.Dropped())

	var apiErr *common.APIError
	require.True(t, errors.As(res.Err, &apiErr))
	assert.Equal(t, 500, apiErr.StatusCode)

	assert.Equal(t, 0, c.Pending(), "failed entries are not restored")
	assert.True(t, c.State().LastFlush.After(before), "flush clock advances on failure")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Dropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Flushes.WithLabelValues(metrics.OutcomeFailure)))
	assert.Len(t, ch, 1)
}

func TestFlushFailureWarnsUnlessSilent(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOut(&buf)
	t.Cleanup(func() { logger.SetOut(os.Stderr) })

	for _, silent := range []bool{false, true} {
		buf.Reset()
		c, tr, _ := newTestCoordinator(t, options.WithSilent(silent))
		tr.FailWith(func(chtransport.Request) error { return common.NewAPIError(503, "unavailable") })

		c.Enqueue(entry(1))
		c.Flush(context.Background())

		if silent {
			assert.Empty(t, buf.String())
		} else {
			assert.Contains(t, buf.String(), "entries dropped")
			assert.Contains(t, buf.String(), "unavailable(status-503)")
		}
	}
}

func TestConcurrentFlushesNeverDuplicate(t *testing.T) {
	c, _, ch := newTestCoordinator(t, options.WithBufferSize(1000))
	for i := 0; i < 50; i++ {
		c.Enqueue(entry(i))
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Flush(context.Background())
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for len(ch) > 0 {
		for _, n := range seqs(batchOf(t, <-ch)) {
			assert.False(t, seen[n], "entry %d sent twice", n)
			seen[n] = true
		}
	}
	assert.Len(t, seen, 50)
}

func TestEnqueueMergesStaticMetadata(t *testing.T) {
	c, _, ch := newTestCoordinator(t, options.WithMetadata(map[string]string{"pod": "pod-1"}))

	c.Enqueue(entry(1))
	c.Flush(context.Background())

	logs := batchOf(t, <-ch)
	require.Len(t, logs, 1)
	assert.Equal(t, map[string]interface{}{"pod": "pod-1"}, logs[0]["metadata"])
}

func TestPendingGaugeTracksBufferUnderConcurrency(t *testing.T) {
	c, _, ch := newTestCoordinator(t, options.WithBufferSize(7))
	go func() {
		for range ch {
		}
	}()

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if c.Enqueue(entry(p*100 + i)) {
					c.Flush(context.Background())
				}
			}
		}(p)
	}
	wg.Wait()

	assert.Equal(t, float64(c.Pending()), testutil.ToFloat64(c.metrics.Pending))

	c.Flush(context.Background())
	assert.Equal(t, 0.0, testutil.ToFloat64(c.metrics.Pending))
}

func TestFlushHookSeesEveryNonEmptyFlush(t *testing.T) {
	var (
		mu      sync.Mutex
		results []types.FlushResult
	)
	c, tr, ch := newTestCoordinator(t, options.WithFlushHook(func(r types.FlushResult) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	}))

	c.Enqueue(entry(1))
	c.Flush(context.Background())
	c.Flush(context.Background())

	tr.FailWith(func(chtransport.Request) error { return common.NewAPIError(401, "bad key") })
	c.Enqueue(entry(2))
	c.Enqueue(entry(3))
	c.Stop(context.Background())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 2, "the empty flush is not reported")
	assert.Equal(t, types.FlushResult{Entries: 1}, results[0])
	assert.Equal(t, 2, results[1].Entries)
	assert.True(t, results[1].Dropped())
	assert.Len(t, ch, 2)
}
