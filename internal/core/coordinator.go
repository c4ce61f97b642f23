//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package core implements the buffering engine behind the compliance logger:
// a Coordinator that decides when to flush and delivers batches, and the
// background loop that flushes on elapsed time.
package core

import (
	"context"
	"sync"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/internal/logging"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/buffer"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/metrics"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/options"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
)

var logger = logging.GetLogger("ailog.flush")

const agent = "coordinator"

// FlushState is a snapshot of the coordinator's timing state.
type FlushState struct {
	LastFlush time.Time
	Interval  time.Duration
	Running   bool
}

// Coordinator owns a logger's buffer and delivers its contents to a transport.
//
// Enqueue and Flush may be called from any goroutine. No lock is held while
// a batch is being sent.
type Coordinator struct {
	name      string
	buf       *buffer.Buffer
	transport transport.Transport
	metrics   *metrics.Metrics
	silent    bool
	now       func() time.Time
	poll      time.Duration
	static    map[string]string
	hook      func(types.FlushResult)

	mu      sync.Mutex
	state   FlushState
	loop    *loop
	stopped bool
}

// NewCoordinator creates a Coordinator from resolved options. The flush clock
// starts at construction time.
func NewCoordinator(o *options.LoggerOptions, t transport.Transport, m *metrics.Metrics) *Coordinator {
	now := o.Clock
	if now == nil {
		now = time.Now
	}
	if m == nil {
		m = metrics.New(o.Name)
	}
	buf := buffer.New(o.BufferSize)
	buf.OnResize(func(size int) { m.Pending.Set(float64(size)) })

	return &Coordinator{
		name:      o.Name,
		buf:       buf,
		transport: t,
		metrics:   m,
		silent:    o.Silent,
		now:       now,
		poll:      o.PollInterval,
		static:    o.Metadata,
		hook:      o.FlushHook,
		state: FlushState{
			LastFlush: now(),
			Interval:  o.FlushInterval,
		},
	}
}

// Enqueue appends entry to the buffer and reports whether capacity was reached.
// Static metadata is merged into the entry first.
func (c *Coordinator) Enqueue(entry types.LogEntry) bool {
	full := c.buf.Add(mergeMetadata(c.static, entry))
	c.metrics.Enqueued.Inc()
	return full
}

// Pending returns the number of buffered entries.
func (c *Coordinator) Pending() int {
	return c.buf.Size()
}

// State returns a copy of the current flush state.
func (c *Coordinator) State() FlushState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) elapsed() (time.Duration, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Sub(c.state.LastFlush), c.state.Interval
}

// ShouldFlush reports whether the buffer is at capacity or the flush interval
// has elapsed since the last flush. A non-positive interval always elapses.
func (c *Coordinator) ShouldFlush() bool {
	if c.buf.Size() >= c.buf.Capacity() {
		return true
	}
	elapsed, interval := c.elapsed()
	return elapsed >= interval
}

// Flush drains the buffer and sends its contents as one batch.
//
// An empty buffer is a no-op: no request is made and the flush clock is left
// alone. Otherwise the flush clock restarts whether or not the send
// succeeded. A failed batch is dropped and, unless the logger is silent,
// reported as a warning.
func (c *Coordinator) Flush(ctx context.Context) types.FlushResult {
	entries := c.buf.Drain()
	if len(entries) == 0 {
		return types.FlushResult{}
	}

	_, err := c.transport.Send(ctx, transport.BatchPath, &transport.Batch{Logs: entries})
	if err != nil && !c.silent {
		logger.Warnw(agent, "Flush", "failed to send log batch; entries dropped",
			"logger", c.name,
			"entries", len(entries),
			"error", err.Error())
	}
	if err == nil && logger.IsDebugEnabled() {
		logger.Debugf(agent, "Flush", "sent %d entries for logger %s", len(entries), c.name)
	}
	c.metrics.ObserveFlush(len(entries), err)

	c.mu.Lock()
	c.state.LastFlush = c.now()
	c.mu.Unlock()

	res := types.FlushResult{Entries: len(entries), Err: err}
	if c.hook != nil {
		c.hook(res)
	}
	return res
}
