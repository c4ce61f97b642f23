//
//  Copyright © Manetu Inc. All rights reserved.
//

package core

import (
	"context"
	"sync"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/pkg/core/config"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
)

// loop is the background flusher. It wakes every poll interval and flushes
// when the flush interval has elapsed and the buffer holds entries.
type loop struct {
	stop chan struct{}
	wg   sync.WaitGroup
}

// Start launches the background flusher if the flush interval is positive.
// Calling Start more than once has no effect.
func (c *Coordinator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loop != nil || c.stopped || c.state.Interval <= 0 {
		return
	}

	poll := c.poll
	if poll <= 0 {
		poll = config.DefaultPollInterval
	}

	l := &loop{stop: make(chan struct{})}
	l.wg.Add(1)
	go c.run(l, poll)

	c.loop = l
	c.state.Running = true
}

func (c *Coordinator) run(l *loop, poll time.Duration) {
	defer l.wg.Done()

	t := time.NewTicker(poll)
	defer t.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-t.C:
			elapsed, interval := c.elapsed()
			if elapsed >= interval && c.buf.Size() > 0 {
				c.Flush(context.Background())
			}
		}
	}
}

// Stop halts the background flusher, waits for it to exit, and performs a
// final flush of whatever remains. Only the first call flushes; later calls
// return an empty result.
func (c *Coordinator) Stop(ctx context.Context) types.FlushResult {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return types.FlushResult{}
	}
	c.stopped = true
	l := c.loop
	c.loop = nil
	c.mu.Unlock()

	if l != nil {
		close(l.stop)
		l.wg.Wait()
	}

	c.mu.Lock()
	c.state.Running = false
	c.mu.Unlock()

	return c.Flush(ctx)
}
