//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package buffer provides the in-memory queue that holds log entries between
// enqueue and flush.
//
// A [Buffer] is safe for concurrent use. Producers call [Buffer.Add], which
// reports when the configured capacity has been reached; a flusher calls
// [Buffer.Drain] to take ownership of everything queued so far. Because Drain
// swaps the internal slice under the lock, concurrent flushers never receive
// the same entry twice.
package buffer

import (
	"sync"

	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
)

// Buffer is an ordered queue of pending log entries with a capacity threshold.
//
// The threshold is a flush signal, not a hard limit: Add never blocks or
// rejects an entry. The queue may briefly exceed capacity when entries are
// added while a flush triggered by the threshold is still draining.
type Buffer struct {
	mu       sync.Mutex
	entries  []types.LogEntry
	capacity int
	onResize func(size int)
}

// New creates a Buffer that signals fullness at capacity entries. A capacity
// below 1 is treated as 1, meaning every Add signals.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		entries:  make([]types.LogEntry, 0, capacity),
		capacity: capacity,
	}
}

// OnResize registers fn to be called with the new length after every Add and
// every non-empty Drain. fn runs with the buffer locked, so calls arrive in the
// order the length changed; it must not call back into the buffer. OnResize
// must be called before the buffer is shared.
func (b *Buffer) OnResize(fn func(size int)) {
	b.onResize = fn
}

func (b *Buffer) resized() {
	if b.onResize != nil {
		b.onResize(len(b.entries))
	}
}

// Add appends entry and returns true iff the queue length after the append is
// at least the capacity.
func (b *Buffer) Add(entry types.LogEntry) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entry)
	b.resized()
	return len(b.entries) >= b.capacity
}

// Drain removes and returns every queued entry in insertion order. It returns
// nil when the queue is empty.
func (b *Buffer) Drain() []types.LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) == 0 {
		return nil
	}
	drained := b.entries
	b.entries = make([]types.LogEntry, 0, b.capacity)
	b.resized()
	return drained
}

// Size returns the number of queued entries. The value is a snapshot and may
// be stale as soon as it is returned.
func (b *Buffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// IsEmpty reports whether the queue is empty at the time of the call.
func (b *Buffer) IsEmpty() bool {
	return b.Size() == 0
}

// Capacity returns the fullness threshold.
func (b *Buffer) Capacity() int {
	return b.capacity
}
