//
//  Copyright © Manetu Inc. All rights reserved.
//

package types

// FlushResult reports the outcome of one flush. A flush of an empty buffer
// has Entries == 0 and no error. On failure the entries are dropped.
type FlushResult struct {
	Entries int
	Err     error
}

// Dropped reports whether the flushed entries were lost.
func (r FlushResult) Dropped() bool {
	return r.Err != nil && r.Entries > 0
}
