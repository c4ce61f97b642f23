//
//  Copyright © Manetu Inc. All rights reserved.
//

package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// WriterOptions configures the output of a [WriterTransport].
type WriterOptions struct {
	// PrettyPrint enables indented multi-line JSON output.
	// When false (default), each request is one line of compact JSON.
	PrettyPrint bool
}

// WriterTransport writes requests as JSON to an [io.Writer] instead of sending
// them over the network. Each request is written as an object with "path" and
// "body" keys followed by a newline.
//
// WriterTransport is safe for concurrent use; writes are serialized so that
// lines from concurrent flushes never interleave.
type WriterTransport struct {
	mu      sync.Mutex
	writer  io.Writer
	options WriterOptions
	now     func() time.Time
}

// NewWriterTransport creates a [Transport] that writes requests to w.
func NewWriterTransport(w io.Writer, opts WriterOptions) Transport {
	return &WriterTransport{
		writer:  w,
		options: opts,
		now:     time.Now,
	}
}

// Send encodes the request and writes it to the configured writer.
//
// Requests to [LogPath] receive a synthesized {"id", "created_at"} response so
// that unbuffered loggers behave as if a server had accepted the entry; other
// paths receive {"accepted": n} when the body carries a "logs" batch.
func (t *WriterTransport) Send(ctx context.Context, path string, body interface{}) (map[string]interface{}, error) {
	record := map[string]interface{}{
		"path": path,
		"body": body,
	}

	var (
		output []byte
		err    error
	)
	if t.options.PrettyPrint {
		output, err = json.MarshalIndent(record, "", "  ")
	} else {
		output, err = json.Marshal(record)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding request for %s: %w", path, err)
	}

	t.mu.Lock()
	_, err = fmt.Fprintln(t.writer, string(output))
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}

	switch path {
	case LogPath:
		return map[string]interface{}{
			"id":         uuid.NewString(),
			"created_at": t.now().UTC().Format(time.RFC3339Nano),
		}, nil
	default:
		if batch, ok := body.(*Batch); ok {
			return map[string]interface{}{"accepted": len(batch.Logs)}, nil
		}
		return map[string]interface{}{}, nil
	}
}
