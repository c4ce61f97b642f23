//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package transport delivers log entries to a logging destination.
//
// The loggers in [core] never talk to the network directly; they hand a JSON
// body and a destination path to a [Transport]. This keeps the buffering
// engine independent of HTTP and lets tests and tools substitute their own
// destination.
//
// # Built-in Implementations
//
//   - [NewHTTPTransport]: POSTs JSON to the remote logging API (production)
//   - [NewWriterTransport]: writes each request as a JSON line to an io.Writer
//     (dry runs and local debugging)
//   - [NewNullTransport]: discards every request (logging disabled with
//     enabled: false)
//
// # Custom Implementations
//
// To deliver entries elsewhere (a message bus, a file, a test double):
//
//  1. Implement the [Transport] interface
//  2. Pass it with [options.WithTransport] when creating a logger
//
// Example:
//
//	type KafkaTransport struct { producer *kafka.Producer }
//
//	func (t *KafkaTransport) Send(ctx context.Context, path string, body interface{}) (map[string]interface{}, error) {
//	    return nil, t.producer.Produce(ctx, path, body)
//	}
package transport

import (
	"context"

	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
)

// Destination paths understood by the remote logging API.
const (
	// LogPath accepts one entry and answers with its server-assigned id.
	LogPath = "/log"

	// BatchPath accepts {"logs": [...]} from buffered loggers.
	BatchPath = "/ingest/logs"
)

// Transport sends one request to a logging destination.
//
// Implementations must be safe for concurrent use by multiple goroutines:
// a producer goroutine and the background flush loop may call Send at the
// same time.
type Transport interface {
	// Send delivers body, which must be JSON-serializable, to path and returns
	// the decoded response object. An empty response yields an empty map.
	//
	// Send must not block indefinitely; HTTP implementations bound every call
	// with a timeout. Errors are either a [common.NetworkError] (no response)
	// or a [common.APIError] (non-2xx response).
	Send(ctx context.Context, path string, body interface{}) (map[string]interface{}, error)
}

// Batch is the body sent to [BatchPath].
type Batch struct {
	Logs []types.LogEntry `json:"logs"`
}
