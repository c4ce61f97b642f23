//
//  Copyright © Manetu Inc. All rights reserved.
//
// shared between pkg/core and internal/core, and thus must be in a separate package to avoid circular dependencies

package options

import (
	"net/http"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/pkg/core/config"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultName labels the metrics of a logger created without WithName.
const DefaultName = "default"

// LoggerOptions defines the settings used to construct a logger.
type LoggerOptions struct {
	APIKey        string
	ProjectID     string
	BaseURL       string
	Timeout       time.Duration
	Silent        bool
	BufferSize    int
	FlushInterval time.Duration
	PollInterval  time.Duration

	// Transport replaces the HTTP transport; APIKey and BaseURL are then unused.
	Transport  transport.Transport
	HTTPClient *http.Client

	Name       string
	Registerer prometheus.Registerer

	// Metadata is merged into the metadata of every compliance entry. Keys the
	// caller sets on an interaction win.
	Metadata map[string]string

	Clock func() time.Time

	// FlushHook observes the result of every non-empty flush.
	FlushHook func(types.FlushResult)
}

// LoggerOptionsFunc is a function that modifies LoggerOptions.
type LoggerOptionsFunc func(*LoggerOptions)

// FromConfig returns options seeded from [config.VConfig]. [config.Load] must
// have been called.
//
// With enabled set to false the options carry a [transport.NullTransport], so
// loggers accept entries but send nothing and need no credentials.
func FromConfig() *LoggerOptions {
	v := config.VConfig
	o := &LoggerOptions{
		APIKey:        v.GetString(config.APIKey),
		ProjectID:     v.GetString(config.ProjectID),
		BaseURL:       v.GetString(config.BaseURL),
		Timeout:       v.GetDuration(config.Timeout),
		Silent:        v.GetBool(config.Silent),
		BufferSize:    v.GetInt(config.BufferSize),
		FlushInterval: v.GetDuration(config.FlushInterval),
		PollInterval:  v.GetDuration(config.PollInterval),
		Name:          DefaultName,
		Metadata:      config.GetMetadataEnv(),
		Clock:         time.Now,
	}
	if !v.GetBool(config.Enabled) {
		o.Transport = transport.NewNullTransport()
	}
	return o
}

// Apply runs each option against o and returns it.
func (o *LoggerOptions) Apply(opts ...LoggerOptionsFunc) *LoggerOptions {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAPIKey sets the credential sent in the x-api-key header.
func WithAPIKey(key string) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.APIKey = key
	}
}

// WithProjectID sets the project sent in the x-project-id header.
func WithProjectID(id string) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.ProjectID = id
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.BaseURL = url
	}
}

// WithTimeout bounds every HTTP request.
func WithTimeout(d time.Duration) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.Timeout = d
	}
}

// WithSilent suppresses warnings about failed sends.
func WithSilent(silent bool) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.Silent = silent
	}
}

// WithBufferSize sets the number of buffered entries that triggers a flush.
// Values below 1 are treated as 1.
func WithBufferSize(n int) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.BufferSize = n
	}
}

// WithFlushInterval sets the maximum time an entry waits in the buffer. Zero
// or a negative value disables the background flusher and makes every Log
// flush synchronously.
func WithFlushInterval(d time.Duration) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.FlushInterval = d
	}
}

// WithPollInterval sets how often the background flusher checks the buffer.
func WithPollInterval(d time.Duration) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.PollInterval = d
	}
}

// WithTransport replaces the HTTP transport, for example with
// [transport.NewWriterTransport] for a dry run.
func WithTransport(t transport.Transport) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.Transport = t
	}
}

// WithHTTPClient supplies the client used by the HTTP transport.
func WithHTTPClient(c *http.Client) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.HTTPClient = c
	}
}

// WithName labels the logger's metrics and log messages.
func WithName(name string) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.Name = name
	}
}

// WithMetrics registers the logger's collectors on reg.
func WithMetrics(reg prometheus.Registerer) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.Registerer = reg
	}
}

// WithMetadata adds static metadata to every compliance entry.
func WithMetadata(md map[string]string) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		if o.Metadata == nil {
			o.Metadata = make(map[string]string, len(md))
		}
		for k, v := range md {
			o.Metadata[k] = v
		}
	}
}

// WithFlushHook calls fn after every non-empty flush, whether it was
// triggered by Log, the background flusher, Flush, or Close. fn runs on the
// flushing goroutine and may be called concurrently.
func WithFlushHook(fn func(types.FlushResult)) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.FlushHook = fn
	}
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) LoggerOptionsFunc {
	return func(o *LoggerOptions) {
		o.Clock = now
	}
}
