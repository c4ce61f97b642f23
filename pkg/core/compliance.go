//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package core provides the primary interface for logging AI interactions to
// a remote compliance API.
//
// Two loggers are offered:
//   - [ComplianceLogger] buffers entries and delivers them in batches, either
//     when the buffer fills, when the flush interval elapses, or on Close.
//     Log returns a provisional [types.Acknowledgment] immediately.
//   - [AILogger] sends every entry synchronously and returns the server's
//     [types.Response].
//
// # Quick Start
//
//	logger, err := core.NewComplianceLogger(
//	    options.WithAPIKey("sk-live-..."),
//	    options.WithProjectID("proj-123"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Close(context.Background())
//
//	ack, err := logger.Log(ctx, types.Interaction{
//	    Prompt: "What is 2+2?",
//	    Output: "4",
//	    Model:  "gpt-4o",
//	})
//
// # Delivery Guarantees
//
// Delivery is best-effort. A batch that fails to send is dropped and reported
// as a warning (unless the logger is silent); it is never retried. Only
// validation errors are returned from Log.
//
// Settings not passed as options are read from the environment and the
// configuration file. See the [config] package for details.
package core

import (
	"context"
	"sync"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/internal/core"
	"github.com/Chavda-Mitul/AI-Logger/internal/logging"
	"github.com/Chavda-Mitul/AI-Logger/internal/version"
	"github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/config"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/metrics"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/options"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var logger = logging.GetLogger("ailog")

const agent = "logger"

// Default API endpoints.
const (
	DefaultComplianceURL = "https://api.regulateai.io"
	DefaultSimpleURL     = "https://api.ailogger.io"
)

// ComplianceLogger records AI interactions for batched delivery.
//
// Implementations are safe for concurrent use by multiple goroutines.
type ComplianceLogger interface {
	// Log validates the interaction and queues it for delivery.
	//
	// If the queue reaches its capacity, or the flush interval has elapsed,
	// the queue is flushed on the calling goroutine before Log returns.
	// Delivery failures are never returned; only an [common.InvalidArgumentError]
	// for a missing prompt, output, or model, or [common.ErrClosed].
	Log(ctx context.Context, interaction types.Interaction) (*types.Acknowledgment, error)

	// Flush sends everything queued so far as one batch.
	Flush(ctx context.Context) types.FlushResult

	// Close stops the background flusher and flushes what remains. It returns
	// the error of that final flush, if any. Close is idempotent.
	Close(ctx context.Context) error

	// Pending returns the number of queued entries.
	Pending() int
}

// ComplianceLoggerImpl is the default implementation of [ComplianceLogger].
//
// Use [NewComplianceLogger] to create a properly initialized instance.
type ComplianceLoggerImpl struct {
	coord   *core.Coordinator
	metrics *metrics.Metrics
	reg     prometheus.Registerer
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
}

// NewComplianceLogger creates a [ComplianceLogger] and starts its background
// flusher.
//
// Unless a transport is supplied with [options.WithTransport], entries are
// POSTed to the compliance API, which requires an API key and a project ID:
//
//	logger, err := core.NewComplianceLogger(
//	    options.WithAPIKey(key),
//	    options.WithProjectID(project),
//	    options.WithBufferSize(100),
//	    options.WithFlushInterval(2*time.Second),
//	)
//
// Returns an error if configuration loading fails, a required setting is
// missing, or the metrics cannot be registered.
func NewComplianceLogger(loggerOptions ...options.LoggerOptionsFunc) (ComplianceLogger, error) {
	err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "error loading config")
	}

	opts := options.FromConfig().Apply(loggerOptions...)
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	t := opts.Transport
	if t == nil {
		if err := common.RequireNonEmpty("project_id", opts.ProjectID); err != nil {
			return nil, err
		}
		t, err = newHTTPTransport(opts, DefaultComplianceURL, "regulateai")
		if err != nil {
			return nil, err
		}
	}

	m := metrics.New(opts.Name)
	if opts.Registerer != nil {
		if err := m.Register(opts.Registerer); err != nil {
			return nil, errors.Wrapf(err, "error registering metrics for logger %q", opts.Name)
		}
	}

	coord := core.NewCoordinator(opts, t, m)
	coord.Start()

	logger.Debugf(agent, "NewComplianceLogger", "logger %s started (buffer=%d, interval=%s)",
		opts.Name, opts.BufferSize, opts.FlushInterval)

	return &ComplianceLoggerImpl{
		coord:   coord,
		metrics: m,
		reg:     opts.Registerer,
		now:     opts.Clock,
	}, nil
}

func newHTTPTransport(opts *options.LoggerOptions, defaultURL, product string) (transport.Transport, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultURL
	}
	t, err := transport.NewHTTPTransport(transport.HTTPConfig{
		BaseURL:   baseURL,
		APIKey:    opts.APIKey,
		ProjectID: opts.ProjectID,
		Timeout:   opts.Timeout,
		UserAgent: version.UserAgent(product),
		Client:    opts.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Log validates the interaction and queues it for delivery. See
// [ComplianceLogger.Log].
func (l *ComplianceLoggerImpl) Log(ctx context.Context, interaction types.Interaction) (*types.Acknowledgment, error) {
	if err := interaction.Validate(); err != nil {
		return nil, err
	}
	entry := interaction.Entry()

	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return nil, common.ErrClosed
	}
	full := l.coord.Enqueue(entry)
	l.mu.RUnlock()

	if full || l.coord.ShouldFlush() {
		l.coord.Flush(ctx)
	}

	return types.NewAcknowledgment(l.now()), nil
}

// Flush sends everything queued so far as one batch.
func (l *ComplianceLoggerImpl) Flush(ctx context.Context) types.FlushResult {
	return l.coord.Flush(ctx)
}

// Close stops the background flusher and flushes what remains.
func (l *ComplianceLoggerImpl) Close(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	res := l.coord.Stop(ctx)
	if l.reg != nil {
		l.metrics.Unregister(l.reg)
	}
	return res.Err
}

// Pending returns the number of queued entries.
func (l *ComplianceLoggerImpl) Pending() int {
	return l.coord.Pending()
}
