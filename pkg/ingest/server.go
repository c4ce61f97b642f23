//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package ingest provides a local implementation of the remote logging API.
//
// The server accepts the same requests the SDK loggers send, which makes it
// useful for development without network access and for end-to-end tests:
//
//	srv, _ := ingest.CreateServer(8080, ingest.Options{APIKey: "dev-key"})
//	defer srv.Stop(ctx)
//
//	logger, _ := core.NewComplianceLogger(
//	    options.WithBaseURL("http://localhost:8080"),
//	    options.WithAPIKey("dev-key"),
//	    options.WithProjectID("local"),
//	)
//
// # Endpoints
//
//   - POST /log: one entry, answered with {"id", "created_at"}
//   - POST /ingest/logs: {"logs": [...]}, answered with {"accepted": n}
//   - GET /metrics: Prometheus metrics for the server
//
// Both POST endpoints require an x-api-key header.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/Chavda-Mitul/AI-Logger/internal/logging"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger = logging.GetLogger("ailog.ingest")

const agent = "ingest"

// Options configures a [Server].
type Options struct {
	// APIKey, when set, is the only key accepted. Otherwise any non-empty key is.
	APIKey string
	// Sink receives every accepted entry as one line of JSON.
	Sink io.Writer
}

// Server is the ingest API server.
type Server struct {
	echo    *echo.Echo
	options Options
	metrics *serverMetrics

	mu       sync.Mutex
	received []types.LogEntry
}

// New creates a Server with its routes registered but not listening. Use
// [Server.Handler] to serve it, or [CreateServer] to create and start one.
func New(opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	reg := prometheus.NewRegistry()
	s := &Server{
		echo:    e,
		options: opts,
		metrics: newServerMetrics(reg),
	}

	e.POST(transport.LogPath, s.handleLog, s.requireAPIKey)
	e.POST(transport.BatchPath, s.handleBatch, s.requireAPIKey)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return s
}

// CreateServer creates a Server and starts it on port. Port 0 picks a free
// port; see [Server.Addr].
func CreateServer(port int, opts Options) (*Server, error) {
	s := New(opts)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	s.echo.Listener = ln

	// Start server in goroutine since e.Start() blocks
	go func() {
		if err := s.echo.Start(""); err != nil && err != http.ErrServerClosed {
			logger.Errorf(agent, "CreateServer", "ingest server stopped: %v", err)
		}
	}()

	logger.Infof(agent, "CreateServer", "ingest server listening on %s", ln.Addr())
	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the listening address of a started server.
func (s *Server) Addr() net.Addr {
	return s.echo.ListenerAddr()
}

// Received returns a copy of every entry accepted so far, in arrival order.
func (s *Server) Received() []types.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.LogEntry, len(s.received))
	copy(out, s.received)
	return out
}

// Stop gracefully stops the Server by shutting down the Echo HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
