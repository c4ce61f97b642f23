//
//  Copyright © Manetu Inc. All rights reserved.
//

package ingest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var requiredFields = []string{"prompt", "output", "model"}

type errorResponse struct {
	Error string `json:"error"`
}

type batchRequest struct {
	Logs []types.LogEntry `json:"logs"`
}

type batchResponse struct {
	Accepted int `json:"accepted"`
}

func (s *Server) requireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Header.Get(transport.HeaderAPIKey)
		if key == "" || (s.options.APIKey != "" && key != s.options.APIKey) {
			s.metrics.observe(c.Path(), http.StatusUnauthorized)
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "missing or invalid api key"})
		}
		return next(c)
	}
}

func (s *Server) handleLog(c echo.Context) error {
	var entry types.LogEntry
	if err := c.Bind(&entry); err != nil || entry == nil {
		return s.reject(c, "request body must be a JSON object")
	}
	if msg := checkEntry(entry); msg != "" {
		return s.reject(c, msg)
	}

	s.accept(entry)
	s.metrics.observe(transport.LogPath, http.StatusCreated)
	return c.JSON(http.StatusCreated, types.Response{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleBatch(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil || req.Logs == nil {
		return s.reject(c, `request body must be {"logs": [...]}`)
	}
	for i, entry := range req.Logs {
		if msg := checkEntry(entry); msg != "" {
			return s.reject(c, "logs["+strconv.Itoa(i)+"]: "+msg)
		}
	}

	s.accept(req.Logs...)
	logger.Debugf(agent, "Batch", "accepted %d entries for project %q",
		len(req.Logs), c.Request().Header.Get(transport.HeaderProjectID))

	s.metrics.observe(transport.BatchPath, http.StatusOK)
	return c.JSON(http.StatusOK, batchResponse{Accepted: len(req.Logs)})
}

func (s *Server) reject(c echo.Context, msg string) error {
	s.metrics.observe(c.Path(), http.StatusBadRequest)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

// checkEntry returns a description of the first problem with entry, or "".
func checkEntry(entry types.LogEntry) string {
	if entry == nil {
		return "entry must be a JSON object"
	}
	for _, field := range requiredFields {
		if v, ok := entry[field].(string); !ok || v == "" {
			return field + " is required and must be a non-empty string"
		}
	}
	return ""
}

func (s *Server) accept(entries ...types.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.received = append(s.received, entries...)
	s.metrics.entries.Add(float64(len(entries)))

	if s.options.Sink == nil {
		return
	}
	for _, entry := range entries {
		line, err := json.Marshal(entry)
		if err != nil {
			logger.Warnf(agent, "accept", "cannot encode entry for sink: %v", err)
			continue
		}
		if _, err := s.options.Sink.Write(append(line, '\n')); err != nil {
			logger.Warnf(agent, "accept", "sink write failed: %v", err)
		}
	}
}
