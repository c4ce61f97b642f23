//
//  Copyright © Manetu Inc. All rights reserved.
//

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/internal/logging"
	"github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var logger = logging.GetLogger("ailog.transport")

const agent = "http"

// Request headers understood by the remote logging API.
const (
	HeaderAPIKey    = "x-api-key"
	HeaderProjectID = "x-project-id"
	HeaderRequestID = "x-request-id"
)

// DefaultTimeout bounds every request when HTTPConfig.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// HTTPConfig describes a remote logging API endpoint.
type HTTPConfig struct {
	// BaseURL is the API root, e.g. "https://api.regulateai.io". A trailing slash is ignored.
	BaseURL string
	// APIKey is sent in the x-api-key header. Required.
	APIKey string
	// ProjectID is sent in the x-project-id header when non-empty.
	ProjectID string
	// Timeout bounds each request, including reading the response.
	Timeout time.Duration
	// UserAgent identifies the client library.
	UserAgent string
	// Client overrides the HTTP client. Its Timeout is left untouched.
	Client *http.Client
}

// HTTPTransport POSTs JSON bodies to the remote logging API.
type HTTPTransport struct {
	baseURL   string
	apiKey    string
	projectID string
	userAgent string
	client    *http.Client
}

// NewHTTPTransport creates a [Transport] for the API described by cfg.
// Returns an [common.InvalidArgumentError] when BaseURL or APIKey is empty.
func NewHTTPTransport(cfg HTTPConfig) (*HTTPTransport, error) {
	if err := common.RequireNonEmpty("base_url", cfg.BaseURL); err != nil {
		return nil, err
	}
	if err := common.RequireNonEmpty("api_key", cfg.APIKey); err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &HTTPTransport{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		projectID: cfg.ProjectID,
		userAgent: cfg.UserAgent,
		client:    client,
	}, nil
}

// Send POSTs body as JSON to the API at path and decodes the JSON response.
func (t *HTTPTransport) Send(ctx context.Context, path string, body interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding request for %s", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAPIKey, t.apiKey)
	req.Header.Set(HeaderRequestID, requestID)
	if t.projectID != "" {
		req.Header.Set(HeaderProjectID, t.projectID)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	logger.Debugf(agent, "Send", "POST %s (%d bytes, request %s)", path, len(data), requestID)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &common.NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &common.NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, common.NewAPIError(resp.StatusCode, errorDetail(raw))
	}

	result := make(map[string]interface{})
	if len(bytes.TrimSpace(raw)) == 0 {
		return result, nil
	}
	// the request was accepted; a body that is not a JSON object carries
	// nothing the loggers read
	if err := json.Unmarshal(raw, &result); err != nil {
		logger.Debugf(agent, "Send", "ignoring non-JSON %d response from %s: %v", resp.StatusCode, path, err)
		return make(map[string]interface{}), nil
	}
	return result, nil
}

// errorDetail extracts the "error" field from a JSON error body, falling back
// to the raw body text.
func errorDetail(raw []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err == nil {
		if detail, ok := body["error"]; ok && detail != nil {
			if s, ok := detail.(string); ok {
				return s
			}
			return fmt.Sprint(detail)
		}
	}
	return string(raw)
}
