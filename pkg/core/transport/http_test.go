//
//  Copyright © Manetu Inc. All rights reserved.
//

package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(t *testing.T, url string) *HTTPTransport {
	tr, err := NewHTTPTransport(HTTPConfig{
		BaseURL:   url + "/",
		APIKey:    "key-123",
		ProjectID: "proj-1",
		Timeout:   2 * time.Second,
		UserAgent: "regulateai-go-sdk/test",
	})
	require.NoError(t, err)
	return tr
}

func TestNewHTTPTransportValidation(t *testing.T) {
	_, err := NewHTTPTransport(HTTPConfig{BaseURL: "http://localhost"})
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = NewHTTPTransport(HTTPConfig{APIKey: "k"})
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestHTTPSendHeadersAndBody(t *testing.T) {
	var (
		gotPath    string
		gotHeaders http.Header
		gotBody    map[string]interface{}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accepted": 1}`))
	}))
	defer server.Close()

	tr := newTestTransport(t, server.URL)
	resp, err := tr.Send(context.Background(), BatchPath, &Batch{Logs: []types.LogEntry{{"prompt": "p"}}})
	require.NoError(t, err)

	assert.Equal(t, "/ingest/logs", gotPath)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "key-123", gotHeaders.Get(HeaderAPIKey))
	assert.Equal(t, "proj-1", gotHeaders.Get(HeaderProjectID))
	assert.Equal(t, "regulateai-go-sdk/test", gotHeaders.Get("User-Agent"))
	assert.NotEmpty(t, gotHeaders.Get(HeaderRequestID))

	logs, ok := gotBody["logs"].([]interface{})
	require.True(t, ok)
	assert.Len(t, logs, 1)
	assert.EqualValues(t, 1, resp["accepted"])
}

func TestHTTPSendOmitsEmptyProjectID(t *testing.T) {
	var present bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[http.CanonicalHeaderKey(HeaderProjectID)]
		_, _ = w.Write([]byte(`{"id":"abc","created_at":"2025-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	tr, err := NewHTTPTransport(HTTPConfig{BaseURL: server.URL, APIKey: "k"})
	require.NoError(t, err)

	resp, err := tr.Send(context.Background(), LogPath, map[string]interface{}{"prompt": "p"})
	require.NoError(t, err)
	assert.False(t, present)
	assert.Equal(t, "abc", resp["id"])
}

func TestHTTPSendEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resp, err := newTestTransport(t, server.URL).Send(context.Background(), BatchPath, &Batch{})
	require.NoError(t, err)
	assert.Empty(t, resp)
}

func TestHTTPSendAPIErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "json error field", status: 401, body: `{"error":"invalid api key"}`, message: "invalid api key"},
		{name: "json without error field", status: 400, body: `{"detail":"x"}`, message: `{"detail":"x"}`},
		{name: "plain text", status: 502, body: "bad gateway", message: "bad gateway"},
		{name: "non-string error", status: 422, body: `{"error":{"code":7}}`, message: "map[code:7]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestTransport(t, server.URL).Send(context.Background(), LogPath, map[string]string{})
			require.Error(t, err)

			var apiErr *common.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestHTTPSendNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestTransport(t, url).Send(context.Background(), BatchPath, &Batch{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestHTTPSendTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	tr, err := NewHTTPTransport(HTTPConfig{BaseURL: server.URL, APIKey: "k", Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = tr.Send(context.Background(), BatchPath, &Batch{})
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestHTTPSendNonJSONSuccess(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
	}{
		{name: "plain text", code: http.StatusOK, body: "ok"},
		{name: "accepted text", code: http.StatusAccepted, body: "accepted"},
		{name: "json array", code: http.StatusOK, body: "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := newTestTransport(t, server.URL).Send(context.Background(), BatchPath, &Batch{})
			require.NoError(t, err)
			assert.Empty(t, resp)
		})
	}
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "nope", errorDetail([]byte(`{"error":"nope"}`)))
	assert.Equal(t, "[1,2]", errorDetail([]byte(`[1,2]`)))
	assert.Equal(t, "", errorDetail(nil))
}
