//
//  Copyright © Manetu Inc. All rights reserved.
//

package send

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/Chavda-Mitul/AI-Logger/pkg/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := Command()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{"send"}, args...))
	return out.String(), err
}

func TestSendToIngestServer(t *testing.T) {
	srv := ingest.New(ingest.Options{APIKey: "cli-key"})
	httpServer := httptest.NewServer(srv.Handler())
	defer httpServer.Close()

	out, err := run(t,
		"--prompt", "What is 2+2?",
		"--output", "4",
		"--model", "gpt-4o",
		"--user-id", "u-1",
		"--latency-ms", "87",
		"--meta", "team=search",
		"--api-key", "cli-key",
		"--base-url", httpServer.URL,
	)
	require.NoError(t, err)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp["id"])

	received := srv.Received()
	require.Len(t, received, 1)
	assert.Equal(t, "u-1", received[0]["userId"])
	assert.Equal(t, float64(87), received[0]["latencyMs"])
	assert.Equal(t, map[string]interface{}{"team": "search"}, received[0]["metadata"])
}

func TestSendDryRun(t *testing.T) {
	out, err := run(t, "--prompt", "p", "--output", "o", "--model", "m", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, `"path": "/log"`)
	assert.Contains(t, out, `"created_at"`)
}

func TestSendRejectedByServer(t *testing.T) {
	srv := ingest.New(ingest.Options{APIKey: "cli-key"})
	httpServer := httptest.NewServer(srv.Handler())
	defer httpServer.Close()

	_, err := run(t, "--prompt", "p", "--output", "o", "--model", "m",
		"--api-key", "wrong", "--base-url", httpServer.URL)
	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestSendRequiresModel(t *testing.T) {
	_, err := run(t, "--prompt", "p", "--output", "o", "--dry-run")
	assert.Error(t, err)
}
