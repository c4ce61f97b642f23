//
//  Copyright © Manetu Inc. All rights reserved.
//

package core_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Chavda-Mitul/AI-Logger/internal/core/test"
	"github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/options"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/wrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleNotInitialized(t *testing.T) {
	var h core.Handle
	ctx := context.Background()

	_, err := h.Logger()
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	_, err = h.Log(ctx, interaction("a"))
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	_, err = h.Flush(ctx)
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	_, err = h.Wrap(wrap.Spec{Model: "m"}, func(context.Context, string) (any, error) { return "x", nil })
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	assert.ErrorIs(t, h.Close(ctx), common.ErrNotInitialized)
}

func TestHandleLifecycle(t *testing.T) {
	require.NoError(t, test.SetupTestConfig())

	var buf bytes.Buffer
	var h core.Handle
	require.NoError(t, h.Init(
		options.WithTransport(transport.NewWriterTransport(&buf, transport.WriterOptions{})),
		options.WithBufferSize(50),
	))
	ctx := context.Background()

	ack, err := h.Log(ctx, interaction("a"))
	require.NoError(t, err)
	assert.True(t, ack.Buffered)

	ask, err := h.Wrap(wrap.Spec{Model: "gpt-4o"}, func(_ context.Context, prompt string) (any, error) {
		return "answer to " + prompt, nil
	})
	require.NoError(t, err)
	out, err := ask(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "answer to b", out)

	res, err := h.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Entries)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"output":"answer to b"`)

	require.NoError(t, h.Close(ctx))
	_, err = h.Log(ctx, interaction("c"))
	assert.ErrorIs(t, err, common.ErrClosed)
}

func TestHandleReinitFlushesPrevious(t *testing.T) {
	require.NoError(t, test.SetupTestConfig())

	var first, second bytes.Buffer
	var h core.Handle
	require.NoError(t, h.Init(
		options.WithTransport(transport.NewWriterTransport(&first, transport.WriterOptions{})),
		options.WithBufferSize(50),
	))
	_, err := h.Log(context.Background(), interaction("a"))
	require.NoError(t, err)

	require.NoError(t, h.Init(options.WithTransport(transport.NewWriterTransport(&second, transport.WriterOptions{}))))
	assert.Contains(t, first.String(), `"prompt":"a"`)
	assert.Empty(t, second.String())
	require.NoError(t, h.Close(context.Background()))
}
