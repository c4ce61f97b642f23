//
//  Copyright © Manetu Inc. All rights reserved.
//

package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/config"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/options"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	pkgerrors "github.com/pkg/errors"
)

// AILogger sends each interaction to the API as soon as it is logged.
//
// AILogger is safe for concurrent use by multiple goroutines.
type AILogger struct {
	transport transport.Transport
	silent    bool
}

// NewAILogger creates an [AILogger]. Unless a transport is supplied with
// [options.WithTransport], an API key is required; the project ID is optional.
// Buffering options are ignored.
func NewAILogger(loggerOptions ...options.LoggerOptionsFunc) (*AILogger, error) {
	if err := config.Load(); err != nil {
		return nil, pkgerrors.Wrap(err, "error loading config")
	}

	opts := options.FromConfig().Apply(loggerOptions...)

	t := opts.Transport
	if t == nil {
		var err error
		t, err = newHTTPTransport(opts, DefaultSimpleURL, "ai-logger")
		if err != nil {
			return nil, err
		}
	}

	return &AILogger{transport: t, silent: opts.Silent}, nil
}

// Log validates the interaction, sends it, and returns the server's
// confirmation.
//
// Every failure is returned. Network failures are additionally reported as a
// warning unless the logger is silent.
func (l *AILogger) Log(ctx context.Context, interaction types.Interaction) (*types.Response, error) {
	if err := interaction.Validate(); err != nil {
		return nil, err
	}

	resp, err := l.transport.Send(ctx, transport.LogPath, interaction.SimpleEntry())
	if err != nil {
		if errors.Is(err, common.ErrNetwork) && !l.silent {
			logger.Warnw(agent, "Log", "failed to log interaction", "error", err.Error())
		}
		return nil, err
	}

	return &types.Response{
		ID:        stringField(resp, "id"),
		CreatedAt: stringField(resp, "created_at"),
	}, nil
}

func stringField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
