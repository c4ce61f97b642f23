//
//  Copyright © Manetu Inc. All rights reserved.
//

package core

import (
	"context"
	"sync"

	"github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/options"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/wrap"
)

// Handle holds one [ComplianceLogger] that is created on demand. The zero
// value is ready to use; every method except Init returns
// [common.ErrNotInitialized] until Init succeeds.
//
// Applications typically keep a single Handle and pass it to the code that
// needs to log:
//
//	var ai core.Handle
//	if err := ai.Init(options.WithAPIKey(key), options.WithProjectID(project)); err != nil {
//	    return err
//	}
//	defer ai.Close(ctx)
type Handle struct {
	mu     sync.RWMutex
	logger ComplianceLogger
}

// Init creates the logger. Calling Init again closes the previous logger,
// flushing its entries, and replaces it.
func (h *Handle) Init(loggerOptions ...options.LoggerOptionsFunc) error {
	l, err := NewComplianceLogger(loggerOptions...)
	if err != nil {
		return err
	}

	h.mu.Lock()
	prev := h.logger
	h.logger = l
	h.mu.Unlock()

	if prev != nil {
		if err := prev.Close(context.Background()); err != nil {
			logger.Warnw(agent, "Init", "final flush of replaced logger failed", "error", err.Error())
		}
	}
	return nil
}

// Logger returns the current logger.
func (h *Handle) Logger() (ComplianceLogger, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.logger == nil {
		return nil, common.ErrNotInitialized
	}
	return h.logger, nil
}

// Log queues an interaction on the current logger.
func (h *Handle) Log(ctx context.Context, interaction types.Interaction) (*types.Acknowledgment, error) {
	l, err := h.Logger()
	if err != nil {
		return nil, err
	}
	return l.Log(ctx, interaction)
}

// Flush flushes the current logger.
func (h *Handle) Flush(ctx context.Context) (types.FlushResult, error) {
	l, err := h.Logger()
	if err != nil {
		return types.FlushResult{}, err
	}
	return l.Flush(ctx), nil
}

// Wrap instruments fn with the current logger. For typed results use
// [wrap.Wrap] with the value returned by [Handle.Logger].
func (h *Handle) Wrap(spec wrap.Spec, fn wrap.Func[any]) (wrap.Func[any], error) {
	l, err := h.Logger()
	if err != nil {
		return nil, err
	}
	return wrap.Wrap[any](l, spec, fn), nil
}

// Close closes the current logger. The handle stays initialized; later Log
// calls return [common.ErrClosed].
func (h *Handle) Close(ctx context.Context) error {
	l, err := h.Logger()
	if err != nil {
		return err
	}
	return l.Close(ctx)
}
