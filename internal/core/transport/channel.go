//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package transport provides in-process transports for exercising loggers in
// tests without a network.
package transport

import (
	"context"
	"sync"

	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
)

// Request is one call observed by a [ChannelTransport].
type Request struct {
	Path string
	Body interface{}
}

// ChannelTransport implements the Transport interface by writing every request
// to a channel. A failure function may be installed to make Send return an
// error after the request has been recorded.
type ChannelTransport struct {
	ch chan Request

	mu   sync.Mutex
	fail func(Request) error
}

// NewChannelTransport creates a Transport that publishes requests to ch.
func NewChannelTransport(ch chan Request) *ChannelTransport {
	return &ChannelTransport{ch: ch}
}

var _ transport.Transport = (*ChannelTransport)(nil)

// FailWith installs fn to decide the outcome of subsequent requests; a nil
// fn restores success.
func (t *ChannelTransport) FailWith(fn func(Request) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fail = fn
}

// Send records the request on the channel, then applies the failure function.
func (t *ChannelTransport) Send(ctx context.Context, path string, body interface{}) (map[string]interface{}, error) {
	req := Request{Path: path, Body: body}
	select {
	case t.ch <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	t.mu.Lock()
	fail := t.fail
	t.mu.Unlock()
	if fail != nil {
		if err := fail(req); err != nil {
			return nil, err
		}
	}
	return map[string]interface{}{}, nil
}

// Close finalizes the transport by closing the underlying channel.
func (t *ChannelTransport) Close() {
	if t.ch != nil {
		close(t.ch)
	}
}
