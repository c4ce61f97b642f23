//
//  Copyright © Manetu Inc. All rights reserved.
//

package transport

import "context"

// NullTransport implements the Transport interface but drops every request on
// the floor. It is useful when logging should be disabled by configuration,
// such as in tests or local development without credentials.
type NullTransport struct{}

// NewNullTransport creates a new NullTransport.
func NewNullTransport() Transport {
	return &NullTransport{}
}

// Send discards body and returns an empty response.
func (t *NullTransport) Send(ctx context.Context, path string, body interface{}) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}
