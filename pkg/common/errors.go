//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package common provides shared types and utilities used across the
// SDK packages.
//
// # Error Handling
//
// The SDK distinguishes four classes of failure:
//   - [InvalidArgumentError]: a required field or setting is missing or empty.
//     Always returned synchronously to the caller.
//   - [NetworkError]: the request never produced an HTTP response (DNS,
//     connection refused, timeout).
//   - [APIError]: the remote API answered with a non-2xx status.
//   - [ErrNotInitialized] / [ErrClosed]: a logger handle was used before
//     initialization or after it was closed.
//
// Use [errors.Is] with the sentinel values ([ErrInvalidArgument], [ErrNetwork])
// or [errors.As] with the concrete types to classify an error.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument matches every [InvalidArgumentError] via [errors.Is].
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNetwork matches every [NetworkError] via [errors.Is].
	ErrNetwork = errors.New("network error")

	// ErrNotInitialized is returned by a [core.Handle] that has not been initialized.
	ErrNotInitialized = errors.New("logger not initialized: call Init first")

	// ErrClosed is returned when a logger is used after Close.
	ErrClosed = errors.New("logger is closed")
)

// InvalidArgumentError reports a missing or malformed required value.
type InvalidArgumentError struct {
	// Field is the name of the offending field or setting (e.g. "prompt", "api_key").
	Field string
	// Reason is a human-readable description of the problem.
	Reason string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// Is reports whether target is [ErrInvalidArgument].
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewInvalidArgument creates an [InvalidArgumentError] for the named field.
func NewInvalidArgument(field, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Field: field, Reason: reason}
}

// RequireNonEmpty returns an [InvalidArgumentError] when value is empty.
func RequireNonEmpty(field, value string) error {
	if value == "" {
		return NewInvalidArgument(field, "is required and must be a non-empty string")
	}
	return nil
}

// NetworkError wraps a transport-level failure that prevented any HTTP
// response from being received.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrNetwork].
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// APIError represents a non-2xx response from the remote logging API.
type APIError struct {
	// StatusCode is the HTTP status returned by the server.
	StatusCode int
	// Message is the server's "error" field when the body is JSON, or the raw body otherwise.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s(status-%d)", e.Message, e.StatusCode)
}

// NewAPIError creates a new [APIError].
func NewAPIError(status int, msg string) *APIError {
	return &APIError{StatusCode: status, Message: msg}
}
