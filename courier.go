// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package courier defines the typed error protocol which the rest and client
// packages implement over HTTP.
//
// An API built on courier declares a single error type for all of its
// endpoints. The server encodes that type into the body of every error
// response and the client decodes it back, so both sides of the wire observe
// the exact same error value. Any failure which cannot be represented by the
// API's error type is degraded into the type's catch-all variant, which is
// always constructible from a plain message.
package courier

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// Logger returns a [slog.Logger] backed by the global OTel LoggerProvider.
func Logger(name string) *slog.Logger {
	return otelslog.NewLogger(name)
}

// LogHandler returns a [slog.Handler] backed by the global OTel LoggerProvider.
func LogHandler(name string) slog.Handler {
	return otelslog.NewHandler(name)
}

// Error is implemented by API error types which can be carried across the
// wire. Values must also be encodable by the codec package in both body
// formats, which only requires the usual json and cbor struct tags.
type Error interface {
	error

	// Status reports the HTTP status code for the error response.
	Status() int
}

// Catchable constrains pointer-to-E API error types which provide a
// catch-all variant. The catch-all variant guarantees that any failure,
// including ones the API never anticipated, can still be represented
// as an E.
//
// Methods are expected on the pointer receiver so that [FromError] can
// recover an *E with [errors.As].
type Catchable[E any] interface {
	*E
	Error

	// CatchAll resets the error to its catch-all variant carrying msg.
	CatchAll(msg string)
}

// NewCatchAll constructs the catch-all variant of E from msg.
func NewCatchAll[E any, PE Catchable[E]](msg string) PE {
	var e E
	pe := PE(&e)
	pe.CatchAll(msg)
	return pe
}

// FromError converts an arbitrary error into the API error type E.
//
// If err already carries an *E in its tree, that value is recovered
// unchanged. Otherwise the catch-all variant is built from the display
// text of err. This is the common conversion used by both the server-side
// capture interceptor and the client-side response parser.
func FromError[E any, PE Catchable[E]](err error) PE {
	var pe PE
	if errors.As(err, &pe) {
		return pe
	}
	return NewCatchAll[E, PE](err.Error())
}
