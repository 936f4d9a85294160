// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package media implements content type negotiation between a client's
// weighted Accept preferences and the types a server can produce.
package media

import (
	"fmt"
	"strings"
)

// Header names used throughout the wire protocol.
const (
	AcceptHeader      = "Accept"
	ContentTypeHeader = "Content-Type"
)

// Type identifies a body serialization format as a base type and subtype
// pair, e.g. "application/json".
type Type struct {
	base string
	sub  string
}

// The two body formats supported on the wire.
var (
	// JSON is the human readable structured text format.
	JSON = Type{base: "application", sub: "json"}

	// OctetStream is the compact binary format.
	OctetStream = Type{base: "application", sub: "octet-stream"}
)

// InvalidTypeError is returned by [Parse] when a value is not a
// well-formed basetype/subtype pair.
type InvalidTypeError struct {
	Value string
}

// Error implements the [error] interface.
func (e InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid media type: %q", e.Value)
}

// Parse parses a basetype/subtype pair. Parameters are not handled here;
// [ParseAccept] strips them before calling Parse.
func Parse(s string) (Type, error) {
	base, sub, ok := strings.Cut(s, "/")
	if !ok || base == "" || sub == "" || strings.Contains(sub, "/") {
		return Type{}, InvalidTypeError{Value: s}
	}
	return Type{base: base, sub: sub}, nil
}

// Base returns the base type, e.g. "application".
func (t Type) Base() string {
	return t.base
}

// Sub returns the subtype, e.g. "json".
func (t Type) Sub() string {
	return t.sub
}

// String implements the [fmt.Stringer] interface.
func (t Type) String() string {
	if t == (Type{}) {
		return ""
	}
	return t.base + "/" + t.sub
}
