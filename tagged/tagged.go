// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package tagged encodes binary values as tag-prefixed base64 tokens which
// are safe to embed in URLs and JSON strings.
//
// A token has the form "TAG~base64", where TAG is a short ASCII string
// declared by the value's type and base64 uses the URL-safe alphabet
// without padding. The tag is checked before any bytes are decoded, so a
// blob of the wrong semantic type is never silently accepted even when its
// bytes would deserialize validly.
package tagged

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"strings"
)

// Delimiter separates the tag from the base64 encoded bytes.
const Delimiter = "~"

// Blob is implemented by values which serialize as tagged base64 tokens.
type Blob interface {
	encoding.BinaryMarshaler

	// Tag returns the short ASCII tag identifying the value's type.
	// It is matched case-sensitively during decoding.
	Tag() string
}

// Unmarshaler constrains pointer-to-T blob types which can decode
// themselves from their canonical binary serialization.
type Unmarshaler[T any] interface {
	*T
	Blob
	encoding.BinaryUnmarshaler
}

// TagMismatchError is returned by [Decode] when a token's tag does not
// match the target type's declared tag.
type TagMismatchError struct {
	Actual   string
	Expected string
}

// Error implements the [error] interface.
func (e TagMismatchError) Error() string {
	return fmt.Sprintf("tag mismatch: got %q, want %q", e.Actual, e.Expected)
}

// SerializationError is returned when a token is structurally malformed or
// its bytes fail to deserialize into the target type.
type SerializationError struct {
	Cause error
}

// Error implements the [error] interface.
func (e SerializationError) Error() string {
	return fmt.Sprintf("unable to deserialize tagged blob: %v", e.Cause)
}

// Unwrap returns the underlying failure.
func (e SerializationError) Unwrap() error {
	return e.Cause
}

// Encode renders b as its tagged base64 token.
func Encode(b Blob) (string, error) {
	data, err := b.MarshalBinary()
	if err != nil {
		return "", SerializationError{Cause: err}
	}
	return b.Tag() + Delimiter + base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses token into a T.
//
// The token's tag is compared against T's declared tag first. On mismatch
// Decode fails with a [TagMismatchError] without attempting to decode any
// bytes. Malformed tokens and byte-level deserialization failures are
// reported as a [SerializationError].
func Decode[T any, PT Unmarshaler[T]](token string) (*T, error) {
	var t T
	pt := PT(&t)

	tag, encoded, ok := strings.Cut(token, Delimiter)
	if !ok {
		return nil, SerializationError{
			Cause: fmt.Errorf("token is missing the %q delimiter", Delimiter),
		}
	}
	if tag != pt.Tag() {
		return nil, TagMismatchError{Actual: tag, Expected: pt.Tag()}
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, SerializationError{Cause: err}
	}

	err = pt.UnmarshalBinary(data)
	if err != nil {
		return nil, SerializationError{Cause: err}
	}
	return &t, nil
}
