// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package codec serializes request and response bodies in the two wire
// formats: human readable JSON and compact binary CBOR. The content type
// selects the format.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/z5labs/courier/media"
)

// UnsupportedMediaTypeError is returned when a body carries a content type
// which is not one of the two known formats, or no content type at all.
type UnsupportedMediaTypeError struct {
	// ContentType is the offending value. Empty means the header
	// was never set.
	ContentType string
}

// Error implements the [error] interface.
func (e UnsupportedMediaTypeError) Error() string {
	if e.ContentType == "" {
		return "unspecified content type"
	}
	return fmt.Sprintf("unsupported content type %s", e.ContentType)
}

// DecodeError is returned when bytes in the binary format fail to
// deserialize into the target value.
type DecodeError struct {
	Cause error
}

// Error implements the [error] interface.
func (e DecodeError) Error() string {
	return fmt.Sprintf("unable to deserialize body: %v", e.Cause)
}

// Unwrap returns the underlying deserialization failure.
func (e DecodeError) Unwrap() error {
	return e.Cause
}

// Encode serializes v into the body format identified by t.
func Encode(t media.Type, v any) ([]byte, error) {
	switch t {
	case media.JSON:
		return json.Marshal(v)
	case media.OctetStream:
		return encMode.Marshal(v)
	default:
		return nil, UnsupportedMediaTypeError{ContentType: t.String()}
	}
}

// Decode deserializes data, in the body format identified by t, into v.
//
// JSON failures are returned as-is. Binary failures are wrapped in a
// [DecodeError] carrying the underlying failure text.
func Decode(t media.Type, data []byte, v any) error {
	switch t {
	case media.JSON:
		return json.Unmarshal(data, v)
	case media.OctetStream:
		err := decMode.Unmarshal(data, v)
		if err != nil {
			return DecodeError{Cause: err}
		}
		return nil
	default:
		return UnsupportedMediaTypeError{ContentType: t.String()}
	}
}

// DecodeStrict behaves like [Decode] but rejects fields in data which the
// target value does not declare.
//
// The client-side error parser uses it to distinguish a body which really
// is a serialized API error from a structurally foreign body that merely
// happens to be well-formed JSON or CBOR.
func DecodeStrict(t media.Type, data []byte, v any) error {
	switch t {
	case media.JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case media.OctetStream:
		err := strictDecMode.Unmarshal(data, v)
		if err != nil {
			return DecodeError{Cause: err}
		}
		return nil
	default:
		return UnsupportedMediaTypeError{ContentType: t.String()}
	}
}
