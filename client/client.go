// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package client implements the client side of the wire protocol.
//
// [ResponseToResult] inspects a response's status and, when it is not
// success, reconstructs the API error the server encoded into the body,
// degrading gracefully to the error type's catch-all variant when the
// body turns out not to be a serialized error at all. [Transport] applies
// that conversion after every request so callers only ever observe either
// a successful response, whose payload they decode with [ResponseBody],
// or a typed error.
package client

import (
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/z5labs/courier"
	"github.com/z5labs/courier/codec"
	"github.com/z5labs/courier/media"

	"github.com/z5labs/sdk-go/try"
)

// ResponseBody decodes the response body into v.
//
// The Content-Type header selects the serialization format. A missing or
// unknown content type fails with a [codec.UnsupportedMediaTypeError].
// The response body is consumed and closed.
func ResponseBody(res *http.Response, v any) (err error) {
	defer try.Close(&err, res.Body)

	ct := res.Header.Get(media.ContentTypeHeader)
	if ct == "" {
		return codec.UnsupportedMediaTypeError{}
	}

	typ, err := media.Parse(ct)
	if err != nil {
		return codec.UnsupportedMediaTypeError{ContentType: ct}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("unable to read response body: %w", err)
	}
	return codec.Decode(typ, data, v)
}

// ResponseToResult converts a response with a non-success status into a
// typed error.
//
// A 200 response is returned unchanged, body untouched, for the caller to
// decode with [ResponseBody]. Any other status is converted into an *E
// and returned as the error; the caller never observes a raw, unparsed
// error response. To recover the typed error from a wrapped error chain
// use [courier.FromError].
func ResponseToResult[E any, PE courier.Catchable[E]](res *http.Response) (*http.Response, error) {
	if res.StatusCode == http.StatusOK {
		return res, nil
	}

	defer res.Body.Close()
	return nil, responseError[E, PE](res)
}

// responseError reconstructs the typed error from a non-success response.
//
// The body is read once as raw bytes, then a series of decodings is
// attempted, each stage falling back to a less structured interpretation:
//
//  1. a body in one of the two known formats which strictly decodes to an
//     E is returned as that E;
//  2. a body which is valid text becomes the catch-all variant carrying
//     the text verbatim;
//  3. anything else becomes the catch-all variant naming the status, the
//     content type, and the raw bytes in hex.
//
// This ladder guarantees some diagnostic always survives, even when the
// server-side error type is unknown to this client.
func responseError[E any, PE courier.Catchable[E]](res *http.Response) PE {
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return courier.NewCatchAll[E, PE](fmt.Sprintf(
			"Request terminated with error %d. Failed to read request body due to %s",
			res.StatusCode,
			err,
		))
	}

	ct := res.Header.Get(media.ContentTypeHeader)
	if typ, err := media.Parse(ct); err == nil {
		// Strict decoding so a structurally foreign body, e.g.
		// {"error": "x"}, is not mistaken for a serialized E and
		// falls through to the text stage instead.
		var e E
		if decErr := codec.DecodeStrict(typ, data, &e); decErr == nil {
			return PE(&e)
		}
	}

	if utf8.Valid(data) {
		return courier.NewCatchAll[E, PE](string(data))
	}

	if ct == "" {
		ct = "unspecified"
	}
	return courier.NewCatchAll[E, PE](fmt.Sprintf(
		"Request terminated with error %d. Content-Type: %s. Body: 0x%s",
		res.StatusCode,
		ct,
		hex.EncodeToString(data),
	))
}
