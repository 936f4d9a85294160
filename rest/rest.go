// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package rest implements the server side of the wire protocol.
//
// Handlers read typed request bodies with [RequestBody] and write typed
// response bodies with [Respond], which encodes the value in whichever of
// the two body formats the client's Accept header negotiates to. The
// [CaptureErrors] interceptor completes the protocol by turning any error
// returned from a handler into a properly negotiated error response whose
// body the client package can decode back into the original error value.
package rest

import (
	"fmt"
	"io"
	"net/http"

	"github.com/z5labs/courier/codec"
	"github.com/z5labs/courier/media"

	"github.com/z5labs/sdk-go/try"
)

// availableTypes are the response formats the server can produce, in
// server preference order. The first entry is the default when a client
// states no preference.
var availableTypes = []media.Type{media.JSON, media.OctetStream}

// RequestBody decodes the request body into v.
//
// The Content-Type header selects the serialization format. A missing or
// unknown content type fails with a [codec.UnsupportedMediaTypeError].
// The request body is consumed and closed.
func RequestBody(r *http.Request, v any) (err error) {
	defer try.Close(&err, r.Body)

	ct := r.Header.Get(media.ContentTypeHeader)
	if ct == "" {
		return codec.UnsupportedMediaTypeError{}
	}

	typ, err := media.Parse(ct)
	if err != nil {
		return codec.UnsupportedMediaTypeError{ContentType: ct}
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("unable to read request body: %w", err)
	}
	return codec.Decode(typ, data, v)
}

// Respond encodes body per the request's Accept header and writes it as a
// 200 response.
//
// The negotiated content type is stated in the Content-Type header of the
// response. A client preference which matches neither body format fails
// with a [media.NotAcceptableError].
func Respond(w http.ResponseWriter, r *http.Request, body any) error {
	accept, err := media.ParseAccept(r.Header)
	if err != nil {
		return err
	}
	return respond(w, accept, http.StatusOK, body)
}

func respond(w http.ResponseWriter, accept *media.Accept, status int, body any) error {
	typ, err := media.BestResponseType(accept, availableTypes)
	if err != nil {
		return err
	}

	data, err := codec.Encode(typ, body)
	if err != nil {
		return err
	}

	w.Header().Set(media.ContentTypeHeader, typ.String())
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}
