// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package client

import (
	"net/http"

	"github.com/z5labs/courier"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Transport is a [http.RoundTripper] which applies [ResponseToResult] to
// every response. Install it once per client.
//
// Requests which fail without producing a response at all pass their
// transport error through unchanged; [courier.FromError] converts those
// into the API error type on demand.
//
// Transport is the inverse of the server side [rest.CaptureErrors]
// interceptor, which prepares the body of error responses for
// interpretation here.
type Transport[E any, PE courier.Catchable[E]] struct {
	base http.RoundTripper
}

// NewTransport initializes a [Transport] around base. A nil base means
// [http.DefaultTransport].
func NewTransport[E any, PE courier.Catchable[E]](base http.RoundTripper) *Transport[E, PE] {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport[E, PE]{
		base: base,
	}
}

// RoundTrip implements the [http.RoundTripper] interface.
func (t *Transport[E, PE]) RoundTrip(req *http.Request) (*http.Response, error) {
	res, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	return ResponseToResult[E, PE](res)
}

// NewClient returns a [http.Client] which parses error response bodies
// into the API error type E and is instrumented with otelhttp.
func NewClient[E any, PE courier.Catchable[E]](base http.RoundTripper) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(NewTransport[E, PE](base)),
	}
}
