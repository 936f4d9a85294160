// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/try"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Handler represents a RPC style implementation of the core
// logic for your [http.Handler].
type Handler[Req, Resp any] interface {
	Handle(context.Context, *Req) (*Resp, error)
}

// HandlerFunc is an adapter to allow the use of ordinary functions
// as [Handler]s.
type HandlerFunc[Req, Resp any] func(context.Context, *Req) (*Resp, error)

// Handle implements the [Handler] interface.
func (f HandlerFunc[Req, Resp]) Handle(ctx context.Context, req *Req) (*Resp, error) {
	return f(ctx, req)
}

// RequestReader is meant to be implemented by any type which knows how
// to unmarshal itself from a [http.Request].
type RequestReader[T any] interface {
	*T

	ReadRequest(context.Context, *http.Request) error
}

// TypedRequest is a [RequestReader] which also provides a OpenAPI 3.0
// spec for itself.
type TypedRequest[T any] interface {
	RequestReader[T]

	Spec() (openapi3.RequestBodyOrRef, error)
}

// ResponseWriter is meant to be implemented by any type which knows how
// to marshal itself into a HTTP response. The request is provided so
// implementations can honor its Accept header.
type ResponseWriter[T any] interface {
	*T

	WriteResponse(context.Context, http.ResponseWriter, *http.Request) error
}

// TypedResponse is a [ResponseWriter] which also provides a OpenAPI 3.0
// spec for itself.
type TypedResponse[T any] interface {
	ResponseWriter[T]

	Spec() (int, openapi3.ResponseOrRef, error)
}

type operation struct {
	errHandler ErrorHandler
	serve      func(http.ResponseWriter, *http.Request) error
}

// ServeHTTP implements the [http.Handler] interface.
func (o *operation) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var err error
	defer func() {
		if err == nil {
			return
		}

		o.errHandler.OnError(ctx, w, err)
	}()
	defer try.Recover(&err)

	err = o.serve(w, r)
}

// Operation registers a HTTP operation with an [Api].
//
// The operation's OpenAPI definition is derived from the Req and Resp
// types and merged into the Api's spec. Errors returned by h, or by
// reading the request and writing the response, propagate through the
// Api's interceptors; with [CaptureErrors] installed they become
// negotiated error responses.
func Operation[I, O any, Req TypedRequest[I], Resp TypedResponse[O]](method string, pattern string, h Handler[I, O]) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.registrations = append(ao.registrations, func(ao *ApiOptions) {
			var req Req
			requestBodySpec, err := req.Spec()
			if err != nil {
				panic(err)
			}

			var resp Resp
			status, respSpec, err := resp.Spec()
			if err != nil {
				panic(err)
			}

			def := openapi3.Operation{
				RequestBody: &requestBodySpec,
				Responses: openapi3.Responses{
					MapOfResponseOrRefValues: map[string]openapi3.ResponseOrRef{
						strconv.Itoa(status): respSpec,
					},
				},
			}
			err = ao.def.AddOperation(method, pattern, def)
			if err != nil {
				panic(err)
			}

			op := &operation{
				errHandler: ao.errHandler,
				serve: composeInterceptors(
					serveOperation[I, O, Req, Resp](h),
					ao.interceptors,
				),
			}
			ao.mux.Method(method, pattern, otelhttp.WithRouteTag(pattern, op))
		})
	})
}

func serveOperation[I, O any, Req TypedRequest[I], Resp TypedResponse[O]](h Handler[I, O]) func(http.ResponseWriter, *http.Request) error {
	tracer := otel.Tracer("github.com/z5labs/courier/rest")

	return func(w http.ResponseWriter, r *http.Request) error {
		ctx := r.Context()

		var req I
		err := readRequest[I, Req](ctx, tracer, &req, r)
		if err != nil {
			return err
		}

		resp, err := h.Handle(ctx, &req)
		if err != nil {
			return err
		}

		return writeResponse[O, Resp](ctx, tracer, resp, w, r)
	}
}

func readRequest[I any, Req TypedRequest[I]](ctx context.Context, tracer trace.Tracer, req *I, r *http.Request) error {
	spanCtx, span := tracer.Start(ctx, "operation.readRequest")
	defer span.End()

	return Req(req).ReadRequest(spanCtx, r)
}

func writeResponse[O any, Resp TypedResponse[O]](ctx context.Context, tracer trace.Tracer, resp *O, w http.ResponseWriter, r *http.Request) error {
	spanCtx, span := tracer.Start(ctx, "operation.writeResponse")
	defer span.End()

	return Resp(resp).WriteResponse(spanCtx, w, r)
}
