// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"net/http"

	"github.com/z5labs/courier/media"

	"github.com/swaggest/jsonschema-go"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

// ConsumeNegotiatedHandler decodes the request body per its Content-Type
// header before delegating to the inner handler.
type ConsumeNegotiatedHandler[Req, Resp any] struct {
	inner Handler[Req, Resp]
}

// ConsumeNegotiated initializes a [ConsumeNegotiatedHandler].
func ConsumeNegotiated[Req, Resp any](h Handler[Req, Resp]) *ConsumeNegotiatedHandler[Req, Resp] {
	return &ConsumeNegotiatedHandler[Req, Resp]{
		inner: h,
	}
}

// NegotiatedRequest is a [TypedRequest] whose body may arrive in either of
// the two body formats.
type NegotiatedRequest[T any] struct {
	inner T
}

// Spec implements the [TypedRequest] interface.
func (*NegotiatedRequest[T]) Spec() (openapi3.RequestBodyOrRef, error) {
	var t T
	content, err := bodyContent(t)
	if err != nil {
		return openapi3.RequestBodyOrRef{}, err
	}

	return openapi3.RequestBodyOrRef{
		RequestBody: &openapi3.RequestBody{
			Required: ptr.Ref(true),
			Content:  content,
		},
	}, nil
}

// ReadRequest implements the [RequestReader] interface.
func (nr *NegotiatedRequest[T]) ReadRequest(ctx context.Context, r *http.Request) error {
	return RequestBody(r, &nr.inner)
}

// Handle implements the [Handler] interface.
func (h *ConsumeNegotiatedHandler[Req, Resp]) Handle(ctx context.Context, req *NegotiatedRequest[Req]) (*Resp, error) {
	return h.inner.Handle(ctx, &req.inner)
}

// ReturnNegotiatedHandler encodes the inner handler's response per the
// request's Accept header.
type ReturnNegotiatedHandler[Req, Resp any] struct {
	inner Handler[Req, Resp]
}

// ReturnNegotiated initializes a [ReturnNegotiatedHandler].
func ReturnNegotiated[Req, Resp any](h Handler[Req, Resp]) *ReturnNegotiatedHandler[Req, Resp] {
	return &ReturnNegotiatedHandler[Req, Resp]{
		inner: h,
	}
}

// NegotiatedResponse is a [TypedResponse] whose body is written in
// whichever of the two body formats the request's Accept header
// negotiates to.
type NegotiatedResponse[T any] struct {
	inner *T
}

// Spec implements the [TypedResponse] interface.
func (*NegotiatedResponse[T]) Spec() (int, openapi3.ResponseOrRef, error) {
	var t T
	content, err := bodyContent(t)
	if err != nil {
		return 0, openapi3.ResponseOrRef{}, err
	}

	return http.StatusOK, openapi3.ResponseOrRef{
		Response: &openapi3.Response{
			Content: content,
		},
	}, nil
}

// WriteResponse implements the [ResponseWriter] interface.
func (nr *NegotiatedResponse[T]) WriteResponse(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return Respond(w, r, nr.inner)
}

// Handle implements the [Handler] interface.
func (h *ReturnNegotiatedHandler[Req, Resp]) Handle(ctx context.Context, req *Req) (*NegotiatedResponse[Resp], error) {
	resp, err := h.inner.Handle(ctx, req)
	if err != nil {
		return nil, err
	}
	return &NegotiatedResponse[Resp]{
		inner: resp,
	}, nil
}

// HandleNegotiated creates a handler that both consumes and produces
// negotiated bodies. Use this for POST/PUT endpoints with request and
// response bodies.
func HandleNegotiated[Req, Resp any](h Handler[Req, Resp]) *ConsumeNegotiatedHandler[Req, NegotiatedResponse[Resp]] {
	return ConsumeNegotiated(ReturnNegotiated(h))
}

// ProduceNegotiated creates a handler that returns a negotiated response
// body without consuming a request body. Use this for GET endpoints that
// return data.
func ProduceNegotiated[T any](p Producer[T]) *ReturnNegotiatedHandler[EmptyRequest, T] {
	inner := &ProducerHandler[T]{
		p: p,
	}
	return ReturnNegotiated(inner)
}

// ConsumeOnlyNegotiated creates a handler that consumes a negotiated
// request body without returning a response body. Use this for
// webhook-style POST/PUT endpoints that process data but don't return
// content.
func ConsumeOnlyNegotiated[T any](c Consumer[T]) *ConsumeNegotiatedHandler[T, EmptyResponse] {
	inner := &ConsumerHandler[T]{
		c: c,
	}
	return ConsumeNegotiated(inner)
}

// bodyContent reflects a JSON schema for t and states it for both body
// formats. The binary format carries the same logical fields, so the one
// schema describes both.
func bodyContent(t any) (map[string]openapi3.MediaType, error) {
	var reflector jsonschema.Reflector

	jsonSchema, err := reflector.Reflect(t, jsonschema.InlineRefs)
	if err != nil {
		return nil, err
	}

	var schemaOrRef openapi3.SchemaOrRef
	schemaOrRef.FromJSONSchema(jsonSchema.ToSchemaOrBool())

	return map[string]openapi3.MediaType{
		media.JSON.String():        {Schema: &schemaOrRef},
		media.OctetStream.String(): {Schema: &schemaOrRef},
	}, nil
}
