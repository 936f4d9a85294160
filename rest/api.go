// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/z5labs/courier"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/openapi-go/openapi3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ApiOptions holds configuration values used when constructing an [Api].
type ApiOptions struct {
	mux          *chi.Mux
	def          *openapi3.Spec
	interceptors []ServerInterceptor
	errHandler   ErrorHandler

	// Operation registration is deferred until every option has been
	// applied, so interceptors and the error handler apply to all
	// operations regardless of option order.
	registrations []func(*ApiOptions)
}

// ApiOption is an interface for configuring an [Api].
type ApiOption interface {
	ApplyApiOption(*ApiOptions)
}

type apiOptionFunc func(*ApiOptions)

func (f apiOptionFunc) ApplyApiOption(ao *ApiOptions) {
	f(ao)
}

// Intercept registers a [ServerInterceptor] around every operation of the
// Api. Interceptors run in registration order, outermost first.
func Intercept(interceptor ServerInterceptor) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.interceptors = append(ao.interceptors, interceptor)
	})
}

// OnError configures the [ErrorHandler] of last resort for every
// operation of the Api.
func OnError(eh ErrorHandler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.errHandler = eh
	})
}

// NotFound configures a custom handler for requests that don't match any
// registered routes.
func NotFound(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.mux.NotFound(h.ServeHTTP)
	})
}

// MethodNotAllowed configures a custom handler for requests to valid
// routes with unsupported HTTP methods.
func MethodNotAllowed(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.mux.MethodNotAllowed(h.ServeHTTP)
	})
}

// Api is an OpenAPI-compliant [http.Handler] which speaks the negotiated
// body protocol on every operation.
//
// Every Api serves its OpenAPI 3.0 schema at GET /openapi.json and is
// instrumented with otelhttp.
type Api struct {
	handler http.Handler
}

// NewApi creates a new [Api] with the specified title and version.
//
// Example:
//
//	api := rest.NewApi(
//	    "Ledger Query Service",
//	    "v1.0.0",
//	    rest.Intercept(rest.LogRequests()),
//	    rest.Intercept(rest.CaptureErrors[LedgerError]()),
//	    rest.Operation(http.MethodPost, "/blocks", rest.HandleNegotiated(getBlockHandler)),
//	)
//	http.ListenAndServe(":8080", api)
func NewApi(title, version string, opts ...ApiOption) *Api {
	log := courier.Logger("github.com/z5labs/courier/rest")

	ao := &ApiOptions{
		mux: chi.NewMux(),
		def: &openapi3.Spec{
			Openapi: "3.0",
			Info: openapi3.Info{
				Title:   title,
				Version: version,
			},
		},
		errHandler: defaultErrorHandler(courier.LogHandler("github.com/z5labs/courier/rest")),
	}
	for _, opt := range opts {
		opt.ApplyApiOption(ao)
	}
	for _, register := range ao.registrations {
		register(ao)
	}

	ao.mux.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		enc := json.NewEncoder(w)
		err := enc.Encode(ao.def)
		if err == nil {
			return
		}
		log.ErrorContext(
			r.Context(),
			"failed to encode openapi schema to json",
			slog.Any("error", err),
		)
	})

	return &Api{
		handler: otelhttp.NewHandler(
			ao.mux,
			"rest",
			otelhttp.WithMessageEvents(otelhttp.ReadEvents, otelhttp.WriteEvents),
		),
	}
}

// ServeHTTP implements the [http.Handler] interface.
func (api *Api) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	api.handler.ServeHTTP(w, req)
}
