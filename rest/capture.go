// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/z5labs/courier"
	"github.com/z5labs/courier/media"

	"go.opentelemetry.io/otel"
)

// CaptureErrors returns a [ServerInterceptor] which populates the body of
// error responses. Install it once per server, outermost.
//
// If the wrapped handler returns an error, the error is converted to the
// API error type E (recovered as-is when it already is one, degraded to
// the catch-all variant otherwise), encoded per the request's Accept
// header, and written with a status code of E.Status(). Successful
// responses pass through unchanged.
//
// This interceptor is the inverse of the client package's response
// parsing, which converts the response body back into an E.
func CaptureErrors[E any, PE courier.Catchable[E]]() ServerInterceptor {
	log := courier.Logger("github.com/z5labs/courier/rest")
	tracer := otel.Tracer("github.com/z5labs/courier/rest")

	return ServerInterceptorFunc(func(next func(http.ResponseWriter, *http.Request) error) func(http.ResponseWriter, *http.Request) error {
		return func(w http.ResponseWriter, r *http.Request) error {
			// Snapshot the Accept header before the handler runs, in
			// case it modifies the request. A malformed header is
			// treated as no preference so the error still gets a body.
			accept, acceptErr := media.ParseAccept(r.Header)
			if acceptErr != nil {
				accept = nil
			}

			err := next(w, r)
			if err == nil {
				return nil
			}

			ctx, span := tracer.Start(r.Context(), "CaptureErrors")
			defer span.End()
			span.RecordError(err)

			apiErr := courier.FromError[E, PE](err)
			log.WarnContext(
				ctx,
				"responding with error",
				slog.String("error", apiErr.Error()),
				slog.Int("status", apiErr.Status()),
			)

			err = respond(w, accept, apiErr.Status(), apiErr)
			if err == nil {
				return nil
			}

			var notAcceptableErr media.NotAcceptableError
			if errors.As(err, &notAcceptableErr) {
				w.WriteHeader(http.StatusNotAcceptable)
				return nil
			}

			log.ErrorContext(ctx, "failed to encode error response", slog.Any("error", err))
			w.WriteHeader(http.StatusInternalServerError)
			return nil
		}
	})
}
