// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"log/slog"
	"net/http"

	"github.com/z5labs/courier"
	"github.com/z5labs/courier/media"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request correlation id. An id supplied by
// the client is kept, otherwise one is generated, and it is always echoed
// on the response.
const RequestIDHeader = "X-Request-ID"

// LogRequests returns a [ServerInterceptor] which logs every request and
// its outcome. Purely informational; requests and responses pass through
// unchanged.
func LogRequests() ServerInterceptor {
	log := courier.Logger("github.com/z5labs/courier/rest")

	return ServerInterceptorFunc(func(next func(http.ResponseWriter, *http.Request) error) func(http.ResponseWriter, *http.Request) error {
		return func(w http.ResponseWriter, r *http.Request) error {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			log.InfoContext(
				r.Context(),
				"received request",
				slog.String("request_id", id),
				slog.String("url", r.URL.String()),
				slog.String("content_type", r.Header.Get(media.ContentTypeHeader)),
				slog.String("accept", r.Header.Get(media.AcceptHeader)),
			)

			err := next(w, r)

			log.InfoContext(
				r.Context(),
				"handled request",
				slog.String("request_id", id),
				slog.Bool("errored", err != nil),
			)
			return err
		}
	})
}
