// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/z5labs/courier"
)

// ErrorHandler handles errors which escape every interceptor of an
// operation. With [CaptureErrors] installed no error reaches it; it is
// the last resort for APIs that have not installed the capture hook.
type ErrorHandler interface {
	OnError(context.Context, http.ResponseWriter, error)
}

// ErrorHandlerFunc is a function adapter that implements [ErrorHandler].
type ErrorHandlerFunc func(context.Context, http.ResponseWriter, error)

func (f ErrorHandlerFunc) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	f(ctx, w, err)
}

func defaultErrorHandler(h slog.Handler) ErrorHandlerFunc {
	log := slog.New(h)

	return func(ctx context.Context, w http.ResponseWriter, err error) {
		log.ErrorContext(ctx, "sending error response", slog.Any("error", err))

		var apiErr courier.Error
		if errors.As(err, &apiErr) {
			w.WriteHeader(apiErr.Status())
			return
		}

		w.WriteHeader(http.StatusInternalServerError)
	}
}
