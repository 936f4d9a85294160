// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"net/http"
)

// ServerInterceptor defines an interceptor for HTTP server requests.
type ServerInterceptor interface {
	Intercept(next func(http.ResponseWriter, *http.Request) error) func(http.ResponseWriter, *http.Request) error
}

// ServerInterceptorFunc is a function type that implements the ServerInterceptor interface.
type ServerInterceptorFunc func(next func(http.ResponseWriter, *http.Request) error) func(http.ResponseWriter, *http.Request) error

// Intercept calls the ServerInterceptorFunc with the next handler.
func (f ServerInterceptorFunc) Intercept(next func(http.ResponseWriter, *http.Request) error) func(http.ResponseWriter, *http.Request) error {
	return f(next)
}

func composeInterceptors(serve func(http.ResponseWriter, *http.Request) error, interceptors []ServerInterceptor) func(http.ResponseWriter, *http.Request) error {
	// Interceptors run in registration order, so the first registered
	// interceptor is the outermost wrapper.
	for i := len(interceptors) - 1; i >= 0; i-- {
		serve = interceptors[i].Intercept(serve)
	}
	return serve
}
