// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package client

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"
	"unicode/utf8"

	"github.com/z5labs/courier"
	"github.com/z5labs/courier/codec"
	"github.com/z5labs/courier/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Msg string `json:"msg" cbor:"msg"`
}

func (e *apiError) Error() string {
	return e.Msg
}

func (e *apiError) Status() int {
	return http.StatusInternalServerError
}

func (e *apiError) CatchAll(msg string) {
	*e = apiError{Msg: msg}
}

type data struct {
	Field uint32 `json:"field" cbor:"field"`
}

func newResponse(t *testing.T, status int, contentType string, body []byte) *http.Response {
	t.Helper()

	res := &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
	if contentType != "" {
		res.Header.Set(media.ContentTypeHeader, contentType)
	}
	return res
}

func encodeBody(t *testing.T, typ media.Type, v any) []byte {
	t.Helper()

	b, err := codec.Encode(typ, v)
	require.NoError(t, err)
	return b
}

func TestResponseBody(t *testing.T) {
	t.Run("decodes a JSON body", func(t *testing.T) {
		want := data{Field: 7}
		res := newResponse(t, http.StatusOK, media.JSON.String(), encodeBody(t, media.JSON, want))

		res, err := ResponseToResult[apiError](res)
		require.NoError(t, err)

		var got data
		require.NoError(t, ResponseBody(res, &got))
		assert.Equal(t, want, got)
	})

	t.Run("decodes a binary body", func(t *testing.T) {
		want := data{Field: 7}
		res := newResponse(t, http.StatusOK, media.OctetStream.String(), encodeBody(t, media.OctetStream, want))

		res, err := ResponseToResult[apiError](res)
		require.NoError(t, err)

		var got data
		require.NoError(t, ResponseBody(res, &got))
		assert.Equal(t, want, got)
	})

	t.Run("fails with UnsupportedMediaType when the content type is missing", func(t *testing.T) {
		res := newResponse(t, http.StatusOK, "", []byte("{}"))

		var got data
		err := ResponseBody(res, &got)

		var unsupportedErr codec.UnsupportedMediaTypeError
		require.ErrorAs(t, err, &unsupportedErr)
		assert.Equal(t, "unspecified content type", unsupportedErr.Error())
	})

	t.Run("fails with UnsupportedMediaType for an unknown content type", func(t *testing.T) {
		res := newResponse(t, http.StatusOK, "text/html", []byte("<p>hi</p>"))

		var got data
		err := ResponseBody(res, &got)

		var unsupportedErr codec.UnsupportedMediaTypeError
		require.ErrorAs(t, err, &unsupportedErr)
		assert.Contains(t, unsupportedErr.Error(), "text/html")
	})
}

func TestResponseToResult(t *testing.T) {
	t.Run("passes a success response through unchanged", func(t *testing.T) {
		res := newResponse(t, http.StatusOK, media.JSON.String(), []byte("{}"))

		got, err := ResponseToResult[apiError](res)

		require.NoError(t, err)
		assert.Same(t, res, got)
	})

	t.Run("reconstructs a JSON encoded error", func(t *testing.T) {
		want := &apiError{Msg: "this is an error message"}
		res := newResponse(t, http.StatusInternalServerError, media.JSON.String(), encodeBody(t, media.JSON, want))

		_, err := ResponseToResult[apiError](res)

		require.Error(t, err)
		assert.Equal(t, want, courier.FromError[apiError](err))
	})

	t.Run("reconstructs a binary encoded error", func(t *testing.T) {
		want := &apiError{Msg: "this is an error message"}
		res := newResponse(t, http.StatusInternalServerError, media.OctetStream.String(), encodeBody(t, media.OctetStream, want))

		_, err := ResponseToResult[apiError](res)

		require.Error(t, err)
		assert.Equal(t, want, courier.FromError[apiError](err))
	})

	t.Run("degrades a plain text body to a catch-all", func(t *testing.T) {
		msg := "this is an error message"
		res := newResponse(t, http.StatusInternalServerError, "", []byte(msg))

		_, err := ResponseToResult[apiError](res)

		require.Error(t, err)
		assert.Equal(t, msg, courier.FromError[apiError](err).Msg)
	})

	t.Run("degrades an html body to a catch-all", func(t *testing.T) {
		msg := "<p>this is an error message</p>"
		res := newResponse(t, http.StatusInternalServerError, "text/html", []byte(msg))

		_, err := ResponseToResult[apiError](res)

		require.Error(t, err)
		assert.Equal(t, msg, courier.FromError[apiError](err).Msg)
	})

	t.Run("degrades foreign JSON to a catch-all carrying the body verbatim", func(t *testing.T) {
		body := `{"error": "this is an error message"}`
		res := newResponse(t, http.StatusInternalServerError, media.JSON.String(), []byte(body))

		_, err := ResponseToResult[apiError](res)

		require.Error(t, err)
		assert.Equal(t, body, courier.FromError[apiError](err).Msg)
	})

	t.Run("renders a non-text body as hex in the catch-all", func(t *testing.T) {
		body := []byte{0xC0, 0x7F}
		require.False(t, utf8.Valid(body))

		res := newResponse(t, http.StatusInternalServerError, media.OctetStream.String(), body)

		_, err := ResponseToResult[apiError](res)

		require.Error(t, err)
		assert.Equal(
			t,
			"Request terminated with error 500. Content-Type: application/octet-stream. Body: 0xc07f",
			courier.FromError[apiError](err).Msg,
		)
	})

	t.Run("reports a body read failure in the catch-all", func(t *testing.T) {
		res := &http.Response{
			StatusCode: http.StatusBadGateway,
			Header:     http.Header{},
			Body:       io.NopCloser(failingReader{}),
		}

		_, err := ResponseToResult[apiError](res)

		require.Error(t, err)
		msg := courier.FromError[apiError](err).Msg
		assert.Contains(t, msg, "Request terminated with error 502")
		assert.Contains(t, msg, "Failed to read request body due to")
	})
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}
