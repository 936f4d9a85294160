// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package media

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptOf(t *testing.T, header string) *Accept {
	t.Helper()

	h := http.Header{}
	h.Set(AcceptHeader, header)

	accept, err := ParseAccept(h)
	require.NoError(t, err)
	return accept
}

func TestBestResponseType(t *testing.T) {
	available := []Type{JSON, OctetStream}

	t.Run("defaults to the server's first choice when no accept header", func(t *testing.T) {
		typ, err := BestResponseType(nil, available)

		require.NoError(t, err)
		assert.Equal(t, JSON, typ)
	})

	t.Run("honors a concrete proposal", func(t *testing.T) {
		accept := acceptOf(t, "application/octet-stream")

		typ, err := BestResponseType(accept, available)

		require.NoError(t, err)
		assert.Equal(t, OctetStream, typ)
	})

	t.Run("full wildcard matches the server's first choice", func(t *testing.T) {
		accept := acceptOf(t, "*/*")

		typ, err := BestResponseType(accept, available)

		require.NoError(t, err)
		assert.Equal(t, JSON, typ)
	})

	t.Run("full wildcard with top weight dominates regardless of position", func(t *testing.T) {
		accept := acceptOf(t, "application/octet-stream;q=0.5, */*")

		typ, err := BestResponseType(accept, available)

		require.NoError(t, err)
		assert.Equal(t, JSON, typ)
	})

	t.Run("subtype wildcard matches the first available type with that base", func(t *testing.T) {
		accept := acceptOf(t, "application/*")

		typ, err := BestResponseType(accept, []Type{OctetStream, JSON})

		require.NoError(t, err)
		assert.Equal(t, OctetStream, typ)
	})

	t.Run("subtype wildcard with a foreign base falls through", func(t *testing.T) {
		accept := acceptOf(t, "text/*, application/json;q=0.1")

		typ, err := BestResponseType(accept, available)

		require.NoError(t, err)
		assert.Equal(t, JSON, typ)
	})

	t.Run("weights override header order", func(t *testing.T) {
		accept := acceptOf(t, "application/json;q=0.2, application/octet-stream;q=0.9")

		typ, err := BestResponseType(accept, available)

		require.NoError(t, err)
		assert.Equal(t, OctetStream, typ)
	})

	t.Run("equal weights keep header order", func(t *testing.T) {
		accept := acceptOf(t, "application/octet-stream;q=0.8, application/json;q=0.8")

		typ, err := BestResponseType(accept, available)

		require.NoError(t, err)
		assert.Equal(t, OctetStream, typ)
	})

	t.Run("bare wildcard entry matches when nothing else does", func(t *testing.T) {
		accept := acceptOf(t, "text/html, *")

		typ, err := BestResponseType(accept, available)

		require.NoError(t, err)
		assert.Equal(t, JSON, typ)
	})

	t.Run("fails with NotAcceptable when nothing matches", func(t *testing.T) {
		accept := acceptOf(t, "text/html")

		_, err := BestResponseType(accept, available)

		var notAcceptable NotAcceptableError
		assert.ErrorAs(t, err, &notAcceptable)
	})

	// A wildcard base with a concrete subtype is not treated as a wildcard.
	// It falls through to the literal match, which never succeeds since
	// available types always have concrete base types.
	t.Run("wildcard base with concrete subtype never matches", func(t *testing.T) {
		accept := acceptOf(t, "*/json")

		_, err := BestResponseType(accept, available)

		var notAcceptable NotAcceptableError
		assert.ErrorAs(t, err, &notAcceptable)
	})

	t.Run("is deterministic and does not mutate the accept", func(t *testing.T) {
		accept := acceptOf(t, "application/octet-stream;q=0.3, application/json;q=0.7")

		first, err := BestResponseType(accept, available)
		require.NoError(t, err)

		second, err := BestResponseType(accept, available)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, OctetStream, accept.Proposals()[0].Type, "proposals must keep header order")
	})

	t.Run("fails when no types are available", func(t *testing.T) {
		_, err := BestResponseType(nil, nil)

		var notAcceptable NotAcceptableError
		assert.ErrorAs(t, err, &notAcceptable)
	})
}
