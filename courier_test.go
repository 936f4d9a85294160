// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package courier

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testError struct {
	Msg string `json:"msg" cbor:"msg"`
}

func (e *testError) Error() string {
	return e.Msg
}

func (e *testError) Status() int {
	return http.StatusInternalServerError
}

func (e *testError) CatchAll(msg string) {
	*e = testError{Msg: msg}
}

func TestNewCatchAll(t *testing.T) {
	t.Run("displays the message verbatim", func(t *testing.T) {
		msg := "something broke"

		err := NewCatchAll[testError](msg)

		require.NotNil(t, err)
		assert.Equal(t, msg, err.Error())
	})

	t.Run("is idempotent over the message", func(t *testing.T) {
		msg := "first"

		err := NewCatchAll[testError](msg)
		err.CatchAll(err.Error())

		assert.Equal(t, msg, err.Error())
	})
}

func TestFromError(t *testing.T) {
	t.Run("recovers an already typed error unchanged", func(t *testing.T) {
		orig := &testError{Msg: "typed"}

		err := FromError[testError](fmt.Errorf("handler failed: %w", orig))

		assert.Same(t, orig, err)
	})

	t.Run("degrades a foreign error to the catch-all variant", func(t *testing.T) {
		orig := errors.New("connection reset")

		err := FromError[testError](orig)

		require.NotNil(t, err)
		assert.Equal(t, "connection reset", err.Error())
	})
}
