package golferr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponse(t *testing.T) {
	t.Run("uses server error text", func(t *testing.T) {
		err := FromResponse(http.StatusBadRequest, []byte(`{"error":"Invalid club"}`))
		assert.Equal(t, KindRequest, err.Kind)
		assert.Equal(t, http.StatusBadRequest, err.Status)
		assert.Equal(t, "Invalid club", err.Error())
	})

	t.Run("falls back to status text", func(t *testing.T) {
		err := FromResponse(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
		assert.Equal(t, "Request failed (502)", err.Error())
	})

	t.Run("multi-line server error collapses to one line", func(t *testing.T) {
		err := FromResponse(http.StatusInternalServerError, []byte(`{"error":"boom\nstack"}`))
		assert.Equal(t, "boom stack", err.Error())
	})

	t.Run("conflict with roundId is recoverable", func(t *testing.T) {
		err := FromResponse(http.StatusConflict, []byte(`{"error":"Round in progress","roundId":"r-42"}`))
		assert.Equal(t, KindConflict, err.Kind)

		id, ok := err.RoundID()
		require.True(t, ok)
		assert.Equal(t, "r-42", id)
	})

	t.Run("numeric roundId is accepted", func(t *testing.T) {
		err := FromResponse(http.StatusConflict, []byte(`{"roundId":17}`))
		assert.Equal(t, KindConflict, err.Kind)

		id, _ := err.RoundID()
		assert.Equal(t, "17", id)
	})

	t.Run("conflict without roundId is a plain request error", func(t *testing.T) {
		err := FromResponse(http.StatusConflict, []byte(`{"error":"Duplicate"}`))
		assert.Equal(t, KindRequest, err.Kind)
		assert.Equal(t, http.StatusConflict, err.Status)
	})

	t.Run("conflict with empty roundId is a plain request error", func(t *testing.T) {
		err := FromResponse(http.StatusConflict, []byte(`{"roundId":""}`))
		assert.Equal(t, KindRequest, err.Kind)
	})
}

func TestField(t *testing.T) {
	err := FromResponse(http.StatusTeapot, []byte(`{"a":"","b":"x"}`))

	v, ok := err.Field("a")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = err.Field("missing")
	assert.False(t, ok)

	empty := &Error{}
	_, ok = empty.Field("a")
	assert.False(t, ok)
}

func TestAuthentication(t *testing.T) {
	inner := FromResponse(http.StatusUnauthorized, []byte(`{"error":"Invalid API key"}`))
	err := Authentication(inner)

	assert.Equal(t, KindAuthentication, err.Kind)
	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Equal(t, "Authentication failed: Invalid API key", err.Error())
	assert.True(t, errors.Is(err, inner))

	plain := Authentication(errors.New("dial tcp: refused"))
	assert.Equal(t, 0, plain.Status)
	assert.Contains(t, plain.Error(), "dial tcp")
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("look: %w", State("No active round. Run `start` first."))

	assert.Equal(t, KindState, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindState))
	assert.False(t, Is(wrapped, KindValidation))
	assert.False(t, Is(nil, KindState))
	assert.Equal(t, Kind(""), KindOf(errors.New("foreign")))

	ge, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindState, ge.Kind)
}

func TestTransport(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transport(cause)
	assert.Equal(t, KindRequest, err.Kind)
	assert.Zero(t, err.Status)
	assert.ErrorIs(t, err, cause)
}
