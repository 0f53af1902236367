package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	err := NotFound("Chat", nil)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "Chat not found", err.Message)

	err = Forbidden("no access", nil)
	assert.Equal(t, "FORBIDDEN", err.Code)
	assert.Equal(t, http.StatusForbidden, err.Status)

	err = TooManyRequests("slow down")
	assert.Equal(t, http.StatusTooManyRequests, err.Status)
}

func TestIs(t *testing.T) {
	err := NotFound("User", nil)
	assert.True(t, Is(err, "NOT_FOUND"))
	assert.False(t, Is(err, "FORBIDDEN"))
	assert.False(t, Is(fmt.Errorf("plain"), "NOT_FOUND"))

	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, Is(wrapped, "NOT_FOUND"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Chat not found", Message(NotFound("Chat", nil), "fallback"))
	assert.Equal(t, "fallback", Message(fmt.Errorf("internal detail"), "fallback"))
	assert.Equal(t, "fallback", Message(nil, "fallback"))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Internal("something broke", cause)
	assert.Equal(t, cause, err.Unwrap())
}
