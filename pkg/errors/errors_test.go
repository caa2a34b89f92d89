package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorConstructors(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NewBadRequestError("UNKNOWN_ACTION", "Unknown action"), http.StatusBadRequest},
		{NewNotFoundError("SESSION_NOT_FOUND", "Session not found"), http.StatusNotFound},
		{NewConflictError("SESSION_EXISTS", "Session already exists"), http.StatusConflict},
		{NewInternalServerError("INTERNAL_ERROR", "boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode)
		assert.NotEmpty(t, tc.err.Code)
	}
}

func TestFromErrorPassthrough(t *testing.T) {
	original := NewNotFoundError("SESSION_NOT_FOUND", "Session not found")
	converted := FromError(original)
	assert.Same(t, original, converted)
}

func TestFromErrorWrapsPlainErrors(t *testing.T) {
	converted := FromError(errors.New("connection refused"))
	require.NotNil(t, converted)
	assert.Equal(t, http.StatusInternalServerError, converted.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", converted.Code)
	assert.Equal(t, "connection refused", converted.Message)
}

func TestGetStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetStatusCode(NewNotFoundError("X", "x")))
	assert.Equal(t, http.StatusInternalServerError, GetStatusCode(errors.New("plain")))
}

func TestIs(t *testing.T) {
	err := NewBadRequestError("UNKNOWN_ACTION", "Unknown action")
	assert.True(t, Is(err, NewBadRequestError("UNKNOWN_ACTION", "other message")))
	assert.False(t, Is(err, NewBadRequestError("OTHER", "x")))
	assert.False(t, Is(errors.New("plain"), err))
}
