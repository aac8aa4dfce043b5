package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	nf := NotFound("User not found. Please register first.")
	assert.Equal(t, http.StatusNotFound, nf.Status)
	assert.Equal(t, "User not found. Please register first.", nf.Message)
	assert.True(t, stderrors.Is(nf, ErrNotFound))

	br := BadRequest("Event name required")
	assert.Equal(t, http.StatusBadRequest, br.Status)

	ua := Unauthorized("Invalid API key")
	assert.Equal(t, http.StatusUnauthorized, ua.Status)
	assert.Empty(t, ua.Code)

	fb := Forbidden(CodeKeyRevoked, "API key has been revoked")
	assert.Equal(t, http.StatusForbidden, fb.Status)
	assert.Equal(t, "KEY_REVOKED", fb.Code)
}

func TestErrorString(t *testing.T) {
	wrapped := stderrors.New("driver: bad connection")
	ie := InternalError(wrapped)
	assert.Equal(t, http.StatusInternalServerError, ie.Status)
	assert.Equal(t, "driver: bad connection", ie.Error())
	assert.Equal(t, wrapped, stderrors.Unwrap(ie))

	noCause := &AppError{Status: http.StatusBadRequest, Message: "Invalid timestamp"}
	assert.Equal(t, "Invalid timestamp", noCause.Error())
}
