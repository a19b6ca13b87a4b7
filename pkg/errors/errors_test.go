package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("service", nil).StatusCode())
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad", nil).StatusCode())
	assert.Equal(t, http.StatusBadRequest, Rejected(ReasonOverlap, "overlap").StatusCode())
	assert.Equal(t, http.StatusForbidden, Forbidden("no").StatusCode())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized(nil).StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Internal(nil).StatusCode())
}

func TestIsNotFound(t *testing.T) {
	err := NotFound("booking", nil)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsNotFound(BadRequest("bad", nil)))
	assert.False(t, IsNotFound(nil))
}

func TestRejected(t *testing.T) {
	err := Rejected(ReasonTimeOff, "provider is away")
	assert.True(t, IsRejected(err))
	assert.Equal(t, ReasonTimeOff, RejectedReason(err))
	assert.Equal(t, ReasonTimeOff, RejectedReason(fmt.Errorf("wrapped: %w", err)))

	assert.False(t, IsRejected(NotFound("x", nil)))
	assert.Equal(t, RejectReason(""), RejectedReason(NotFound("x", nil)))
	assert.Equal(t, RejectReason(""), RejectedReason(nil))
}
