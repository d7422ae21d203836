package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request", failure.BadRequest(errors.New("bad input")), http.StatusBadRequest, "bad input"},
		{"bad request from string", failure.BadRequestFromString("room is required"), http.StatusBadRequest, "room is required"},
		{"bad request formatted", failure.BadRequestf("room %s is under maintenance", "R1"), http.StatusBadRequest, "room R1 is under maintenance"},
		{"unauthorized", failure.Unauthorized("missing token"), http.StatusUnauthorized, "missing token"},
		{"internal", failure.InternalError(errors.New("db down")), http.StatusInternalServerError, "db down"},
		{"not found", failure.NotFound("booking not found"), http.StatusNotFound, "booking not found"},
		{"forbidden", failure.Forbidden("nope"), http.StatusForbidden, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, failure.Is(tt.err, tt.code))
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
	assert.False(t, failure.Is(nil, http.StatusBadRequest))
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("update booking: %w", failure.NotFound("booking not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
}
