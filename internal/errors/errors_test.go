package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "user not found", err: ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "room not found", err: ErrRoomNotFound, wantStatus: http.StatusNotFound},
		{name: "message not found", err: ErrMessageNotFound, wantStatus: http.StatusNotFound},
		{name: "already member", err: ErrAlreadyMember, wantStatus: http.StatusBadRequest},
		{name: "not member", err: ErrNotMember, wantStatus: http.StatusBadRequest},
		{name: "self delete", err: ErrSelfDelete, wantStatus: http.StatusBadRequest},
		{name: "forbidden", err: Forbidden("no"), wantStatus: http.StatusForbidden},
		{name: "validation", err: Validation("email", "The email has already been taken."), wantStatus: http.StatusUnprocessableEntity},
		{name: "wrapped sentinel", err: fmt.Errorf("leave room: %w", ErrNotMember), wantStatus: http.StatusBadRequest},
		{name: "unknown error", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.NotEmpty(t, httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_ValidationFields(t *testing.T) {
	httpErr := MapErrorToHTTP(Validation("email", "The email has already been taken."))

	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Equal(t, []string{"The email has already been taken."}, httpErr.Errors["email"])
}

func TestMapErrorToHTTP_UnknownErrorIsOpaque(t *testing.T) {
	// Internal failure details never reach the response body.
	httpErr := MapErrorToHTTP(fmt.Errorf("dial tcp 10.0.0.1:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "internal server error", httpErr.Message)
}

func TestForbiddenError(t *testing.T) {
	err := Forbidden("Unauthorized. Only room admins can update room details.")
	assert.Equal(t, "Unauthorized. Only room admins can update room details.", err.Error())
}
