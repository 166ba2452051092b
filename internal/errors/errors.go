package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoomNotFound is returned when a referenced room does not exist.
	ErrRoomNotFound = errors.New("room not found")
	// ErrMessageNotFound is returned when a referenced message does not exist.
	ErrMessageNotFound = errors.New("message not found")
	// ErrAlreadyMember is returned when joining a room the user already belongs to.
	ErrAlreadyMember = errors.New("you are already a member of this room")
	// ErrNotMember is returned when leaving a room the user never joined.
	ErrNotMember = errors.New("you are not a member of this room")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("you cannot delete your own account")
)

// ForbiddenError is an authorization failure: the actor is authenticated
// but not permitted to perform the operation. It is deliberately distinct
// from the not-found sentinels so a missing entity and a denied access
// never map to the same status.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// Forbidden builds a ForbiddenError with a human-readable reason.
func Forbidden(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

// ValidationError carries a field-level error map for 422 responses.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Validation builds a ValidationError for a single field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// HTTPError is the boundary form of a domain error: status code plus the
// envelope message and optional field errors.
type HTTPError struct {
	Status  int
	Message string
	Errors  map[string][]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MapErrorToHTTP converts a domain error into its HTTP form. Every
// failure is terminal for the request; there is no transient class.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &HTTPError{Status: http.StatusUnprocessableEntity, Message: "Validation failed", Errors: ve.Fields}
	}

	var fe *ForbiddenError
	if errors.As(err, &fe) {
		return &HTTPError{Status: http.StatusForbidden, Message: fe.Reason}
	}

	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrMessageNotFound):
		return &HTTPError{Status: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, ErrAlreadyMember), errors.Is(err, ErrNotMember), errors.Is(err, ErrSelfDelete):
		return &HTTPError{Status: http.StatusBadRequest, Message: err.Error()}
	default:
		return &HTTPError{Status: http.StatusInternalServerError, Message: "internal server error"}
	}
}
