package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"chatapi/internal/errors"
)

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// respondError converts a domain error to its status and envelope.
func respondError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		return c.JSON(he.Code, Envelope{Success: false, Message: fmt.Sprint(he.Message)})
	}

	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.Status, Envelope{
		Success: false,
		Message: httpErr.Message,
		Errors:  httpErr.Errors,
	})
}

func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// bindAndValidate binds the request body into req and runs the
// validator, converting validator failures into the field-map form.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			return &errors.ValidationError{Fields: fieldErrorMap(fieldErrs)}
		}
		return &errors.ValidationError{Fields: map[string][]string{"body": {err.Error()}}}
	}
	return nil
}

// fieldErrorMap renders validator errors field by field.
func fieldErrorMap(fieldErrs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "The " + field + " field is required."
		case "email":
			msg = "The " + field + " must be a valid email address."
		case "max":
			msg = "The " + field + " may not be greater than " + fe.Param() + " characters."
		case "min":
			msg = "The " + field + " must be at least " + fe.Param() + " characters."
		case "oneof":
			msg = "The selected " + field + " is invalid."
		default:
			msg = "The " + field + " field is invalid."
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// parseID parses a numeric path parameter; zero means invalid.
func parseID(c echo.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// parseBool interprets a boolean query value: any of 1, true, on, yes
// counts as true.
func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
