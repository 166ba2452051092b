package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"chatapi/internal/auth"
	"chatapi/internal/errors"
	"chatapi/internal/pagination"
	"chatapi/internal/repository"
	"chatapi/internal/service"
)

const usersPerPage = 15

// UserHandler handles user directory endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest represents a profile update request.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Role  *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param search query string false "Match name or email"
// @Param online_only query bool false "Only users active in the last 5 minutes"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} Envelope
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter := repository.UserFilter{
		Role:   c.QueryParam("role"),
		Search: c.QueryParam("search"),
	}
	onlineOnly := parseBool(c.QueryParam("online_only"))

	params := pagination.Parse(c.QueryParam("page"), c.QueryParam("per_page"), usersPerPage)
	page, err := h.userService.List(c.Request().Context(), filter, onlineOnly, params)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, page)
}

// Show godoc
// @Summary Get a user with their rooms and messages
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Show(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrUserNotFound)
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, user)
}

// Update godoc
// @Summary Update a user profile (self or admin; role changes admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrUserNotFound)
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Name != nil && *req.Name == "" {
		return respondError(c, errors.Validation("name", "The name field is required."))
	}
	if req.Email != nil && *req.Email == "" {
		return respondError(c, errors.Validation("email", "The email field is required."))
	}

	user, err := h.userService.Update(c.Request().Context(), id, auth.CurrentUser(c), service.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, "User updated successfully", user)
}

// Delete godoc
// @Summary Delete a user (admin only, never oneself)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrUserNotFound)
	}

	if err := h.userService.Delete(c.Request().Context(), id, auth.CurrentUser(c)); err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, "User deleted successfully", nil)
}

// Rooms godoc
// @Summary List the rooms a user belongs to
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /users/{id}/rooms [get]
func (h *UserHandler) Rooms(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrUserNotFound)
	}

	params := pagination.Parse(c.QueryParam("page"), c.QueryParam("per_page"), roomsPerPage)
	page, err := h.userService.Rooms(c.Request().Context(), id, params)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, page)
}

// Messages godoc
// @Summary List a user's messages, newest first
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /users/{id}/messages [get]
func (h *UserHandler) Messages(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrUserNotFound)
	}

	params := pagination.Parse(c.QueryParam("page"), c.QueryParam("per_page"), messagesPerPage)
	page, err := h.userService.Messages(c.Request().Context(), id, params)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, page)
}

// Statistics godoc
// @Summary Get a user's activity statistics
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /users/{id}/statistics [get]
func (h *UserHandler) Statistics(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrUserNotFound)
	}

	stats, err := h.userService.Statistics(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, stats)
}

// OnlineUsers godoc
// @Summary List users active within the last 5 minutes
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Router /online-users [get]
func (h *UserHandler) OnlineUsers(c echo.Context) error {
	users, err := h.userService.OnlineUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, users)
}
