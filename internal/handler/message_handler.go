package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"chatapi/internal/auth"
	"chatapi/internal/errors"
	"chatapi/internal/pagination"
	"chatapi/internal/repository"
	"chatapi/internal/service"
)

const messagesPerPage = 50

// MessageHandler handles message endpoints.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// CreateMessageRequest represents a message creation request.
type CreateMessageRequest struct {
	Content         string `json:"content" validate:"required,max=1000"`
	RoomID          uint   `json:"room_id" validate:"required"`
	IsSystemMessage bool   `json:"is_system_message"`
}

// UpdateMessageRequest represents a message edit request.
type UpdateMessageRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// SystemMessageRequest represents a system announcement request.
type SystemMessageRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// messageFilterFromQuery reads the shared message listing filters.
func messageFilterFromQuery(c echo.Context) repository.MessageFilter {
	filter := repository.MessageFilter{
		Search: c.QueryParam("search"),
	}
	if raw := c.QueryParam("room_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.RoomID = uint(id)
		}
	}
	if raw := c.QueryParam("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.UserID = uint(id)
		}
	}
	if raw := c.QueryParam("is_system_message"); raw != "" {
		isSystem := parseBool(raw)
		filter.IsSystem = &isSystem
	}
	return filter
}

// List godoc
// @Summary List messages, newest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param room_id query int false "Filter by room"
// @Param user_id query int false "Filter by author"
// @Param is_system_message query bool false "Filter by system flag"
// @Param search query string false "Content substring"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} Envelope
// @Router /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	params := pagination.Parse(c.QueryParam("page"), c.QueryParam("per_page"), messagesPerPage)
	page, err := h.messageService.List(c.Request().Context(), messageFilterFromQuery(c), params)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, page)
}

// Create godoc
// @Summary Post a message to a room
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMessageRequest true "Message data"
// @Success 201 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	var req CreateMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	message, err := h.messageService.Create(c.Request().Context(), auth.CurrentUser(c), service.CreateMessageInput{
		Content:         req.Content,
		RoomID:          req.RoomID,
		IsSystemMessage: req.IsSystemMessage,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusCreated, "Message sent successfully", message)
}

// Show godoc
// @Summary Get a message with its author and room
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /messages/{id} [get]
func (h *MessageHandler) Show(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrMessageNotFound)
	}

	message, err := h.messageService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, message)
}

// Update godoc
// @Summary Edit a message (author or room admin)
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Param request body UpdateMessageRequest true "New content"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /messages/{id} [put]
func (h *MessageHandler) Update(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrMessageNotFound)
	}

	var req UpdateMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	message, err := h.messageService.Update(c.Request().Context(), id, auth.CurrentUser(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, "Message updated successfully", message)
}

// Delete godoc
// @Summary Delete a message (author or room admin)
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrMessageNotFound)
	}

	if err := h.messageService.Delete(c.Request().Context(), id, auth.CurrentUser(c)); err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, "Message deleted successfully", nil)
}

// RoomMessages godoc
// @Summary List a room's messages (members only)
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param is_system_message query bool false "Filter by system flag"
// @Param search query string false "Content substring"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /rooms/{id}/messages [get]
func (h *MessageHandler) RoomMessages(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrRoomNotFound)
	}

	filter := repository.MessageFilter{Search: c.QueryParam("search")}
	if raw := c.QueryParam("is_system_message"); raw != "" {
		isSystem := parseBool(raw)
		filter.IsSystem = &isSystem
	}

	params := pagination.Parse(c.QueryParam("page"), c.QueryParam("per_page"), messagesPerPage)
	page, err := h.messageService.RoomMessages(c.Request().Context(), id, auth.CurrentUser(c), filter, params)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, page)
}

// SendSystemMessage godoc
// @Summary Post a system announcement (room admin only)
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body SystemMessageRequest true "Announcement content"
// @Success 201 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /rooms/{id}/system-message [post]
func (h *MessageHandler) SendSystemMessage(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrRoomNotFound)
	}

	var req SystemMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	message, err := h.messageService.SendSystemMessage(c.Request().Context(), id, auth.CurrentUser(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusCreated, "System message sent successfully", message)
}
