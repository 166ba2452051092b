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

const roomsPerPage = 15

// RoomHandler handles room endpoints.
type RoomHandler struct {
	roomService service.RoomService
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoomRequest represents a room creation request.
type CreateRoomRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

// UpdateRoomRequest represents a room update request.
type UpdateRoomRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"is_private"`
}

// List godoc
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param search query string false "Match name or description"
// @Param is_private query bool false "Filter by privacy"
// @Param my_rooms query bool false "Only rooms the caller belongs to"
// @Param public_only query bool false "Only public rooms"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	actor := auth.CurrentUser(c)

	filter := repository.RoomFilter{
		Search:     c.QueryParam("search"),
		PublicOnly: parseBool(c.QueryParam("public_only")),
	}
	if raw := c.QueryParam("is_private"); raw != "" {
		isPrivate := parseBool(raw)
		filter.IsPrivate = &isPrivate
	}
	if parseBool(c.QueryParam("my_rooms")) {
		filter.MemberID = actor.ID
	}

	params := pagination.Parse(c.QueryParam("page"), c.QueryParam("per_page"), roomsPerPage)
	page, err := h.roomService.List(c.Request().Context(), filter, params)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, page)
}

// Create godoc
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRoomRequest true "Room data"
// @Success 201 {object} Envelope
// @Failure 422 {object} Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	var req CreateRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	room, err := h.roomService.Create(c.Request().Context(), auth.CurrentUser(c), service.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusCreated, "Room created successfully", room)
}

// Show godoc
// @Summary Get a room with its creator and members
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /rooms/{id} [get]
func (h *RoomHandler) Show(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrRoomNotFound)
	}

	room, err := h.roomService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, room)
}

// Update godoc
// @Summary Update a room (room admin only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body UpdateRoomRequest true "Fields to change"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrRoomNotFound)
	}

	var req UpdateRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Name != nil && *req.Name == "" {
		return respondError(c, errors.Validation("name", "The name field is required."))
	}

	room, err := h.roomService.Update(c.Request().Context(), id, auth.CurrentUser(c), service.UpdateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, "Room updated successfully", room)
}

// Delete godoc
// @Summary Delete a room (room admin only)
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrRoomNotFound)
	}

	if err := h.roomService.Delete(c.Request().Context(), id, auth.CurrentUser(c)); err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, "Room deleted successfully", nil)
}

// Join godoc
// @Summary Join a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /rooms/{id}/join [post]
func (h *RoomHandler) Join(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrRoomNotFound)
	}

	if _, err := h.roomService.Join(c.Request().Context(), id, auth.CurrentUser(c)); err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, "Successfully joined the room", nil)
}

// Leave godoc
// @Summary Leave a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /rooms/{id}/leave [post]
func (h *RoomHandler) Leave(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrRoomNotFound)
	}

	if err := h.roomService.Leave(c.Request().Context(), id, auth.CurrentUser(c)); err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, "Successfully left the room", nil)
}

// Members godoc
// @Summary List room members with their membership details
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /rooms/{id}/members [get]
func (h *RoomHandler) Members(c echo.Context) error {
	id := parseID(c, "id")
	if id == 0 {
		return respondError(c, errors.ErrRoomNotFound)
	}

	members, err := h.roomService.Members(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, members)
}
