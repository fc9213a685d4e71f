package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"
)

// RoomLister is the room side of the backend.
type RoomLister interface {
	AvailableNow(ctx context.Context) (models.AvailableRooms, error)
	UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) (models.Room, error)
}

type RoomController struct {
	Rooms RoomLister
}

func NewRoomController(rooms RoomLister) *RoomController {
	return &RoomController{Rooms: rooms}
}

// ----------------------------------------------------
// GET /api/rooms/available-now
// ----------------------------------------------------

func (rc *RoomController) AvailableNow(c *gin.Context) {
	rooms, err := rc.Rooms.AvailableNow(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("list available rooms failed")
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

type updateStatusPayload struct {
	Status models.RoomStatus `json:"status" binding:"required"`
}

// ----------------------------------------------------
// PATCH /api/rooms/:id/status
// ----------------------------------------------------

func (rc *RoomController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid room id")
		return
	}
	var payload updateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	room, err := rc.Rooms.UpdateStatus(c.Request.Context(), uint(id), payload.Status)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, room.Availability())
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, "Room not found")
	case errors.Is(err, services.ErrInvalidRequest):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Uint64("room_id", id).Msg("update room status failed")
		utils.JSONError(c, http.StatusInternalServerError, "Update failed")
	}
}
