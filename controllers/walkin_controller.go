package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"
)

// CheckInService books and looks up walk-ins.
type CheckInService interface {
	CheckIn(ctx context.Context, req models.CreateBookingRequest) (models.BookingConfirmation, error)
	GetByReference(ctx context.Context, reference string) (models.BookingConfirmation, error)
}

type WalkInController struct {
	Service CheckInService
}

func NewWalkInController(svc CheckInService) *WalkInController {
	return &WalkInController{Service: svc}
}

// ----------------------------------------------------
// POST /api/walkin/checkin
// ----------------------------------------------------

func (wc *WalkInController) CheckIn(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	booking, err := wc.Service.CheckIn(c.Request.Context(), req)
	if err != nil {
		status, msg := checkInErrorStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Uint("room_id", req.RoomID).Msg("walk-in check-in failed")
		} else {
			log.Warn().Err(err).Uint("room_id", req.RoomID).Msg("walk-in check-in rejected")
		}
		utils.JSONError(c, status, msg)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, models.BookingResponse{Booking: booking})
}

// ----------------------------------------------------
// GET /api/walkin/booking/:reference
// ----------------------------------------------------

func (wc *WalkInController) GetBooking(c *gin.Context) {
	booking, err := wc.Service.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Booking not found")
			return
		}
		log.Error().Err(err).Str("reference", c.Param("reference")).Msg("booking lookup failed")
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, models.BookingResponse{Booking: booking})
}

func checkInErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound):
		return http.StatusNotFound, "Room not found"
	case errors.Is(err, services.ErrRoomUnavailable):
		return http.StatusConflict, "Room is no longer available"
	case errors.Is(err, services.ErrPricingMismatch):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Check-in failed"
	}
}
