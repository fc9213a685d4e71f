package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"
)

type RoomTypeCatalog interface {
	Catalog(ctx context.Context) ([]services.RoomTypeInfo, error)
}

type RoomTypeController struct {
	Types RoomTypeCatalog
}

func NewRoomTypeController(types RoomTypeCatalog) *RoomTypeController {
	return &RoomTypeController{Types: types}
}

// GET /api/room-types
func (rt *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := rt.Types.Catalog(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("room type catalog failed")
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load room types")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}
