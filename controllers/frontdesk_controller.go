package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hotel-frontdesk/apiclient"
	"hotel-frontdesk/middleware"
	"hotel-frontdesk/models"
	"hotel-frontdesk/roommap"
	"hotel-frontdesk/utils"
	"hotel-frontdesk/walkin"
)

// FrontDeskController serves the walk-in flow of every terminal.
type FrontDeskController struct {
	Sessions *walkin.Registry
}

func NewFrontDeskController(sessions *walkin.Registry) *FrontDeskController {
	return &FrontDeskController{Sessions: sessions}
}

type startPayload struct {
	RoomType string `json:"roomType" form:"roomType" binding:"required"`
}

type selectPayload struct {
	RoomNumber string `json:"roomNumber" form:"roomNumber" binding:"required"`
}

type breakfastPayload struct {
	Include bool `json:"include" form:"include"`
}

// session positions the terminal's flow at the request path. It answers with a redirect and
// returns nil when the step cannot be shown.
func (fc *FrontDeskController) session(c *gin.Context) *walkin.Controller {
	flow, _, redirect := fc.Sessions.Session(c.Request.Context(), middleware.TerminalID(c), c.Request.URL.Path)
	if redirect != "" {
		c.Redirect(http.StatusSeeOther, redirect)
		return nil
	}
	return flow
}

// ----------------------------------------------------
// Dashboard
// ----------------------------------------------------

func (fc *FrontDeskController) Dashboard(c *gin.Context) {
	flow := fc.session(c)
	if flow == nil {
		return
	}
	view, err := flow.Dashboard(c.Request.Context())
	if err != nil {
		backendError(c, err, "load dashboard")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, view)
}

func (fc *FrontDeskController) StartBooking(c *gin.Context) {
	var payload startPayload
	if err := c.ShouldBind(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "roomType is required")
		return
	}
	flow, _, _ := fc.Sessions.Session(c.Request.Context(), middleware.TerminalID(c), c.Request.URL.Path)
	location, err := flow.StartBooking(c.Request.Context(), models.RoomType(payload.RoomType))
	if err != nil {
		flowError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}

// SetBreakfast records the breakfast choice and returns to the current step.
func (fc *FrontDeskController) SetBreakfast(c *gin.Context) {
	var payload breakfastPayload
	if err := c.ShouldBind(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	flow, step, _ := fc.Sessions.Session(c.Request.Context(), middleware.TerminalID(c), c.Request.URL.Path)
	flow.SetBreakfast(c.Request.Context(), payload.Include)
	c.Redirect(http.StatusSeeOther, walkin.PathFor(step, flow.Snapshot().SelectedRoomType))
}

// ----------------------------------------------------
// Room selection
// ----------------------------------------------------

func (fc *FrontDeskController) RoomMap(c *gin.Context) {
	flow := fc.session(c)
	if flow == nil {
		return
	}
	view, err := flow.RoomMap(c.Request.Context())
	if err != nil {
		backendError(c, err, "load room map")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, view)
}

func (fc *FrontDeskController) SelectRoom(c *gin.Context) {
	var payload selectPayload
	if err := c.ShouldBind(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "roomNumber is required")
		return
	}
	flow := fc.session(c)
	if flow == nil {
		return
	}
	location, err := flow.SelectRoomNumber(c.Request.Context(), payload.RoomNumber)
	if err != nil {
		flowError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}

func (fc *FrontDeskController) RoomSelectionBack(c *gin.Context) {
	flow, _, _ := fc.Sessions.Session(c.Request.Context(), middleware.TerminalID(c), c.Request.URL.Path)
	c.Redirect(http.StatusSeeOther, flow.BackToDashboard(c.Request.Context()))
}

func (fc *FrontDeskController) Tooltip(c *gin.Context) {
	flow := fc.session(c)
	if flow == nil {
		return
	}
	room := c.Query("room")
	if room == "" {
		utils.JSONError(c, http.StatusBadRequest, "room is required")
		return
	}
	pointer := roommap.Point{X: queryFloat(c, "x", 0), Y: queryFloat(c, "y", 0)}
	viewport := roommap.Size{Width: queryFloat(c, "vw", 0), Height: queryFloat(c, "vh", 0)}
	tip, err := flow.Tooltip(c.Request.Context(), room, pointer, viewport)
	if err != nil {
		flowError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tip)
}

// ----------------------------------------------------
// Guest form
// ----------------------------------------------------

func (fc *FrontDeskController) GuestForm(c *gin.Context) {
	flow := fc.session(c)
	if flow == nil {
		return
	}
	view, err := flow.GuestForm()
	if err != nil {
		flowError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, view)
}

// Quote applies a partial form update and returns the repriced form.
func (fc *FrontDeskController) Quote(c *gin.Context) {
	var in walkin.FormInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	flow := fc.session(c)
	if flow == nil {
		return
	}
	view, err := flow.UpdateForm(c.Request.Context(), in)
	if err != nil {
		flowError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, view)
}

func (fc *FrontDeskController) Submit(c *gin.Context) {
	var in walkin.FormInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	flow := fc.session(c)
	if flow == nil {
		return
	}
	if _, err := flow.SubmitForm(c.Request.Context(), in); err != nil {
		flowError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, walkin.BookingSuccessPath)
}

func (fc *FrontDeskController) CancelGuestForm(c *gin.Context) {
	flow := fc.session(c)
	if flow == nil {
		return
	}
	c.Redirect(http.StatusSeeOther, flow.CancelGuestForm(c.Request.Context()))
}

// ----------------------------------------------------
// Booking success
// ----------------------------------------------------

func (fc *FrontDeskController) Receipt(c *gin.Context) {
	flow := fc.session(c)
	if flow == nil {
		return
	}
	view, err := flow.Receipt()
	if err != nil {
		flowError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, view)
}

func (fc *FrontDeskController) NewBooking(c *gin.Context) {
	flow, _, _ := fc.Sessions.Session(c.Request.Context(), middleware.TerminalID(c), c.Request.URL.Path)
	c.Redirect(http.StatusSeeOther, flow.NewBooking(c.Request.Context()))
}

func (fc *FrontDeskController) BackToDashboard(c *gin.Context) {
	flow, _, _ := fc.Sessions.Session(c.Request.Context(), middleware.TerminalID(c), c.Request.URL.Path)
	c.Redirect(http.StatusSeeOther, flow.BackToDashboard(c.Request.Context()))
}

func flowError(c *gin.Context, err error) {
	var invalid *walkin.ValidationError
	var apiErr *apiclient.Error
	switch {
	case errors.As(err, &invalid):
		utils.JSONFieldErrors(c, http.StatusUnprocessableEntity, invalid.Error(), invalid.Fields)
	case errors.As(err, &apiErr):
		utils.JSONError(c, http.StatusBadGateway, walkin.SubmitErrorMessage(err))
	case errors.Is(err, walkin.ErrSubmitInProgress):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, walkin.ErrRoomNotSelectable):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, walkin.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, walkin.ErrUnknownRoomType):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, walkin.ErrNoRoomSelected), errors.Is(err, walkin.ErrNoCompletedBooking):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("walk-in flow failed")
		utils.JSONError(c, http.StatusBadGateway, walkin.SubmitErrorMessage(err))
	}
}

func backendError(c *gin.Context, err error, action string) {
	log.Warn().Err(err).Str("terminal", middleware.TerminalID(c)).Msg(action + " failed")
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && !apiErr.IsNetwork() {
		utils.JSONError(c, http.StatusBadGateway, apiErr.Message)
		return
	}
	utils.JSONError(c, http.StatusBadGateway, "Hotel service is unavailable")
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
