package walkin

import (
	"context"

	"hotel-frontdesk/guestform"
	"hotel-frontdesk/models"
	"hotel-frontdesk/roommap"
	"hotel-frontdesk/utils"
)

type DashboardView struct {
	Step             Step                 `json:"step"`
	Summary          []models.RoomSummary `json:"summary"`
	SelectedRoomType models.RoomType      `json:"selectedRoomType,omitempty"`
}

type RoomMapView struct {
	Step         Step                     `json:"step"`
	Filter       models.RoomType          `json:"filter"`
	FilterLabel  string                   `json:"filterLabel"`
	RoomTypes    []models.RoomType        `json:"roomTypes"`
	Map          roommap.View             `json:"map"`
	SelectedRoom *models.RoomAvailability `json:"selectedRoom,omitempty"`
}

type GuestFormView struct {
	Step             Step                    `json:"step"`
	Room             models.RoomAvailability `json:"room"`
	IncludeBreakfast bool                    `json:"includeBreakfast"`
	Form             guestform.State         `json:"form"`
	QuoteTotal       string                  `json:"quoteTotal"`
	Submitting       bool                    `json:"submitting"`
	SubmitError      string                  `json:"submitError,omitempty"`
}

// ReceiptView shows the booking exactly as the server confirmed it.
type ReceiptView struct {
	Step           Step                       `json:"step"`
	Booking        models.BookingConfirmation `json:"booking"`
	RoomLabel      string                     `json:"roomLabel"`
	RoomTotal      string                     `json:"roomTotal"`
	BreakfastTotal string                     `json:"breakfastTotal"`
	TotalAmount    string                     `json:"totalAmount"`
}

// Dashboard loads the per-type room summary.
func (c *Controller) Dashboard(ctx context.Context) (DashboardView, error) {
	rooms, err := c.backend.AvailableNow(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	summary := rooms.Summary
	if len(summary) == 0 {
		summary = models.Summarize(rooms.Rooms)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return DashboardView{Step: c.step, Summary: summary, SelectedRoomType: c.state.SelectedRoomType}, nil
}

// RoomMap loads current availability and lays it out for the active filter.
func (c *Controller) RoomMap(ctx context.Context) (RoomMapView, error) {
	rooms, err := c.backend.AvailableNow(ctx)
	if err != nil {
		return RoomMapView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	filter := c.filter()
	c.selection = roommap.NewSelection(rooms.Rooms, filter, c.choose)
	return RoomMapView{
		Step:         c.step,
		Filter:       filter,
		FilterLabel:  filter.Label(),
		RoomTypes:    append([]models.RoomType{models.RoomTypeAll}, models.RoomTypes...),
		Map:          c.selection.View(),
		SelectedRoom: copySnapshot(c.state).SelectedRoom,
	}, nil
}

// Tooltip hovers roomNumber on the current map. The map is loaded first if needed.
func (c *Controller) Tooltip(ctx context.Context, roomNumber string, pointer roommap.Point, viewport roommap.Size) (roommap.Tooltip, error) {
	c.mu.Lock()
	loaded := c.selection != nil
	c.mu.Unlock()
	if !loaded {
		if _, err := c.RoomMap(ctx); err != nil {
			return roommap.Tooltip{}, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selection == nil {
		return roommap.Tooltip{}, ErrRoomNotFound
	}
	tip, ok := c.selection.Hover(roomNumber, pointer, viewport)
	if !ok {
		return roommap.Tooltip{}, ErrRoomNotFound
	}
	return tip, nil
}

// GuestForm returns the open form.
func (c *Controller) GuestForm() (GuestFormView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.formOpen() {
		return GuestFormView{}, ErrNoRoomSelected
	}
	return c.guestFormView(), nil
}

// Receipt returns the completed booking.
func (c *Controller) Receipt() (ReceiptView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.CompletedBooking == nil {
		return ReceiptView{}, ErrNoCompletedBooking
	}
	b := *c.state.CompletedBooking
	return ReceiptView{
		Step:           c.step,
		Booking:        b,
		RoomLabel:      b.Room.Type.Label(),
		RoomTotal:      utils.FormatBaht(b.RoomTotal),
		BreakfastTotal: utils.FormatBaht(b.BreakfastTotal),
		TotalAmount:    utils.FormatBaht(b.TotalAmount),
	}, nil
}

func (c *Controller) guestFormView() GuestFormView {
	st := c.form.State()
	return GuestFormView{
		Step:             c.step,
		Room:             c.form.Room(),
		IncludeBreakfast: c.state.IncludeBreakfast,
		Form:             st,
		QuoteTotal:       utils.FormatBaht(st.Quote.Total),
		Submitting:       c.submitting,
		SubmitError:      c.submitErr,
	}
}
