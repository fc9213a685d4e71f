package walkin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hotel-frontdesk/apiclient"
	"hotel-frontdesk/flowstore"
	"hotel-frontdesk/guestform"
	"hotel-frontdesk/idgen"
	"hotel-frontdesk/models"
	"hotel-frontdesk/pricing"
	"hotel-frontdesk/roommap"
)

var (
	ErrSubmitInProgress   = errors.New("a booking submission is already in progress")
	ErrRoomNotSelectable  = errors.New("room cannot be selected")
	ErrRoomNotFound       = errors.New("room not found")
	ErrNoRoomSelected     = errors.New("no room selected")
	ErrNoCompletedBooking = errors.New("no completed booking")
	ErrUnknownRoomType    = errors.New("unknown room type")
)

const genericSubmitError = "An unexpected error occurred. Please try again."

// ValidationError carries the field errors of a rejected guest form.
type ValidationError struct {
	Fields guestform.FieldErrors
}

func (e *ValidationError) Error() string { return "guest form has invalid fields" }

// FlowStateStore persists the encoded Snapshot of one terminal.
type FlowStateStore interface {
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, payload []byte) error
	Clear(ctx context.Context) error
}

// Backend is the part of the hotel API the flow needs.
type Backend interface {
	AvailableNow(ctx context.Context) (models.AvailableRooms, error)
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (models.BookingConfirmation, error)
}

// Snapshot is the recoverable part of the flow.
type Snapshot struct {
	SelectedRoom     *models.RoomAvailability    `json:"selectedRoom"`
	SelectedRoomType models.RoomType             `json:"selectedRoomType"`
	IncludeBreakfast bool                        `json:"includeBreakfast"`
	CompletedBooking *models.BookingConfirmation `json:"completedBooking"`
}

type Options struct {
	Backend Backend
	Store   FlowStateStore
	Logger  zerolog.Logger
	Counter *idgen.Counter
	Now     func() time.Time
}

type pendingSubmit struct {
	guest    models.GuestInfo
	checkOut time.Time
}

// Controller is the flow of one front-desk terminal. It is safe for concurrent use; backend
// calls run without holding the lock.
type Controller struct {
	backend Backend
	store   FlowStateStore
	logger  zerolog.Logger
	counter *idgen.Counter
	now     func() time.Time

	mu         sync.Mutex
	step       Step
	state      Snapshot
	saved      []byte
	selection  *roommap.Selection
	form       *guestform.Form
	mounted    bool
	submitting bool
	submitErr  string
	pending    *pendingSubmit
}

func NewController(opts Options) *Controller {
	c := &Controller{
		backend: opts.Backend,
		store:   opts.Store,
		logger:  opts.Logger,
		counter: opts.Counter,
		now:     opts.Now,
		step:    StepDashboard,
	}
	if c.store == nil {
		c.store = flowstore.For(flowstore.NewMemory(), "")
	}
	if c.counter == nil {
		c.counter = idgen.New()
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.saved, _ = encode(Snapshot{})
	return c
}

// Mount restores the stored snapshot and then applies path, so a room-type segment in the
// URL wins over the stored filter. The snapshot is only read on the first call.
func (c *Controller) Mount(ctx context.Context, path string) (Step, string) {
	return c.Navigate(ctx, path)
}

// Navigate moves to the step of path. The returned redirect is non-empty when the step's
// preconditions do not hold.
func (c *Controller) Navigate(ctx context.Context, path string) (Step, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		c.mounted = true
		c.restore(ctx)
	}
	return c.navigate(ctx, path)
}

// Submitting reports whether a booking request is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Snapshot returns a copy of the recoverable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copySnapshot(c.state)
}

// StartBooking opens the room map filtered to t.
func (c *Controller) StartBooking(ctx context.Context, t models.RoomType) (string, error) {
	return c.ChangeRoomType(ctx, t)
}

// ChangeRoomType (re-)enters the room map with a new filter.
func (c *Controller) ChangeRoomType(ctx context.Context, t models.RoomType) (string, error) {
	filter, ok := models.ParseRoomFilter(string(t))
	if !ok {
		return "", ErrUnknownRoomType
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedRoomType = filter
	c.enter(StepRoomMap)
	if c.selection != nil {
		c.selection.SetFilter(filter)
	}
	c.persist(ctx)
	return RoomSelectionPath(filter), nil
}

// SelectRoom picks a room already known to the caller.
func (c *Controller) SelectRoom(ctx context.Context, room models.RoomAvailability) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !roommap.Selectable(room, c.filter()) || !roommap.OnMap(room.RoomNumber, c.filter()) {
		return "", ErrRoomNotSelectable
	}
	c.choose(room)
	c.persist(ctx)
	return GuestFormPath, nil
}

// SelectRoomNumber refreshes room availability and clicks roomNumber on the map.
func (c *Controller) SelectRoomNumber(ctx context.Context, roomNumber string) (string, error) {
	rooms, err := c.backend.AvailableNow(ctx)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = roommap.NewSelection(rooms.Rooms, c.filter(), c.choose)
	if !c.selection.Click(roomNumber) {
		return "", ErrRoomNotSelectable
	}
	c.persist(ctx)
	return GuestFormPath, nil
}

// SetBreakfast records the breakfast choice and reprices an open form.
func (c *Controller) SetBreakfast(ctx context.Context, include bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IncludeBreakfast = include
	if c.form != nil {
		addOns := c.form.State().AddOns
		addOns.Breakfast = include
		c.form.SetAddOns(addOns)
	}
	c.persist(ctx)
}

// FormInput is a partial update of the guest form; nil fields are left as they are.
type FormInput struct {
	Guest  *models.GuestInfo `json:"guest"`
	Nights *int              `json:"nights"`
	AddOns *pricing.AddOns   `json:"addOns"`
}

// UpdateForm applies input and returns the repriced form.
func (c *Controller) UpdateForm(ctx context.Context, in FormInput) (GuestFormView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.formOpen() {
		return GuestFormView{}, ErrNoRoomSelected
	}
	c.apply(in)
	c.persist(ctx)
	return c.guestFormView(), nil
}

// SubmitForm applies input, validates the form and, when valid, submits the booking.
func (c *Controller) SubmitForm(ctx context.Context, in FormInput) (models.BookingConfirmation, error) {
	c.mu.Lock()
	if !c.formOpen() {
		c.mu.Unlock()
		return models.BookingConfirmation{}, ErrNoRoomSelected
	}
	if c.submitting {
		c.mu.Unlock()
		return models.BookingConfirmation{}, ErrSubmitInProgress
	}
	c.apply(in)
	c.persist(ctx)
	c.pending = nil
	if err := c.form.Submit(c.now()); err != nil {
		fields := c.form.Errors()
		c.mu.Unlock()
		if errors.Is(err, guestform.ErrInvalid) {
			return models.BookingConfirmation{}, &ValidationError{Fields: fields}
		}
		return models.BookingConfirmation{}, err
	}
	p := c.pending
	c.pending = nil
	c.mu.Unlock()

	if p == nil {
		return models.BookingConfirmation{}, ErrNoRoomSelected
	}
	return c.Submit(ctx, p.guest, p.checkOut)
}

// Submit books the selected room for guest until checkOut. Pricing is computed here, once.
func (c *Controller) Submit(ctx context.Context, guest models.GuestInfo, checkOut time.Time) (models.BookingConfirmation, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return models.BookingConfirmation{}, ErrSubmitInProgress
	}
	if c.state.SelectedRoom == nil {
		c.mu.Unlock()
		return models.BookingConfirmation{}, ErrNoRoomSelected
	}
	room := *c.state.SelectedRoom
	breakfast := c.state.IncludeBreakfast
	now := c.now()
	c.submitting = true
	c.submitErr = ""
	c.mu.Unlock()

	req := models.CreateBookingRequest{
		RoomID:            room.ID,
		Guest:             guest,
		CheckOutDate:      checkOut.UTC().Format(time.RFC3339),
		BreakfastIncluded: breakfast,
		Pricing:           pricing.ForSubmission(room.BasePrice, room.RoomType, breakfast, checkOut, now),
	}
	booking, err := c.backend.CreateBooking(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.submitErr = SubmitErrorMessage(err)
		c.logger.Warn().Err(err).Str("room", room.RoomNumber).Msg("walk-in booking failed")
		return models.BookingConfirmation{}, err
	}
	confirmed := booking
	c.state.CompletedBooking = &confirmed
	c.enter(StepBookingSuccess)
	c.persist(ctx)
	c.logger.Info().Str("reference", booking.ReferenceCode).Str("room", room.RoomNumber).Float64("total", booking.TotalAmount).Msg("walk-in booking confirmed")
	return booking, nil
}

// CancelGuestForm returns to the room map. The room type, the picked room and the typed
// guest details are kept; picking the same room again reopens the form as it was.
func (c *Controller) CancelGuestForm(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enter(StepRoomMap)
	c.persist(ctx)
	return RoomSelectionPath(c.filter())
}

// BackToDashboard resets the flow and deletes the stored snapshot.
func (c *Controller) BackToDashboard(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(ctx)
	return DashboardPath
}

// NewBooking starts over after a receipt. It resets exactly like BackToDashboard.
func (c *Controller) NewBooking(ctx context.Context) string {
	return c.BackToDashboard(ctx)
}

// SubmitErrorMessage is the text shown for a failed submission.
func SubmitErrorMessage(err error) string {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && !apiErr.IsNetwork() {
		return "Booking failed: " + apiErr.Message
	}
	return genericSubmitError
}

func (c *Controller) navigate(ctx context.Context, path string) (Step, string) {
	route := DecodeStep(path)
	redirect := ""
	switch route.Step {
	case StepRoomMap:
		if route.RoomType != "" {
			c.state.SelectedRoomType = route.RoomType
		} else {
			redirect = RoomSelectionPath(c.filter())
		}
		c.enter(StepRoomMap)
	case StepGuestForm:
		if c.state.SelectedRoom == nil {
			redirect = RoomSelectionPath(c.filter())
			c.enter(StepRoomMap)
		} else {
			c.enter(StepGuestForm)
		}
	case StepBookingSuccess:
		if c.state.CompletedBooking == nil {
			redirect = DashboardPath
			c.enter(StepDashboard)
		} else {
			c.enter(StepBookingSuccess)
		}
	default:
		c.enter(StepDashboard)
	}
	c.persist(ctx)
	return c.step, redirect
}

func (c *Controller) filter() models.RoomType {
	if c.state.SelectedRoomType == "" {
		return models.RoomTypeAll
	}
	return c.state.SelectedRoomType
}

// enter switches step and drops the local state of the step being left. The guest form
// outlives a trip to the room map and is replaced only when a different room is picked.
func (c *Controller) enter(step Step) {
	if step != StepRoomMap {
		c.selection = nil
	}
	switch step {
	case StepGuestForm:
		if c.form == nil || c.form.Room().RoomNumber != c.state.SelectedRoom.RoomNumber {
			c.form = c.newForm()
			c.submitErr = ""
		}
	case StepRoomMap:
		c.submitErr = ""
	default:
		c.form = nil
		c.submitErr = ""
	}
	c.step = step
}

func (c *Controller) formOpen() bool {
	return c.form != nil && c.step == StepGuestForm
}

func (c *Controller) choose(room models.RoomAvailability) {
	r := room
	c.state.SelectedRoom = &r
	c.enter(StepGuestForm)
}

func (c *Controller) newForm() *guestform.Form {
	return guestform.New(guestform.Options{
		Room:              *c.state.SelectedRoom,
		Breakfast:         c.state.IncludeBreakfast,
		Counter:           c.counter,
		OnBreakfastChange: c.breakfastChanged,
		OnSubmit:          c.queueSubmit,
	})
}

// breakfastChanged and queueSubmit run inside form calls, with c.mu held.
func (c *Controller) breakfastChanged(include bool) {
	c.state.IncludeBreakfast = include
}

func (c *Controller) queueSubmit(guest models.GuestInfo, checkOut time.Time) error {
	c.pending = &pendingSubmit{guest: guest, checkOut: checkOut}
	return nil
}

func (c *Controller) apply(in FormInput) {
	if in.Guest != nil {
		c.form.SetGuest(*in.Guest)
	}
	if in.Nights != nil {
		c.form.SetNights(*in.Nights)
	}
	if in.AddOns != nil {
		c.form.SetAddOns(*in.AddOns)
	}
}

func (c *Controller) reset(ctx context.Context) {
	c.state = Snapshot{}
	c.selection = nil
	c.form = nil
	c.submitErr = ""
	c.pending = nil
	c.step = StepDashboard
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("failed to clear walk-in snapshot")
	}
	c.saved, _ = encode(Snapshot{})
}

func (c *Controller) restore(ctx context.Context) {
	payload, ok, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("walk-in snapshot unavailable; starting fresh")
		return
	}
	if !ok {
		return
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		c.logger.Warn().Err(err).Msg("discarding malformed walk-in snapshot")
		return
	}
	if snap.SelectedRoomType != "" {
		t, ok := models.ParseRoomFilter(string(snap.SelectedRoomType))
		if !ok {
			c.logger.Warn().Str("roomType", string(snap.SelectedRoomType)).Msg("ignoring unknown room type in snapshot")
		}
		snap.SelectedRoomType = t
	}
	if snap.SelectedRoom != nil && snap.SelectedRoom.RoomNumber == "" {
		snap.SelectedRoom = nil
	}
	c.state = snap
	if normalized, err := encode(snap); err == nil {
		c.saved = normalized
	}
}

// persist saves the snapshot when it changed since the last successful save. A snapshot that
// cannot be encoded is not saved; the terminal then has no recovery for it.
func (c *Controller) persist(ctx context.Context) {
	payload, err := encode(c.state)
	if err != nil {
		c.logger.Warn().Err(err).Msg("walk-in snapshot not encodable; skipping save")
		return
	}
	if bytes.Equal(payload, c.saved) {
		return
	}
	if err := c.store.Save(ctx, payload); err != nil {
		c.logger.Warn().Err(err).Msg("failed to save walk-in snapshot")
		return
	}
	c.saved = payload
}

func encode(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

func copySnapshot(s Snapshot) Snapshot {
	out := s
	if s.SelectedRoom != nil {
		r := *s.SelectedRoom
		out.SelectedRoom = &r
	}
	if s.CompletedBooking != nil {
		b := *s.CompletedBooking
		out.CompletedBooking = &b
	}
	return out
}
