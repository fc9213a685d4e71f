package guestform

import (
	"fmt"
	"time"

	"hotel-frontdesk/idgen"
	"hotel-frontdesk/models"
	"hotel-frontdesk/pricing"
)

// Options wires a form to its room and parent callbacks.
type Options struct {
	Room      models.RoomAvailability
	Breakfast bool
	Counter   *idgen.Counter

	// OnBreakfastChange fires whenever the breakfast toggle flips.
	OnBreakfastChange func(bool)
	// OnSubmit receives the sanitized guest and the computed check-out date.
	OnSubmit func(guest models.GuestInfo, checkOut time.Time) error
}

// Form is the local state of the guest intake step.
type Form struct {
	room     models.RoomAvailability
	guest    models.GuestInfo
	nights   int
	addOns   pricing.AddOns
	errors   FieldErrors
	quote    pricing.Breakdown
	errorIDs map[string]string

	onBreakfastChange func(bool)
	onSubmit          func(models.GuestInfo, time.Time) error
}

// State is a read-only snapshot of the form for rendering.
type State struct {
	Room     models.RoomAvailability `json:"room"`
	Guest    models.GuestInfo        `json:"guest"`
	Nights   int                     `json:"nights"`
	AddOns   pricing.AddOns          `json:"addOns"`
	Quote    pricing.Breakdown       `json:"quote"`
	Unbilled []string                `json:"unbilledAddOns,omitempty"`
	Errors   FieldErrors             `json:"errors"`
	ErrorIDs map[string]string       `json:"errorIds"`
}

// New starts a form for one night with a national ID, which is the common walk-in case.
func New(opts Options) *Form {
	counter := opts.Counter
	if counter == nil {
		counter = idgen.New()
	}
	f := &Form{
		room:              opts.Room,
		guest:             models.GuestInfo{IDType: models.IDTypeNationalID},
		nights:            MinNights,
		addOns:            pricing.AddOns{Breakfast: opts.Breakfast},
		errors:            FieldErrors{},
		errorIDs:          map[string]string{},
		onBreakfastChange: opts.OnBreakfastChange,
		onSubmit:          opts.OnSubmit,
	}
	for _, field := range []string{"firstName", "lastName", "phone", "idType", "idNumber", "nights"} {
		f.errorIDs[field] = counter.Next("guest-" + field + "-error")
	}
	f.recompute()
	return f
}

// Room is the room the form is pricing.
func (f *Form) Room() models.RoomAvailability { return f.room }

// SetGuest replaces the guest fields. Errors of fields whose value changed are cleared.
func (f *Form) SetGuest(g models.GuestInfo) {
	if g.FirstName != f.guest.FirstName {
		delete(f.errors, "firstName")
	}
	if g.LastName != f.guest.LastName {
		delete(f.errors, "lastName")
	}
	if g.Phone != f.guest.Phone {
		delete(f.errors, "phone")
	}
	if g.IDType != f.guest.IDType {
		delete(f.errors, "idType")
		delete(f.errors, "idNumber")
	}
	if g.IDNumber != f.guest.IDNumber {
		delete(f.errors, "idNumber")
	}
	f.guest = g
}

// SetNights changes the stay length and reprices. Out-of-range values are kept and reported
// on validation.
func (f *Form) SetNights(n int) {
	if n != f.nights {
		delete(f.errors, "nights")
	}
	f.nights = n
	f.recompute()
}

// SetAddOns replaces every add-on selection and reprices.
func (f *Form) SetAddOns(a pricing.AddOns) {
	breakfastChanged := a.Breakfast != f.addOns.Breakfast
	f.addOns = a
	f.recompute()
	if breakfastChanged && f.onBreakfastChange != nil {
		f.onBreakfastChange(a.Breakfast)
	}
}

// Toggle flips one add-on by its code.
func (f *Form) Toggle(code string) error {
	a := f.addOns
	switch code {
	case "breakfast":
		a.Breakfast = !a.Breakfast
	case "extraBed":
		a.ExtraBed = !a.ExtraBed
	case "lateCheckout":
		a.LateCheckout = !a.LateCheckout
	case "earlyCheckIn":
		a.EarlyCheckIn = !a.EarlyCheckIn
	case "specialOccasion":
		a.SpecialOccasion = !a.SpecialOccasion
	default:
		return fmt.Errorf("unknown add-on %q", code)
	}
	f.SetAddOns(a)
	return nil
}

// Quote is the live price for the current nights and add-ons.
func (f *Form) Quote() pricing.Breakdown { return f.quote }

// Errors returns a copy of the current field errors.
func (f *Form) Errors() FieldErrors {
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Validate refreshes the error map and reports whether the form can be submitted.
func (f *Form) Validate() bool {
	f.errors = ValidateStay(f.guest, f.nights)
	return len(f.errors) == 0
}

// Submit validates and hands the sanitized guest with check-out = now + nights days to
// OnSubmit. Invalid forms return ErrInvalid without calling OnSubmit.
func (f *Form) Submit(now time.Time) error {
	if !f.Validate() {
		return ErrInvalid
	}
	checkOut := now.Add(time.Duration(f.nights) * 24 * time.Hour)
	if f.onSubmit == nil {
		return nil
	}
	return f.onSubmit(Sanitize(f.guest), checkOut)
}

// State snapshots the form.
func (f *Form) State() State {
	ids := make(map[string]string, len(f.errorIDs))
	for k, v := range f.errorIDs {
		ids[k] = v
	}
	return State{
		Room:     f.room,
		Guest:    f.guest,
		Nights:   f.nights,
		AddOns:   f.addOns,
		Quote:    f.quote,
		Unbilled: pricing.Unbilled(f.addOns),
		Errors:   f.Errors(),
		ErrorIDs: ids,
	}
}

func (f *Form) recompute() {
	f.quote = pricing.Calculate(f.room.BasePrice, f.nights, f.addOns, f.room.RoomType)
}
