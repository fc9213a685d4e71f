// Package pricing computes walk-in room charges in whole Thai Baht.
package pricing

import (
	"math"
	"time"

	"hotel-frontdesk/models"
)

const (
	ExtraBedPerNight     = 500
	LateCheckoutFee      = 300
	EarlyCheckInFee      = 300
	SpecialOccasionFee   = 200
	defaultBreakfastRate = 250
)

// AddOns are the optional services a guest can add at the desk.
type AddOns struct {
	Breakfast       bool `json:"breakfast"`
	ExtraBed        bool `json:"extraBed"`
	LateCheckout    bool `json:"lateCheckout"`
	EarlyCheckIn    bool `json:"earlyCheckIn"`
	SpecialOccasion bool `json:"specialOccasion"`
}

// BreakfastPerNight is the per-night breakfast price for a room type.
func BreakfastPerNight(t models.RoomType) float64 {
	switch t {
	case models.RoomTypeStandard, models.RoomTypeSuperior, models.RoomTypeDeluxe:
		return 250
	case models.RoomTypeFamily, models.RoomTypeZenith:
		return 350
	case models.RoomTypeHopIn:
		return 150
	default:
		return defaultBreakfastRate
	}
}

// LineItem is one displayed row of a breakdown.
type LineItem struct {
	Code      string  `json:"code"`
	Label     string  `json:"label"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	PerNight  bool    `json:"perNight"`
	Amount    float64 `json:"amount"`
}

// Breakdown is a derived, itemised price. Lines always sum to Total.
type Breakdown struct {
	BasePrice   float64    `json:"basePrice"`
	Nights      int        `json:"nights"`
	NightlyRate float64    `json:"nightlyRate"`
	OneTimeFees float64    `json:"oneTimeFees"`
	RoomTotal   float64    `json:"roomTotal"`
	Lines       []LineItem `json:"lines"`
	Total       float64    `json:"total"`
}

// LinesTotal sums the displayed line amounts.
func (b Breakdown) LinesTotal() float64 {
	var sum float64
	for _, l := range b.Lines {
		sum += l.Amount
	}
	return sum
}

// Calculate prices a stay. nights is used as given; range checks belong to the form.
func Calculate(basePrice float64, nights int, addOns AddOns, roomType models.RoomType) Breakdown {
	breakfast := BreakfastPerNight(roomType)

	nightlyRate := basePrice
	if addOns.Breakfast {
		nightlyRate += breakfast
	}
	if addOns.ExtraBed {
		nightlyRate += ExtraBedPerNight
	}

	var oneTime float64
	if addOns.LateCheckout {
		oneTime += LateCheckoutFee
	}
	if addOns.EarlyCheckIn {
		oneTime += EarlyCheckInFee
	}
	if addOns.SpecialOccasion {
		oneTime += SpecialOccasionFee
	}

	n := float64(nights)
	b := Breakdown{
		BasePrice:   basePrice,
		Nights:      nights,
		NightlyRate: nightlyRate,
		OneTimeFees: oneTime,
		RoomTotal:   basePrice * n,
		Total:       nightlyRate*n + oneTime,
	}

	b.Lines = append(b.Lines, perNight("room", roomType.Label(), basePrice, nights))
	if addOns.Breakfast {
		b.Lines = append(b.Lines, perNight("breakfast", "Breakfast", breakfast, nights))
	}
	if addOns.ExtraBed {
		b.Lines = append(b.Lines, perNight("extraBed", "Extra bed", ExtraBedPerNight, nights))
	}
	if addOns.LateCheckout {
		b.Lines = append(b.Lines, oneTimeLine("lateCheckout", "Late checkout", LateCheckoutFee))
	}
	if addOns.EarlyCheckIn {
		b.Lines = append(b.Lines, oneTimeLine("earlyCheckIn", "Early check-in", EarlyCheckInFee))
	}
	if addOns.SpecialOccasion {
		b.Lines = append(b.Lines, oneTimeLine("specialOccasion", "Special occasion", SpecialOccasionFee))
	}
	return b
}

func perNight(code, label string, unit float64, nights int) LineItem {
	return LineItem{Code: code, Label: label, UnitPrice: unit, Quantity: nights, PerNight: true, Amount: unit * float64(nights)}
}

func oneTimeLine(code, label string, fee float64) LineItem {
	return LineItem{Code: code, Label: label, UnitPrice: fee, Quantity: 1, Amount: fee}
}

// NightsUntil counts started days between now and checkOut, rounding up.
func NightsUntil(checkOut, now time.Time) int {
	return int(math.Ceil(checkOut.Sub(now).Hours() / 24))
}

// ForSubmission is the charge sent to the backend at submit time. It bills the room and
// breakfast only; the other add-ons of Calculate are not part of the booking request.
func ForSubmission(basePrice float64, roomType models.RoomType, breakfastIncluded bool, checkOut, now time.Time) models.BookingPricing {
	return ForNights(basePrice, roomType, breakfastIncluded, NightsUntil(checkOut, now))
}

// ForNights bills the room and breakfast for a known number of nights.
func ForNights(basePrice float64, roomType models.RoomType, breakfastIncluded bool, nights int) models.BookingPricing {
	roomTotal := basePrice * float64(nights)
	var breakfastTotal float64
	if breakfastIncluded {
		breakfastTotal = BreakfastPerNight(roomType) * float64(nights)
	}
	return models.BookingPricing{
		RoomTotal:      roomTotal,
		BreakfastTotal: breakfastTotal,
		TotalAmount:    roomTotal + breakfastTotal,
		Nights:         nights,
	}
}

// Unbilled lists the selected add-ons that ForSubmission does not charge.
func Unbilled(addOns AddOns) []string {
	var out []string
	if addOns.ExtraBed {
		out = append(out, "extraBed")
	}
	if addOns.LateCheckout {
		out = append(out, "lateCheckout")
	}
	if addOns.EarlyCheckIn {
		out = append(out, "earlyCheckIn")
	}
	if addOns.SpecialOccasion {
		out = append(out, "specialOccasion")
	}
	return out
}
