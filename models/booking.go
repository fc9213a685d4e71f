package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusCheckedIn = "CHECKED_IN"
	BookingSourceWalkIn    = "WALK_IN"
)

// Booking is a confirmed walk-in stay.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"referenceCode"`
	RoomID        uint   `gorm:"column:room_id;index" json:"roomId"`
	GuestID       uint   `gorm:"column:guest_id;index" json:"guestId"`

	CheckInDate       time.Time `gorm:"column:check_in_date" json:"checkInDate"`
	CheckOutDate      time.Time `gorm:"column:check_out_date" json:"checkOutDate"`
	Nights            int       `gorm:"column:nights" json:"nights"`
	BreakfastIncluded bool      `gorm:"column:breakfast_included;default:false" json:"breakfastIncluded"`
	RoomTotal         float64   `gorm:"column:room_total" json:"roomTotal"`
	BreakfastTotal    float64   `gorm:"column:breakfast_total" json:"breakfastTotal"`
	TotalAmount       float64   `gorm:"column:total_amount" json:"totalAmount"`
	Status            string    `gorm:"column:status;size:64" json:"status"`
	Source            string    `gorm:"column:source;size:32" json:"source"`

	Room  Room  `gorm:"foreignKey:RoomID;references:ID" json:"room"`
	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest"`
}

// Confirmation is the receipt view of the booking. Room and Guest must be loaded.
func (b Booking) Confirmation() BookingConfirmation {
	return BookingConfirmation{
		ReferenceCode: b.ReferenceCode,
		GuestName:     GuestInfo{FirstName: b.Guest.FirstName, LastName: b.Guest.LastName}.DisplayName(),
		Room: BookedRoom{
			ID:     b.Room.ID,
			Number: b.Room.RoomNumber,
			Type:   b.Room.RoomType,
			Floor:  b.Room.Floor,
		},
		CheckInDate:       b.CheckInDate,
		CheckOutDate:      b.CheckOutDate,
		Nights:            b.Nights,
		BreakfastIncluded: b.BreakfastIncluded,
		RoomTotal:         b.RoomTotal,
		BreakfastTotal:    b.BreakfastTotal,
		TotalAmount:       b.TotalAmount,
		Status:            b.Status,
	}
}

// BookingPricing is the charge sent with a walk-in check-in.
type BookingPricing struct {
	RoomTotal      float64 `json:"roomTotal"`
	BreakfastTotal float64 `json:"breakfastTotal"`
	TotalAmount    float64 `json:"totalAmount"`
	Nights         int     `json:"nights"`
}

// CreateBookingRequest is the body of POST /api/walkin/checkin.
type CreateBookingRequest struct {
	RoomID            uint           `json:"roomId"`
	Guest             GuestInfo      `json:"guest"`
	CheckOutDate      string         `json:"checkOutDate"`
	BreakfastIncluded bool           `json:"breakfastIncluded"`
	Pricing           BookingPricing `json:"pricing"`
}

// BookedRoom identifies the room assigned by the backend.
type BookedRoom struct {
	ID     uint     `json:"id"`
	Number string   `json:"number"`
	Type   RoomType `json:"type"`
	Floor  int      `json:"floor"`
}

// BookingConfirmation is the server-confirmed result of a walk-in check-in.
type BookingConfirmation struct {
	ReferenceCode     string     `json:"referenceCode"`
	GuestName         string     `json:"guestName"`
	Room              BookedRoom `json:"room"`
	CheckInDate       time.Time  `json:"checkInDate"`
	CheckOutDate      time.Time  `json:"checkOutDate"`
	Nights            int        `json:"nights"`
	BreakfastIncluded bool       `json:"breakfastIncluded"`
	RoomTotal         float64    `json:"roomTotal"`
	BreakfastTotal    float64    `json:"breakfastTotal"`
	TotalAmount       float64    `json:"totalAmount"`
	Status            string     `json:"status"`
}

// BookingResponse wraps a confirmation in the API data envelope.
type BookingResponse struct {
	Booking BookingConfirmation `json:"booking"`
}
