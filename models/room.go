package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room is one physical room. RoomNumber is unique; status is owned by housekeeping.
type Room struct {
	gorm.Model

	RoomNumber   string         `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	RoomType     RoomType       `json:"roomType" gorm:"column:room_type;type:varchar(20);index"`
	Floor        int            `json:"floor"`
	Price        float64        `json:"price"`
	MaxOccupancy int            `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Features     datatypes.JSON `json:"features" gorm:"column:features"`
	Status       RoomStatus     `json:"status" gorm:"type:varchar(20);index"`
	Description  string         `json:"description" gorm:"type:text"`
}

// Availability converts the row into the wire shape consumed by the front desk.
// Features that are not a JSON object are dropped.
func (r Room) Availability() RoomAvailability {
	out := RoomAvailability{
		ID:           r.ID,
		RoomNumber:   r.RoomNumber,
		RoomType:     r.RoomType,
		Floor:        r.Floor,
		BasePrice:    r.Price,
		MaxOccupancy: r.MaxOccupancy,
		Status:       r.Status,
	}
	if len(r.Features) > 0 {
		var features map[string]interface{}
		if err := json.Unmarshal(r.Features, &features); err == nil {
			out.Features = features
		}
	}
	return out
}

// RoomAvailability is one room as currently known to the front desk.
type RoomAvailability struct {
	ID           uint                   `json:"id"`
	RoomNumber   string                 `json:"roomNumber"`
	RoomType     RoomType               `json:"roomType"`
	Floor        int                    `json:"floor"`
	BasePrice    float64                `json:"basePrice"`
	MaxOccupancy int                    `json:"maxOccupancy"`
	Features     map[string]interface{} `json:"features,omitempty"`
	Status       RoomStatus             `json:"status"`
}

// DisplayStatus is the room-map status of the room.
func (r RoomAvailability) DisplayStatus() DisplayStatus {
	return r.Status.Display()
}

// RoomSummary aggregates the rooms of one type for the dashboard.
type RoomSummary struct {
	RoomType       RoomType `json:"roomType"`
	Label          string   `json:"label"`
	TotalRooms     int      `json:"totalRooms"`
	AvailableRooms int      `json:"availableRooms"`
	MinPrice       float64  `json:"minPrice"`
}

// AvailableRooms is the payload of GET /api/rooms/available-now.
type AvailableRooms struct {
	Rooms   []RoomAvailability `json:"rooms"`
	Summary []RoomSummary      `json:"summary"`
}

// Summarize builds one summary per known room type, in RoomTypes order.
// MinPrice considers available rooms only and is 0 when none are free.
func Summarize(rooms []RoomAvailability) []RoomSummary {
	byType := make(map[RoomType]*RoomSummary, len(RoomTypes))
	out := make([]RoomSummary, 0, len(RoomTypes))
	for _, t := range RoomTypes {
		out = append(out, RoomSummary{RoomType: t, Label: t.Label()})
	}
	for i := range out {
		byType[out[i].RoomType] = &out[i]
	}
	for _, r := range rooms {
		s, ok := byType[r.RoomType]
		if !ok {
			continue
		}
		s.TotalRooms++
		if r.DisplayStatus() != DisplayAvailable {
			continue
		}
		s.AvailableRooms++
		if s.MinPrice == 0 || r.BasePrice < s.MinPrice {
			s.MinPrice = r.BasePrice
		}
	}
	return out
}
