package roommap

import (
	"hotel-frontdesk/models"
	"hotel-frontdesk/utils"
)

// Point is a pointer location in viewport pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const tooltipOffset = 12

// DefaultTooltipSize is the box reserved for a room tooltip.
var DefaultTooltipSize = Size{Width: 220, Height: 120}

// Tooltip is the hover card of a room. Price is empty unless the room is available.
type Tooltip struct {
	RoomNumber string `json:"roomNumber"`
	Title      string `json:"title"`
	Floor      int    `json:"floor"`
	Status     string `json:"status"`
	Price      string `json:"price,omitempty"`
	Placement  Point  `json:"placement"`
}

// TooltipFor builds the tooltip text of a room.
func TooltipFor(room models.RoomAvailability) Tooltip {
	t := Tooltip{
		RoomNumber: room.RoomNumber,
		Title:      room.RoomType.Label(),
		Floor:      room.Floor,
		Status:     room.DisplayStatus().Label(),
	}
	if room.DisplayStatus() == models.DisplayAvailable {
		t.Price = utils.FormatBaht(room.BasePrice) + " / night"
	}
	return t
}

// PlaceTooltip returns the top-left corner of a tooltip box near pointer. The box flips to
// the other side of the pointer when it would overflow, then is clamped into the viewport.
func PlaceTooltip(pointer Point, box Size, viewport Size) Point {
	return Point{
		X: placeAxis(pointer.X, box.Width, viewport.Width),
		Y: placeAxis(pointer.Y, box.Height, viewport.Height),
	}
}

func placeAxis(pointer, box, viewport float64) float64 {
	pos := pointer + tooltipOffset
	if pos+box > viewport {
		pos = pointer - tooltipOffset - box
	}
	maxPos := viewport - box
	if maxPos < 0 {
		maxPos = 0
	}
	if pos > maxPos {
		pos = maxPos
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
