// Package walkin drives the front-desk walk-in booking flow: dashboard, room map, guest form
// and receipt, with the in-progress selection recoverable after a reload.
package walkin

import (
	"strings"

	"hotel-frontdesk/models"
)

// Step is one screen of the flow.
type Step string

const (
	StepDashboard      Step = "dashboard"
	StepRoomMap        Step = "room-map"
	StepGuestForm      Step = "guest-form"
	StepBookingSuccess Step = "booking-success"
)

const (
	DashboardPath       = "/walk-in-dashboard"
	RoomSelectionPrefix = "/walk-in/room-selection/"
	GuestFormPath       = "/walk-in/guest-form"
	BookingSuccessPath  = "/walk-in/booking-success"
)

// Route is a decoded flow URL. RoomType is empty unless the path carries a valid room-type
// segment.
type Route struct {
	Step     Step
	RoomType models.RoomType
}

// DecodeStep maps a request path to its step. Anything unrecognised is the dashboard.
func DecodeStep(path string) Route {
	p := path
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")

	switch {
	case p == DashboardPath || strings.HasPrefix(p, DashboardPath+"/"):
		return Route{Step: StepDashboard}
	case strings.HasPrefix(p, RoomSelectionPrefix):
		segment := strings.TrimPrefix(p, RoomSelectionPrefix)
		if i := strings.IndexByte(segment, '/'); i >= 0 {
			segment = segment[:i]
		}
		t, _ := models.ParseRoomFilter(segment)
		return Route{Step: StepRoomMap, RoomType: t}
	case p == GuestFormPath || strings.HasPrefix(p, GuestFormPath+"/"):
		return Route{Step: StepGuestForm}
	case p == BookingSuccessPath || strings.HasPrefix(p, BookingSuccessPath+"/"):
		return Route{Step: StepBookingSuccess}
	default:
		return Route{Step: StepDashboard}
	}
}

// RoomSelectionPath is the room-map URL for a type filter, e.g. /walk-in/room-selection/hop-in.
func RoomSelectionPath(t models.RoomType) string {
	if t == "" {
		t = models.RoomTypeAll
	}
	return RoomSelectionPrefix + strings.ReplaceAll(strings.ToLower(string(t)), "_", "-")
}

// PathFor is the canonical URL of a step.
func PathFor(step Step, t models.RoomType) string {
	switch step {
	case StepRoomMap:
		return RoomSelectionPath(t)
	case StepGuestForm:
		return GuestFormPath
	case StepBookingSuccess:
		return BookingSuccessPath
	default:
		return DashboardPath
	}
}
