package models

import "strings"

// RoomType is the fixed room category enumeration shared by the backend and the walk-in flow.
type RoomType string

const (
	RoomTypeStandard RoomType = "STANDARD"
	RoomTypeSuperior RoomType = "SUPERIOR"
	RoomTypeDeluxe   RoomType = "DELUXE"
	RoomTypeFamily   RoomType = "FAMILY"
	RoomTypeHopIn    RoomType = "HOP_IN"
	RoomTypeZenith   RoomType = "ZENITH"

	// RoomTypeAll is the "no filter" value of the room-map type filter.
	RoomTypeAll RoomType = "ALL"
)

// RoomTypes lists the concrete room types in display order.
var RoomTypes = []RoomType{
	RoomTypeStandard,
	RoomTypeSuperior,
	RoomTypeDeluxe,
	RoomTypeFamily,
	RoomTypeHopIn,
	RoomTypeZenith,
}

// Valid reports whether t is one of the concrete room types (ALL excluded).
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeStandard, RoomTypeSuperior, RoomTypeDeluxe, RoomTypeFamily, RoomTypeHopIn, RoomTypeZenith:
		return true
	default:
		return false
	}
}

// ParseRoomFilter normalises a URL segment or form value into a filter value.
// It accepts the concrete room types, "ALL" and lower-case / dashed variants ("hop-in").
func ParseRoomFilter(raw string) (RoomType, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	if s == "" {
		return "", false
	}
	t := RoomType(s)
	if t == RoomTypeAll || t.Valid() {
		return t, true
	}
	return "", false
}

// Label returns the guest-facing name of the room type.
func (t RoomType) Label() string {
	switch t {
	case RoomTypeStandard:
		return "Standard Room"
	case RoomTypeSuperior:
		return "Superior Room"
	case RoomTypeDeluxe:
		return "Deluxe Room"
	case RoomTypeFamily:
		return "Family Room"
	case RoomTypeHopIn:
		return "Hop In Room"
	case RoomTypeZenith:
		return "Zenith Room"
	case RoomTypeAll:
		return "All Rooms"
	default:
		return "Room"
	}
}

// RoomStatus is the housekeeping status reported by the backend.
type RoomStatus string

const (
	RoomStatusClean       RoomStatus = "CLEAN"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
	RoomStatusDirty       RoomStatus = "DIRTY"
)

// DisplayStatus is the status vocabulary of the room map.
type DisplayStatus string

const (
	DisplayAvailable   DisplayStatus = "available"
	DisplayOccupied    DisplayStatus = "occupied"
	DisplayMaintenance DisplayStatus = "maintenance"
	DisplayCleaning    DisplayStatus = "cleaning"
)

// Display maps a backend status to the room-map status. Unknown statuses are never available.
func (s RoomStatus) Display() DisplayStatus {
	switch s {
	case RoomStatusClean:
		return DisplayAvailable
	case RoomStatusOccupied:
		return DisplayOccupied
	case RoomStatusDirty:
		return DisplayCleaning
	default:
		return DisplayMaintenance
	}
}

// Label returns a human readable status.
func (d DisplayStatus) Label() string {
	switch d {
	case DisplayAvailable:
		return "Available"
	case DisplayOccupied:
		return "Occupied"
	case DisplayCleaning:
		return "Cleaning"
	default:
		return "Maintenance"
	}
}
