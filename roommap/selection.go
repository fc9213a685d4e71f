package roommap

import (
	"hotel-frontdesk/models"
)

// MapRoom is a room ready to be drawn.
type MapRoom struct {
	ID         uint                 `json:"id"`
	RoomNumber string               `json:"roomNumber"`
	RoomType   models.RoomType      `json:"roomType"`
	Floor      int                  `json:"floor"`
	Status     models.DisplayStatus `json:"status"`
	BasePrice  float64              `json:"basePrice"`
	Position   Position             `json:"position"`
	Selectable bool                 `json:"selectable"`
}

// View is the renderable floor plan for one filter.
type View struct {
	Building     string          `json:"building"`
	BuildingName string          `json:"buildingName"`
	Filter       models.RoomType `json:"filter"`
	Floors       []int           `json:"floors"`
	Rooms        []MapRoom       `json:"rooms"`
	// Unplaced are rooms of this building's types that the plan has no slot for.
	Unplaced []string `json:"unplaced,omitempty"`
}

// Selectable reports whether a click on room should pick it.
func Selectable(room models.RoomAvailability, filter models.RoomType) bool {
	if room.DisplayStatus() != models.DisplayAvailable {
		return false
	}
	return filter == "" || filter == models.RoomTypeAll || room.RoomType == filter
}

// OnMap reports whether roomNumber is drawn on the diagram shown for filter.
func OnMap(roomNumber string, filter models.RoomType) bool {
	_, placed := LayoutFor(filter).Position(roomNumber)
	return placed
}

// Build positions rooms for a filter. The input slice is not modified.
func Build(rooms []models.RoomAvailability, filter models.RoomType) View {
	if filter == "" {
		filter = models.RoomTypeAll
	}
	layout := LayoutFor(filter)
	view := View{
		Building:     layout.Building,
		BuildingName: layout.Name,
		Filter:       filter,
		Floors:       layout.FloorNumbers(),
		Rooms:        []MapRoom{},
	}

	byNumber := make(map[string]models.RoomAvailability, len(rooms))
	for _, r := range rooms {
		byNumber[r.RoomNumber] = r
	}

	for _, number := range layout.RoomNumbers() {
		r, ok := byNumber[number]
		if !ok {
			continue
		}
		pos, _ := layout.Position(number)
		view.Rooms = append(view.Rooms, MapRoom{
			ID:         r.ID,
			RoomNumber: r.RoomNumber,
			RoomType:   r.RoomType,
			Floor:      r.Floor,
			Status:     r.DisplayStatus(),
			BasePrice:  r.BasePrice,
			Position:   pos,
			Selectable: Selectable(r, filter),
		})
	}

	for _, r := range rooms {
		if _, placed := layout.Position(r.RoomNumber); placed {
			continue
		}
		if LayoutFor(r.RoomType).Building == layout.Building {
			view.Unplaced = append(view.Unplaced, r.RoomNumber)
		}
	}
	return view
}

// Selection is the interactive state of the room map: filter, hover and click reporting.
type Selection struct {
	rooms    []models.RoomAvailability
	filter   models.RoomType
	hovered  string
	onSelect func(models.RoomAvailability)
}

// NewSelection copies rooms; onSelect receives each accepted click.
func NewSelection(rooms []models.RoomAvailability, filter models.RoomType, onSelect func(models.RoomAvailability)) *Selection {
	cp := make([]models.RoomAvailability, len(rooms))
	copy(cp, rooms)
	if filter == "" {
		filter = models.RoomTypeAll
	}
	return &Selection{rooms: cp, filter: filter, onSelect: onSelect}
}

// Filter returns the active type filter.
func (s *Selection) Filter() models.RoomType { return s.filter }

// SetFilter changes the type filter and clears any hover.
func (s *Selection) SetFilter(filter models.RoomType) {
	if filter == "" {
		filter = models.RoomTypeAll
	}
	s.filter = filter
	s.hovered = ""
}

// View renders the current filter.
func (s *Selection) View() View {
	return Build(s.rooms, s.filter)
}

// Click reports room to onSelect when it is selectable and drawn on the current diagram, and
// returns whether it did. Clicks on other rooms do nothing.
func (s *Selection) Click(roomNumber string) bool {
	room, ok := s.find(roomNumber)
	if !ok || !Selectable(room, s.filter) || !OnMap(roomNumber, s.filter) {
		return false
	}
	if s.onSelect != nil {
		s.onSelect(room)
	}
	return true
}

// Hover tracks the pointer over a room and returns its tooltip.
func (s *Selection) Hover(roomNumber string, pointer Point, viewport Size) (Tooltip, bool) {
	room, ok := s.find(roomNumber)
	if !ok {
		s.hovered = ""
		return Tooltip{}, false
	}
	s.hovered = roomNumber
	tip := TooltipFor(room)
	tip.Placement = PlaceTooltip(pointer, DefaultTooltipSize, viewport)
	return tip, true
}

// Hovered returns the room under the pointer, if any.
func (s *Selection) Hovered() string { return s.hovered }

// Leave clears the hover.
func (s *Selection) Leave() { s.hovered = "" }

func (s *Selection) find(roomNumber string) (models.RoomAvailability, bool) {
	for _, r := range s.rooms {
		if r.RoomNumber == roomNumber {
			return r, true
		}
	}
	return models.RoomAvailability{}, false
}
