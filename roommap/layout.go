// Package roommap places rooms on the hand-drawn floor plans of the front desk and decides
// which of them can be picked for a walk-in.
package roommap

import (
	"fmt"

	"hotel-frontdesk/models"
)

// Floor is one storey of a building, its rows listed top to bottom.
type Floor struct {
	Number int
	Rows   [][]string
}

// Layout is the static floor plan of one building. All measures are percentages of the
// diagram. Floors are listed from the top of the diagram down.
type Layout struct {
	Building    string
	Name        string
	Floors      []Floor
	MarginLeft  float64
	MarginTop   float64
	ColumnWidth float64
	FloorHeight float64
	RowHeight   float64

	slots map[string]slot
}

type slot struct {
	floorIndex int
	floor      int
	row        int
	rows       int
	column     int
}

// Position is a room's anchor on the diagram, in percent.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	BuildingMain  = "main"
	BuildingAnnex = "hop-in-zenith"
)

var (
	mainBuilding  = newLayout(BuildingMain, "Main Building", mainFloors(), 6, 11)
	annexBuilding = newLayout(BuildingAnnex, "Hop In / Zenith Building", annexFloors(), 6, 14)
)

// mainFloors: floors 5, 4, 3 with two corridors of eight rooms each ("301".."316").
func mainFloors() []Floor {
	var floors []Floor
	for _, f := range []int{5, 4, 3} {
		front := make([]string, 0, 8)
		back := make([]string, 0, 8)
		for i := 1; i <= 8; i++ {
			front = append(front, fmt.Sprintf("%d%02d", f, i))
			back = append(back, fmt.Sprintf("%d%02d", f, i+8))
		}
		floors = append(floors, Floor{Number: f, Rows: [][]string{front, back}})
	}
	return floors
}

// annexFloors: floors 4, 3, 2 with a single row of six rooms ("A 3-1".."A 3-6").
func annexFloors() []Floor {
	var floors []Floor
	for _, f := range []int{4, 3, 2} {
		row := make([]string, 0, 6)
		for i := 1; i <= 6; i++ {
			row = append(row, fmt.Sprintf("A %d-%d", f, i))
		}
		floors = append(floors, Floor{Number: f, Rows: [][]string{row}})
	}
	return floors
}

func newLayout(building, name string, floors []Floor, marginLeft, columnWidth float64) Layout {
	l := Layout{
		Building:    building,
		Name:        name,
		Floors:      floors,
		MarginLeft:  marginLeft,
		MarginTop:   5,
		ColumnWidth: columnWidth,
		FloorHeight: 30,
		RowHeight:   12,
		slots:       map[string]slot{},
	}
	for fi, f := range floors {
		for ri, row := range f.Rows {
			for ci, number := range row {
				l.slots[number] = slot{floorIndex: fi, floor: f.Number, row: ri, rows: len(f.Rows), column: ci}
			}
		}
	}
	return l
}

// LayoutFor picks the building shown for a type filter. HOP_IN and ZENITH live in the
// annex; every other value, including ALL and unknown types, shows the main building.
func LayoutFor(filter models.RoomType) Layout {
	switch filter {
	case models.RoomTypeHopIn, models.RoomTypeZenith:
		return annexBuilding
	default:
		return mainBuilding
	}
}

// Layouts returns every building plan.
func Layouts() []Layout {
	return []Layout{mainBuilding, annexBuilding}
}

// Position returns where a room number sits on this building's diagram.
func (l Layout) Position(roomNumber string) (Position, bool) {
	s, ok := l.slots[roomNumber]
	if !ok {
		return Position{}, false
	}
	floorTop := l.MarginTop + float64(s.floorIndex)*l.FloorHeight
	rowsTop := floorTop + (l.FloorHeight-float64(s.rows)*l.RowHeight)/2
	return Position{
		X: l.MarginLeft + float64(s.column)*l.ColumnWidth,
		Y: rowsTop + float64(s.row)*l.RowHeight + l.RowHeight/2,
	}, true
}

// FloorOf returns the storey a room number belongs to in this layout.
func (l Layout) FloorOf(roomNumber string) (int, bool) {
	s, ok := l.slots[roomNumber]
	return s.floor, ok
}

// RoomNumbers lists the layout's rooms in diagram order.
func (l Layout) RoomNumbers() []string {
	var out []string
	for _, f := range l.Floors {
		for _, row := range f.Rows {
			out = append(out, row...)
		}
	}
	return out
}

// FloorNumbers lists the storeys from the top of the diagram down.
func (l Layout) FloorNumbers() []int {
	out := make([]int, 0, len(l.Floors))
	for _, f := range l.Floors {
		out = append(out, f.Number)
	}
	return out
}
