package roommap

import (
	"math"
	"testing"

	"hotel-frontdesk/models"
)

func room(number string, t models.RoomType, status models.RoomStatus) models.RoomAvailability {
	return models.RoomAvailability{ID: 1, RoomNumber: number, RoomType: t, Floor: 4, BasePrice: 2000, Status: status}
}

func TestSelectableGating(t *testing.T) {
	statuses := []models.RoomStatus{
		models.RoomStatusClean,
		models.RoomStatusOccupied,
		models.RoomStatusMaintenance,
		models.RoomStatusDirty,
	}
	filters := []struct {
		name   string
		filter models.RoomType
		match  bool
	}{
		{"all", models.RoomTypeAll, true},
		{"matching", models.RoomTypeDeluxe, true},
		{"non-matching", models.RoomTypeFamily, false},
	}

	for _, status := range statuses {
		for _, f := range filters {
			r := room("401", models.RoomTypeDeluxe, status)
			want := status == models.RoomStatusClean && f.match
			if got := Selectable(r, f.filter); got != want {
				t.Fatalf("status %s filter %s: got %v, want %v", status, f.name, got, want)
			}
		}
	}
}

func TestLayoutForIsTotal(t *testing.T) {
	tests := []struct {
		filter models.RoomType
		want   string
	}{
		{models.RoomTypeHopIn, BuildingAnnex},
		{models.RoomTypeZenith, BuildingAnnex},
		{models.RoomTypeDeluxe, BuildingMain},
		{models.RoomTypeAll, BuildingMain},
		{models.RoomType("UNKNOWN"), BuildingMain},
	}
	for _, tt := range tests {
		if got := LayoutFor(tt.filter).Building; got != tt.want {
			t.Fatalf("LayoutFor(%q) = %s, want %s", tt.filter, got, tt.want)
		}
	}
}

func TestPositionsColumnsAndBalancedRows(t *testing.T) {
	main := LayoutFor(models.RoomTypeAll)
	p401, ok := main.Position("401")
	if !ok {
		t.Fatal("401 should be placed")
	}
	p402, _ := main.Position("402")
	if math.Abs((p402.X-p401.X)-main.ColumnWidth) > 1e-9 {
		t.Fatalf("expected column step %v, got %v", main.ColumnWidth, p402.X-p401.X)
	}
	if p401.X != main.MarginLeft {
		t.Fatalf("first column should start at margin, got %v", p401.X)
	}

	// Two-row floor: rows sit symmetrically around the floor centre.
	p409, _ := main.Position("409")
	floorCentre := main.MarginTop + main.FloorHeight*1 + main.FloorHeight/2
	if math.Abs((p401.Y+p409.Y)/2-floorCentre) > 1e-9 {
		t.Fatalf("rows not centred: %v and %v around %v", p401.Y, p409.Y, floorCentre)
	}

	// One-row floor: the row sits on the floor centre.
	annex := LayoutFor(models.RoomTypeZenith)
	pa, ok := annex.Position("A 3-1")
	if !ok {
		t.Fatal("A 3-1 should be placed")
	}
	annexCentre := annex.MarginTop + annex.FloorHeight*1 + annex.FloorHeight/2
	if math.Abs(pa.Y-annexCentre) > 1e-9 {
		t.Fatalf("single row should be centred at %v, got %v", annexCentre, pa.Y)
	}

	// Upper floors are drawn above lower floors.
	p501, _ := main.Position("501")
	p301, _ := main.Position("301")
	if !(p501.Y < p401.Y && p401.Y < p301.Y) {
		t.Fatalf("floor order wrong: 501=%v 401=%v 301=%v", p501.Y, p401.Y, p301.Y)
	}
}

func TestBuildFiltersBuildingAndKeepsInput(t *testing.T) {
	rooms := []models.RoomAvailability{
		room("402", models.RoomTypeDeluxe, models.RoomStatusOccupied),
		room("401", models.RoomTypeDeluxe, models.RoomStatusClean),
		room("A 2-1", models.RoomTypeHopIn, models.RoomStatusClean),
		room("999", models.RoomTypeStandard, models.RoomStatusClean),
	}
	before := append([]models.RoomAvailability(nil), rooms...)

	view := Build(rooms, models.RoomTypeDeluxe)
	if view.Building != BuildingMain {
		t.Fatalf("expected main building, got %s", view.Building)
	}
	if len(view.Rooms) != 2 || view.Rooms[0].RoomNumber != "401" || view.Rooms[1].RoomNumber != "402" {
		t.Fatalf("expected 401 then 402 in diagram order, got %+v", view.Rooms)
	}
	if !view.Rooms[0].Selectable || view.Rooms[1].Selectable {
		t.Fatalf("unexpected selectability %+v", view.Rooms)
	}
	if len(view.Unplaced) != 1 || view.Unplaced[0] != "999" {
		t.Fatalf("expected 999 unplaced, got %v", view.Unplaced)
	}
	for i := range rooms {
		if rooms[i].RoomNumber != before[i].RoomNumber || rooms[i].Status != before[i].Status {
			t.Fatal("input mutated")
		}
	}

	annex := Build(rooms, models.RoomTypeHopIn)
	if annex.Building != BuildingAnnex || len(annex.Rooms) != 1 || annex.Rooms[0].RoomNumber != "A 2-1" {
		t.Fatalf("unexpected annex view %+v", annex)
	}
}

func TestSelectionClickEmitsOncePerSelectableClick(t *testing.T) {
	rooms := []models.RoomAvailability{
		room("401", models.RoomTypeDeluxe, models.RoomStatusClean),
		room("402", models.RoomTypeDeluxe, models.RoomStatusDirty),
		room("301", models.RoomTypeStandard, models.RoomStatusClean),
	}
	var picked []string
	sel := NewSelection(rooms, models.RoomTypeDeluxe, func(r models.RoomAvailability) {
		picked = append(picked, r.RoomNumber)
	})

	if sel.Click("402") {
		t.Fatal("dirty room should not be clickable")
	}
	if sel.Click("301") {
		t.Fatal("standard room should not be clickable under deluxe filter")
	}
	if sel.Click("nope") {
		t.Fatal("unknown room should not be clickable")
	}
	if !sel.Click("401") {
		t.Fatal("clean deluxe room should be clickable")
	}
	if len(picked) != 1 || picked[0] != "401" {
		t.Fatalf("expected one emission for 401, got %v", picked)
	}

	sel.SetFilter(models.RoomTypeAll)
	if !sel.Click("301") {
		t.Fatal("301 should be clickable with ALL filter")
	}
	if len(picked) != 2 {
		t.Fatalf("expected two emissions, got %v", picked)
	}
}

func TestSelectionIgnoresRoomsOffTheShownBuilding(t *testing.T) {
	rooms := []models.RoomAvailability{
		room("401", models.RoomTypeDeluxe, models.RoomStatusClean),
		room("A 3-1", models.RoomTypeZenith, models.RoomStatusClean),
	}
	var picked []string
	sel := NewSelection(rooms, models.RoomTypeAll, func(r models.RoomAvailability) {
		picked = append(picked, r.RoomNumber)
	})

	for _, r := range sel.View().Rooms {
		if r.RoomNumber == "A 3-1" {
			t.Fatal("annex room should not be drawn on the main building")
		}
	}
	if sel.Click("A 3-1") {
		t.Fatal("annex room should not be clickable while the main building is shown")
	}

	sel.SetFilter(models.RoomTypeZenith)
	if !sel.Click("A 3-1") {
		t.Fatal("annex room should be clickable under its own filter")
	}
	if len(picked) != 1 || picked[0] != "A 3-1" {
		t.Fatalf("expected one emission for A 3-1, got %v", picked)
	}
	if OnMap("A 3-1", models.RoomTypeAll) || !OnMap("401", models.RoomTypeAll) {
		t.Fatal("unexpected OnMap result for the main building")
	}
}

func TestPlaceTooltipStaysInViewport(t *testing.T) {
	viewport := Size{Width: 800, Height: 600}
	box := DefaultTooltipSize
	points := []Point{{0, 0}, {799, 599}, {400, 300}, {790, 10}, {5, 590}, {-50, -50}, {2000, 2000}}
	for _, p := range points {
		got := PlaceTooltip(p, box, viewport)
		if got.X < 0 || got.Y < 0 || got.X+box.Width > viewport.Width || got.Y+box.Height > viewport.Height {
			t.Fatalf("pointer %+v: tooltip %+v leaves viewport", p, got)
		}
	}

	got := PlaceTooltip(Point{100, 100}, box, viewport)
	if got.X != 112 || got.Y != 112 {
		t.Fatalf("expected tooltip offset from pointer, got %+v", got)
	}
	got = PlaceTooltip(Point{700, 550}, box, viewport)
	if got.X != 700-12-box.Width || got.Y != 550-12-box.Height {
		t.Fatalf("expected tooltip flipped, got %+v", got)
	}

	tiny := PlaceTooltip(Point{10, 10}, box, Size{Width: 100, Height: 50})
	if tiny.X != 0 || tiny.Y != 0 {
		t.Fatalf("viewport smaller than box should pin to origin, got %+v", tiny)
	}
}

func TestTooltipPriceOnlyWhenAvailable(t *testing.T) {
	free := TooltipFor(room("401", models.RoomTypeDeluxe, models.RoomStatusClean))
	if free.Price == "" || free.Status != "Available" || free.Title != "Deluxe Room" {
		t.Fatalf("unexpected tooltip %+v", free)
	}
	busy := TooltipFor(room("402", models.RoomTypeDeluxe, models.RoomStatusOccupied))
	if busy.Price != "" || busy.Status != "Occupied" {
		t.Fatalf("unexpected tooltip %+v", busy)
	}
}

func TestSelectionHover(t *testing.T) {
	sel := NewSelection([]models.RoomAvailability{room("401", models.RoomTypeDeluxe, models.RoomStatusClean)}, models.RoomTypeAll, nil)
	tip, ok := sel.Hover("401", Point{X: 790, Y: 590}, Size{Width: 800, Height: 600})
	if !ok || sel.Hovered() != "401" {
		t.Fatal("expected hover on 401")
	}
	if tip.Placement.X+DefaultTooltipSize.Width > 800 || tip.Placement.Y+DefaultTooltipSize.Height > 600 {
		t.Fatalf("tooltip off screen: %+v", tip.Placement)
	}
	sel.Leave()
	if sel.Hovered() != "" {
		t.Fatal("leave should clear hover")
	}
	if _, ok := sel.Hover("missing", Point{}, Size{Width: 800, Height: 600}); ok {
		t.Fatal("unknown room should not produce a tooltip")
	}
}
