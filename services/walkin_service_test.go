package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"hotel-frontdesk/guestform"
	"hotel-frontdesk/models"
	"hotel-frontdesk/pricing"
)

func deluxeRoom() models.Room {
	return models.Room{RoomNumber: "401", RoomType: models.RoomTypeDeluxe, Floor: 4, Price: 2000, Status: models.RoomStatusClean}
}

func TestVerifyPricing(t *testing.T) {
	now := time.Date(2026, 5, 10, 14, 0, 5, 0, time.UTC)
	checkOut := time.Date(2026, 5, 12, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		breakfast bool
		pricing   models.BookingPricing
		ok        bool
	}{
		{"room and breakfast", true, models.BookingPricing{RoomTotal: 4000, BreakfastTotal: 500, TotalAmount: 4500, Nights: 2}, true},
		{"room only", false, models.BookingPricing{RoomTotal: 4000, TotalAmount: 4000, Nights: 2}, true},
		{"breakfast charged but not included", false, models.BookingPricing{RoomTotal: 4000, BreakfastTotal: 500, TotalAmount: 4500, Nights: 2}, false},
		{"discounted room", true, models.BookingPricing{RoomTotal: 3000, BreakfastTotal: 500, TotalAmount: 3500, Nights: 2}, false},
		{"wrong total", true, models.BookingPricing{RoomTotal: 4000, BreakfastTotal: 500, TotalAmount: 4600, Nights: 2}, false},
		{"wrong nights", true, models.BookingPricing{RoomTotal: 6000, BreakfastTotal: 750, TotalAmount: 6750, Nights: 3}, false},
		{"zero nights", false, models.BookingPricing{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPricing(deluxeRoom(), tt.breakfast, tt.pricing, checkOut, now)
			if tt.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrPricingMismatch) {
				t.Fatalf("expected ErrPricingMismatch, got %v", err)
			}
		})
	}
}

func TestVerifyPricingUsesRoomTypeBreakfastRate(t *testing.T) {
	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	room := models.Room{RoomNumber: "A 2-1", RoomType: models.RoomTypeHopIn, Price: 800, Status: models.RoomStatusClean}
	got := models.BookingPricing{RoomTotal: 800, BreakfastTotal: 150, TotalAmount: 950, Nights: 1}
	if err := VerifyPricing(room, true, got, now.Add(24*time.Hour), now); err != nil {
		t.Fatalf("hop-in breakfast is 150: %v", err)
	}
}

func TestVerifyPricingToleratesTerminalClockDrift(t *testing.T) {
	terminalNow := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	sent := pricing.ForSubmission(2000, models.RoomTypeDeluxe, true, terminalNow.Add(48*time.Hour), terminalNow)
	checkOut := terminalNow.Add(48 * time.Hour)

	tests := []struct {
		name  string
		drift time.Duration
		ok    bool
	}{
		{"backend 1ms behind", -time.Millisecond, true},
		{"backend 2m behind", -2 * time.Minute, true},
		{"backend 30s ahead", 30 * time.Second, true},
		{"backend 3h ahead", 3 * time.Hour, true},
		{"backend an hour behind", -time.Hour, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPricing(deluxeRoom(), true, sent, checkOut, terminalNow.Add(tt.drift))
			if tt.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrPricingMismatch) {
				t.Fatalf("expected ErrPricingMismatch, got %v", err)
			}
		})
	}
	if sent.Nights != 2 || sent.TotalAmount != 4500 {
		t.Fatalf("unexpected terminal pricing %+v", sent)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'WI-ABCD-2345' for key 'reference_code'"}
	if !IsDuplicateKey(fmt.Errorf("insert: %w", dup)) {
		t.Fatal("wrapped 1062 should be a duplicate")
	}
	if !IsDuplicateKey(gorm.ErrDuplicatedKey) {
		t.Fatal("gorm duplicate should be a duplicate")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1213}) {
		t.Fatal("deadlock is not a duplicate")
	}
	if IsDuplicateKey(errors.New("boom")) {
		t.Fatal("plain error is not a duplicate")
	}
}

func TestFirstFieldErrorIsDeterministic(t *testing.T) {
	errs := guestform.FieldErrors{"phone": "bad phone", "firstName": "First name is required"}
	for i := 0; i < 10; i++ {
		if got := firstFieldError(errs); got != "First name is required" {
			t.Fatalf("unexpected first error %q", got)
		}
	}
}

func TestBuildCatalogKeepsEveryType(t *testing.T) {
	rows := []roomTypeRow{
		{RoomType: models.RoomTypeDeluxe, Total: 8, Clean: 5, MinPrice: 2000},
		{RoomType: models.RoomTypeHopIn, Total: 6, Clean: 6, MinPrice: 800},
	}
	got := buildCatalog(rows)
	if len(got) != len(models.RoomTypes) {
		t.Fatalf("expected %d types, got %d", len(models.RoomTypes), len(got))
	}
	for _, info := range got {
		switch info.RoomType {
		case models.RoomTypeDeluxe:
			if info.TotalRooms != 8 || info.CleanRooms != 5 || info.MinPrice != 2000 {
				t.Fatalf("unexpected deluxe entry %+v", info)
			}
		case models.RoomTypeHopIn:
			if info.BreakfastPerNight != 150 {
				t.Fatalf("hop-in breakfast should be 150, got %v", info.BreakfastPerNight)
			}
		case models.RoomTypeZenith:
			if info.TotalRooms != 0 || info.Label == "" {
				t.Fatalf("empty type should still be listed with a label: %+v", info)
			}
		}
	}
}
