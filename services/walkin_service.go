// services/walkin_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-frontdesk/events"
	"hotel-frontdesk/guestform"
	"hotel-frontdesk/models"
	"hotel-frontdesk/pricing"
	"hotel-frontdesk/utils"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room is not available")
	ErrPricingMismatch = errors.New("pricing does not match room rate")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidRequest  = errors.New("invalid check-in request")
)

const (
	mysqlDuplicateEntry = 1062
	referenceAttempts   = 5
	priceTolerance      = 0.005

	// clockSkew is how far the terminal's clock may run ahead of ours when it fixes check-out.
	clockSkew = 5 * time.Minute
)

// WalkInService books walk-in guests straight into a CLEAN room.
type WalkInService struct {
	DB        *gorm.DB
	publisher events.Publisher
	logger    zerolog.Logger
	now       func() time.Time
	reference func() (string, error)
}

func NewWalkInService(db *gorm.DB, publisher events.Publisher, logger zerolog.Logger) *WalkInService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &WalkInService{
		DB:        db,
		publisher: publisher,
		logger:    logger.With().Str("service", "walkin").Logger(),
		now:       time.Now,
		reference: utils.NewWalkInReference,
	}
}

// CheckIn validates the request, re-prices it against the room and commits guest, booking
// and room status together.
func (s *WalkInService) CheckIn(ctx context.Context, req models.CreateBookingRequest) (models.BookingConfirmation, error) {
	guest := guestform.Sanitize(req.Guest)
	if errs := guestform.ValidateGuest(guest); len(errs) > 0 {
		return models.BookingConfirmation{}, fmt.Errorf("%w: %s", ErrInvalidRequest, firstFieldError(errs))
	}
	if req.RoomID == 0 {
		return models.BookingConfirmation{}, fmt.Errorf("%w: roomId is required", ErrInvalidRequest)
	}
	checkOut, err := time.Parse(time.RFC3339, strings.TrimSpace(req.CheckOutDate))
	if err != nil {
		return models.BookingConfirmation{}, fmt.Errorf("%w: invalid checkOutDate", ErrInvalidRequest)
	}
	now := s.now()
	if !checkOut.After(now) {
		return models.BookingConfirmation{}, fmt.Errorf("%w: checkOutDate must be in the future", ErrInvalidRequest)
	}

	var booking models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("load room %d: %w", req.RoomID, err)
		}
		if room.Status != models.RoomStatusClean {
			return ErrRoomUnavailable
		}
		if err := VerifyPricing(room, req.BreakfastIncluded, req.Pricing, checkOut, now); err != nil {
			return err
		}

		g := models.NewGuest(guest)
		if err := tx.Create(&g).Error; err != nil {
			return fmt.Errorf("create guest: %w", err)
		}

		booking = models.Booking{
			RoomID:            room.ID,
			GuestID:           g.ID,
			CheckInDate:       now,
			CheckOutDate:      checkOut,
			Nights:            req.Pricing.Nights,
			BreakfastIncluded: req.BreakfastIncluded,
			RoomTotal:         req.Pricing.RoomTotal,
			BreakfastTotal:    req.Pricing.BreakfastTotal,
			TotalAmount:       req.Pricing.TotalAmount,
			Status:            models.BookingStatusCheckedIn,
			Source:            models.BookingSourceWalkIn,
		}
		if err := s.createWithReference(tx, &booking); err != nil {
			return err
		}

		if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", models.RoomStatusOccupied).Error; err != nil {
			return fmt.Errorf("mark room occupied: %w", err)
		}
		room.Status = models.RoomStatusOccupied
		booking.Room = room
		booking.Guest = g
		return nil
	})
	if txErr != nil {
		return models.BookingConfirmation{}, txErr
	}

	confirmation := booking.Confirmation()
	s.logger.Info().
		Str("reference", booking.ReferenceCode).
		Str("room", booking.Room.RoomNumber).
		Float64("total", booking.TotalAmount).
		Msg("walk-in checked in")

	event := events.BookingConfirmed{
		BookingID:     booking.ID,
		ReferenceCode: booking.ReferenceCode,
		RoomNumber:    booking.Room.RoomNumber,
		RoomType:      string(booking.Room.RoomType),
		GuestName:     confirmation.GuestName,
		CheckInDate:   booking.CheckInDate,
		CheckOutDate:  booking.CheckOutDate,
		Nights:        booking.Nights,
		TotalAmount:   booking.TotalAmount,
		Source:        booking.Source,
		OccurredAt:    now.UTC(),
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("reference", booking.ReferenceCode).Msg("booking.confirmed not published")
	}
	return confirmation, nil
}

// GetByReference loads a walk-in booking with its room and guest.
func (s *WalkInService) GetByReference(ctx context.Context, reference string) (models.BookingConfirmation, error) {
	ref := utils.NormalizeReference(reference)
	if ref == "" {
		return models.BookingConfirmation{}, ErrBookingNotFound
	}
	var booking models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Room").
		Preload("Guest").
		Where("reference_code = ?", ref).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BookingConfirmation{}, ErrBookingNotFound
		}
		return models.BookingConfirmation{}, fmt.Errorf("load booking %s: %w", ref, err)
	}
	return booking.Confirmation(), nil
}

// createWithReference inserts booking under a fresh reference, retrying on collisions.
func (s *WalkInService) createWithReference(tx *gorm.DB, booking *models.Booking) error {
	for attempt := 1; attempt <= referenceAttempts; attempt++ {
		ref, err := s.reference()
		if err != nil {
			return fmt.Errorf("generate reference: %w", err)
		}
		booking.ReferenceCode = ref
		err = tx.Create(booking).Error
		if err == nil {
			return nil
		}
		if !IsDuplicateKey(err) {
			return fmt.Errorf("create booking: %w", err)
		}
		s.logger.Warn().Str("reference", ref).Int("attempt", attempt).Msg("reference collision, retrying")
		booking.ID = 0
	}
	return fmt.Errorf("create booking: no unique reference after %d attempts", referenceAttempts)
}

// VerifyPricing re-computes the submitted charge from the room's own rate. The terminal sets
// check-out to its own now plus whole nights, so the night count is checked against check-out
// with clockSkew of slack and the totals are then priced for the submitted nights.
func VerifyPricing(room models.Room, breakfastIncluded bool, got models.BookingPricing, checkOut, now time.Time) error {
	if got.Nights < guestform.MinNights || got.Nights > guestform.MaxNights {
		return fmt.Errorf("%w: nights must be between %d and %d", ErrPricingMismatch, guestform.MinNights, guestform.MaxNights)
	}
	if nights := pricing.NightsUntil(checkOut, now.Add(clockSkew)); nights != got.Nights {
		return fmt.Errorf("%w: expected %d nights, got %d", ErrPricingMismatch, nights, got.Nights)
	}
	want := pricing.ForNights(room.Price, room.RoomType, breakfastIncluded, got.Nights)
	if !sameAmount(want.RoomTotal, got.RoomTotal) {
		return fmt.Errorf("%w: expected room total %.2f, got %.2f", ErrPricingMismatch, want.RoomTotal, got.RoomTotal)
	}
	if !sameAmount(want.BreakfastTotal, got.BreakfastTotal) {
		return fmt.Errorf("%w: expected breakfast total %.2f, got %.2f", ErrPricingMismatch, want.BreakfastTotal, got.BreakfastTotal)
	}
	if !sameAmount(want.TotalAmount, got.TotalAmount) {
		return fmt.Errorf("%w: expected total %.2f, got %.2f", ErrPricingMismatch, want.TotalAmount, got.TotalAmount)
	}
	return nil
}

// IsDuplicateKey reports a unique-index violation from MySQL.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

func sameAmount(a, b float64) bool {
	return math.Abs(a-b) < priceTolerance
}

func firstFieldError(errs guestform.FieldErrors) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return errs[keys[0]]
}
