package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-frontdesk/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// AvailableNow returns every room with its live status, plus the per-type summary.
func (s *RoomService) AvailableNow(ctx context.Context) (models.AvailableRooms, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Order("floor ASC").Order("room_number ASC").Find(&rooms).Error; err != nil {
		return models.AvailableRooms{}, fmt.Errorf("list rooms: %w", err)
	}
	out := make([]models.RoomAvailability, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Availability())
	}
	return models.AvailableRooms{Rooms: out, Summary: models.Summarize(out)}, nil
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("load room %d: %w", id, err)
	}
	return room, nil
}

// UpdateStatus is used by housekeeping to put a room back in service.
func (s *RoomService) UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) (models.Room, error) {
	switch status {
	case models.RoomStatusClean, models.RoomStatusOccupied, models.RoomStatusMaintenance, models.RoomStatusDirty:
	default:
		return models.Room{}, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, status)
	}
	res := s.DB.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return models.Room{}, fmt.Errorf("update room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Room{}, ErrRoomNotFound
	}
	return s.GetByID(ctx, id)
}
