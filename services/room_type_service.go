package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotel-frontdesk/models"
	"hotel-frontdesk/pricing"
)

// RoomTypeInfo is one entry of the room-type catalog.
type RoomTypeInfo struct {
	RoomType          models.RoomType `json:"roomType"`
	Label             string          `json:"label"`
	BreakfastPerNight float64         `json:"breakfastPerNight"`
	TotalRooms        int             `json:"totalRooms"`
	CleanRooms        int             `json:"cleanRooms"`
	MinPrice          float64         `json:"minPrice"`
}

type roomTypeRow struct {
	RoomType models.RoomType
	Total    int
	Clean    int
	MinPrice float64
}

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

// Catalog lists every known room type, including types with no rooms yet.
func (s *RoomTypeService) Catalog(ctx context.Context) ([]RoomTypeInfo, error) {
	var rows []roomTypeRow
	err := s.DB.WithContext(ctx).
		Model(&models.Room{}).
		Select("room_type, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS clean, MIN(price) AS min_price", models.RoomStatusClean).
		Group("room_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("room type catalog: %w", err)
	}
	return buildCatalog(rows), nil
}

// buildCatalog merges per-type aggregates into the fixed room-type order.
func buildCatalog(rows []roomTypeRow) []RoomTypeInfo {
	byType := make(map[models.RoomType]roomTypeRow, len(rows))
	for _, r := range rows {
		byType[r.RoomType] = r
	}
	out := make([]RoomTypeInfo, 0, len(models.RoomTypes))
	for _, t := range models.RoomTypes {
		r := byType[t]
		out = append(out, RoomTypeInfo{
			RoomType:          t,
			Label:             t.Label(),
			BreakfastPerNight: pricing.BreakfastPerNight(t),
			TotalRooms:        r.Total,
			CleanRooms:        r.Clean,
			MinPrice:          r.MinPrice,
		})
	}
	return out
}
