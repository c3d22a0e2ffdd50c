package services

import (
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"

	"gorm.io/gorm"
)

// OccupancyService answers the two questions the rest of the engine asks
// about a room: how many tenants live there right now, and how many lived
// there at any point during a billing month.
type OccupancyService struct {
	db *gorm.DB
}

func NewOccupancyService(db *gorm.DB) *OccupancyService {
	return &OccupancyService{db: db}
}

// CurrentCount counts tenancies still open or ending in the future.
func (s *OccupancyService) CurrentCount(roomID uint) (int, error) {
	return currentOccupantCount(s.db, roomID, time.Now())
}

// CountForMonth counts tenancies whose window overlaps any day of the
// month, so tenants who moved in or out mid-month are still billed as
// occupants for that period.
func (s *OccupancyService) CountForMonth(roomID uint, month, year int) (int, error) {
	return occupantCountForMonth(s.db, roomID, month, year)
}

func currentOccupantCount(db *gorm.DB, roomID uint, now time.Time) (int, error) {
	var count int64
	err := db.Model(&models.RoomTenancy{}).
		Where("room_id = ? AND move_in_date <= ? AND (move_out_date IS NULL OR move_out_date > ?)", roomID, now, now).
		Count(&count).Error
	return int(count), err
}

func occupantCountForMonth(db *gorm.DB, roomID uint, month, year int) (int, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var count int64
	err := db.Model(&models.RoomTenancy{}).
		Where("room_id = ? AND move_in_date <= ? AND (move_out_date IS NULL OR move_out_date >= ?)", roomID, last, first).
		Count(&count).Error
	return int(count), err
}
