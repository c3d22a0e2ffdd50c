package services

import (
	"testing"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.Room{},
		&models.Tenant{},
		&models.Service{},
		&models.ServicePrice{},
		&models.MeterReading{},
		&models.RentalContract{},
		&models.RoomTenancy{},
		&models.Invoice{},
		&models.InvoiceDetail{},
		&models.AuditLog{},
	))
	return db
}

func createTestProperty(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()
	property := models.Property{Name: "Binh Thanh hostel", City: "Ho Chi Minh City"}
	require.NoError(t, db.Create(&property).Error)
	return &property
}

func createTestRoom(t *testing.T, db *gorm.DB, propertyID uint, maxRenters int, rent float64) *models.Room {
	t.Helper()
	room := models.Room{
		PropertyID:      propertyID,
		Name:            "P101",
		MaxRenters:      maxRenters,
		MonthlyRentCost: rent,
		IsAvailable:     true,
	}
	require.NoError(t, db.Create(&room).Error)
	return &room
}

func createTestService(t *testing.T, db *gorm.DB, name string, method models.ChargingMethod) *models.Service {
	t.Helper()
	service := models.Service{Name: name, ChargingMethod: method}
	require.NoError(t, db.Create(&service).Error)
	return &service
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}
