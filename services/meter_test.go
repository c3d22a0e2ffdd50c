package services

import (
	"testing"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordReadingSynthesizesBaseline(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 2, 3000000)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	meter := NewMeterService(db)

	recorded, err := meter.RecordReading(room.ID, electricity.ID, 2, 2024, 145, nil)
	require.NoError(t, err)
	assert.Equal(t, 145.0, recorded.Reading)

	baseline, err := meter.ResolveCurrent(room.ID, electricity.ID, 1, 2024)
	require.NoError(t, err)
	require.NotNil(t, baseline)
	assert.True(t, baseline.IsBaseline)
	assert.Equal(t, 0.0, baseline.Reading)
}

func TestRecordReadingBaselineOverride(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 2, 3000000)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	meter := NewMeterService(db)

	override := 100.0
	_, err := meter.RecordReading(room.ID, electricity.ID, 2, 2024, 145, &override)
	require.NoError(t, err)

	baseline, err := meter.ResolveCurrent(room.ID, electricity.ID, 1, 2024)
	require.NoError(t, err)
	require.NotNil(t, baseline)
	assert.True(t, baseline.IsBaseline)
	assert.Equal(t, 100.0, baseline.Reading)
}

func TestRecordReadingDuplicatePeriod(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 2, 3000000)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	meter := NewMeterService(db)

	_, err := meter.RecordReading(room.ID, electricity.ID, 2, 2024, 145, nil)
	require.NoError(t, err)
	_, err = meter.RecordReading(room.ID, electricity.ID, 2, 2024, 150, nil)
	assert.ErrorIs(t, err, ErrDuplicateReading)
}

func TestRecordReadingRejectsDecrease(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 2, 3000000)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	meter := NewMeterService(db)

	_, err := meter.RecordReading(room.ID, electricity.ID, 2, 2024, 145, nil)
	require.NoError(t, err)
	_, err = meter.RecordReading(room.ID, electricity.ID, 3, 2024, 140, nil)
	assert.ErrorIs(t, err, ErrInvalidReading)
}

func TestResolvePreviousSkipsVacantMonths(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 2, 3000000)
	water := createTestService(t, db, "water", models.ChargePerUsageUnit)
	meter := NewMeterService(db)

	// Room vacant December through January; last reading is November 2023.
	_, err := meter.RecordReading(room.ID, water.ID, 11, 2023, 80, nil)
	require.NoError(t, err)

	previous, err := meter.ResolvePrevious(room.ID, water.ID, 2, 2024)
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, 11, previous.BillingMonth)
	assert.Equal(t, 2023, previous.BillingYear)
	assert.Equal(t, 80.0, previous.Reading)
}

func TestResolvePreviousStopsAtFloor(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 2, 3000000)
	water := createTestService(t, db, "water", models.ChargePerUsageUnit)
	meter := NewMeterService(db)

	previous, err := meter.ResolvePrevious(room.ID, water.ID, 1, meterFloorYear)
	require.NoError(t, err)
	assert.Nil(t, previous)
}

func TestReadingsNonDecreasingAcrossPeriods(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 2, 3000000)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	meter := NewMeterService(db)

	values := []struct {
		month, year int
		reading     float64
	}{
		{11, 2023, 100},
		{12, 2023, 100},
		{2, 2024, 130},
		{3, 2024, 170},
	}
	for _, v := range values {
		_, err := meter.RecordReading(room.ID, electricity.ID, v.month, v.year, v.reading, nil)
		require.NoError(t, err)
	}

	var readings []models.MeterReading
	require.NoError(t, db.Where("room_id = ? AND service_id = ?", room.ID, electricity.ID).
		Order("billing_year, billing_month").Find(&readings).Error)
	for i := 1; i < len(readings); i++ {
		assert.GreaterOrEqual(t, readings[i].Reading, readings[i-1].Reading)
	}
}

func TestUpdateReadingChecksNeighbours(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 2, 3000000)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	meter := NewMeterService(db)

	_, err := meter.RecordReading(room.ID, electricity.ID, 1, 2024, 100, nil)
	require.NoError(t, err)
	middle, err := meter.RecordReading(room.ID, electricity.ID, 2, 2024, 140, nil)
	require.NoError(t, err)
	_, err = meter.RecordReading(room.ID, electricity.ID, 3, 2024, 180, nil)
	require.NoError(t, err)

	_, err = meter.UpdateReading(middle.ID, 90)
	assert.ErrorIs(t, err, ErrInvalidReading)
	_, err = meter.UpdateReading(middle.ID, 200)
	assert.ErrorIs(t, err, ErrInvalidReading)

	updated, err := meter.UpdateReading(middle.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Reading)
}

func TestUpdateReadingLockedByPaidInvoice(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	room := createTestRoom(t, db, property.ID, 2, 3000000)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	meter := NewMeterService(db)

	reading, err := meter.RecordReading(room.ID, electricity.ID, 2, 2024, 145, nil)
	require.NoError(t, err)

	paid := models.Invoice{RoomID: room.ID, BillingMonth: 2, BillingYear: 2024, TotalAmount: 157500, IsPaid: true, PaidAt: datePtr(2024, time.March, 5)}
	require.NoError(t, db.Create(&paid).Error)

	_, err = meter.UpdateReading(reading.ID, 160)
	assert.ErrorIs(t, err, ErrReadingLocked)
}
