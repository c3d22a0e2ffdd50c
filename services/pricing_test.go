package services

import (
	"testing"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPriceFirstIntervalStaysOpen(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	pricing := NewPricingService(db)

	price, err := pricing.SetPrice(property.ID, electricity.ID, 3500, "kWh", date(2024, time.January, 1))
	require.NoError(t, err)
	assert.Nil(t, price.EffectiveTo)
	assert.Equal(t, 3500.0, price.UnitCost)
}

func TestSetPriceClosesPreviousOpenInterval(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	pricing := NewPricingService(db)

	first, err := pricing.SetPrice(property.ID, electricity.ID, 3500, "kWh", date(2024, time.January, 1))
	require.NoError(t, err)
	second, err := pricing.SetPrice(property.ID, electricity.ID, 3800, "kWh", date(2024, time.June, 1))
	require.NoError(t, err)
	assert.Nil(t, second.EffectiveTo)

	var closed models.ServicePrice
	require.NoError(t, db.First(&closed, first.ID).Error)
	require.NotNil(t, closed.EffectiveTo)
	assert.True(t, closed.EffectiveTo.Equal(date(2024, time.May, 31)), "open interval should close the day before the new price")

	// exactly one open interval remains
	var open int64
	db.Model(&models.ServicePrice{}).
		Where("property_id = ? AND service_id = ? AND effective_to IS NULL", property.ID, electricity.ID).
		Count(&open)
	assert.EqualValues(t, 1, open)
}

func TestSetPriceConflictInsideClosedInterval(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	pricing := NewPricingService(db)

	_, err := pricing.SetPrice(property.ID, electricity.ID, 3500, "kWh", date(2024, time.January, 1))
	require.NoError(t, err)
	_, err = pricing.SetPrice(property.ID, electricity.ID, 3800, "kWh", date(2024, time.June, 1))
	require.NoError(t, err)

	_, err = pricing.SetPrice(property.ID, electricity.ID, 4000, "kWh", date(2024, time.March, 15))
	assert.ErrorIs(t, err, ErrPriceOverlap)
}

func TestSetPriceConflictBeforeOpenIntervalStart(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	pricing := NewPricingService(db)

	open, err := pricing.SetPrice(property.ID, electricity.ID, 3500, "kWh", date(2024, time.June, 1))
	require.NoError(t, err)

	_, err = pricing.SetPrice(property.ID, electricity.ID, 4000, "kWh", date(2024, time.June, 1))
	assert.ErrorIs(t, err, ErrPriceOverlap)
	_, err = pricing.SetPrice(property.ID, electricity.ID, 4000, "kWh", date(2024, time.February, 1))
	assert.ErrorIs(t, err, ErrPriceOverlap)

	// the open interval is untouched after a rejected SetPrice
	var reloaded models.ServicePrice
	require.NoError(t, db.First(&reloaded, open.ID).Error)
	assert.Nil(t, reloaded.EffectiveTo)
}

func TestPriceAt(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	pricing := NewPricingService(db)

	_, err := pricing.SetPrice(property.ID, electricity.ID, 3500, "kWh", date(2024, time.January, 1))
	require.NoError(t, err)
	_, err = pricing.SetPrice(property.ID, electricity.ID, 3800, "kWh", date(2024, time.June, 1))
	require.NoError(t, err)

	inFirst, err := pricing.PriceAt(property.ID, electricity.ID, date(2024, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, 3500.0, inFirst.UnitCost)

	inOpen, err := pricing.PriceAt(property.ID, electricity.ID, date(2025, time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, 3800.0, inOpen.UnitCost)

	_, err = pricing.PriceAt(property.ID, electricity.ID, date(2023, time.December, 31))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPricesActiveOnSkipsUnpricedServices(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db)
	electricity := createTestService(t, db, "electricity", models.ChargePerUsageUnit)
	createTestService(t, db, "internet", models.ChargeFlatFee) // never priced
	pricing := NewPricingService(db)

	_, err := pricing.SetPrice(property.ID, electricity.ID, 3500, "kWh", date(2024, time.January, 1))
	require.NoError(t, err)

	active, err := pricing.PricesActiveOn(property.ID, date(2024, time.February, 1))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, electricity.ID, active[0].ServiceID)
	require.NotNil(t, active[0].Service)
	assert.Equal(t, "electricity", active[0].Service.Name)
	assert.True(t, active[0].Covers(date(2024, time.February, 1)))
}
