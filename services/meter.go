package services

import (
	"errors"
	"fmt"

	"github.com/TungTV17/HostelFinder-sub001/models"

	"gorm.io/gorm"
)

// meterFloorYear bounds the backward search for a previous reading so it
// always terminates. Rooms vacant since before this year get a synthesized
// zero baseline on their first recorded reading.
const meterFloorYear = 2020

// MeterService is the reading ledger for usage-billed services. Readings
// are cumulative; for a fixed (room, service) they must never decrease as
// periods advance, and once a paid invoice references a period its
// readings are frozen.
type MeterService struct {
	db *gorm.DB
}

func NewMeterService(db *gorm.DB) *MeterService {
	return &MeterService{db: db}
}

// RecordReading stores the meter value for (room, service) in the given
// period. When no earlier reading exists, a baseline for the immediately
// preceding period is synthesized first — zero by default, or
// previousOverride when the landlord knows the real starting value — so
// every recorded period has a defined consumption baseline.
func (s *MeterService) RecordReading(roomID, serviceID uint, billingMonth, billingYear int, reading float64, previousOverride *float64) (*models.MeterReading, error) {
	if billingMonth < 1 || billingMonth > 12 {
		return nil, fmt.Errorf("%w: billing month %d", ErrInvalidDate, billingMonth)
	}
	if reading < 0 {
		return nil, fmt.Errorf("%w: reading %.2f", ErrInvalidAmount, reading)
	}

	var created *models.MeterReading
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := currentReading(tx, roomID, serviceID, billingMonth, billingYear)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: room %d, service %d, %04d-%02d", ErrDuplicateReading, roomID, serviceID, billingYear, billingMonth)
		}

		previous, err := previousReading(tx, roomID, serviceID, billingMonth, billingYear)
		if err != nil {
			return err
		}
		if previous == nil {
			baseValue := 0.0
			if previousOverride != nil {
				baseValue = *previousOverride
			}
			prevMonth, prevYear := periodBefore(billingMonth, billingYear)
			baseline := models.MeterReading{
				RoomID:       roomID,
				ServiceID:    serviceID,
				BillingMonth: prevMonth,
				BillingYear:  prevYear,
				Reading:      baseValue,
				IsBaseline:   true,
			}
			if err := tx.Create(&baseline).Error; err != nil {
				return err
			}
			previous = &baseline
		}

		if reading < previous.Reading {
			return fmt.Errorf("%w: %.2f < %.2f recorded for %04d-%02d", ErrInvalidReading,
				reading, previous.Reading, previous.BillingYear, previous.BillingMonth)
		}

		record := models.MeterReading{
			RoomID:       roomID,
			ServiceID:    serviceID,
			BillingMonth: billingMonth,
			BillingYear:  billingYear,
			Reading:      reading,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		created = &record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateReading corrects a recorded value. It refuses to touch readings
// frozen by a paid invoice and re-checks monotonicity against both the
// neighbouring periods.
func (s *MeterService) UpdateReading(readingID uint, newValue float64) (*models.MeterReading, error) {
	if newValue < 0 {
		return nil, fmt.Errorf("%w: reading %.2f", ErrInvalidAmount, newValue)
	}

	var updated *models.MeterReading
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var reading models.MeterReading
		if err := tx.First(&reading, readingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: meter reading %d", ErrNotFound, readingID)
			}
			return err
		}

		locked, err := readingLocked(tx, &reading)
		if err != nil {
			return err
		}
		if locked {
			return fmt.Errorf("%w: room %d, service %d, %04d-%02d", ErrReadingLocked,
				reading.RoomID, reading.ServiceID, reading.BillingYear, reading.BillingMonth)
		}

		previous, err := previousReading(tx, reading.RoomID, reading.ServiceID, reading.BillingMonth, reading.BillingYear)
		if err != nil {
			return err
		}
		if previous != nil && newValue < previous.Reading {
			return fmt.Errorf("%w: %.2f < %.2f recorded for %04d-%02d", ErrInvalidReading,
				newValue, previous.Reading, previous.BillingYear, previous.BillingMonth)
		}

		next, err := nextReading(tx, reading.RoomID, reading.ServiceID, reading.BillingMonth, reading.BillingYear)
		if err != nil {
			return err
		}
		if next != nil && newValue > next.Reading {
			return fmt.Errorf("%w: %.2f > %.2f recorded for %04d-%02d", ErrInvalidReading,
				newValue, next.Reading, next.BillingYear, next.BillingMonth)
		}

		if err := tx.Model(&reading).Update("reading", newValue).Error; err != nil {
			return err
		}
		reading.Reading = newValue
		updated = &reading
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ResolveCurrent is the exact-period lookup; nil when no reading exists.
func (s *MeterService) ResolveCurrent(roomID, serviceID uint, billingMonth, billingYear int) (*models.MeterReading, error) {
	return currentReading(s.db, roomID, serviceID, billingMonth, billingYear)
}

// ResolvePrevious walks backward one period at a time until it finds a
// reading or hits the floor year. Readings are recorded irregularly (a
// room can sit empty for months), so a plain previous-calendar-month
// lookup is not enough.
func (s *MeterService) ResolvePrevious(roomID, serviceID uint, billingMonth, billingYear int) (*models.MeterReading, error) {
	return previousReading(s.db, roomID, serviceID, billingMonth, billingYear)
}

func currentReading(db *gorm.DB, roomID, serviceID uint, month, year int) (*models.MeterReading, error) {
	var reading models.MeterReading
	err := db.Where("room_id = ? AND service_id = ? AND billing_month = ? AND billing_year = ?",
		roomID, serviceID, month, year).
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

func previousReading(db *gorm.DB, roomID, serviceID uint, month, year int) (*models.MeterReading, error) {
	m, y := periodBefore(month, year)
	for y >= meterFloorYear {
		reading, err := currentReading(db, roomID, serviceID, m, y)
		if err != nil {
			return nil, err
		}
		if reading != nil {
			return reading, nil
		}
		m, y = periodBefore(m, y)
	}
	return nil, nil
}

func nextReading(db *gorm.DB, roomID, serviceID uint, month, year int) (*models.MeterReading, error) {
	var reading models.MeterReading
	err := db.Where("room_id = ? AND service_id = ? AND (billing_year > ? OR (billing_year = ? AND billing_month > ?))",
		roomID, serviceID, year, year, month).
		Order("billing_year, billing_month").
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

// readingLocked reports whether a paid invoice references the reading.
// A paid invoice freezes the readings of its own period and every earlier
// one for the room, since those values fed its consumption deltas.
func readingLocked(db *gorm.DB, reading *models.MeterReading) (bool, error) {
	var count int64
	err := db.Model(&models.Invoice{}).
		Where("room_id = ? AND is_paid = ? AND (billing_year > ? OR (billing_year = ? AND billing_month >= ?))",
			reading.RoomID, true, reading.BillingYear, reading.BillingYear, reading.BillingMonth).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func periodBefore(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
