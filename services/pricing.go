package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/TungTV17/HostelFinder-sub001/models"

	"gorm.io/gorm"
)

// PricingService maintains the per-(property, service) price timeline:
// an append-only sequence of non-overlapping effective-date intervals with
// at most one open (EffectiveTo == nil) interval at a time.
type PricingService struct {
	db *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

// SetPrice records a new price effective from the given date. The
// currently open interval, if any, is closed at effectiveFrom minus one
// day so the timeline stays gap- and overlap-free going forward.
//
// It fails when effectiveFrom falls inside an already closed interval, or
// when it does not come strictly after the open interval's start (closing
// the open interval would invert it).
func (s *PricingService) SetPrice(propertyID, serviceID uint, unitCost float64, unit string, effectiveFrom time.Time) (*models.ServicePrice, error) {
	if unitCost < 0 {
		return nil, fmt.Errorf("%w: unit cost %.2f", ErrInvalidAmount, unitCost)
	}
	effectiveFrom = truncateToDay(effectiveFrom)

	var created *models.ServicePrice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Closed interval containing effectiveFrom?
		var clash models.ServicePrice
		err := tx.Where("property_id = ? AND service_id = ? AND effective_from <= ? AND effective_to IS NOT NULL AND effective_to >= ?",
			propertyID, serviceID, effectiveFrom, effectiveFrom).
			First(&clash).Error
		if err == nil {
			return fmt.Errorf("%w: %s is inside [%s, %s]", ErrPriceOverlap,
				effectiveFrom.Format("2006-01-02"), clash.EffectiveFrom.Format("2006-01-02"), clash.EffectiveTo.Format("2006-01-02"))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var open models.ServicePrice
		err = tx.Where("property_id = ? AND service_id = ? AND effective_to IS NULL", propertyID, serviceID).
			First(&open).Error
		switch {
		case err == nil:
			if !open.EffectiveFrom.Before(effectiveFrom) {
				return fmt.Errorf("%w: %s does not come after the open interval starting %s", ErrPriceOverlap,
					effectiveFrom.Format("2006-01-02"), open.EffectiveFrom.Format("2006-01-02"))
			}
			closeAt := effectiveFrom.AddDate(0, 0, -1)
			if err := tx.Model(&open).Update("effective_to", closeAt).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first price for this service, nothing to close
		default:
			return err
		}

		price := models.ServicePrice{
			PropertyID:    propertyID,
			ServiceID:     serviceID,
			UnitCost:      unitCost,
			Unit:          unit,
			EffectiveFrom: effectiveFrom,
		}
		if err := tx.Create(&price).Error; err != nil {
			return err
		}
		created = &price
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// PriceAt returns the interval in force for (property, service) on the
// given date.
func (s *PricingService) PriceAt(propertyID, serviceID uint, date time.Time) (*models.ServicePrice, error) {
	price, err := priceAt(s.db, propertyID, serviceID, date)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, fmt.Errorf("%w: no price for service %d on %s", ErrNotFound, serviceID, date.Format("2006-01-02"))
	}
	return price, nil
}

// PricesActiveOn returns every service price in force for the property on
// the given date, with the service preloaded. This is the driver set for
// invoice generation: a service without an active price is simply not
// billed.
func (s *PricingService) PricesActiveOn(propertyID uint, date time.Time) ([]models.ServicePrice, error) {
	return activePrices(s.db, propertyID, date)
}

func priceAt(db *gorm.DB, propertyID, serviceID uint, date time.Time) (*models.ServicePrice, error) {
	var price models.ServicePrice
	err := db.Where("property_id = ? AND service_id = ? AND effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)",
		propertyID, serviceID, date, date).
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func activePrices(db *gorm.DB, propertyID uint, date time.Time) ([]models.ServicePrice, error) {
	var prices []models.ServicePrice
	err := db.Preload("Service").
		Where("property_id = ? AND effective_from <= ? AND (effective_to IS NULL OR effective_to >= ?)",
			propertyID, date, date).
		Order("service_id").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
