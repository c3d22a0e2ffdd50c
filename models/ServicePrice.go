package models

import "time"

// ServicePrice is one effective-date interval of a (property, service)
// price timeline. EffectiveTo == nil means the price is currently in force.
// Intervals for the same (property, service) never overlap and at most one
// is open; the pricing service enforces both.
type ServicePrice struct {
	AuditedModel
	PropertyID    uint       `json:"propertyID" gorm:"index:idx_price_scope"`
	ServiceID     uint       `json:"serviceID" gorm:"index:idx_price_scope"`
	UnitCost      float64    `json:"unitCost"`
	Unit          string     `json:"unit" gorm:"size:20"` // kWh, m3, person, month
	EffectiveFrom time.Time  `json:"effectiveFrom"`
	EffectiveTo   *time.Time `json:"effectiveTo"`

	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

// Covers reports whether the interval contains the given date, both ends
// inclusive.
func (p *ServicePrice) Covers(date time.Time) bool {
	if date.Before(p.EffectiveFrom) {
		return false
	}
	return p.EffectiveTo == nil || !date.After(*p.EffectiveTo)
}
