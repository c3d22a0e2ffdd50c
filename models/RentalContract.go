package models

import (
	"time"

	"gorm.io/datatypes"
)

// ContractStatus is derived from the contract's dates, never stored.
type ContractStatus string

const (
	ContractUpcoming     ContractStatus = "upcoming"
	ContractActive       ContractStatus = "active"
	ContractExpiringSoon ContractStatus = "expiring_soon"
	ContractTerminated   ContractStatus = "terminated"
)

// expiringSoonWindow is how far ahead of the end date a contract starts
// showing as expiring_soon.
const expiringSoonWindow = 30 * 24 * time.Hour

type RentalContract struct {
	AuditedModel
	RoomID           uint           `json:"roomID" gorm:"index"`
	TenantID         uint           `json:"tenantID" gorm:"index"` // primary signatory
	StartDate        time.Time      `json:"startDate"`
	EndDate          *time.Time     `json:"endDate"` // nil = open-ended
	MonthlyRent      float64        `json:"monthlyRent"`
	DepositAmount    float64        `json:"depositAmount"`
	PaymentCycleDays int            `json:"paymentCycleDays"`
	Terms            datatypes.JSON `json:"terms"`

	Room   *Room   `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// StatusAt computes the display status of the contract at the given time.
func (c *RentalContract) StatusAt(now time.Time) ContractStatus {
	if c.EndDate != nil && c.EndDate.Before(now) {
		return ContractTerminated
	}
	if c.StartDate.After(now) {
		return ContractUpcoming
	}
	if c.EndDate != nil && c.EndDate.Before(now.Add(expiringSoonWindow)) {
		return ContractExpiringSoon
	}
	return ContractActive
}

// CoversNow reports whether the contract window includes the given time.
func (c *RentalContract) CoversNow(now time.Time) bool {
	if c.StartDate.After(now) {
		return false
	}
	return c.EndDate == nil || !c.EndDate.Before(now)
}
