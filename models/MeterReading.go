package models

// MeterReading is a cumulative meter value for (room, service) in one
// billing period. Values must be non-decreasing across chronologically
// ordered periods. IsBaseline marks readings the ledger synthesized to
// give a period a defined starting point.
type MeterReading struct {
	AuditedModel
	RoomID       uint    `json:"roomID" gorm:"index:idx_reading_period"`
	ServiceID    uint    `json:"serviceID" gorm:"index:idx_reading_period"`
	BillingMonth int     `json:"billingMonth" gorm:"index:idx_reading_period"`
	BillingYear  int     `json:"billingYear" gorm:"index:idx_reading_period"`
	Reading      float64 `json:"reading"`
	IsBaseline   bool    `json:"isBaseline" gorm:"default:false"`

	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}
