package models

import "time"

// RoomTenancy is one tenant's physical occupancy window in a room. It is
// independent of who signed the contract so roommates can come and go
// without touching the contract itself.
type RoomTenancy struct {
	AuditedModel
	RoomID      uint       `json:"roomID" gorm:"index"`
	TenantID    uint       `json:"tenantID" gorm:"index"`
	ContractID  uint       `json:"contractID" gorm:"index"`
	MoveInDate  time.Time  `json:"moveInDate"`
	MoveOutDate *time.Time `json:"moveOutDate"` // nil = still resident

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// OccupiedAt reports whether the tenancy window covers the given time.
func (t *RoomTenancy) OccupiedAt(at time.Time) bool {
	if t.MoveInDate.After(at) {
		return false
	}
	return t.MoveOutDate == nil || t.MoveOutDate.After(at)
}
