package models

import "time"

type Tenant struct {
	AuditedModel
	FullName           string     `json:"fullName"`
	Email              string     `json:"email" gorm:"index"`
	Phone              string     `json:"phone" gorm:"size:20"`
	IdentityCardNumber string     `json:"identityCardNumber" gorm:"size:32;index"`
	DateOfBirth        *time.Time `json:"dateOfBirth"`
	EmergencyContact   string     `json:"emergencyContact"`
}
