package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditedModel is the shared column set for every persisted entity:
// primary key, created/modified stamps with the acting user, soft delete.
// GORM filters soft-deleted rows on every query, so repositories never
// have to remember to exclude them.
type AuditedModel struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time      `json:"createdAt"`
	CreatedBy  string         `json:"createdBy" gorm:"size:64"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	ModifiedBy string         `json:"modifiedBy" gorm:"size:64"`
	DeletedAt  gorm.DeletedAt `json:"deletedAt" gorm:"index"`
}
