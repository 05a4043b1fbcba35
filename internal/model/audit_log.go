package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog attributes a single mutation to an acting identity. Writes that
// arrive without a real operator are attributed to the system identity.
type AuditLog struct {
	ID         string    `json:"id" gorm:"type:char(36);primaryKey"`
	Entity     string    `json:"entity" gorm:"size:50;not null;index"`
	EntityID   string    `json:"entity_id" gorm:"type:char(36);not null;index"`
	Action     string    `json:"action" gorm:"size:50;not null"`
	OperatedBy string    `json:"operated_by" gorm:"type:char(36);not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID before creating the record.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
