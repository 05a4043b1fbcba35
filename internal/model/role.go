package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a named privilege grouping. Membership is many-to-many with User
// through the user_roles join table.
type Role struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Description *string   `json:"description,omitempty" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID before creating the record.
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// UserRole is the user↔role association. The composite primary key enforces
// uniqueness on (user_id, role_id).
type UserRole struct {
	UserID    string    `json:"user_id" gorm:"type:char(36);primaryKey"`
	RoleID    string    `json:"role_id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Role Role `json:"-" gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}

// TableName pins the join table name.
func (UserRole) TableName() string {
	return "user_roles"
}
