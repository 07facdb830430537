package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the many-to-many relationship between users and roles.
// The composite primary key allows at most one assignment per (user, role) pair.
type UserRole struct {
	// UserID is the ID of the user holding the role.
	UserID uuid.UUID `gorm:"type:char(36);primaryKey;column:user_id"`
	// RoleID is the ID of the assigned role.
	RoleID uuid.UUID `gorm:"type:char(36);primaryKey;column:role_id"`
	// CreatedAt is the timestamp when the role was assigned (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the UserRole model.
func (UserRole) TableName() string {
	return "user_roles"
}
