package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a named permission group.
// The well known system roles are seeded by the migrate command.
type Role struct {
	// ID is the unique identifier for the role.
	ID uuid.UUID `gorm:"type:char(36);primaryKey"`
	// Name is the role name as entered (e.g., "Publisher").
	Name string `gorm:"column:name;size:256;not null"`
	// NormalizedName is the case folded role name, unique across roles.
	NormalizedName string `gorm:"column:normalized_name;size:256;not null;uniqueIndex"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}
