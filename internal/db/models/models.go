// Package models contains the gorm models of the identity directory.
package models

// All returns every model for schema migration.
func All() []any {
	return []any{
		&User{},
		&Role{},
		&UserRole{},
	}
}
