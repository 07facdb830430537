package config

import (
	"errors"
)

var (
	// ErrEmptyDBName error if a server engine is configured without database name.
	ErrEmptyDBName = errors.New("config db.name can not be empty for mysql and postgres")

	// ErrEmptyDBPath error if the sqlite engine is configured without file path.
	ErrEmptyDBPath = errors.New("config db.path can not be empty for sqlite")
)
