package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an identity record in the directory.
// Username and email are stored twice: as entered and in their normalized (upper case) form,
// the normalized forms are used for lookups and uniqueness.
type User struct {
	// ID is the stable, opaque identifier of the user.
	ID uuid.UUID `gorm:"type:char(36);primaryKey"`
	// UserName is the login name as entered.
	UserName string `gorm:"column:user_name;size:256;not null"`
	// NormalizedUserName is the case folded login name.
	NormalizedUserName string `gorm:"column:normalized_user_name;size:256;not null;uniqueIndex"`
	// Email is the email address as entered.
	Email string `gorm:"column:email;size:256;not null"`
	// NormalizedEmail is the case folded email address.
	NormalizedEmail string `gorm:"column:normalized_email;size:256;not null;uniqueIndex"`
	// EmailConfirmed is set once a confirmation token was accepted.
	EmailConfirmed bool `gorm:"column:email_confirmed;not null;default:false"`
	// PasswordHash is the output of the configured credential hasher.
	PasswordHash string `gorm:"column:password_hash;size:512"`
	// SecurityStamp is rotated whenever a credential affecting field changes.
	SecurityStamp string `gorm:"column:security_stamp;size:64;not null"`
	// PhoneNumber is an optional contact number.
	PhoneNumber string `gorm:"column:phone_number;size:64"`
	// LockoutEnabled turns on lockout tracking for the account.
	LockoutEnabled bool `gorm:"column:lockout_enabled;not null;default:false"`
	// LockoutEnd is the instant until which the account is barred from signing in.
	LockoutEnd *time.Time `gorm:"column:lockout_end"`
	// AccessFailedCount counts failed sign in attempts.
	AccessFailedCount int `gorm:"column:access_failed_count;not null;default:0"`
	// FirstName is the given name.
	FirstName string `gorm:"column:first_name;size:100"`
	// MiddleName is the middle name.
	MiddleName string `gorm:"column:middle_name;size:100"`
	// LastName is the family name.
	LastName string `gorm:"column:last_name;size:100"`
	// DisplayName is shown instead of the user name when set.
	DisplayName string `gorm:"column:display_name;size:256"`
	// ImagePath points to the avatar image.
	ImagePath string `gorm:"column:image_path;size:512"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// CanSignIn reports whether the account is not locked out at the given instant.
// Accounts without lockout tracking can always sign in.
func (u *User) CanSignIn(now time.Time) bool {
	if !u.LockoutEnabled {
		return true
	}

	return u.LockoutEnd == nil || u.LockoutEnd.Before(now)
}
