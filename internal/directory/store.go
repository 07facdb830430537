package directory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/N2Core/N2Identity/internal/db/models"
)

// Store is the persistence capability the Manager needs.
//
// Lookups hit the backing store immediately and return ErrNotFound when nothing
// matches. Changes are staged on a UnitOfWork obtained from Begin. A Store is shared
// by all callers of a Manager and must be safe for concurrent use.
type Store interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByNormalizedName(ctx context.Context, normalizedName string) (*models.User, error)
	UserByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.User, error)
	Users(ctx context.Context) ([]models.User, error)

	RoleByNormalizedName(ctx context.Context, normalizedName string) (*models.Role, error)
	Roles(ctx context.Context) ([]models.Role, error)

	HasUserRole(ctx context.Context, userID, roleID uuid.UUID) (bool, error)
	// RoleNames returns the names of the roles held by the user, ordered by name.
	RoleNames(ctx context.Context, userID uuid.UUID) ([]string, error)

	// Begin starts an empty unit of work owned by the caller.
	Begin() UnitOfWork
}

// UnitOfWork stages Add, Update and Remove calls in memory. Save writes them in one
// transaction and never returns an error: faults are reported as a 500 code.
// Units of work of the same Store are independent of each other.
type UnitOfWork interface {
	AddUser(user *models.User)
	UpdateUser(user *models.User)
	RemoveUser(user *models.User)
	AddRole(role *models.Role)
	RemoveRole(role *models.Role)
	AddUserRole(link *models.UserRole)
	RemoveUserRole(link *models.UserRole)

	// Save commits all staged changes and reports (status code, message).
	Save(ctx context.Context) (int, string)
	// Discard drops all staged changes.
	Discard()
}

// StoreFactory opens the Store used by a Manager.
type StoreFactory func(ctx context.Context) (Store, error)

// Normalize returns the canonical form of a user name, email or role name.
func Normalize(value string) string {
	return strings.ToUpper(value)
}
