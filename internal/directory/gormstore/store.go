// Package gormstore implements directory.Store on top of gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/directory"
)

const (
	whereID             = "id = ?"
	whereUserID         = "user_id = ?"
	whereRoleID         = "role_id = ?"
	whereUserAndRole    = "user_id = ? AND role_id = ?"
	whereNormalizedName = "normalized_name = ?"
)

// ErrDBNil is returned by Factory when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// op is a staged change, returning the number of rows it touched.
type op func(tx *gorm.DB) (int64, error)

// Store reads directly from a gorm connection and hands out units of work for writes.
// It holds no per-call state and is safe for concurrent use.
type Store struct {
	db *gorm.DB
}

// New returns a Store using db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// UnitOfWork collects staged changes of one caller.
type UnitOfWork struct {
	db *gorm.DB

	mu      sync.Mutex
	pending []op
}

// Begin implements directory.Store.
func (s *Store) Begin() directory.UnitOfWork {
	return &UnitOfWork{db: s.db}
}

// Factory returns a directory.StoreFactory that checks the connection before handing out a Store.
func Factory(db *gorm.DB) directory.StoreFactory {
	return func(ctx context.Context) (directory.Store, error) {
		if db == nil {
			return nil, ErrDBNil
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}

		if err = sqlDB.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		return New(db), nil
	}
}

func (u *UnitOfWork) stage(o op) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.pending = append(u.pending, o)
}

func first[T any](ctx context.Context, db *gorm.DB, query string, arg any) (*T, error) {
	var out T

	err := db.WithContext(ctx).Where(query, arg).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, directory.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query %T: %w", out, err)
	}

	return &out, nil
}

// UserByID implements directory.Store.
func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return first[models.User](ctx, s.db, whereID, id)
}

// UserByNormalizedName implements directory.Store.
func (s *Store) UserByNormalizedName(ctx context.Context, normalizedName string) (*models.User, error) {
	return first[models.User](ctx, s.db, "normalized_user_name = ?", normalizedName)
}

// UserByNormalizedEmail implements directory.Store.
func (s *Store) UserByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.User, error) {
	return first[models.User](ctx, s.db, "normalized_email = ?", normalizedEmail)
}

// Users implements directory.Store.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User

	if err := s.db.WithContext(ctx).Order("normalized_user_name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// RoleByNormalizedName implements directory.Store.
func (s *Store) RoleByNormalizedName(ctx context.Context, normalizedName string) (*models.Role, error) {
	return first[models.Role](ctx, s.db, whereNormalizedName, normalizedName)
}

// Roles implements directory.Store.
func (s *Store) Roles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role

	if err := s.db.WithContext(ctx).Order("name").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	return roles, nil
}

// HasUserRole implements directory.Store.
func (s *Store) HasUserRole(ctx context.Context, userID, roleID uuid.UUID) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&models.UserRole{}).
		Where(whereUserAndRole, userID, roleID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role assignment: %w", err)
	}

	return count > 0, nil
}

// RoleNames implements directory.Store.
func (s *Store) RoleNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	names := []string{}

	err := s.db.WithContext(ctx).Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name").
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	return names, nil
}

// AddUser implements directory.UnitOfWork.
func (u *UnitOfWork) AddUser(user *models.User) {
	u.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Create(user)
		return res.RowsAffected, res.Error
	})
}

// UpdateUser implements directory.UnitOfWork.
func (u *UnitOfWork) UpdateUser(user *models.User) {
	u.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Save(user)
		return res.RowsAffected, res.Error
	})
}

// RemoveUser implements directory.UnitOfWork. Role assignments of the user are removed as well.
func (u *UnitOfWork) RemoveUser(user *models.User) {
	id := user.ID

	u.stage(func(tx *gorm.DB) (int64, error) {
		links := tx.Where(whereUserID, id).Delete(&models.UserRole{})
		if links.Error != nil {
			return 0, links.Error
		}

		res := tx.Where(whereID, id).Delete(&models.User{})

		return links.RowsAffected + res.RowsAffected, res.Error
	})
}

// AddRole implements directory.UnitOfWork.
func (u *UnitOfWork) AddRole(role *models.Role) {
	u.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Create(role)
		return res.RowsAffected, res.Error
	})
}

// RemoveRole implements directory.UnitOfWork. Assignments of the role are removed as well.
func (u *UnitOfWork) RemoveRole(role *models.Role) {
	id := role.ID

	u.stage(func(tx *gorm.DB) (int64, error) {
		links := tx.Where(whereRoleID, id).Delete(&models.UserRole{})
		if links.Error != nil {
			return 0, links.Error
		}

		res := tx.Where(whereID, id).Delete(&models.Role{})

		return links.RowsAffected + res.RowsAffected, res.Error
	})
}

// AddUserRole implements directory.UnitOfWork.
func (u *UnitOfWork) AddUserRole(link *models.UserRole) {
	u.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Create(link)
		return res.RowsAffected, res.Error
	})
}

// RemoveUserRole implements directory.UnitOfWork.
func (u *UnitOfWork) RemoveUserRole(link *models.UserRole) {
	userID, roleID := link.UserID, link.RoleID

	u.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Where(whereUserAndRole, userID, roleID).Delete(&models.UserRole{})
		return res.RowsAffected, res.Error
	})
}

// Save implements directory.UnitOfWork. All staged changes run in one transaction and are
// dropped afterwards, whether the transaction committed or not.
func (u *UnitOfWork) Save(ctx context.Context) (int, string) {
	u.mu.Lock()
	ops := u.pending
	u.pending = nil
	u.mu.Unlock()

	var modified int64

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range ops {
			n, err := o(tx)
			if err != nil {
				return err
			}

			modified += n
		}

		return nil
	})
	if err != nil {
		return int(directory.CodeInternal), err.Error()
	}

	return int(directory.CodeOk), fmt.Sprintf("%d records modified", modified)
}

// Discard implements directory.UnitOfWork.
func (u *UnitOfWork) Discard() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.pending = nil
}
