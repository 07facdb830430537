package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/rbac"
)

func roleMissing(name string) Result {
	return notFound(fmt.Sprintf("Role '%s' does not exist", name))
}

// CreateRole adds a role. A role with the same normalized name is a conflict.
func (m *Manager) CreateRole(ctx context.Context, name string) (Result, error) {
	if name == "" {
		return badRequest("Role name is required"), nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	existing, err := m.findRole(ctx, s, name)
	if err != nil {
		return Result{}, err
	}

	if existing != nil {
		return conflict(fmt.Sprintf("Role '%s' already exists", name)), nil
	}

	role := &models.Role{ID: uuid.New(), Name: name, NormalizedName: Normalize(name)}
	uow := s.Begin()
	uow.AddRole(role)

	res, err := m.commit(ctx, uow)
	if err == nil && res.IsSuccess() {
		m.record(ctx, tableRoles, role.ID.String(), fmt.Sprintf("Role '%s' created", name))
	}

	return res, err
}

// RemoveRole deletes a role and all of its assignments.
func (m *Manager) RemoveRole(ctx context.Context, name string) (Result, error) {
	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	role, err := m.findRole(ctx, s, name)
	if err != nil {
		return Result{}, err
	}

	if role == nil {
		return roleMissing(name), nil
	}

	uow := s.Begin()
	uow.RemoveRole(role)

	res, err := m.commit(ctx, uow)
	if err != nil || !res.IsSuccess() {
		return res, err
	}

	m.record(ctx, tableRoles, role.ID.String(), fmt.Sprintf("Role '%s' removed", role.Name))

	return removed(), nil
}

// RoleExists reports whether a role with the normalized name exists.
func (m *Manager) RoleExists(ctx context.Context, name string) (bool, error) {
	s, err := m.acquire(ctx)
	if err != nil {
		return false, err
	}

	role, err := m.findRole(ctx, s, name)

	return role != nil, err
}

// ListRoles returns all roles ordered by name.
func (m *Manager) ListRoles(ctx context.Context) ([]models.Role, error) {
	s, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}

	return s.Roles(ctx) //nolint:wrapcheck
}

// EnsureSystemRoles creates every missing well known role.
func (m *Manager) EnsureSystemRoles(ctx context.Context) (Result, error) {
	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	var created []*models.Role

	uow := s.Begin()

	for _, name := range rbac.SystemRoles() {
		role, err := m.findRole(ctx, s, name)
		if err != nil {
			uow.Discard()
			return Result{}, err
		}

		if role == nil {
			role = &models.Role{ID: uuid.New(), Name: name, NormalizedName: Normalize(name)}
			uow.AddRole(role)
			created = append(created, role)
		}
	}

	if len(created) == 0 {
		return ok("0 records modified"), nil
	}

	res, err := m.commit(ctx, uow)
	if err == nil && res.IsSuccess() {
		for _, role := range created {
			m.record(ctx, tableRoles, role.ID.String(), fmt.Sprintf("Role '%s' created", role.Name))
		}
	}

	return res, err
}

// IsInRole reports whether user holds the role. A missing role is never held.
func (m *Manager) IsInRole(ctx context.Context, user *models.User, roleName string) (bool, error) {
	if user == nil {
		return false, nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return false, err
	}

	role, err := m.findRole(ctx, s, roleName)
	if err != nil || role == nil {
		return false, err
	}

	return s.HasUserRole(ctx, user.ID, role.ID) //nolint:wrapcheck
}

// AddToRole assigns the role to user. Adding a held role succeeds without a write.
func (m *Manager) AddToRole(ctx context.Context, user *models.User, roleName string) (Result, error) {
	if user == nil || user.ID == uuid.Nil {
		return badRequest("User is required"), nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	role, err := m.findRole(ctx, s, roleName)
	if err != nil {
		return Result{}, err
	}

	if role == nil {
		return roleMissing(roleName), nil
	}

	held, err := s.HasUserRole(ctx, user.ID, role.ID)
	if err != nil {
		return Result{}, err //nolint:wrapcheck
	}

	if held {
		return ok(fmt.Sprintf("User already in role '%s'", role.Name)), nil
	}

	uow := s.Begin()
	uow.AddUserRole(&models.UserRole{UserID: user.ID, RoleID: role.ID})

	res, err := m.commit(ctx, uow)
	if err == nil && res.IsSuccess() {
		m.record(ctx, tableUserRoles, user.ID.String(),
			fmt.Sprintf("User '%s' added to role '%s'", user.UserName, role.Name))
	}

	return res, err
}

// RemoveFromRole revokes the role from user. Removing an unheld role succeeds without a write.
func (m *Manager) RemoveFromRole(ctx context.Context, user *models.User, roleName string) (Result, error) {
	if user == nil || user.ID == uuid.Nil {
		return badRequest("User is required"), nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	role, err := m.findRole(ctx, s, roleName)
	if err != nil {
		return Result{}, err
	}

	if role == nil {
		return roleMissing(roleName), nil
	}

	held, err := s.HasUserRole(ctx, user.ID, role.ID)
	if err != nil {
		return Result{}, err //nolint:wrapcheck
	}

	if !held {
		return ok(fmt.Sprintf("User not in role '%s'", role.Name)), nil
	}

	uow := s.Begin()
	uow.RemoveUserRole(&models.UserRole{UserID: user.ID, RoleID: role.ID})

	res, err := m.commit(ctx, uow)
	if err == nil && res.IsSuccess() {
		m.record(ctx, tableUserRoles, user.ID.String(),
			fmt.Sprintf("User '%s' removed from role '%s'", user.UserName, role.Name))
	}

	return res, err
}

// GetRoles returns the names of the roles held by user, ordered by name.
func (m *Manager) GetRoles(ctx context.Context, user *models.User) ([]string, error) {
	if user == nil {
		return []string{}, nil
	}

	s, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}

	return s.RoleNames(ctx, user.ID) //nolint:wrapcheck
}

func (m *Manager) findRole(ctx context.Context, s Store, name string) (*models.Role, error) {
	if name == "" {
		return nil, nil //nolint:nilnil
	}

	role, err := s.RoleByNormalizedName(ctx, Normalize(name))
	if err != nil {
		if isNotFound(err) {
			return nil, nil //nolint:nilnil
		}

		return nil, err //nolint:wrapcheck
	}

	return role, nil
}
