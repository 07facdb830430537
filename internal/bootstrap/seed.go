package bootstrap

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/rbac"
)

// Seed creates the system roles and, if the user table is empty, an initial
// account holding SysAdmin and Admin. It reports whether the account was created.
func (s *Services) Seed(ctx context.Context, userName, email, password string) (bool, error) {
	res, err := s.Manager.EnsureSystemRoles(ctx)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	if !res.IsSuccess() {
		return false, errors.Errorf("failed to create system roles: %s", res)
	}

	var count int64
	if err = s.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count users")
	}

	if count > 0 {
		return false, nil
	}

	admin := &models.User{UserName: userName, Email: email}

	res, err = s.Manager.CreateUser(ctx, admin, password)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	if !res.IsSuccess() {
		return false, errors.Errorf("failed to create %s: %s", userName, res)
	}

	tok, err := s.Manager.GenerateEmailConfirmationToken(admin)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	if res, err = s.Manager.ConfirmEmail(ctx, admin, tok); err != nil {
		return false, err //nolint:wrapcheck
	}

	if !res.IsSuccess() {
		return false, errors.Errorf("failed to confirm %s: %s", email, res)
	}

	for _, role := range []string{rbac.SysAdmin, rbac.Admin} {
		if res, err = s.Manager.AddToRole(ctx, admin, role); err != nil {
			return false, err //nolint:wrapcheck
		}

		if !res.IsSuccess() {
			return false, errors.Errorf("failed to grant %s to %s: %s", role, userName, res)
		}
	}

	log.Info().Str("user", userName).Msg("initial administrator created")

	return true, nil
}
