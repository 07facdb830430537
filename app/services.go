package app

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/N2Core/N2Identity/internal/bootstrap"
	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/directory"
)

// ErrUserNotFound is returned when a command names an unknown user.
var ErrUserNotFound = errors.New("user not found")

// withServices opens the services for the duration of fn.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, s *bootstrap.Services) error) error {
	s, err := bootstrap.New(&cfg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() { _ = s.Close() }()

	return fn(cmd.Context(), s)
}

// findUser resolves a user by name.
func findUser(ctx context.Context, s *bootstrap.Services, userName string) (*models.User, error) {
	user, err := s.Manager.FindByName(ctx, userName)
	if errors.Is(err, directory.ErrNotFound) {
		return nil, errors.Wrap(ErrUserNotFound, userName)
	}

	return user, err //nolint:wrapcheck
}

// report prints res and turns a failed result into an error.
func report(cmd *cobra.Command, res directory.Result, err error) error {
	if err != nil {
		return err
	}

	if !res.IsSuccess() {
		return errors.New(res.String())
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Message)

	return nil
}
