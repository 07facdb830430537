package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/N2Core/N2Identity/internal/bootstrap"
)

var (
	roleCmd = &cobra.Command{
		Use:   "role",
		Short: "Manage roles",
	}

	roleCreateCmd = &cobra.Command{
		Use:   "create <name>",
		Short: "Create a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				res, err := s.Manager.CreateRole(ctx, args[0])

				return report(cmd, res, err)
			})
		},
	}

	roleRemoveCmd = &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a role and its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				res, err := s.Manager.RemoveRole(ctx, args[0])

				return report(cmd, res, err)
			})
		},
	}

	roleListCmd = &cobra.Command{
		Use:   "list",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				roles, err := s.Manager.ListRoles(ctx)
				if err != nil {
					return err //nolint:wrapcheck
				}

				for _, r := range roles {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.ID, r.Name)
				}

				return nil
			})
		},
	}
)

func init() { //nolint: gochecknoinits
	roleCmd.AddCommand(roleCreateCmd, roleRemoveCmd, roleListCmd)

	rootCmd.AddCommand(roleCmd)
}
