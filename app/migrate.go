package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/N2Core/N2Identity/internal/bootstrap"
	"github.com/N2Core/N2Identity/internal/db"
)

var (
	seedAdmin     bool
	adminName     string
	adminEmail    string
	adminPassword string

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and the system roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				if err := db.Migrate(s.DB); err != nil {
					return err //nolint:wrapcheck
				}

				if !seedAdmin {
					res, err := s.Manager.EnsureSystemRoles(ctx)

					return report(cmd, res, err)
				}

				created, err := s.Seed(ctx, adminName, adminEmail, adminPassword)
				if err != nil {
					return err //nolint:wrapcheck
				}

				if created {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created administrator %s\n", adminName)
				}

				return nil
			})
		},
	}
)

func init() { //nolint: gochecknoinits
	migrateCmd.Flags().BoolVar(&seedAdmin, "seed-admin", false, "create an administrator if no user exists")
	migrateCmd.Flags().StringVar(&adminName, "admin-name", "admin", "user name of the seeded administrator")
	migrateCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@example.com", "email of the seeded administrator")
	migrateCmd.Flags().StringVar(&adminPassword, "admin-password", "changeme", "password of the seeded administrator")

	rootCmd.AddCommand(migrateCmd)
}
