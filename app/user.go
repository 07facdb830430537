package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/N2Core/N2Identity/internal/bootstrap"
	"github.com/N2Core/N2Identity/internal/db/models"
)

var (
	userEmail     string
	userPassword  string
	userPhone     string
	userFirstName string
	userLastName  string

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	userCreateCmd = &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				user := &models.User{
					UserName:    args[0],
					Email:       userEmail,
					PhoneNumber: userPhone,
					FirstName:   userFirstName,
					LastName:    userLastName,
				}

				res, err := s.Manager.CreateUser(ctx, user, userPassword)
				if err = report(cmd, res, err); err != nil {
					return err
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), user.ID)

				return nil
			})
		},
	}

	userListCmd = &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				users, err := s.Manager.ListUsers(ctx)
				if err != nil {
					return err //nolint:wrapcheck
				}

				for _, u := range users {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tconfirmed=%t\n",
						u.ID, u.UserName, u.Email, u.EmailConfirmed)
				}

				return nil
			})
		},
	}

	userPasswordCmd = &cobra.Command{
		Use:   "password <username>",
		Short: "Set the password of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				user, err := findUser(ctx, s, args[0])
				if err != nil {
					return err
				}

				res, err := s.Manager.SetPassword(ctx, user, userPassword)
				if err = report(cmd, res, err); err != nil {
					return err
				}

				res, err = s.Manager.Update(ctx, user)

				return report(cmd, res, err)
			})
		},
	}

	userTokenCmd = &cobra.Command{
		Use:   "token <username>",
		Short: "Print an email confirmation token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				user, err := findUser(ctx, s, args[0])
				if err != nil {
					return err
				}

				tok, err := s.Manager.GenerateEmailConfirmationToken(user)
				if err != nil {
					return err //nolint:wrapcheck
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), tok)

				return nil
			})
		},
	}

	userConfirmCmd = &cobra.Command{
		Use:   "confirm <username> <token>",
		Short: "Confirm the email address of a user",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				user, err := findUser(ctx, s, args[0])
				if err != nil {
					return err
				}

				res, err := s.Manager.ConfirmEmail(ctx, user, args[1])

				return report(cmd, res, err)
			})
		},
	}

	userRolesCmd = &cobra.Command{
		Use:   "roles <username>",
		Short: "List the roles of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				user, err := findUser(ctx, s, args[0])
				if err != nil {
					return err
				}

				roles, err := s.Manager.GetRoles(ctx, user)
				if err != nil {
					return err //nolint:wrapcheck
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(roles, "\n"))

				return nil
			})
		},
	}

	userGrantCmd = &cobra.Command{
		Use:   "grant <username> <role>",
		Short: "Add a user to a role",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				user, err := findUser(ctx, s, args[0])
				if err != nil {
					return err
				}

				res, err := s.Manager.AddToRole(ctx, user, args[1])

				return report(cmd, res, err)
			})
		},
	}

	userRevokeCmd = &cobra.Command{
		Use:   "revoke <username> <role>",
		Short: "Remove a user from a role",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				user, err := findUser(ctx, s, args[0])
				if err != nil {
					return err
				}

				res, err := s.Manager.RemoveFromRole(ctx, user, args[1])

				return report(cmd, res, err)
			})
		},
	}

	userDeleteCmd = &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user and its role assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				user, err := findUser(ctx, s, args[0])
				if err != nil {
					return err
				}

				res, err := s.Manager.Delete(ctx, user)

				return report(cmd, res, err)
			})
		},
	}
)

func init() { //nolint: gochecknoinits
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "initial password")
	userCreateCmd.Flags().StringVar(&userPhone, "phone", "", "phone number")
	userCreateCmd.Flags().StringVar(&userFirstName, "first-name", "", "first name")
	userCreateCmd.Flags().StringVar(&userLastName, "last-name", "", "last name")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userPasswordCmd.Flags().StringVar(&userPassword, "password", "", "new password")
	_ = userPasswordCmd.MarkFlagRequired("password")

	userCmd.AddCommand(
		userCreateCmd,
		userListCmd,
		userPasswordCmd,
		userTokenCmd,
		userConfirmCmd,
		userRolesCmd,
		userGrantCmd,
		userRevokeCmd,
		userDeleteCmd,
	)

	rootCmd.AddCommand(userCmd)
}
