package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/N2Core/N2Identity/internal/authn"
	"github.com/N2Core/N2Identity/internal/bootstrap"
)

// ErrLoginRejected is returned when the credentials are not accepted.
var ErrLoginRejected = errors.New("login rejected")

var (
	loginUser     string
	loginPassword string
	loginValidity int

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a signed web token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, func(ctx context.Context, s *bootstrap.Services) error {
				uc, err := s.Authenticator.Authenticate(ctx, authn.Login{UserName: loginUser, Password: loginPassword})
				if err != nil {
					return err //nolint:wrapcheck
				}

				if uc == nil {
					return ErrLoginRejected
				}

				jwt, err := s.Issuer.Issue(uc, loginValidity)
				if err != nil {
					return err //nolint:wrapcheck
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), jwt)

				return nil
			})
		},
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Work with signed web tokens",
	}

	tokenInspectCmd = &cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a web token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(_ context.Context, s *bootstrap.Services) error {
				claims, err := s.Issuer.Parse(args[0])
				if err != nil {
					return err //nolint:wrapcheck
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(claims) //nolint:wrapcheck
			})
		},
	}
)

func init() { //nolint: gochecknoinits
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "user name")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
	loginCmd.Flags().IntVar(&loginValidity, "validity", 0, "token lifetime in minutes, 0 uses the configured default")
	_ = loginCmd.MarkFlagRequired("user")

	tokenCmd.AddCommand(tokenInspectCmd)

	rootCmd.AddCommand(loginCmd, tokenCmd)
}
