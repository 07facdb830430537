// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/N2Core/N2Identity/internal/config"
	"github.com/N2Core/N2Identity/internal/logger"
)

var (
	configPath string // Path to the directory holding main.toml

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "n2identity",
		Short: "N2Identity manages users, roles and sign in tokens",
		Long: `N2Identity is the identity directory of the N2 platform.
It stores users and roles, verifies credentials and issues signed web tokens.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err //nolint:wrapcheck
			}

			return logger.Init(cfg.Log) //nolint:wrapcheck
		},
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute() //nolint:wrapcheck
}
