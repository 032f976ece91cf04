package main

import (
	"github.com/spf13/cobra"

	"github.com/go-petr/account-engine/internal/middleware"
	"github.com/go-petr/account-engine/pkg/configpkg"
	"github.com/go-petr/account-engine/pkg/dbpkg"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or revert the postgres schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{dbpkg.Up, dbpkg.Down},
		RunE: func(_ *cobra.Command, args []string) error {
			config, err := configpkg.Load(configPath)
			if err != nil {
				return err
			}

			logger := middleware.CreateLogger(config)

			if err := dbpkg.Migrate(config.DBDriver, config.DBSource, args[0]); err != nil {
				logger.Error().Err(err).Str("direction", args[0]).Msg("migration failed")
				return err
			}

			logger.Info().Str("direction", args[0]).Msg("migration applied")

			return nil
		},
	}
}
