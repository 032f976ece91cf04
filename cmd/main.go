// Package main provides the accounts CLI: the HTTP API server and schema migrations.
package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-petr/account-engine/cmd/httpserver"
	"github.com/go-petr/account-engine/internal/middleware"
	"github.com/go-petr/account-engine/pkg/configpkg"
	"github.com/go-petr/account-engine/pkg/dbpkg"

	_ "github.com/lib/pq"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account engine API",
		RunE:  runServe,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./configs", "directory holding app.env")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	})
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	config, err := configpkg.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	if config.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	if config.MigrateOnStart && config.StoreDriver == configpkg.StorePostgres {
		if err := dbpkg.Migrate(config.DBDriver, config.DBSource, dbpkg.Up); err != nil {
			logger.Fatal().Err(err).Msg("cannot migrate database")
		}
	}

	server, err := httpserver.Open(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}
	defer server.Close()

	logger.Info().Str("store", config.StoreDriver).Msg("ACCOUNT ENGINE SERVER HAS STARTED")

	return server.Engine.Run(config.ServerAddress)
}
