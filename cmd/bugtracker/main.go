package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bugtracker/backend/app/db"
	"bugtracker/backend/config"
	"bugtracker/backend/global"
	"bugtracker/backend/initialize"
	"bugtracker/backend/server"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "bugtracker",
		Short:         "Session-authenticated bug tracking web application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config/config.yaml", "Path to configuration file")
	root.AddCommand(newServeCmd(&cfgPath), newMigrateCmd(&cfgPath))
	return root
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	initialize.SetupLogger(cfg.Log, os.Stdout)
	return cfg, nil
}

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web application",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := initialize.Build(ctx, cfg)
			if err != nil {
				global.Logger.Error().Err(err).Msg("startup failed")
				return err
			}
			defer func() { _ = app.Close() }()

			return server.Run(ctx, cfg.Server.Host, cfg.Server.Port, app.Router, cfg.Server.ShutdownTimeout)
		},
	}
}

func newMigrateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			gdb, err := db.Connect(cmd.Context(), initialize.DBConfig(cfg.DB))
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			if err := db.Migrate(gdb); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			global.Logger.Info().Str("driver", cfg.DB.Driver).Msg("schema up to date")
			return nil
		},
	}
}
