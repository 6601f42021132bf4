package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gigup_backend/internal/config"
	"gigup_backend/internal/database"
	"gigup_backend/internal/delivery"
	"gigup_backend/internal/logger"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services"
	"gigup_backend/internal/workers"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type (
	configLoader func() (*config.Config, error)
	dbOpener     func(*config.Config) (*gorm.DB, error)
)

func newRootCmd(load configLoader, open dbOpener) *cobra.Command {
	root := &cobra.Command{
		Use:          "gigupctl",
		Short:        "Maintenance commands for the GigUp database",
		SilenceUsage: true,
	}

	// withDB загружает конфигурацию, открывает базу и закрывает ее после fn
	withDB := func(fn func(cmd *cobra.Command, cfg *config.Config, db *gorm.DB) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(cfg.Server.Env)

			db, err := open(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := database.Close(db); err != nil {
					logger.Error("Failed to close database", "error", err)
				}
			}()
			return fn(cmd, cfg, db)
		}
	}

	root.AddCommand(
		newMigrateCmd(withDB),
		newSeedAdminCmd(withDB),
		newResetCmd(withDB),
		newPurgeCodesCmd(withDB),
	)
	return root
}

type runWithDB func(fn func(cmd *cobra.Command, cfg *config.Config, db *gorm.DB) error) func(*cobra.Command, []string) error

func newMigrateCmd(withDB runWithDB) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, _ *config.Config, db *gorm.DB) error {
			if err := database.Migrate(db); err != nil {
				return err
			}
			cmd.Println("Schema is up to date")
			return nil
		}),
	}
}

func newSeedAdminCmd(withDB runWithDB) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the first administrator if it does not exist",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, cfg *config.Config, db *gorm.DB) error {
			if email == "" {
				email = cfg.FirstAdminEmail
			}
			if password == "" {
				password = cfg.FirstAdminPassword
			}
			created, err := database.SeedAdmin(db, email, password)
			if err != nil {
				return err
			}
			if created {
				cmd.Printf("Admin %s created\n", email)
			} else {
				cmd.Println("Admin already exists, nothing to do")
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (default: FIRST_ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default: FIRST_ADMIN_PASSWORD)")
	return cmd
}

func newResetCmd(withDB runWithDB) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Drop all tables, recreate the schema and seed the administrator",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, cfg *config.Config, db *gorm.DB) error {
			if !yes {
				return errors.New("refusing to drop data without --yes")
			}
			if cfg.IsProduction() {
				return errors.New("reset-db is disabled in production")
			}
			if err := database.Reset(db); err != nil {
				return err
			}
			if _, err := database.SeedAdmin(db, cfg.FirstAdminEmail, cfg.FirstAdminPassword); err != nil {
				return err
			}
			cmd.Println("Database reset")
			return nil
		}),
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm dropping all data")
	return cmd
}

func newPurgeCodesCmd(withDB runWithDB) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "purge-codes",
		Short: "Delete used or expired verification codes",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, cfg *config.Config, db *gorm.DB) error {
			if olderThan <= 0 {
				olderThan = cfg.Workers.CleanupAfter
			}
			verification := services.NewVerificationService(
				repositories.NewVerificationRepository(),
				repositories.NewUserRepository(),
				delivery.NewLogDeliverer(),
				cfg.Verification.CodeExpiry,
				cfg.Verification.ResetExpiry,
			)
			worker := workers.NewCleanupWorker(db, verification, cfg.Workers.CleanupSchedule, olderThan)

			purged, err := worker.RunOnce(context.Background())
			if err != nil {
				return err
			}
			cmd.Printf("Purged %d verification codes\n", purged)
			return nil
		}),
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "minimum age of purged codes (default: workers.cleanup_after)")
	return cmd
}
