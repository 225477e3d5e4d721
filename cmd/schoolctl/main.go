// Command schoolctl runs operator tasks against the school database:
// schema migrations, demo data, and development session tokens.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polinatih/school-proj/config"
	"github.com/polinatih/school-proj/internal/seed"
	"github.com/polinatih/school-proj/pkg/database"
	"github.com/polinatih/school-proj/pkg/jwt"
	applogger "github.com/polinatih/school-proj/pkg/logger"
)

type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "schoolctl",
		Short:         "Operator tasks for the school API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := applogger.NewLogger(&cfg.Log)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("SCHOOL_CONFIG"), "path to the config file")

	root.AddCommand(a.newMigrateCmd(), a.newSeedCmd(), a.newTokenCmd())
	return root
}

// ── migrate ──

func (a *app) newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(func(db *gorm.DB) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return database.RunMigrations(sqlDB, a.logger)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [n]",
		Short: "Roll back the last n migrations (all when n is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("n must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			return a.withDB(func(db *gorm.DB) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return database.RollbackMigrations(sqlDB, steps, a.logger)
			})
		},
	})

	return cmd
}

// ── seed ──

func (a *app) newSeedCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo grades, staff, classes and families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(func(db *gorm.DB) error {
				if migrateFirst {
					sqlDB, err := db.DB()
					if err != nil {
						return err
					}
					if err := database.RunMigrations(sqlDB, a.logger); err != nil {
						return err
					}
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
				defer cancel()
				if err := seed.Run(ctx, db, a.logger); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seed complete (admin: %s / %s)\n", seed.AdminUsername, seed.AdminPassword)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before seeding")
	return cmd
}

// ── token ──

func (a *app) newTokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a session token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := jwt.NewManager(&a.cfg.Auth)
			var (
				token string
				err   error
			)
			if ttl > 0 {
				token, err = mgr.GenerateSessionTokenTTL(userID, ttl)
			} else {
				token, err = mgr.GenerateSessionToken(userID)
			}
			if err != nil {
				return fmt.Errorf("mint token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "principal id to put in the token subject (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to auth.session_ttl)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// withDB opens the database for one command and closes it afterwards.
func (a *app) withDB(fn func(db *gorm.DB) error) error {
	db, err := database.NewDB(&a.cfg.Database, a.cfg.Log.Level, a.logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return fn(db)
}
