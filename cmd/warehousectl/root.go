package main

import (
	"fmt"
	"os"
	"time"

	"fruitwarehouse/internal/config"
	"fruitwarehouse/internal/infra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	dsnOverride string
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "warehousectl",
	Short: "Fruit warehouse operator tool",
	Long:  `Operator commands for the fruit warehouse backend: migrate the schema, seed lookup and demo data, render delivery reports.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if dsnOverride != "" {
			cfg.DatabaseURL = dsnOverride
		}
		return nil
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	rootCmd.PersistentFlags().StringVar(&dsnOverride, "database-url", "", "Postgres DSN (default is $DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd, seedCmd, reportCmd)
}

func openDB() (*gorm.DB, error) {
	db, err := infra.NewDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}
