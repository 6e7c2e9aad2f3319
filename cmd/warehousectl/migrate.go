package main

import (
	"context"
	"time"

	"fruitwarehouse/internal/infra"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables, constraints and lookup rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if err := infra.RunMigrations(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("schema up to date")
		return nil
	},
}
