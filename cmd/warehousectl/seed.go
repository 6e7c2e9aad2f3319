package main

import (
	"context"
	"time"

	"fruitwarehouse/internal/infra"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var seedDemo bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert lookup rows, optionally with demo suppliers, products and prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		if err := infra.SeedLookups(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("lookup rows seeded")

		if !seedDemo {
			return nil
		}
		return infra.SeedDemo(ctx, db)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "also insert demo suppliers, products and prices")
}

