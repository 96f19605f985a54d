package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gyu-bot/myspot/internal/data/db"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, cfg, err := ctx.ensure()
			if err != nil {
				return err
			}
			dbService, err := db.NewService(cfg.DBConfig(), log)
			if err != nil {
				return err
			}
			defer dbService.Close()
			if err := db.AutoMigrateAll(dbService.DB()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%s)\n", cfg.DBDriver)
			return nil
		},
	}
}
