package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var logModeFlag string

	ctx := newCommandContext(&logModeFlag)

	serveCmd := newServeCommand(ctx)
	rootCmd := &cobra.Command{
		Use:           "myspot",
		Short:         "Personal places database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}

	rootCmd.PersistentFlags().StringVar(&logModeFlag, "log-mode", "", "Log mode (development, production, test); defaults to LOG_MODE")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newDupesCommand(ctx))
	rootCmd.AddCommand(newMergeCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))

	return rootCmd
}
