package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Gyu-bot/myspot/internal/app"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := ctx.ensure()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return ctx.withApp(sigCtx, func(a *app.App) error {
				a.Start()
				return a.Serve(sigCtx)
			})
		},
	}
}
