package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Gyu-bot/myspot/internal/app"
	"github.com/Gyu-bot/myspot/internal/modules/dedup"
	"github.com/Gyu-bot/myspot/internal/pkg/pointers"
	"github.com/Gyu-bot/myspot/internal/services"
)

func newDupesCommand(ctx *commandContext) *cobra.Command {
	var (
		name  string
		phone string
		lat   float64
		lng   float64
	)
	cmd := &cobra.Command{
		Use:   "dupes [place-id]",
		Short: "List duplicate candidates for a stored place or an ad-hoc query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasCoords := cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng")
			if len(args) == 0 && strings.TrimSpace(name) == "" && strings.TrimSpace(phone) == "" && !hasCoords {
				return fmt.Errorf("either a place id or one of --name, --phone, --lat/--lng is required")
			}
			return ctx.withApp(cmd.Context(), func(a *app.App) error {
				var (
					candidates []dedup.Candidate
					err        error
				)
				if len(args) == 1 {
					id, perr := uuid.Parse(args[0])
					if perr != nil {
						return fmt.Errorf("invalid place id %q: %w", args[0], perr)
					}
					candidates, err = a.Services.Dedup.FindDuplicatesOf(cmd.Context(), id)
				} else {
					q := services.DuplicateQuery{Name: name}
					if hasCoords {
						q.Lat, q.Lng = pointers.Float64(lat), pointers.Float64(lng)
					}
					if phone != "" {
						q.Phone = pointers.String(phone)
					}
					candidates, err = a.Services.Dedup.FindDuplicates(cmd.Context(), q)
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(candidates) == 0 {
					fmt.Fprintln(out, "No duplicate candidates.")
					return nil
				}
				fmt.Fprintln(out, renderTable(candidateHeaders, candidateRows(candidates), 3))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Place name to check")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number to check")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	return cmd
}
