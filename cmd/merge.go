package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Gyu-bot/myspot/internal/app"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <keep-id> <merge-id>",
		Short: "Fold the second place into the first and delete it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keepID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid keep id %q: %w", args[0], err)
			}
			mergeID, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid merge id %q: %w", args[1], err)
			}
			return ctx.withApp(cmd.Context(), func(a *app.App) error {
				kept, err := a.Services.Dedup.MergePlaces(cmd.Context(), keepID, mergeID)
				if err != nil {
					return err
				}
				tags := make([]string, 0, len(kept.Tags))
				for _, t := range kept.Tags {
					tags = append(tags, t.Name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Merged %s into %s (%s)\n", mergeID, kept.ID, kept.CanonicalName)
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"NOTES", "SOURCES", "VISITS", "MEDIA", "TAGS"},
					[][]string{{
						fmt.Sprint(len(kept.Notes)),
						fmt.Sprint(len(kept.Sources)),
						fmt.Sprint(len(kept.Visits)),
						fmt.Sprint(len(kept.Media)),
						fmt.Sprint(tags),
					}},
					1, 2, 3, 4,
				))
				return nil
			})
		},
	}
}
