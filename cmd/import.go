package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Gyu-bot/myspot/internal/app"
	"github.com/Gyu-bot/myspot/internal/modules/dedup"
	"github.com/Gyu-bot/myspot/internal/services"
)

type importFile struct {
	Places []services.PlaceInput `yaml:"places"`
}

func parseImportFile(r io.Reader) ([]services.PlaceInput, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f importFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("import file is empty")
		}
		return nil, fmt.Errorf("parse import file: %w", err)
	}
	if len(f.Places) == 0 {
		return nil, fmt.Errorf("import file has no places")
	}
	return f.Places, nil
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun          bool
		skipDuplicates  bool
		continueOnError bool
	)
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Create places from a YAML file, reporting duplicate candidates per row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer fh.Close()
			inputs, err := parseImportFile(fh)
			if err != nil {
				return err
			}

			return ctx.withApp(cmd.Context(), func(a *app.App) error {
				rows := make([][]string, 0, len(inputs))
				var created, skipped, failed int
				for i, in := range inputs {
					row := []string{strconv.Itoa(i + 1), in.CanonicalName}

					var (
						id         string
						candidates []dedup.Candidate
						err        error
					)
					if dryRun || skipDuplicates {
						candidates, err = a.Services.Dedup.FindDuplicates(cmd.Context(), services.DuplicateQuery{
							Name: in.CanonicalName, Lat: in.Lat, Lng: in.Lng, Phone: in.Phone,
						})
					}
					switch {
					case err != nil:
					case dryRun:
						id = "-"
					case skipDuplicates && len(candidates) > 0:
						id = "skipped"
						skipped++
					default:
						place, cands, cerr := a.Services.Place.Create(cmd.Context(), in)
						err = cerr
						if cerr == nil {
							id = place.ID.String()
							candidates = cands
							created++
						}
					}
					if err != nil {
						failed++
						if !continueOnError {
							return fmt.Errorf("row %d (%s): %w", i+1, in.CanonicalName, err)
						}
						rows = append(rows, append(row, "error", err.Error()))
						continue
					}
					rows = append(rows, append(row, id, summarizeCandidates(candidates)))
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]string{"#", "NAME", "ID", "DUPLICATES"}, rows, 1))
				fmt.Fprintf(out, "created=%d skipped=%d failed=%d\n", created, skipped, failed)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only report duplicate candidates; create nothing")
	cmd.Flags().BoolVar(&skipDuplicates, "skip-duplicates", false, "Do not create rows that already have candidates")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep going after a row fails")
	return cmd
}

func summarizeCandidates(candidates []dedup.Candidate) string {
	if len(candidates) == 0 {
		return "none"
	}
	best := candidates[0]
	if len(candidates) == 1 {
		return fmt.Sprintf("%s (%.2f)", best.CanonicalName, best.Score)
	}
	return fmt.Sprintf("%s (%.2f) +%d more", best.CanonicalName, best.Score, len(candidates)-1)
}
