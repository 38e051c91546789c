package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
	"github.com/hnorjordet/xliff-regex-tool/pkg/engine"
	"github.com/hnorjordet/xliff-regex-tool/pkg/log"
	"github.com/hnorjordet/xliff-regex-tool/pkg/xliff"
)

// NewFindCmd creates a new find command
func NewFindCmd(o *opts.RootOpts) *cobra.Command {
	var jsonOut string

	cmd := &cobra.Command{
		Use:   "find PROFILE XLIFF_FILE",
		Short: "Run a profile's checks and report every match",
		Long: `Find runs every enabled check of a QA profile against the target
text of each translation unit and reports the matches without changing
anything. The profile may be given as a file path or as a profile name
from the configured profiles directory.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			prof, err := resolveProfile(ctx, o, args[0])
			if err != nil {
				return err
			}

			store, err := xliff.Open(ctx, args[1])
			if err != nil {
				return err
			}
			units, err := store.List(ctx)
			if err != nil {
				return err
			}

			eng := engine.New(engine.WithWorkers(o.Config.Workers))
			result, err := eng.Find(ctx, prof, args[1], units)
			if err != nil {
				return errors.Errorf("running checks: %w", err)
			}

			console := log.New(os.Stderr, zerolog.InfoLevel)
			console.StartRunOperation(ctx, log.RunOperation{
				Profile: prof.Name,
				File:    args[1],
				Units:   len(units),
			})

			skipped := map[string]string{}
			for _, diag := range result.Diagnostics {
				skipped[diag.CheckName] = diag.Message
			}
			perCheck := map[string]int{}
			for _, m := range result.Matches {
				perCheck[m.CheckName]++
			}
			for _, check := range prof.EnabledChecks() {
				op := log.CheckOperation{
					Name:     check.Name,
					Category: check.Category,
					Matches:  perCheck[check.Name],
				}
				if msg, ok := skipped[check.Name]; ok {
					op.Skipped = true
					op.Message = msg
				}
				console.LogCheckOperation(ctx, op)
			}
			console.EndRunOperation(ctx)

			o.UserLogger.LogRunSummary(fmt.Sprintf("%d matches in %d units", result.TotalMatches, len(units)))

			return writeJSON(result, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&jsonOut, "json", "j", "-", "write the JSON report to a file instead of stdout")

	return cmd
}
