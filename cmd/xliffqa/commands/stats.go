package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/feedback"
	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
	"github.com/hnorjordet/xliff-regex-tool/pkg/icu"
	"github.com/hnorjordet/xliff-regex-tool/pkg/xliff"
)

// statsReport is the JSON shape of the stats command output.
type statsReport struct {
	File  string      `json:"file"`
	Stats xliff.Stats `json:"stats"`
	ICU   []icuIssue  `json:"icu_issues,omitempty"`
}

type icuIssue struct {
	UnitID      string   `json:"tu_id"`
	Errors      []string `json:"errors"`
	Suggestions string   `json:"suggestions,omitempty"`
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(o *opts.RootOpts) *cobra.Command {
	var jsonOut string

	cmd := &cobra.Command{
		Use:   "stats XLIFF_FILE",
		Short: "Show document statistics and ICU MessageFormat issues",
		Long: `Stats summarizes a document (total, translated and untranslated
units) and validates ICU MessageFormat structure in every unit that
carries ICU syntax, reporting segments where the structure did not
survive translation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := xliff.Open(ctx, args[0])
			if err != nil {
				return err
			}
			units, err := store.List(ctx)
			if err != nil {
				return err
			}

			report := statsReport{File: args[0], Stats: xliff.Summarize(units)}
			for _, u := range units {
				if !icu.HasSyntax(u.Source) && !icu.HasSyntax(u.Target) {
					continue
				}
				errs := icu.ValidateSegment(u.Source, u.Target)
				if len(errs) == 0 {
					continue
				}
				report.ICU = append(report.ICU, icuIssue{
					UnitID:      u.ID,
					Errors:      errs,
					Suggestions: icu.Suggestions(u.Source, u.Target),
				})
				o.UserLogger.LogCheckResult(feedback.CheckResult{
					Type:        feedback.RunError,
					Check:       "icu",
					UnitID:      u.ID,
					Description: fmt.Sprintf("%d issue(s)", len(errs)),
				})
			}

			o.UserLogger.LogRunSummary(fmt.Sprintf(
				"%d units: %d translated, %d untranslated",
				report.Stats.TotalUnits, report.Stats.Translated, report.Stats.Untranslated))

			return writeJSON(report, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&jsonOut, "json", "j", "-", "write the JSON report to a file instead of stdout")

	return cmd
}
