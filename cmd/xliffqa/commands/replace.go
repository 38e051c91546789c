package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/feedback"
	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
	"github.com/hnorjordet/xliff-regex-tool/pkg/backup"
	"github.com/hnorjordet/xliff-regex-tool/pkg/engine"
	"github.com/hnorjordet/xliff-regex-tool/pkg/xliff"
)

// NewReplaceCmd creates a new replace command
func NewReplaceCmd(o *opts.RootOpts) *cobra.Command {
	var (
		output   string
		inPlace  bool
		showDiff bool
		jsonOut  string
	)

	cmd := &cobra.Command{
		Use:   "replace PROFILE XLIFF_FILE",
		Short: "Run a profile's checks and apply their replacements",
		Long: `Replace runs every enabled check of a QA profile against the target
text of each translation unit and applies the replacements, each check
seeing the previous check's output. The result is written to --output,
or back over the input with --in-place after a backup has been taken.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if inPlace && output != "" {
				return errors.New("--in-place and --output are mutually exclusive")
			}
			if !inPlace && output == "" {
				return errors.New("either --output or --in-place is required")
			}

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
			edited, result, err := eng.Replace(ctx, prof, units)
			if err != nil {
				return errors.Errorf("running replacements: %w", err)
			}

			for _, diag := range result.Diagnostics {
				o.UserLogger.LogCheckResult(feedback.CheckResult{
					Type:        feedback.CheckSkipped,
					Check:       diag.CheckName,
					Description: diag.Message,
				})
			}

			if showDiff {
				printUnitDiffs(units, edited)
			}

			if inPlace {
				mgr := backup.New(o.Config.BackupDir, o.Config.BackupKeep)
				backupPath, err := mgr.Create(ctx, args[1])
				if err != nil {
					return errors.Errorf("creating backup: %w", err)
				}
				o.UserLogger.LogRunSummary(fmt.Sprintf("backup created: %s", backupPath))
				output = args[1]
			}

			result.OutputPath, err = store.PersistTo(ctx, edited, output)
			if err != nil {
				return err
			}

			o.UserLogger.LogValidation(true, fmt.Sprintf(
				"%d replacements in %d units, written to %s",
				result.TotalReplacements, result.ModifiedUnits, result.OutputPath))

			return writeJSON(result, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "overwrite the input file (a backup is taken first)")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "show a colored diff of every changed unit")
	cmd.Flags().StringVarP(&jsonOut, "json", "j", "-", "write the JSON report to a file instead of stdout")

	return cmd
}

// printUnitDiffs renders a character diff for every unit whose target
// changed.
func printUnitDiffs(before, after []xliff.TransUnit) {
	dmp := diffmatchpatch.New()
	for i := range before {
		if before[i].Target == after[i].Target {
			continue
		}
		diffs := dmp.DiffMain(before[i].Target, after[i].Target, false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(before[i].ID), dmp.DiffPrettyText(diffs))
	}
}
