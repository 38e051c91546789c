package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
	"github.com/hnorjordet/xliff-regex-tool/pkg/backup"
	"github.com/hnorjordet/xliff-regex-tool/pkg/engine"
	"github.com/hnorjordet/xliff-regex-tool/pkg/xliff"
)

// NewApplyEditsCmd creates a new apply-edits command
func NewApplyEditsCmd(o *opts.RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "apply-edits XLIFF_FILE EDITS_JSON",
		Short: "Apply reviewed target edits from a JSON file",
		Long: `Apply-edits reads a JSON array of {"id": ..., "target": ...} objects
and sets each unit's target verbatim. Without --output the input file is
overwritten after a backup has been taken. Edits naming unknown unit ids
are reported; the rest are still applied.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[1])
			if err != nil {
				return errors.Errorf("reading edits file: %w", err)
			}
			var edits []engine.Edit
			if err := json.Unmarshal(data, &edits); err != nil {
				return errors.Errorf("parsing edits file: %w", err)
			}

			store, err := xliff.Open(ctx, args[0])
			if err != nil {
				return err
			}
			units, err := store.List(ctx)
			if err != nil {
				return err
			}

			edited, modified, err := engine.ApplyEdits(ctx, units, edits)
			var unknown *engine.UnknownUnitsError
			if errors.As(err, &unknown) {
				o.UserLogger.LogValidation(false, fmt.Sprintf(
					"%d edit(s) named unknown unit ids: %v", len(unknown.IDs), unknown.IDs), nil)
			} else if err != nil {
				return err
			}

			if output == "" {
				mgr := backup.New(o.Config.BackupDir, o.Config.BackupKeep)
				backupPath, err := mgr.Create(ctx, args[0])
				if err != nil {
					return errors.Errorf("creating backup: %w", err)
				}
				o.UserLogger.LogRunSummary(fmt.Sprintf("backup created: %s", backupPath))
				output = args[0]
			}

			path, err := store.PersistTo(ctx, edited, output)
			if err != nil {
				return err
			}

			o.UserLogger.LogValidation(true, fmt.Sprintf("applied %d edit(s) to %s", modified, path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: overwrite input after backup)")

	return cmd
}
