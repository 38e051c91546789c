package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
	"github.com/hnorjordet/xliff-regex-tool/pkg/backup"
)

// NewBackupCmd creates a new backup command
func NewBackupCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage document backups",
	}

	cmd.AddCommand(
		newBackupListCmd(o),
		newBackupRestoreCmd(o),
		newBackupCleanupCmd(o),
	)
	return cmd
}

func newBackupListCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mgr := backup.New(o.Config.BackupDir, o.Config.BackupKeep)
			entries, err := mgr.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				o.UserLogger.LogRunSummary(fmt.Sprintf("no backups in %s", o.Config.BackupDir))
				return nil
			}

			table := pterm.TableData{{"Created", "Original", "Path"}}
			for _, entry := range entries {
				table = append(table, []string{
					entry.Created.Format("2006-01-02 15:04:05"),
					entry.Original,
					entry.Path,
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		},
	}
}

func newBackupRestoreCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "restore BACKUP DESTINATION",
		Short: "Restore a backup over a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mgr := backup.New(o.Config.BackupDir, o.Config.BackupKeep)
			if err := mgr.Restore(ctx, args[0], args[1]); err != nil {
				return err
			}

			o.UserLogger.LogValidation(true, fmt.Sprintf("restored %s to %s", args[0], args[1]))
			return nil
		},
	}
}

func newBackupCleanupCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove old backups beyond the configured retention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mgr := backup.New(o.Config.BackupDir, o.Config.BackupKeep)
			removed, err := mgr.Cleanup(ctx)
			if err != nil {
				return err
			}

			o.UserLogger.LogValidation(true, fmt.Sprintf("removed %d old backup(s)", removed))
			return nil
		},
	}
}
