package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/commands"
	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/feedback"
	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
)

func main() {
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	// Shared options. The config itself is loaded in the persistent
	// pre-run, after cobra has parsed the --config flag.
	o := &opts.RootOpts{
		UserLogger: feedback.NewUserLogger(ctx),
	}

	rootCmd := &cobra.Command{
		Use:   "xliffqa",
		Short: "Rule-driven QA and find/replace for XLIFF translation files",
		Long: `xliffqa runs regex-based QA checks over XLIFF translation files.
Checks are grouped into reusable profiles; matches can be reported or
replaced in batch, with backups taken before any in-place change.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initRootOpts(cmd.Context(), o)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewFindCmd(o),
		commands.NewReplaceCmd(o),
		commands.NewApplyEditsCmd(o),
		commands.NewStatsCmd(o),
		commands.NewProfilesCmd(o),
		commands.NewLibraryCmd(o),
		commands.NewBackupCmd(o),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		o.UserLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
