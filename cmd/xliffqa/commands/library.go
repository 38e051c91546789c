package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
	"github.com/hnorjordet/xliff-regex-tool/pkg/library"
)

// NewLibraryCmd creates a new library command
func NewLibraryCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the snippet library",
	}

	cmd.AddCommand(
		newLibraryListCmd(o),
		newLibraryImportCmd(o),
		newLibraryExportCmd(o),
	)
	return cmd
}

func newLibraryListCmd(o *opts.RootOpts) *cobra.Command {
	var categoryFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snippet entries by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			lib, err := library.NewStore(o.Config.LibraryPath).Load(ctx)
			if err != nil {
				return err
			}

			table := pterm.TableData{{"Category", "Name", "Pattern", "Replace"}}
			for _, cat := range lib.Categories {
				if categoryFilter != "" && !strings.EqualFold(cat.Name, categoryFilter) {
					continue
				}
				for _, entry := range cat.Entries {
					table = append(table, []string{cat.Name, entry.Name, entry.Pattern, entry.Replace})
				}
			}
			if len(table) == 1 {
				o.UserLogger.LogRunSummary("library is empty")
				return nil
			}
			return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		},
	}

	cmd.Flags().StringVar(&categoryFilter, "category", "", "only show entries in this category")

	return cmd
}

func newLibraryImportCmd(o *opts.RootOpts) *cobra.Command {
	var fromXbench bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import snippet entries from a library or Xbench checklist file",
		Long: `Import merges entries from another library document into the
configured library. With --xbench (or an .xbckl file) the input is parsed
as an Xbench checklist and its regex items become snippet entries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var imported *library.Library
			var err error
			if fromXbench || library.IsChecklistPath(args[0]) {
				imported, err = library.ImportXbench(ctx, args[0])
			} else {
				imported, err = library.Import(ctx, args[0])
			}
			if err != nil {
				return err
			}

			store := library.NewStore(o.Config.LibraryPath)
			lib, err := store.Load(ctx)
			if err != nil {
				return err
			}

			added := 0
			for _, cat := range imported.Categories {
				for _, entry := range cat.Entries {
					lib.Add(cat.Name, entry)
					added++
				}
			}
			if err := store.Save(ctx, lib); err != nil {
				return errors.Errorf("saving library: %w", err)
			}

			o.UserLogger.LogValidation(true, fmt.Sprintf("imported %d entr(ies) from %s", added, args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromXbench, "xbench", false, "treat the input as an Xbench checklist")

	return cmd
}

func newLibraryExportCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export the library to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			lib, err := library.NewStore(o.Config.LibraryPath).Load(ctx)
			if err != nil {
				return err
			}
			if err := library.Export(ctx, lib, args[0]); err != nil {
				return err
			}

			o.UserLogger.LogValidation(true, fmt.Sprintf("exported %d entr(ies) to %s", lib.Len(), args[0]))
			return nil
		},
	}
}
