package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
	"github.com/hnorjordet/xliff-regex-tool/pkg/profile"
)

// NewProfilesCmd creates a new profiles command
func NewProfilesCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage QA profiles",
	}

	cmd.AddCommand(newProfilesListCmd(o), newProfilesShowCmd(o))
	return cmd
}

func newProfilesListCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles in the configured profiles directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			infos, err := profile.Discover(ctx, o.Config.ProfilesDir)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				o.UserLogger.LogRunSummary(fmt.Sprintf("no profiles in %s", o.Config.ProfilesDir))
				return nil
			}

			table := pterm.TableData{{"Name", "Language", "Description", "Path"}}
			for _, info := range infos {
				table = append(table, []string{info.Name, info.Language, info.Description, info.Path})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		},
	}
}

func newProfilesShowCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROFILE",
		Short: "Show a profile's checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			prof, err := resolveProfile(ctx, o, args[0])
			if err != nil {
				return err
			}

			pterm.DefaultSection.Println(prof.Name)
			if prof.Description != "" {
				pterm.Info.Println(prof.Description)
			}

			table := pterm.TableData{{"Order", "Enabled", "Name", "Category", "Pattern", "Replacement"}}
			for _, check := range prof.Checks {
				table = append(table, []string{
					fmt.Sprintf("%d", check.Order),
					fmt.Sprintf("%t", check.Enabled),
					check.Name,
					check.Category,
					check.Pattern,
					check.Replacement,
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
		},
	}
}
