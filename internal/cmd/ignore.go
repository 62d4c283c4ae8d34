package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ttokutake/kic/dust"
	"github.com/ttokutake/kic/setting"
)

func newIgnoreCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore",
		Short: "Edit the list of files sweep leaves alone",
		Long: `Edit .kic/ignore, the list of files sweep leaves in place.
Paths are relative to the working directory. Without a subcommand the
list is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editIgnore(cmd, opts, func(setting.Layout, *setting.Ignore) (bool, error) {
				return false, nil
			})
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add PATH...",
			Short: "Ignore existing files",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editIgnore(cmd, opts, func(l setting.Layout, ig *setting.Ignore) (bool, error) {
					for _, p := range ig.Add(l.Root, args...) {
						opts.console(cmd).Warning("%s is not a file in %s, skipped", p, l.Root)
					}
					return true, nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove PATH...",
			Short: "Stop ignoring files",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editIgnore(cmd, opts, func(l setting.Layout, ig *setting.Ignore) (bool, error) {
					for _, p := range ig.Remove(l.Root, args...) {
						opts.console(cmd).Warning("%s was not ignored", p)
					}
					return true, nil
				})
			},
		},
		&cobra.Command{
			Use:   "current",
			Short: "Replace the list with every file in the tree now",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return editIgnore(cmd, opts, func(l setting.Layout, ig *setting.Ignore) (bool, error) {
					files, err := dust.Walk(l.Root)
					if err != nil {
						return false, err
					}
					ig.Replace(files)
					return true, nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return editIgnore(cmd, opts, func(_ setting.Layout, ig *setting.Ignore) (bool, error) {
					ig.Clear()
					return true, nil
				})
			},
		},
	)
	return cmd
}

// editIgnore loads the ignore list, applies edit, saves it when edit reports
// a change and prints the resulting list.
func editIgnore(cmd *cobra.Command, opts *globalOptions, edit func(setting.Layout, *setting.Ignore) (bool, error)) error {
	layout, err := opts.layout(true)
	if err != nil {
		return err
	}
	ig, err := setting.ReadIgnore(layout.IgnorePath())
	if err != nil {
		return err
	}
	changed, err := edit(layout, ig)
	if err != nil {
		return err
	}
	if changed {
		if err := ig.Save(layout.IgnorePath()); err != nil {
			return err
		}
		opts.console(cmd).Notice("%d file(s) ignored", ig.Len())
		return nil
	}
	for _, p := range ig.Entries() {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
