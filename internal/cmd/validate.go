package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

// newValidateCmd creates the validate subcommand.
// It reports what sweep and burn would silently skip.
func newValidateCmd(opts *globalOptions) *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the settings and the warehouse for inconsistencies",
		Long: `Check config.toml values, ignore entries whose file no longer exists,
warehouse entries that are not boxes, and boxes missing their dusts
directory. With --repair, stale ignore entries are dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.layout(true)
			if err != nil {
				return err
			}
			con := opts.console(cmd)
			format, _ := opts.format()

			issues, err := layout.Validate(repair)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), format, issues, func(io.Writer) error {
				for _, issue := range issues {
					con.Warning("%s", issue)
				}
				if len(issues) == 0 {
					con.Notice("%s looks good", layout.Root)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&repair, "repair", "r", false, "Drop ignore entries whose file is gone")

	return cmd
}
