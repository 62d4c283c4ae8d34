package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ttokutake/kic/version"
)

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := opts.format()
			return writeReport(cmd.OutOrStdout(), format, version.GetInfo(), func(w io.Writer) error {
				version.PrintVersion(w, "kic")
				return nil
			})
		},
	}
}
