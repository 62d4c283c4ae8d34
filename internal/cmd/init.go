package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Prepare the directory for kic",
		Long: `Create .kic with its warehouse, a default config.toml and an ignore
list holding every file currently in the tree, so nothing that exists
today is treated as dust. Existing settings are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.layout(false)
			if err != nil {
				return err
			}
			con := opts.console(cmd)

			created, err := layout.Init()
			for _, path := range created {
				rel, relErr := filepath.Rel(layout.Root, path)
				if relErr != nil {
					rel = path
				}
				con.Info("created %s", rel)
			}
			if err != nil {
				return err
			}
			if len(created) == 0 {
				con.Notice("%s is already initialized", layout.Root)
				return nil
			}
			con.Notice("initialized %s", layout.Root)
			return nil
		},
	}
}
