package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ttokutake/kic/dust"
	"github.com/ttokutake/kic/setting"
)

func newBurnCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "burn [indeed]",
		Short: "Delete boxes older than burn.moratorium",
		Long: `Delete every box in .kic/warehouse whose date plus burn.moratorium
is in the past. Without "indeed" the expired boxes are only listed.`,
		ValidArgs: []string{"indeed"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := parseKeywords(args, "indeed")
			if err != nil {
				return err
			}
			return runBurn(cmd, opts, words["indeed"])
		},
	}
}

func runBurn(cmd *cobra.Command, opts *globalOptions, indeed bool) error {
	layout, err := opts.layout(true)
	if err != nil {
		return err
	}
	con := opts.console(cmd)
	format, _ := opts.format()

	cfg, err := setting.LoadConfig(layout.ConfigPath())
	if err != nil {
		return err
	}
	moratorium, err := cfg.BurnMoratorium()
	if err != nil {
		return err
	}

	var echo io.Writer
	if format == FormatText {
		echo = cmd.OutOrStdout()
	}
	if !indeed {
		con.Caution("dry run, pass \"indeed\" to delete anything")
	}

	result, err := dust.Burn(dust.BurnOptions{
		Warehouse:  layout.Warehouse(),
		Moratorium: moratorium,
		Now:        opts.now(),
		Executor:   dust.ExecutorFor(indeed),
		Echo:       echo,
	})
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), format, result, func(io.Writer) error {
		verb := "Burned"
		if result.DryRun {
			verb = "Would burn"
		}
		con.Notice("%s %d of %d box(es)", verb, len(result.Burned), len(result.Boxes))
		for _, f := range result.Failures {
			con.Error("%s", f)
		}
		return nil
	})
}
