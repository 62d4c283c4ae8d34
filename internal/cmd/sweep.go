package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ttokutake/kic/dust"
	"github.com/ttokutake/kic/setting"
)

// newSweepCmd creates the sweep subcommand.
func newSweepCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep [all] [indeed]",
		Short: "Move dust into today's box",
		Long: `Move every file that is not on the ignore list into today's box
under .kic/warehouse, then move the directories left empty.

Files accessed within sweep.moratorium are left alone unless "all" is given.
Without "indeed" nothing is changed and the planned moves are printed.`,
		ValidArgs: []string{"all", "indeed"},
		Args:      cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := parseKeywords(args, "all", "indeed")
			if err != nil {
				return err
			}
			return runSweep(cmd, opts, words["all"], words["indeed"])
		},
	}
}

func runSweep(cmd *cobra.Command, opts *globalOptions, all, indeed bool) error {
	layout, err := opts.layout(true)
	if err != nil {
		return err
	}
	con := opts.console(cmd)
	format, _ := opts.format()
	now := opts.now()

	cfg, err := setting.LoadConfig(layout.ConfigPath())
	if err != nil {
		return err
	}
	ig, err := setting.ReadIgnore(layout.IgnorePath())
	if err != nil {
		return err
	}
	ignore := ig.Files()

	if !all {
		moratorium, err := cfg.SweepMoratorium()
		if err != nil {
			return err
		}
		if moratorium > 0 {
			walked, err := dust.Walk(layout.Root)
			if err != nil {
				return err
			}
			recent := dust.RecentlyAccessed(layout.Root, dust.Exclude(walked, ignore), now.Add(-moratorium))
			if recent.Len() > 0 {
				con.Info("keeping %d recently used file(s), pass \"all\" to sweep them too", recent.Len())
			}
			ignore = ignore.Union(recent)
		}
	}

	var echo io.Writer
	if format == FormatText {
		echo = cmd.OutOrStdout()
	}
	if !indeed {
		con.Caution("dry run, pass \"indeed\" to move anything")
	}

	result, err := dust.Sweep(dust.SweepOptions{
		Root:      layout.Root,
		Warehouse: layout.Warehouse(),
		Ignore:    ignore,
		Now:       now,
		Executor:  dust.ExecutorFor(indeed),
		Echo:      echo,
	})
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), format, result, func(w io.Writer) error {
		verb := "Moved"
		if result.DryRun {
			verb = "Would move"
		}
		con.Notice("%s %d file(s) and %d dir(s) into %s",
			verb, len(result.MovedFiles), len(result.MovedDirs), boxStyle(result.Box.Name).Render(result.Box.Name))
		for _, f := range result.Failures {
			con.Error("%s", f)
		}
		if len(result.Failures) > 0 {
			fmt.Fprintln(w, dimStyle.Render("see "+result.Box.LogPath(dust.SweepLogName)))
		}
		return nil
	})
}
