package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ttokutake/kic/setting"
)

func newStartCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Schedule sweep and burn with cron",
		Long: `Register this directory in your crontab. Sweep and burn run at
sweep.time, every day or on Sundays depending on sweep.period, and an
hourly "kic patrol" forgets directories that were removed.
Running start again applies a changed schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.layout(true)
			if err != nil {
				return err
			}
			cfg, err := setting.LoadConfig(layout.ConfigPath())
			if err != nil {
				return err
			}
			sched, err := cfg.SweepSchedule()
			if err != nil {
				return err
			}
			bin, err := opts.binary()
			if err != nil {
				return err
			}

			tab, err := setting.LoadCrontab(cmd.Context(), opts.crontab)
			if err != nil {
				return err
			}
			if err := tab.Register(layout.Root, bin, sched); err != nil {
				return err
			}
			if err := tab.Save(cmd.Context(), opts.crontab); err != nil {
				return err
			}

			spec, _ := tab.SpecFor(layout.Root)
			con := opts.console(cmd)
			con.Notice("scheduled %s with %q", layout.Root, spec)
			if next, err := setting.NextRun(spec, opts.now()); err == nil {
				con.Info("next run at %s", next.Format(time.DateTime))
			}
			return nil
		},
	}
}

func newEndCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "Remove this directory from cron",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.layout(true)
			if err != nil {
				return err
			}
			con := opts.console(cmd)
			tab, err := setting.LoadCrontab(cmd.Context(), opts.crontab)
			if err != nil {
				return err
			}
			if !tab.Unregister(layout.Root) {
				con.Notice("%s was not scheduled", layout.Root)
				return nil
			}
			if err := tab.Save(cmd.Context(), opts.crontab); err != nil {
				return err
			}
			con.Notice("unscheduled %s", layout.Root)
			return nil
		},
	}
}

func newPatrolCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "patrol",
		Short: "Forget scheduled directories that no longer use kic",
		Long: `Remove the crontab lines of every registered directory that no longer
holds an initialized .kic. Cron runs this hourly; it does not depend on the
current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			con := opts.console(cmd)
			tab, err := setting.LoadCrontab(cmd.Context(), opts.crontab)
			if err != nil {
				return err
			}
			stale := tab.Patrol(func(dir string) bool {
				return setting.Layout{Root: dir}.Initialized()
			})
			if len(stale) == 0 {
				return nil
			}
			if err := tab.Save(cmd.Context(), opts.crontab); err != nil {
				return err
			}
			for _, dir := range stale {
				con.Info("unscheduled %s", dir)
			}
			return nil
		},
	}
}
