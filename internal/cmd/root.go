package cmd

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ttokutake/kic/internal/log"
	"github.com/ttokutake/kic/setting"
	"github.com/ttokutake/kic/version"
)

const (
	groupHousekeeping = "housekeeping"
	groupScheduling   = "scheduling"
	groupSetup        = "setup"
)

// globalOptions carries the persistent flags and the collaborators that
// tests replace.
type globalOptions struct {
	dir      string
	logLevel string
	output   string

	now     func() time.Time
	crontab setting.CrontabRunner
	stdin   io.Reader
	binary  func() (string, error)
}

func defaultOptions() *globalOptions {
	return &globalOptions{
		now:     time.Now,
		crontab: setting.SystemCrontab{},
		stdin:   os.Stdin,
		binary:  os.Executable,
	}
}

// format returns the validated --output value.
func (o *globalOptions) format() (OutputFormat, error) {
	return parseOutputFormat(o.output)
}

// console builds the progress printer for cmd.
func (o *globalOptions) console(cmd *cobra.Command) console {
	format, err := o.format()
	if err != nil {
		format = FormatText
	}
	return newConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)
}

// layout resolves --dir, refuses system directories and, when initialized
// is set, requires kic init to have run there.
func (o *globalOptions) layout(initialized bool) (setting.Layout, error) {
	if err := setting.CheckRunningPlace(o.dir); err != nil {
		return setting.Layout{}, err
	}
	layout, err := setting.NewLayout(o.dir)
	if err != nil {
		return setting.Layout{}, err
	}
	if initialized {
		if err := layout.Check(); err != nil {
			return setting.Layout{}, err
		}
	}
	return layout, nil
}

// NewRootCmd creates and returns the root cobra command for the kic CLI.
// It sets up all subcommands, command groups, and the persistent flags.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultOptions())
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kic",
		Short: "kic - keep a working directory clean",
		Long: `kic keeps a working directory clean.

Files that are not on the ignore list ("dust") are moved out of the tree
into a dated box under .kic/warehouse, keeping their relative paths, and
boxes older than a moratorium are deleted for good.

Use subcommands to perform different operations:
  - init: Prepare the current directory for kic
  - sweep: Move dust into today's box
  - burn: Delete expired boxes
  - start / end: Schedule sweeps and burns with cron
  - status: Show the warehouse and the schedule`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Setup(opts.logLevel, cmd.ErrOrStderr())
			_, err := opts.format()
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "C", ".", "Directory to operate in")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	flags.StringVarP(&opts.output, "output", "o", string(FormatText), "Report format (text, json, yaml)")

	rootCmd.AddGroup(&cobra.Group{ID: groupHousekeeping, Title: "Housekeeping"})
	rootCmd.AddGroup(&cobra.Group{ID: groupScheduling, Title: "Scheduling"})
	rootCmd.AddGroup(&cobra.Group{ID: groupSetup, Title: "Setup"})

	for _, c := range []*cobra.Command{
		newSweepCmd(opts),
		newBurnCmd(opts),
		newStatusCmd(opts),
	} {
		c.GroupID = groupHousekeeping
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		newStartCmd(opts),
		newEndCmd(opts),
		newPatrolCmd(opts),
	} {
		c.GroupID = groupScheduling
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{
		newInitCmd(opts),
		newConfigCmd(opts),
		newIgnoreCmd(opts),
		newValidateCmd(opts),
		newDestroyCmd(opts),
	} {
		c.GroupID = groupSetup
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(newVersionCmd(opts))

	return rootCmd
}
