package cmd

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ttokutake/kic/setting"
)

func newDestroyCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete .kic with every box and unschedule the directory",
		Long: `Delete .kic, including the warehouse and every file swept into it,
and remove the directory from cron. This cannot be undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.layout(false)
			if err != nil {
				return err
			}
			con := opts.console(cmd)
			if _, err := os.Stat(layout.WorkDir()); errors.Is(err, fs.ErrNotExist) {
				con.Notice("nothing to destroy in %s", layout.Root)
				return nil
			}

			if !yes {
				con.Caution("delete %s and everything kic stored there? [yes/no]:", layout.WorkDir())
				line, _ := bufio.NewReader(opts.stdin).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "y", "yes":
				default:
					con.Notice("interrupted by user")
					return nil
				}
			}

			tab, err := setting.LoadCrontab(cmd.Context(), opts.crontab)
			if err != nil {
				con.Warning("cannot read crontab: %v", err)
			} else if tab.Unregister(layout.Root) {
				if err := tab.Save(cmd.Context(), opts.crontab); err != nil {
					con.Warning("cannot update crontab: %v", err)
				}
			}

			if err := layout.Destroy(); err != nil {
				return err
			}
			con.Notice("destroyed %s", layout.WorkDir())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
