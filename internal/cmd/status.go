package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ttokutake/kic/dust"
	"github.com/ttokutake/kic/internal/log"
	"github.com/ttokutake/kic/setting"
)

// BoxStatus describes one box in the warehouse.
type BoxStatus struct {
	Name    string `json:"name" yaml:"name"`
	AgeDays int    `json:"age_days" yaml:"age_days"`
	Files   int    `json:"files" yaml:"files"`
	Expired bool   `json:"expired" yaml:"expired"`
}

// StatusReport is what status prints.
type StatusReport struct {
	Root       string      `json:"root" yaml:"root"`
	Moratorium string      `json:"burn_moratorium" yaml:"burn_moratorium"`
	Boxes      []BoxStatus `json:"boxes" yaml:"boxes"`
	Schedule   string      `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	NextRun    *time.Time  `json:"next_run,omitempty" yaml:"next_run,omitempty"`
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the boxes in the warehouse and the cron schedule",
		Long: `List the boxes in .kic/warehouse with their age, the number of files
they hold and whether the next burn would delete them. When the directory
is registered with cron, the schedule and its next run are shown too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts)
		},
	}
}

func runStatus(cmd *cobra.Command, opts *globalOptions) error {
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
	moratorium, err := cfg.BurnMoratorium()
	if err != nil {
		return err
	}
	boxes, err := dust.ListBoxes(layout.Warehouse(), now.Location())
	if err != nil {
		return err
	}

	report := StatusReport{Root: layout.Root, Moratorium: cfg.Burn.Moratorium}
	for _, box := range boxes {
		report.Boxes = append(report.Boxes, BoxStatus{
			Name:    box.Name,
			AgeDays: int(now.Sub(box.Date).Hours() / 24),
			Files:   countFiles(box.DustPath),
			Expired: box.Expired(moratorium, now),
		})
	}

	tab, err := setting.LoadCrontab(cmd.Context(), opts.crontab)
	if err != nil {
		con.Warning("cannot read crontab: %v", err)
	} else if spec, ok := tab.SpecFor(layout.Root); ok {
		report.Schedule = spec
		if next, err := setting.NextRun(spec, now); err == nil {
			report.NextRun = &next
		}
	}

	return writeReport(cmd.OutOrStdout(), format, report, func(w io.Writer) error {
		fmt.Fprintf(w, "%s (burn after %s)\n", report.Root, report.Moratorium)
		if len(report.Boxes) == 0 {
			fmt.Fprintln(w, dimStyle.Render("  no boxes"))
		}
		for _, b := range report.Boxes {
			state := ""
			if b.Expired {
				state = tagStyles[TagCaution].Render(" expired")
			}
			fmt.Fprintf(w, "  %s  %3d day(s)  %d file(s)%s\n", boxStyle(b.Name).Render(b.Name), b.AgeDays, b.Files, state)
		}
		if report.NextRun != nil {
			fmt.Fprintf(w, "scheduled %q, next run %s\n", report.Schedule, report.NextRun.Format(time.DateTime))
		} else {
			fmt.Fprintln(w, dimStyle.Render("not scheduled, run \"kic start\""))
		}
		return nil
	})
}

// countFiles counts the non-directory entries below path. Unreadable parts
// of the tree are skipped.
func countFiles(path string) int {
	count := 0
	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		log.Debug("count failed", "path", path, "error", err)
	}
	return count
}
