package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ttokutake/kic/setting"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change config.toml",
		Long: `Read or change config.toml.

Keys:
  burn.moratorium   N day(s) | N week(s), N > 0          (default "2 weeks")
  sweep.moratorium  N minute(s) | hour(s) | day(s) | week(s) (default "10 minutes")
  sweep.period      daily | weekly                      (default "daily")
  sweep.time        HH:MM                               (default "00:00")`,
	}
	cmd.AddCommand(newConfigGetCmd(opts), newConfigSetCmd(opts))
	return cmd
}

func newConfigGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "get KEY",
		Short:     "Print the value of a key",
		Args:      cobra.ExactArgs(1),
		ValidArgs: configKeyNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.layout(true)
			if err != nil {
				return err
			}
			key, err := setting.ParseKey(args[0])
			if err != nil {
				return err
			}
			cfg, err := setting.LoadConfig(layout.ConfigPath())
			if err != nil {
				return err
			}
			value, err := cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Validate and store a value",
		Long:      "Validate and store a value. Run \"kic start\" again after changing sweep.period or sweep.time.",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: configKeyNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.layout(true)
			if err != nil {
				return err
			}
			key, err := setting.ParseKey(args[0])
			if err != nil {
				return err
			}
			cfg, err := setting.LoadConfig(layout.ConfigPath())
			if err != nil {
				return err
			}
			// "2 weeks" may arrive as two arguments.
			value := strings.Join(args[1:], " ")
			if err := cfg.Set(key, value); err != nil {
				return err
			}
			if err := cfg.Save(layout.ConfigPath()); err != nil {
				return err
			}
			stored, _ := cfg.Get(key)
			opts.console(cmd).Notice("%s = %q", key, stored)
			return nil
		},
	}
}

func configKeyNames() []string {
	names := make([]string, len(setting.Keys))
	for i, k := range setting.Keys {
		names[i] = string(k)
	}
	return names
}
