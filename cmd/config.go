package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Johannes-Berggren/publish/internal/config"
)

func newConfigCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{Dir: app.Dir, File: opts.configFile, Flags: cmd.Flags()})
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = app.Stdout.Write(out)
			return err
		},
	}
}
