package cli

import (
	"github.com/spf13/cobra"

	"github.com/lukaschristensson/TimeLinePlot/pkg/pipeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
)

// themeCommand creates the theme command, which prints a preset as a TOML
// theme file to start customizing from.
func (c *CLI) themeCommand() *cobra.Command {
	var (
		list   bool
		useEnv bool
	)

	cmd := &cobra.Command{
		Use:   "theme [name]",
		Short: "Print a style preset as TOML",
		Long: `Print a built-in style preset as a TOML theme file.

Save the output, edit it and pass it to render or view with --config.
With --env the TIMELINE_* environment overrides are applied first.`,
		Example: `  timelineplot theme dark > mytheme.toml
  timelineplot render releases.json --config mytheme.toml`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: timeline.PresetNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range timeline.PresetNames() {
					printInfo("%s", name)
				}
				return nil
			}
			name := pipeline.DefaultTheme
			if len(args) == 1 {
				name = args[0]
			}
			cfg, err := timeline.Preset(name)
			if err != nil {
				return err
			}
			if useEnv {
				if cfg, err = cfg.ApplyEnv(); err != nil {
					return err
				}
			}
			return cfg.EncodeTOML(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "list preset names")
	cmd.Flags().BoolVar(&useEnv, "env", false, "apply TIMELINE_* environment overrides")

	return cmd
}
