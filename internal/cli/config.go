package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/echoloop/internal/infra/config"
)

func configCmd(d deps, flags *settingsFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, path, err := resolveSettings(cmd, d, *flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if path != "" {
				fmt.Fprintf(out, "# source: %s\n", path)
			} else {
				fmt.Fprintln(out, "# source: defaults")
			}
			return config.Write(out, cfg)
		},
	}
}
