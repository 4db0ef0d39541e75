package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"memfootprint/internal/config"
)

// NewWidthsCommand creates the widths command.
func NewWidthsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widths",
		Short: "Print the effective width table",
		Long: `Print the width table measurements are charged with: the defaults for a
64-bit target, overridden by --config. The text output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := rootOpts.widths()
			if err != nil {
				return err
			}

			f := config.FromWidths(w)
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(f)
			}

			data, err := config.Marshal(f)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	return cmd
}
