package cli

import (
	"github.com/spf13/cobra"

	"qsortbench/config"
)

// NewCheckCommand creates the check command: sort one random array with the
// fork-join engine and verify it.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the correctness check only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			h, err := newHarness(cfg, opts.logger(cmd, cfg))
			if err != nil {
				return err
			}
			if err := h.CheckCorrectness(cmd.Context()); err != nil {
				return harnessError(err)
			}
			return nil
		},
	}

	config.BindFlags(cmd.Flags())

	return cmd
}
