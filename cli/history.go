package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"qsortbench/bench"
	"qsortbench/config"
	"qsortbench/store"
)

// NewHistoryCommand creates the history command listing stored runs.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List benchmark runs saved in the run history store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Store == store.KindNone {
				return WrapExitError(ExitCommandError, "history", errors.New("--store is required"))
			}

			st, err := store.Open(cfg.Store, cfg.StorePath)
			if err != nil {
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer func() {
				if cerr := st.Close(); cerr != nil && err == nil {
					err = WrapExitError(ExitFailure, "close store", cerr)
				}
			}()

			reports, err := st.List(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "list runs", err)
			}
			if err := writeHistory(cmd.OutOrStdout(), opts.Format, reports); err != nil {
				return WrapExitError(ExitFailure, "write history", err)
			}
			return nil
		},
	}

	config.BindStoreFlags(cmd.Flags())

	return cmd
}

func writeHistory(w io.Writer, format string, reports []bench.Report) error {
	switch format {
	case "json":
		return bench.WriteJSON(w, reports)
	case "yaml":
		return bench.WriteYAML(w, reports)
	case "markdown":
		return bench.WriteMarkdown(w, reports)
	default:
		for _, r := range reports {
			if _, err := fmt.Fprintf(w, "%s %s %s\n", r.StartedAt.UTC().Format(time.RFC3339), r.RunID, r.CSVLine()); err != nil {
				return err
			}
		}
		return nil
	}
}
