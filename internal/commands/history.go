package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/acqtools/paymentproc/internal/runlog"
)

func newHistoryCommand(g *globalOptions) *cobra.Command {
	var outputDir string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List reports written to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				cfg, err := g.loadConfig(g.logger(cmd.ErrOrStderr()))
				if err != nil {
					return err
				}
				outputDir = cfg.Output.Dir
			}
			return runHistory(cmd, outputDir, limit)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory holding "+runlog.FileName+" (default from config, output)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent n runs")

	return cmd
}

func runHistory(cmd *cobra.Command, dir string, limit int) error {
	entries, err := runlog.Read(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tMODE\tORDERS\tPAYMENTS\tOUTPUT\tRUN")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime), e.Mode, e.Orders, e.Payments, e.Output, shortID(e.RunID))
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
