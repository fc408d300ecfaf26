package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/acqtools/paymentproc/internal/config"
	"github.com/acqtools/paymentproc/internal/importer"
	"github.com/acqtools/paymentproc/internal/model"
	"github.com/acqtools/paymentproc/internal/report"
	"github.com/acqtools/paymentproc/internal/runlog"
)

type reportOptions struct {
	input     string
	outputDir string
	format    string
}

func (r *reportOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.input, "input", "i", "", "export file (default from config, data/payment_data.txt)")
	cmd.Flags().StringVarP(&r.outputDir, "output-dir", "o", "", "directory for the report (default from config, output)")
	cmd.Flags().StringVarP(&r.format, "format", "f", "", "tsv or xlsx (default from config, tsv)")
}

func (r *reportOptions) apply(cfg *config.Config) {
	if r.input != "" {
		cfg.Input.Path = r.input
	}
	if r.outputDir != "" {
		cfg.Output.Dir = r.outputDir
	}
	if r.format != "" {
		cfg.Output.Format = r.format
	}
}

func newDetailCommand(g *globalOptions) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "detail",
		Short: "One line per payment, tagged with its fiscal year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, g, &opts, report.ModeDetail, nil)
		},
	}
	opts.register(cmd)
	return cmd
}

func newSummaryCommand(g *globalOptions) *cobra.Command {
	var opts reportOptions
	var years string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "One line per order with payment totals per fiscal year",
		Long: `Totals each order's payments for the fiscal years given with --years.

Years are four-digit starting years separated by commas, with no spaces:
2009 is FY2009-2010, 2010 is FY2010-2011. Years with no payments total 0.0.`,
		Example: "  paymentproc summary --years 2009,2010,2011",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ys, err := report.ParseYears(years)
			if err != nil {
				return err
			}
			return runReport(cmd, g, &opts, report.ModeSummary, ys)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&years, "years", "y", "", "fiscal years to total, e.g. 2009,2010,2011 (required)")
	_ = cmd.MarkFlagRequired("years")
	return cmd
}

func runReport(cmd *cobra.Command, g *globalOptions, opts *reportOptions, mode report.Mode, years []string) error {
	logger := g.logger(cmd.ErrOrStderr())

	cfg, err := g.loadConfig(logger)
	if err != nil {
		return err
	}
	opts.apply(cfg)

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	export, err := readExport(cfg, logger)
	if err != nil {
		return err
	}

	var tbl report.Table
	name, sheet := "payments", "Payments"
	switch mode {
	case report.ModeDetail:
		tbl = report.Detail(export)
	case report.ModeSummary:
		name, sheet = "payment_summary", "Payment Summary"
		tbl, err = report.Summary(export, years)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown report mode %q", mode)
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, sheet, tbl); err != nil {
		return fmt.Errorf("rendering %s report: %w", mode, err)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	outPath := filepath.Join(cfg.Output.Dir, name+format.Ext())
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	logger.Debug("report written", "path", outPath, "bytes", buf.Len())

	entry := runlog.NewEntry(time.Now(), string(mode), cfg.Input.Path, outPath, len(export.Orders), export.PaymentCount())
	if err := runlog.Append(cfg.Output.Dir, []runlog.Entry{entry}); err != nil {
		logger.Warn("failed to write run log", "err", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Done! Wrote %d rows (%d orders, %d payments) to %s\n",
		len(tbl.Rows), len(export.Orders), export.PaymentCount(), outPath)
	return nil
}

func readExport(cfg *config.Config, logger *log.Logger) (*model.Export, error) {
	cal, err := cfg.Calendar()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.Input.Path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	p := importer.NewParser(cal, cfg.Normalizer())
	p.Dialect = importer.Dialect{Field: cfg.Input.FieldDelimiter, Group: cfg.Input.GroupDelimiter}

	export, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", cfg.Input.Path, err)
	}
	logger.Info("read export",
		"path", cfg.Input.Path,
		"other_fields", len(export.Header.Other),
		"orders", len(export.Orders),
		"payments", export.PaymentCount(),
	)
	return export, nil
}
