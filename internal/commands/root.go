package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/acqtools/paymentproc/internal/buildinfo"
	"github.com/acqtools/paymentproc/internal/config"
)

type globalOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "paymentproc",
		Short: "Fiscal year reports from acquisitions payment exports",
		Long: `paymentproc reads a "List of order records" export (record number first,
paid data last, "*" as field delimiter, no text qualifier) and writes either one
line per payment tagged with its fiscal year, or one line per order with payment
totals for the fiscal years you ask for.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file, "+config.DefaultFile+" or the two-line text format (default: "+config.DefaultFile+" if present, else "+config.LegacyFile+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug detail")

	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newDetailCommand(opts))
	rootCmd.AddCommand(newSummaryCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))

	return rootCmd
}

func (o *globalOptions) logger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if o.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "paymentproc",
		Level:  level,
	})
}

func (o *globalOptions) loadConfig(logger *log.Logger) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.Find(".")
	}
	logger.Debug("loading config", "path", path)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	cal, _ := cfg.Calendar()
	logger.Debug("fiscal calendar", "begins", cal.String(), "year_pivot", cfg.Fiscal.YearPivot)
	return cfg, nil
}
