package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/acqtools/paymentproc/internal/config"
)

func newInitCommand(g *globalOptions) *cobra.Command {
	var beginMonth, beginDay int
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Set up data and output directories with a default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default()
			cfg.Fiscal.BeginMonth = beginMonth
			cfg.Fiscal.BeginDay = beginDay
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := runInit(cmd, g, absDir, cfg, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized paymentproc at %s (fiscal year begins %02d-%02d)\n", absDir, beginMonth, beginDay)
			fmt.Fprintf(cmd.OutOrStdout(), "Place the export at %s\n", filepath.Join(absDir, cfg.Input.Path))
			return nil
		},
	}

	cmd.Flags().IntVar(&beginMonth, "begin-month", 7, "month the fiscal year begins")
	cmd.Flags().IntVar(&beginDay, "begin-day", 1, "day the fiscal year begins")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config files")

	return cmd
}

func runInit(cmd *cobra.Command, g *globalOptions, dir string, cfg *config.Config, force bool) error {
	logger := g.logger(cmd.ErrOrStderr())

	for _, d := range []string{filepath.Dir(cfg.Input.Path), cfg.Output.Dir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	files := []struct {
		name string
		save func(string, *config.Config) error
	}{
		{config.DefaultFile, config.Save},
		{config.LegacyFile, config.SaveLegacy},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !force {
			logger.Warn("config exists, leaving it alone", "path", path)
			continue
		}
		if err := f.save(path, cfg); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
		logger.Debug("wrote config", "path", path)
	}
	return nil
}
