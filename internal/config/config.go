package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/acqtools/paymentproc/internal/fiscal"
	"github.com/acqtools/paymentproc/internal/model"
)

// DefaultFile is the project config looked for in the working directory.
const DefaultFile = "paymentproc.yaml"

// Config represents paymentproc.yaml.
type Config struct {
	Fiscal FiscalConfig `yaml:"fiscal"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
}

// FiscalConfig defines when the fiscal year begins and how two-digit years expand.
type FiscalConfig struct {
	BeginMonth int `yaml:"begin_month"`
	BeginDay   int `yaml:"begin_day"`
	YearPivot  int `yaml:"year_pivot"`
}

// InputConfig locates the export and names its delimiters.
type InputConfig struct {
	Path           string `yaml:"path"`
	FieldDelimiter string `yaml:"field_delimiter"`
	GroupDelimiter string `yaml:"group_delimiter"`
}

// OutputConfig controls where reports are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // tsv or xlsx
}

// Load reads a config file, YAML or the two-line legacy format depending on its extension.
func Load(path string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	}
	return LoadLegacy(path)
}

// LoadYAML reads a paymentproc.yaml file from disk. Settings other than the fiscal
// begin month and day fall back to Default.
func LoadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.ConfigError{Path: path, Reason: "reading config", Err: err}
	}
	cfg := Default()
	cfg.Fiscal.BeginMonth = 0
	cfg.Fiscal.BeginDay = 0
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &model.ConfigError{Path: path, Reason: "parsing config", Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, withPath(err, path)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config for a July 1 fiscal year and the standard export layout.
func Default() *Config {
	return &Config{
		Fiscal: FiscalConfig{
			BeginMonth: 7,
			BeginDay:   1,
			YearPivot:  fiscal.DefaultPivot,
		},
		Input: InputConfig{
			Path:           filepath.Join("data", "payment_data.txt"),
			FieldDelimiter: "*",
			GroupDelimiter: ";",
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: "tsv",
		},
	}
}

// Validate checks the fiscal start, pivot and delimiters.
func (c *Config) Validate() error {
	if _, err := c.Calendar(); err != nil {
		return err
	}
	if c.Fiscal.YearPivot < 0 || c.Fiscal.YearPivot > 99 {
		return &model.ConfigError{Reason: fmt.Sprintf("year_pivot %d out of range 0-99", c.Fiscal.YearPivot)}
	}
	if c.Input.FieldDelimiter == "" || c.Input.GroupDelimiter == "" {
		return &model.ConfigError{Reason: "field and group delimiters must be set"}
	}
	if c.Input.FieldDelimiter == c.Input.GroupDelimiter {
		return &model.ConfigError{Reason: fmt.Sprintf("field and group delimiters are both %q", c.Input.FieldDelimiter)}
	}
	return nil
}

// Calendar returns the fiscal calendar described by the config.
func (c *Config) Calendar() (*fiscal.Calendar, error) {
	return fiscal.NewCalendar(c.Fiscal.BeginMonth, c.Fiscal.BeginDay)
}

// Normalizer returns the two-digit year normalizer described by the config.
func (c *Config) Normalizer() fiscal.Normalizer {
	return fiscal.Normalizer{Pivot: c.Fiscal.YearPivot}
}

// Find returns the config to use in dir: paymentproc.yaml if present, otherwise
// the legacy text file.
func Find(dir string) string {
	p := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return filepath.Join(dir, LegacyFile)
}

func withPath(err error, path string) error {
	var ce *model.ConfigError
	if errors.As(err, &ce) && ce.Path == "" {
		ce.Path = path
	}
	return err
}
