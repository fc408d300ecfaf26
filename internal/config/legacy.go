package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/acqtools/paymentproc/internal/model"
)

// LegacyFile is where the two-line fiscal config lives next to the export.
var LegacyFile = filepath.Join("data", "payment_processor_config.txt")

var (
	legacyMonth = regexp.MustCompile(`^fy_begin_month = (\d\d?)\s*$`)
	legacyDay   = regexp.MustCompile(`^fy_begin_day = (\d\d?)\s*$`)
)

// LoadLegacy reads the two-line config:
//
//	fy_begin_month = 7
//	fy_begin_day = 1
//
// Everything else comes from Default.
func LoadLegacy(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.ConfigError{Path: path, Reason: "reading config", Err: err}
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, &model.ConfigError{Path: path, Reason: "want fy_begin_month and fy_begin_day lines"}
	}

	month, err := legacyValue(legacyMonth, lines[0])
	if err != nil {
		return nil, &model.ConfigError{Path: path, Reason: "fy_begin_month not properly set"}
	}
	day, err := legacyValue(legacyDay, lines[1])
	if err != nil {
		return nil, &model.ConfigError{Path: path, Reason: "fy_begin_day not properly set"}
	}

	cfg := Default()
	cfg.Fiscal.BeginMonth = month
	cfg.Fiscal.BeginDay = day
	if err := cfg.Validate(); err != nil {
		return nil, withPath(err, path)
	}
	return cfg, nil
}

// SaveLegacy writes the fiscal begin month and day in the two-line format.
func SaveLegacy(path string, cfg *Config) error {
	content := fmt.Sprintf("fy_begin_month = %d\nfy_begin_day = %d\n", cfg.Fiscal.BeginMonth, cfg.Fiscal.BeginDay)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func legacyValue(re *regexp.Regexp, line string) (int, error) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, fmt.Errorf("no match for %s", re)
	}
	return strconv.Atoi(m[1])
}
