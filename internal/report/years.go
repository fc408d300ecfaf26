package report

import (
	"strconv"
	"strings"

	"github.com/acqtools/paymentproc/internal/model"
)

// ParseYears reads a list like "2009,2010,2011". Each entry is the four-digit
// calendar year a fiscal year starts in. Order is kept.
func ParseYears(s string) ([]string, error) {
	if s == "" {
		return nil, &model.ParseError{Field: "fiscal years", Value: s, Reason: "no years given"}
	}

	years := strings.Split(s, ",")
	if err := checkYears(years); err != nil {
		return nil, err
	}
	return years, nil
}

func checkYears(years []string) error {
	seen := make(map[string]bool, len(years))
	for _, y := range years {
		if _, err := parseYear(y); err != nil {
			return err
		}
		if seen[y] {
			return &model.ParseError{Field: "fiscal year", Value: y, Reason: "listed more than once"}
		}
		seen[y] = true
	}
	return nil
}

func parseYear(s string) (int, error) {
	if len(s) != 4 {
		return 0, &model.ParseError{Field: "fiscal year", Value: s, Reason: "want four digits, e.g. 2009"}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, &model.ParseError{Field: "fiscal year", Value: s, Reason: "want four digits, e.g. 2009"}
		}
	}
	return strconv.Atoi(s)
}
