package model

import "fmt"

// ConfigError reports a missing, malformed or impossible fiscal calendar setting.
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := "config"
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// MalformedRecordError reports an export line that does not have the expected field layout.
// Line is 1-based and counts the header.
type MalformedRecordError struct {
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: malformed record: %s", e.Line, e.Reason)
}

// ParseError reports a token that could not be read as a number or year.
type ParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s %q: %s", e.Field, e.Value, e.Reason)
}

// InvalidDateError reports a month/day/year triple that is not a calendar date.
type InvalidDateError struct {
	Month int
	Day   int
	Year  int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %02d-%02d-%04d", e.Month, e.Day, e.Year)
}
