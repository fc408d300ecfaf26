package fiscal

import (
	"fmt"
	"time"

	"github.com/acqtools/paymentproc/internal/model"
)

// referenceYear is a non-leap year used to check that a fiscal start exists in every year.
const referenceYear = 2011

// Calendar assigns calendar dates to fiscal years that begin on a fixed month and day.
type Calendar struct {
	StartMonth time.Month
	StartDay   int
}

// NewCalendar validates the fiscal start and returns a Calendar.
// Feb 29 is rejected since it does not occur every year.
func NewCalendar(month, day int) (*Calendar, error) {
	if month < 1 || month > 12 {
		return nil, &model.ConfigError{Reason: fmt.Sprintf("fiscal year begin month %d out of range 1-12", month)}
	}
	if day < 1 || day > 31 {
		return nil, &model.ConfigError{Reason: fmt.Sprintf("fiscal year begin day %d out of range 1-31", day)}
	}
	d := time.Date(referenceYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Month() != time.Month(month) || d.Day() != day {
		return nil, &model.ConfigError{Reason: fmt.Sprintf("month %d and day %d do not combine to a valid date", month, day)}
	}
	return &Calendar{StartMonth: time.Month(month), StartDay: day}, nil
}

// YearOf returns the fiscal year containing t, named by the calendar year it starts in.
func (c *Calendar) YearOf(t time.Time) int {
	start := time.Date(t.Year(), c.StartMonth, c.StartDay, 0, 0, 0, 0, time.UTC).YearDay()
	if t.YearDay() >= start {
		return t.Year()
	}
	return t.Year() - 1
}

// Start returns the first day of fiscal year fy.
func (c *Calendar) Start(fy int) time.Time {
	return time.Date(fy, c.StartMonth, c.StartDay, 0, 0, 0, 0, time.UTC)
}

// String renders the start as "MM-DD".
func (c *Calendar) String() string {
	return fmt.Sprintf("%02d-%02d", int(c.StartMonth), c.StartDay)
}

// Label returns the display label for fiscal year fy, e.g. "FY2009-2010".
func Label(fy int) string {
	return fmt.Sprintf("FY%d-%d", fy, fy+1)
}
