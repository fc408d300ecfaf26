package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// FiscalYearTotals accumulates payment amounts per requested fiscal year.
// Years keep the order they were requested in.
type FiscalYearTotals struct {
	years  []string
	totals map[string]decimal.Decimal
}

// NewFiscalYearTotals seeds a zero total for every year.
func NewFiscalYearTotals(years []string) *FiscalYearTotals {
	t := &FiscalYearTotals{
		years:  make([]string, 0, len(years)),
		totals: make(map[string]decimal.Decimal, len(years)),
	}
	for _, y := range years {
		if _, ok := t.totals[y]; ok {
			continue
		}
		t.years = append(t.years, y)
		t.totals[y] = decimal.Zero
	}
	return t
}

// Add credits amount to fiscal year fy. It reports false, and changes nothing,
// when fy was not requested.
func (t *FiscalYearTotals) Add(fy int, amount decimal.Decimal) bool {
	key := strconv.Itoa(fy)
	cur, ok := t.totals[key]
	if !ok {
		return false
	}
	t.totals[key] = cur.Add(amount)
	return true
}

// Get returns the total for a requested year.
func (t *FiscalYearTotals) Get(year string) (decimal.Decimal, bool) {
	d, ok := t.totals[year]
	return d, ok
}

// Years returns the requested years in order.
func (t *FiscalYearTotals) Years() []string {
	return t.years
}

// Values returns the totals in requested-year order.
func (t *FiscalYearTotals) Values() []decimal.Decimal {
	out := make([]decimal.Decimal, len(t.years))
	for i, y := range t.years {
		out[i] = t.totals[y]
	}
	return out
}
