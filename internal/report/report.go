package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/acqtools/paymentproc/internal/fiscal"
	"github.com/acqtools/paymentproc/internal/model"
)

// Mode selects the report layout.
type Mode string

const (
	ModeDetail  Mode = "detail"
	ModeSummary Mode = "summary"
)

// Table is a finished report: a header row and data rows of equal width.
type Table struct {
	Header []string
	Rows   [][]string
	// AmountCols lists columns holding money, for writers that type their cells.
	AmountCols []int
}

// Detail lists every payment with the fiscal year it falls in.
//
//	order, FY, other..., paid date, invoice date, ..., note
func Detail(e *model.Export) Table {
	h := e.Header
	header := make([]string, 0, 2+len(h.Other)+model.PaymentFields)
	header = append(header, h.OrderNumber, "FY")
	header = append(header, h.Other...)
	header = append(header, h.Payment[:]...)

	t := Table{
		Header:     header,
		AmountCols: []int{2 + len(h.Other) + model.ColAmount},
	}
	for _, o := range e.Orders {
		for _, p := range o.Payments {
			row := make([]string, 0, len(header))
			row = append(row, o.Number, fiscal.Label(p.FiscalYear))
			row = append(row, o.Other...)
			row = append(row, p.Raw[:]...)
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// Summary totals each order's payments per requested fiscal year. Payments in
// other fiscal years are left out.
//
//	order, other..., FY{y1}-{y1+1}, FY{y2}-{y2+1}, ...
func Summary(e *model.Export, years []string) (Table, error) {
	if len(years) == 0 {
		return Table{}, fmt.Errorf("summary needs at least one fiscal year")
	}
	if err := checkYears(years); err != nil {
		return Table{}, err
	}

	h := e.Header
	header := make([]string, 0, 1+len(h.Other)+len(years))
	header = append(header, h.OrderNumber)
	header = append(header, h.Other...)
	first := len(header)
	for _, y := range years {
		fy, _ := parseYear(y)
		header = append(header, fiscal.Label(fy))
	}

	t := Table{Header: header}
	for i := range years {
		t.AmountCols = append(t.AmountCols, first+i)
	}

	for _, o := range e.Orders {
		totals := model.NewFiscalYearTotals(years)
		for _, p := range o.Payments {
			totals.Add(p.FiscalYear, p.Amount)
		}

		row := make([]string, 0, len(header))
		row = append(row, o.Number)
		row = append(row, o.Other...)
		for _, v := range totals.Values() {
			row = append(row, FormatTotal(v))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// FormatTotal prints an amount with at least one fractional digit: 0.0, 250.0, 1591.57.
func FormatTotal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
