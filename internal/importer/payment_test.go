package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acqtools/paymentproc/internal/fiscal"
	"github.com/acqtools/paymentproc/internal/model"
)

func raw(paid, amount string) [model.PaymentFields]string {
	return [model.PaymentFields]string{paid, "05-26-10", "0106526", amount, "218304", "001", "01-01-10", "12-31-10", "note"}
}

func TestNewPayment(t *testing.T) {
	cal, err := fiscal.NewCalendar(7, 1)
	require.NoError(t, err)

	pmt, err := NewPayment(raw("06-02-10", "1591.57"), cal, fiscal.DefaultNormalizer)
	require.NoError(t, err)

	assert.Equal(t, 2010, pmt.PaidDate.Year())
	assert.Equal(t, 6, int(pmt.PaidDate.Month()))
	assert.Equal(t, 2, pmt.PaidDate.Day())
	assert.Equal(t, "1591.57", pmt.Amount.StringFixed(2))
	assert.Equal(t, 2009, pmt.FiscalYear)
	assert.Equal(t, "note", pmt.Raw[8])
}

func TestNewPayment_FiscalBoundary(t *testing.T) {
	cal, err := fiscal.NewCalendar(7, 1)
	require.NoError(t, err)

	before, err := NewPayment(raw("06-30-10", "1"), cal, fiscal.DefaultNormalizer)
	require.NoError(t, err)
	after, err := NewPayment(raw("07-01-10", "1"), cal, fiscal.DefaultNormalizer)
	require.NoError(t, err)

	assert.Equal(t, 2009, before.FiscalYear)
	assert.Equal(t, 2010, after.FiscalYear)
}

func TestNewPayment_PivotYear(t *testing.T) {
	cal, err := fiscal.NewCalendar(1, 1)
	require.NoError(t, err)

	pmt, err := NewPayment(raw("12-31-99", "5"), cal, fiscal.DefaultNormalizer)
	require.NoError(t, err)
	assert.Equal(t, 1999, pmt.PaidDate.Year())

	pmt, err = NewPayment(raw("12-31-75", "5"), cal, fiscal.Normalizer{Pivot: 80})
	require.NoError(t, err)
	assert.Equal(t, 2075, pmt.PaidDate.Year())
}

func TestNewPayment_Errors(t *testing.T) {
	cal, err := fiscal.NewCalendar(7, 1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		paid    string
		amount  string
		invalid bool
	}{
		{"too few date parts", "06-02", "1.00", false},
		{"slashes", "06/02/10", "1.00", false},
		{"month not a number", "xx-02-10", "1.00", false},
		{"day not a number", "06-xx-10", "1.00", false},
		{"four digit year", "06-02-2010", "1.00", false},
		{"bad amount", "06-02-10", "$1.00", false},
		{"empty amount", "06-02-10", "", false},
		{"february 30", "02-30-10", "1.00", true},
		{"month 13", "13-01-10", "1.00", true},
		{"day zero", "06-00-10", "1.00", true},
		{"february 29 non-leap", "02-29-11", "1.00", true},
	}
	for _, tt := range tests {
		_, err := NewPayment(raw(tt.paid, tt.amount), cal, fiscal.DefaultNormalizer)
		require.Error(t, err, tt.name)

		var ide *model.InvalidDateError
		var pe *model.ParseError
		if tt.invalid {
			assert.True(t, errors.As(err, &ide), "%s: want InvalidDateError, got %v", tt.name, err)
		} else {
			assert.True(t, errors.As(err, &pe), "%s: want ParseError, got %v", tt.name, err)
		}
	}
}

func TestNewPayment_LeapDay(t *testing.T) {
	cal, err := fiscal.NewCalendar(7, 1)
	require.NoError(t, err)

	pmt, err := NewPayment(raw("02-29-12", "1.00"), cal, fiscal.DefaultNormalizer)
	require.NoError(t, err)
	assert.Equal(t, 2011, pmt.FiscalYear)
}
