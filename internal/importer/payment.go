package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acqtools/paymentproc/internal/fiscal"
	"github.com/acqtools/paymentproc/internal/model"
)

// NewPayment interprets one payment group. The paid date is "MM-DD-YY".
func NewPayment(raw [model.PaymentFields]string, cal *fiscal.Calendar, norm fiscal.Normalizer) (model.Payment, error) {
	paid, err := parsePaidDate(raw[model.ColPaidDate], norm)
	if err != nil {
		return model.Payment{}, err
	}

	amountStr := strings.TrimSpace(raw[model.ColAmount])
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return model.Payment{}, &model.ParseError{Field: "amount", Value: amountStr, Reason: "not a decimal number"}
	}

	return model.Payment{
		PaidDate:   paid,
		Amount:     amount,
		FiscalYear: cal.YearOf(paid),
		Raw:        raw,
	}, nil
}

func parsePaidDate(s string, norm fiscal.Normalizer) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, &model.ParseError{Field: "paid date", Value: s, Reason: "want MM-DD-YY"}
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, &model.ParseError{Field: "paid date month", Value: parts[0], Reason: "not a number"}
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, &model.ParseError{Field: "paid date day", Value: parts[1], Reason: "not a number"}
	}
	year, err := norm.Normalize(parts[2])
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, &model.InvalidDateError{Month: month, Day: day, Year: year}
	}
	return t, nil
}
