package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentFields is the number of fields in one payment group of the export.
const PaymentFields = 9

// Positions of the payment group fields that are interpreted.
const (
	ColPaidDate = 0
	ColAmount   = 3
)

// Header is the parsed first line of an export.
type Header struct {
	OrderNumber string
	Other       []string // institution-specific columns, may be empty
	Payment     [PaymentFields]string
}

// Payment is one payment group of an order.
type Payment struct {
	PaidDate   time.Time
	Amount     decimal.Decimal
	FiscalYear int
	Raw        [PaymentFields]string // paid date, invoice date, invoice num, amount, voucher, copies, sub from, sub to, note
}

// Order is one export line.
type Order struct {
	Number   string
	Other    []string
	Payments []Payment
	Line     int
}

// Export is a fully parsed export file.
type Export struct {
	Header Header
	Orders []Order
}

// PaymentCount returns the number of payments across all orders.
func (e *Export) PaymentCount() int {
	n := 0
	for _, o := range e.Orders {
		n += len(o.Payments)
	}
	return n
}
