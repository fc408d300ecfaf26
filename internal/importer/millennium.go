package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/acqtools/paymentproc/internal/fiscal"
	"github.com/acqtools/paymentproc/internal/model"
)

// Dialect names the delimiters of an order export.
type Dialect struct {
	Field string // between fields, "*" (control character 42 in the export dialog)
	Group string // between repeated payment groups, ";"
}

// DefaultDialect is the layout produced by a "List of order records" export.
var DefaultDialect = Dialect{Field: "*", Group: ";"}

// RawOrder is a data line split into its parts, before any payment is interpreted.
type RawOrder struct {
	Number string
	Other  []string
	Groups [][model.PaymentFields]string
}

// Parser reads order exports into a model.Export.
type Parser struct {
	Dialect    Dialect
	Calendar   *fiscal.Calendar
	Normalizer fiscal.Normalizer
}

// NewParser creates a Parser with the default dialect.
func NewParser(cal *fiscal.Calendar, norm fiscal.Normalizer) *Parser {
	return &Parser{Dialect: DefaultDialect, Calendar: cal, Normalizer: norm}
}

// Clean strips quote characters left by spreadsheet round-trips and any line terminator.
func Clean(line string) string {
	line = strings.ReplaceAll(line, `"`, "")
	return strings.TrimRight(line, "\r\n")
}

// ParseHeader splits the header line into the order number label, the other labels
// and the nine trailing payment labels.
func ParseHeader(line string, d Dialect) (model.Header, error) {
	tokens := strings.Split(Clean(line), d.Field)
	if len(tokens) < 1+model.PaymentFields {
		return model.Header{}, &model.MalformedRecordError{
			Line:   1,
			Reason: fmt.Sprintf("header has %d fields, want at least %d (order number and %d payment fields)", len(tokens), 1+model.PaymentFields, model.PaymentFields),
		}
	}

	var h model.Header
	h.OrderNumber = tokens[0]
	paymentStart := len(tokens) - model.PaymentFields
	h.Other = append([]string{}, tokens[1:paymentStart]...)
	copy(h.Payment[:], tokens[paymentStart:])
	return h, nil
}

// ParseLine splits data line number n (1-based, counting the header) into its parts.
func ParseLine(n int, line string, h model.Header, d Dialect) (RawOrder, error) {
	tokens := strings.Split(Clean(line), d.Field)
	if len(tokens) < 1+len(h.Other) {
		return RawOrder{}, &model.MalformedRecordError{
			Line:   n,
			Reason: fmt.Sprintf("other-field count mismatch: have %d fields after the order number, want at least %d", len(tokens)-1, len(h.Other)),
		}
	}

	ro := RawOrder{
		Number: tokens[0],
		Other:  append([]string{}, tokens[1:1+len(h.Other)]...),
	}

	for i, g := range splitGroups(tokens[1+len(h.Other):], d) {
		fields := strings.Split(g, d.Field)
		if len(fields) != model.PaymentFields {
			return RawOrder{}, &model.MalformedRecordError{
				Line:   n,
				Reason: fmt.Sprintf("payment group %d has %d fields, want %d", i+1, len(fields), model.PaymentFields),
			}
		}
		var raw [model.PaymentFields]string
		copy(raw[:], fields)
		ro.Groups = append(ro.Groups, raw)
	}
	return ro, nil
}

// splitGroups recovers payment groups from the tokens after the other fields.
// The export separates groups with d.Group but does not put d.Field at the seam, so
// "...*NOTE1;06-02-10*..." lands in one token. Rejoining and splitting on d.Group
// restores one string per group. A note may contain "!", which is not a separator.
func splitGroups(rest []string, d Dialect) []string {
	joined := strings.Join(rest, d.Field)
	if joined == "" {
		return nil
	}
	groups := strings.Split(joined, d.Group)
	if len(groups) > 1 && groups[len(groups)-1] == "" {
		groups = groups[:len(groups)-1]
	}
	return groups
}

// Parse reads a whole export. The first error aborts the read.
func (p *Parser) Parse(r io.Reader) (*model.Export, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if strings.TrimSpace(Clean(lines[0])) == "" {
		return nil, &model.MalformedRecordError{Line: 1, Reason: "missing header"}
	}

	header, err := ParseHeader(lines[0], p.Dialect)
	if err != nil {
		return nil, err
	}

	export := &model.Export{Header: header}
	for i, line := range lines[1:] {
		n := i + 2
		if strings.TrimSpace(Clean(line)) == "" {
			continue
		}
		order, err := p.parseOrder(n, line, header)
		if err != nil {
			return nil, err
		}
		export.Orders = append(export.Orders, order)
	}
	return export, nil
}

func (p *Parser) parseOrder(n int, line string, h model.Header) (model.Order, error) {
	ro, err := ParseLine(n, line, h, p.Dialect)
	if err != nil {
		return model.Order{}, err
	}

	order := model.Order{Number: ro.Number, Other: ro.Other, Line: n}
	for i, raw := range ro.Groups {
		pmt, err := NewPayment(raw, p.Calendar, p.Normalizer)
		if err != nil {
			return model.Order{}, fmt.Errorf("line %d, payment %d: %w", n, i+1, err)
		}
		order.Payments = append(order.Payments, pmt)
	}
	return order, nil
}
