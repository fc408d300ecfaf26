package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row in the run log: a report that was written.
type Entry struct {
	RunID     string
	Timestamp time.Time
	Mode      string
	Input     string
	Output    string
	Orders    int
	Payments  int
}

// Header is the CSV header for run-log.csv.
const Header = "run_id,timestamp,mode,input,output,orders,payments"

// FileName is the run log kept in the output directory.
const FileName = "run-log.csv"

const (
	numFields    = 7
	colRunID     = 0
	colTimestamp = 1
	colMode      = 2
	colInput     = 3
	colOutput    = 4
	colOrders    = 5
	colPayments  = 6
)

// NewEntry stamps a report run with a fresh run ID.
func NewEntry(now time.Time, mode, input, output string, orders, payments int) Entry {
	return Entry{
		RunID:     uuid.NewString(),
		Timestamp: now.UTC().Truncate(time.Second),
		Mode:      mode,
		Input:     input,
		Output:    output,
		Orders:    orders,
		Payments:  payments,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colRunID] = e.RunID
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colMode] = e.Mode
	row[colInput] = e.Input
	row[colOutput] = e.Output
	row[colOrders] = strconv.Itoa(e.Orders)
	row[colPayments] = strconv.Itoa(e.Payments)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	orders, err := strconv.Atoi(record[colOrders])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing orders %q: %w", record[colOrders], err)
	}
	payments, err := strconv.Atoi(record[colPayments])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing payments %q: %w", record[colPayments], err)
	}

	return Entry{
		RunID:     record[colRunID],
		Timestamp: ts,
		Mode:      record[colMode],
		Input:     record[colInput],
		Output:    record[colOutput],
		Orders:    orders,
		Payments:  payments,
	}, nil
}

// Append writes entries to <dir>/run-log.csv, creating the file and header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <dir>/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
