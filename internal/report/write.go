package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Format selects the output file type.
type Format string

const (
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "tsv", "txt" or "xlsx".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "tsv", "txt":
		return FormatTSV, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown output format %q (want tsv or xlsx)", s)
}

// Ext returns the file extension written for f.
func (f Format) Ext() string {
	if f == FormatXLSX {
		return ".xlsx"
	}
	return ".txt"
}

// Write writes t in format f.
func Write(w io.Writer, f Format, sheet string, t Table) error {
	if f == FormatXLSX {
		return WriteXLSX(w, sheet, t)
	}
	return WriteTSV(w, t)
}

// WriteTSV writes one tab-joined line per row, header first. Cells are written
// as-is; the export never carries tabs.
func WriteTSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(t.Header, "\t") + "\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return bw.Flush()
}

// WriteXLSX writes t as a single-sheet workbook. Amount columns become numbers.
func WriteXLSX(w io.Writer, sheet string, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	amount := make(map[int]bool, len(t.AmountCols))
	for _, c := range t.AmountCols {
		amount[c] = true
	}

	if err := writeXLSXRow(f, sheet, 1, t.Header, nil); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writeXLSXRow(f, sheet, i+2, row, amount); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeXLSXRow(f *excelize.File, sheet string, rowNum int, row []string, amount map[int]bool) error {
	for col, v := range row {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		var value any = v
		if amount[col] {
			if d, err := decimal.NewFromString(v); err == nil {
				value = d.InexactFloat64()
			}
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
