package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName names the single worksheet written by Encode.
const DefaultSheetName = "Inventario"

var errNoHeader = errors.New("no header row")

// Decode reads the first worksheet (xlsx) or the whole file (csv) as a raw
// table. The first row is the header; blank rows are skipped.
func Decode(r io.Reader, f Format) (inventory.RawTable, error) {
	var (
		rows [][]string
		err  error
	)
	switch f {
	case FormatXLSX:
		rows, err = readXLSX(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return inventory.RawTable{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return inventory.RawTable{}, err
	}
	return toTable(rows)
}

func readXLSX(r io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func toTable(rows [][]string) (inventory.RawTable, error) {
	if len(rows) == 0 || blank(rows[0]) {
		return inventory.RawTable{}, errNoHeader
	}
	t := inventory.RawTable{Header: rows[0]}
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Encode writes the table with its header as the first row.
func Encode(w io.Writer, t inventory.RawTable, f Format, sheetName string) error {
	switch f {
	case FormatXLSX:
		return writeXLSX(w, t, sheetName)
	case FormatCSV:
		return writeCSV(w, t)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

func writeXLSX(w io.Writer, t inventory.RawTable, sheetName string) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(book, sheetName, 1, t.Header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := setRow(book, sheetName, i+2, row); err != nil {
			return err
		}
	}

	if err := book.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(book *excelize.File, sheet string, n int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := book.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", n, err)
	}
	return nil
}

func writeCSV(w io.Writer, t inventory.RawTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}
