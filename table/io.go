package table

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

// ReadCSV reads a table from CSV. The first record is the column list;
// short records read as empty cells in the trailing columns.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	t := New(header...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		t.Append(row)
	}
	return t, nil
}

// WriteCSV writes the table as CSV with the column list as the header
// record.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, col := range t.columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadXLSX reads the first sheet of an .xlsx workbook, treating the
// first row as the column list.
func ReadXLSX(path string) (*Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	if len(f.Sheets) == 0 {
		return New(), nil
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return New(), nil
	}
	var header []string
	for _, cell := range sheet.Rows[0].Cells {
		header = append(header, cell.Value)
	}
	t := New(header...)
	for _, xr := range sheet.Rows[1:] {
		row := make(Row, len(header))
		empty := true
		for i, cell := range xr.Cells {
			if i >= len(header) {
				break
			}
			row[header[i]] = cell.Value
			if cell.Value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		t.Append(row)
	}
	return t, nil
}
