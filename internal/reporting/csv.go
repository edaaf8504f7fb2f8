package reporting

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/sysdash/sysdash/internal/metrics"
)

// WriteCSV serializes the table: one header row with the columns in
// source order, one row per record, UTF-8, standard quoting. NULL cells
// become empty fields. Serialization is idempotent under a parse and
// re-serialize round trip because cells keep their raw source text.
func WriteCSV(table *metrics.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write CSV header: %w", err)
	}

	record := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		for j := range record {
			record[j] = ""
			if j < len(row.Cells) && !row.Cells[j].Null {
				record[j] = row.Cells[j].Raw
			}
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write CSV row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV write error: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseCSV reads a CSV document produced by WriteCSV back into a table.
// The first record is the header; every field becomes a text cell (an
// empty field cannot be told apart from an empty string, so NULLs do not
// survive the round trip — their serialized form does).
func ParseCSV(data []byte) (*metrics.Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(records) == 0 {
		return metrics.NewTable(nil), nil
	}

	table := metrics.NewTable(records[0])
	for _, record := range records[1:] {
		cells := make([]metrics.Cell, len(record))
		for i, field := range record {
			cells[i] = metrics.TextCell(field)
		}
		table.Append(cells)
	}
	return table, nil
}
