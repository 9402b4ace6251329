package knowledge

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Record is one normalized row from a tabular knowledge source. Readers
// produce this single shape so the normalizers never deal with
// reader-specific row types.
type Record struct {
	fields map[string]string
}

// NewRecord builds a record from column names and values. Extra values
// beyond the header are dropped; missing values default to "".
func NewRecord(header, values []string) Record {
	fields := make(map[string]string, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		if i < len(values) {
			fields[col] = values[i]
		} else {
			fields[col] = ""
		}
	}
	return Record{fields: fields}
}

// Get returns the value for a column, or "" if the column is absent.
func (r Record) Get(col string) string {
	return r.fields[col]
}

// ReadCSV reads a header-keyed CSV file into records.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		records = append(records, NewRecord(header, row))
	}
	return records, nil
}

// ReadXLSX reads the first sheet of a header-keyed XLSX workbook into
// records.
func ReadXLSX(path string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s of %s: %w", sheets[0], path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, NewRecord(header, row))
	}
	return records, nil
}
