// Package dataset holds tabular sample data: random tables for the Data
// Analysis view, CSV uploads, and describe-style column statistics.
package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/datadash/datadash/internal/errors"
)

// Table is a header plus string rows. Every row has len(Columns) cells.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Head returns a table with at most n leading rows. Rows are shared.
func (t *Table) Head(n int) *Table {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// Column returns the index of name, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Numeric parses column i as floats. Empty and NaN cells are skipped, the
// way a missing value is. ok is false when any other cell isn't a finite
// number or when the column has no values at all.
func (t *Table) Numeric(i int) (values []float64, ok bool) {
	if i < 0 || i >= len(t.Columns) {
		return nil, false
	}
	values = make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsInf(v, 0) {
			return nil, false
		}
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	return values, len(values) > 0
}

// DefaultColumns are the columns of a random sample table.
var DefaultColumns = []string{"A", "B", "C"}

// Random builds a table of standard normal draws.
func Random(rng *rand.Rand, rows int, columns []string) *Table {
	if rows < 0 {
		rows = 0
	}
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, rows),
	}
	for r := range t.Rows {
		row := make([]string, len(columns))
		for c := range row {
			row[c] = strconv.FormatFloat(rng.NormFloat64(), 'f', 6, 64)
		}
		t.Rows[r] = row
	}
	return t
}

// ParseCSV reads a header row followed by data rows. Rows with a different
// field count than the header are an error.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrData,
			"Failed to parse CSV",
			"Check that every row has the same number of fields as the header")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrData,
			"CSV file is empty",
			"The first row should name the columns")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
		if header[i] == "" {
			header[i] = "Unnamed: " + strconv.Itoa(i)
		}
	}

	return &Table{Columns: header, Rows: records[1:]}, nil
}
