package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// NumericSummary holds describe statistics for one numeric column.
// Std is nil when there are fewer than two values.
type NumericSummary struct {
	Name  string   `json:"name" yaml:"name"`
	Count int      `json:"count" yaml:"count"`
	Mean  float64  `json:"mean" yaml:"mean"`
	Std   *float64 `json:"std" yaml:"std"`
	Min   float64  `json:"min" yaml:"min"`
	Q25   float64  `json:"25%" yaml:"25%"`
	Q50   float64  `json:"50%" yaml:"50%"`
	Q75   float64  `json:"75%" yaml:"75%"`
	Max   float64  `json:"max" yaml:"max"`
}

// TextSummary holds describe statistics for one non-numeric column.
type TextSummary struct {
	Name   string `json:"name" yaml:"name"`
	Count  int    `json:"count" yaml:"count"`
	Unique int    `json:"unique" yaml:"unique"`
	Top    string `json:"top" yaml:"top"`
	Freq   int    `json:"freq" yaml:"freq"`
}

// Summary describes a table. Numeric columns are described when there are
// any; otherwise every column is described as text.
type Summary struct {
	Rows    int              `json:"rows" yaml:"rows"`
	Columns int              `json:"columns" yaml:"columns"`
	Numeric []NumericSummary `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	Text    []TextSummary    `json:"text,omitempty" yaml:"text,omitempty"`
}

// Describe computes summary statistics for t.
func Describe(t *Table) Summary {
	s := Summary{Rows: t.Len(), Columns: len(t.Columns)}

	for i, name := range t.Columns {
		values, ok := t.Numeric(i)
		if !ok {
			continue
		}
		s.Numeric = append(s.Numeric, describeNumeric(name, values))
	}
	if len(s.Numeric) > 0 {
		return s
	}

	for i, name := range t.Columns {
		s.Text = append(s.Text, describeText(name, t.Rows, i))
	}
	return s
}

func describeNumeric(name string, values []float64) NumericSummary {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	out := NumericSummary{
		Name:  name,
		Count: n,
		Mean:  mean,
		Min:   sorted[0],
		Q25:   Quantile(sorted, 0.25),
		Q50:   Quantile(sorted, 0.5),
		Q75:   Quantile(sorted, 0.75),
		Max:   sorted[n-1],
	}

	if n > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(n-1))
		out.Std = &std
	}
	return out
}

func describeText(name string, rows [][]string, col int) TextSummary {
	counts := make(map[string]int)
	var order []string
	total := 0
	for _, row := range rows {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		total++
		if counts[cell] == 0 {
			order = append(order, cell)
		}
		counts[cell]++
	}

	out := TextSummary{Name: name, Count: total, Unique: len(counts)}
	// First value reaching the top count wins ties.
	for _, v := range order {
		if counts[v] > out.Freq {
			out.Top = v
			out.Freq = counts[v]
		}
	}
	return out
}

// Quantile returns the q-th quantile of sorted using linear interpolation
// between closest ranks. sorted must be ascending and non-empty.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// StatNames are the numeric describe rows, in display order.
var StatNames = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// TextStatNames are the text describe rows, in display order.
var TextStatNames = []string{"count", "unique", "top", "freq"}

// Grid lays the summary out like a describe frame: one row per statistic,
// one column per described column. The first header cell is empty.
func (s Summary) Grid() (header []string, rows [][]string) {
	header = []string{""}

	if len(s.Numeric) > 0 {
		for _, c := range s.Numeric {
			header = append(header, c.Name)
		}
		for _, stat := range StatNames {
			row := []string{stat}
			for _, c := range s.Numeric {
				row = append(row, c.cell(stat))
			}
			rows = append(rows, row)
		}
		return header, rows
	}

	for _, c := range s.Text {
		header = append(header, c.Name)
	}
	for _, stat := range TextStatNames {
		row := []string{stat}
		for _, c := range s.Text {
			row = append(row, c.cell(stat))
		}
		rows = append(rows, row)
	}
	return header, rows
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func (c NumericSummary) cell(stat string) string {
	switch stat {
	case "count":
		return formatStat(float64(c.Count))
	case "mean":
		return formatStat(c.Mean)
	case "std":
		if c.Std == nil {
			return "NaN"
		}
		return formatStat(*c.Std)
	case "min":
		return formatStat(c.Min)
	case "25%":
		return formatStat(c.Q25)
	case "50%":
		return formatStat(c.Q50)
	case "75%":
		return formatStat(c.Q75)
	case "max":
		return formatStat(c.Max)
	}
	return ""
}

func (c TextSummary) cell(stat string) string {
	switch stat {
	case "count":
		return strconv.Itoa(c.Count)
	case "unique":
		return strconv.Itoa(c.Unique)
	case "top":
		if c.Top == "" {
			return "NaN"
		}
		return c.Top
	case "freq":
		if c.Top == "" {
			return "NaN"
		}
		return strconv.Itoa(c.Freq)
	}
	return ""
}
