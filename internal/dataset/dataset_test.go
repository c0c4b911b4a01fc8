package dataset

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/datadash/datadash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "name,score,weight\nann,1,10.5\nbob,2,\ncat,3,12\ndan,4,13.5\n"

	tbl, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "score", "weight"}, tbl.Columns)
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, []string{"bob", "2", ""}, tbl.Rows[1])
	assert.Equal(t, 1, tbl.Column("score"))
	assert.Equal(t, -1, tbl.Column("missing"))
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{name: "ragged row", input: "a,b\n1,2\n3\n"},
		{name: "bare quote", input: "a,b\n\"1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrData))
		})
	}
}

func TestParseCSV_HeaderCleanup(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("\ufeffid, ,value\n1,x,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "Unnamed: 1", "value"}, tbl.Columns)
}

func TestNumeric(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("name,score,weight\nann,1,10.5\nbob,2,\n"))
	require.NoError(t, err)

	_, ok := tbl.Numeric(0)
	assert.False(t, ok, "text column")

	values, ok := tbl.Numeric(1)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, values)

	values, ok = tbl.Numeric(2)
	require.True(t, ok)
	assert.Equal(t, []float64{10.5}, values, "empty cells are skipped")

	_, ok = tbl.Numeric(9)
	assert.False(t, ok)
}

func TestDescribe_MissingAndNonFiniteCells(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantMean  float64
		wantMin   float64
		wantText  bool
	}{
		{name: "NaN cell is missing", input: "x\n1\nNaN\n3\n", wantCount: 2, wantMean: 2, wantMin: 1},
		{name: "lower-case nan", input: "x\n1\nnan\n5\n", wantCount: 2, wantMean: 3, wantMin: 1},
		{name: "empty cell is missing", input: "x,y\n1,a\n,b\n3,c\n", wantCount: 2, wantMean: 2, wantMin: 1},
		{name: "inf makes the column text", input: "x\n1\ninf\n3\n", wantText: true},
		{name: "negative infinity makes the column text", input: "x\n1\n-Infinity\n", wantText: true},
		{name: "all NaN makes the column text", input: "x\nNaN\nNaN\n", wantText: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ParseCSV(strings.NewReader(tt.input))
			require.NoError(t, err)

			s := Describe(tbl)
			if tt.wantText {
				assert.Empty(t, s.Numeric)
				require.NotEmpty(t, s.Text)
				return
			}
			require.Len(t, s.Numeric, 1)
			x := s.Numeric[0]
			assert.Equal(t, tt.wantCount, x.Count)
			assert.InDelta(t, tt.wantMean, x.Mean, 1e-12)
			assert.InDelta(t, tt.wantMin, x.Min, 1e-12)
			assert.False(t, math.IsNaN(x.Max))
		})
	}
}

func TestDescribe_HeaderOnly(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)

	s := Describe(tbl)
	assert.Equal(t, 0, s.Rows)
	assert.Equal(t, 2, s.Columns)
	assert.Empty(t, s.Numeric)
	require.Len(t, s.Text, 2)
	assert.Equal(t, 0, s.Text[0].Count)
	assert.Equal(t, "", s.Text[0].Top)

	header, rows := s.Grid()
	assert.Equal(t, []string{"", "a", "b"}, header)
	assert.Equal(t, []string{"top", "NaN", "NaN"}, rows[2])
}

func TestDescribe_Numeric(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("label,x\na,1\nb,2\nc,3\nd,4\n"))
	require.NoError(t, err)

	s := Describe(tbl)
	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 2, s.Columns)
	assert.Empty(t, s.Text, "text columns are skipped when numeric ones exist")
	require.Len(t, s.Numeric, 1)

	x := s.Numeric[0]
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, 4, x.Count)
	assert.InDelta(t, 2.5, x.Mean, 1e-12)
	require.NotNil(t, x.Std)
	assert.InDelta(t, math.Sqrt(5.0/3.0), *x.Std, 1e-12)
	assert.Equal(t, 1.0, x.Min)
	assert.InDelta(t, 1.75, x.Q25, 1e-12)
	assert.InDelta(t, 2.5, x.Q50, 1e-12)
	assert.InDelta(t, 3.25, x.Q75, 1e-12)
	assert.Equal(t, 4.0, x.Max)
}

func TestDescribe_SingleValueHasNoStd(t *testing.T) {
	tbl := &Table{Columns: []string{"v"}, Rows: [][]string{{"7"}}}

	s := Describe(tbl)
	require.Len(t, s.Numeric, 1)
	assert.Nil(t, s.Numeric[0].Std)
	assert.Equal(t, 7.0, s.Numeric[0].Q25)
	assert.Equal(t, 7.0, s.Numeric[0].Q75)
}

func TestDescribe_Text(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("fruit,colour\napple,red\npear,green\napple,green\nplum,\n"))
	require.NoError(t, err)

	s := Describe(tbl)
	assert.Empty(t, s.Numeric)
	require.Len(t, s.Text, 2)

	fruit := s.Text[0]
	assert.Equal(t, TextSummary{Name: "fruit", Count: 4, Unique: 3, Top: "apple", Freq: 2}, fruit)

	colour := s.Text[1]
	assert.Equal(t, 3, colour.Count)
	assert.Equal(t, 2, colour.Unique)
	assert.Equal(t, "green", colour.Top)
	assert.Equal(t, 2, colour.Freq)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}

	tests := []struct {
		q    float64
		want float64
	}{
		{0, 10},
		{0.25, 20},
		{0.5, 30},
		{0.1, 14},
		{0.9, 46},
		{1, 50},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(sorted, tt.q), 1e-12, "q=%v", tt.q)
	}
}

func TestSummaryGrid(t *testing.T) {
	tbl := &Table{Columns: []string{"A", "B"}, Rows: [][]string{{"1", "5"}, {"3", "5"}}}

	header, rows := Describe(tbl).Grid()
	assert.Equal(t, []string{"", "A", "B"}, header)
	require.Len(t, rows, len(StatNames))
	assert.Equal(t, []string{"count", "2.000000", "2.000000"}, rows[0])
	assert.Equal(t, []string{"mean", "2.000000", "5.000000"}, rows[1])
	assert.Equal(t, "std", rows[2][0])
	assert.Equal(t, "0.000000", rows[2][2])
	assert.Equal(t, []string{"max", "3.000000", "5.000000"}, rows[7])
}

func TestSummaryGrid_Text(t *testing.T) {
	tbl := &Table{Columns: []string{"k"}, Rows: [][]string{}}

	header, rows := Describe(tbl).Grid()
	assert.Equal(t, []string{"", "k"}, header)
	require.Len(t, rows, len(TextStatNames))
	assert.Equal(t, []string{"count", "0"}, rows[0])
	assert.Equal(t, []string{"top", "NaN"}, rows[2])
}

func TestRandom(t *testing.T) {
	a := Random(rand.New(rand.NewSource(1)), 20, DefaultColumns)
	b := Random(rand.New(rand.NewSource(1)), 20, DefaultColumns)

	assert.Equal(t, []string{"A", "B", "C"}, a.Columns)
	assert.Equal(t, 20, a.Len())
	assert.Equal(t, a, b)

	for i := range a.Columns {
		values, ok := a.Numeric(i)
		require.True(t, ok)
		assert.Len(t, values, 20)
	}

	assert.Equal(t, 0, Random(rand.New(rand.NewSource(1)), -5, DefaultColumns).Len())
}

func TestHead(t *testing.T) {
	tbl := Random(rand.New(rand.NewSource(1)), 10, DefaultColumns)

	assert.Equal(t, 5, tbl.Head(5).Len())
	assert.Equal(t, 10, tbl.Head(50).Len())
	assert.Equal(t, 10, tbl.Head(-1).Len())
	assert.Equal(t, tbl.Columns, tbl.Head(2).Columns)
}
