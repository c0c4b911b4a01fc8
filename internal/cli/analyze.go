package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/datadash/datadash/internal/dataset"
	"github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/ui"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Output formats for analyze.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// AnalyzePreviewRows is how many leading rows analyze prints.
const AnalyzePreviewRows = 5

// AnalyzeResult is what analyze reports for one file.
type AnalyzeResult struct {
	File    string          `json:"file" yaml:"file"`
	Size    int64           `json:"size" yaml:"size"`
	Preview *dataset.Table  `json:"preview" yaml:"preview"`
	Summary dataset.Summary `json:"summary" yaml:"summary"`
}

// Analyze reads and describes the CSV file at path.
func Analyze(path string) (*AnalyzeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrData,
			"Cannot open "+path,
			"Check the path is correct and the file is readable")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrData, "Cannot stat "+path, "")
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrData,
			path+" is a directory",
			"Pass a .csv file")
	}

	t, err := dataset.ParseCSV(f)
	if err != nil {
		return nil, err
	}

	return &AnalyzeResult{
		File:    filepath.Base(path),
		Size:    info.Size(),
		Preview: t.Head(AnalyzePreviewRows),
		Summary: dataset.Describe(t),
	}, nil
}

func analyzeCommand(w io.Writer, path, format string) error {
	format = strings.ToLower(format)
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown format: %s", format),
			"Use --format table, json or yaml")
	}

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		ui.PrintWarning(filepath.Base(path) + " does not have a .csv extension; parsing it anyway")
	}

	res, err := Analyze(path)
	if err != nil {
		if format == FormatJSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	switch format {
	case FormatJSON:
		return WriteJSONSuccess(w, res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return errors.WrapWithCode(err, errors.ErrData, "Failed to encode YAML", "")
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, renderAnalyzeTable(res))
		return err
	}
}

func renderAnalyzeTable(res *AnalyzeResult) string {
	var b strings.Builder

	b.WriteString(ui.InfoStyle().Bold(true).Render(res.File))
	b.WriteString(ui.MutedStyle().Render(fmt.Sprintf("  %s, %d rows × %d columns",
		humanize.Bytes(uint64(res.Size)), res.Summary.Rows, res.Summary.Columns)))
	b.WriteString("\n\n")

	b.WriteString("Data Preview\n")
	if res.Preview.Len() == 0 {
		b.WriteString(ui.MutedStyle().Render("(no rows)"))
	} else {
		b.WriteString(ui.RenderGrid(res.Preview.Columns, res.Preview.Rows))
	}
	b.WriteString("\n\n")

	b.WriteString("Data Statistics\n")
	header, rows := res.Summary.Grid()
	if len(rows) == 0 || len(header) < 2 {
		b.WriteString(ui.MutedStyle().Render("(nothing to describe)"))
	} else {
		b.WriteString(ui.RenderGrid(header, rows))
	}
	b.WriteString("\n")

	return b.String()
}
