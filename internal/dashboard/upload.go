package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/datadash/datadash/internal/dataset"
	"github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/ui"
	"github.com/dustin/go-humanize"
)

// PreviewRows is how many leading rows of an uploaded file are shown.
const PreviewRows = 5

// uploadPage holds the File Upload view: a .csv picker, then the parsed
// file's preview and statistics.
type uploadPage struct {
	picker filepicker.Model

	path    string
	size    int64
	data    *dataset.Table
	summary dataset.Summary
	err     error

	result  viewport.Model
	showing bool
}

func newUploadPage(dir string) uploadPage {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowPermissions = false
	if dir != "" {
		fp.CurrentDirectory = dir
	}
	return uploadPage{
		picker: fp,
		result: viewport.New(80, 20),
	}
}

// LoadCSV reads and parses the file at path.
func LoadCSV(path string) (*dataset.Table, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.WrapWithCode(err, errors.ErrData,
			"Cannot open "+filepath.Base(path), "Check the file exists and is readable")
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	t, err := dataset.ParseCSV(f)
	if err != nil {
		return nil, size, err
	}
	return t, size, nil
}

// load parses path and switches to the result view. Parse errors are kept
// for display rather than returned.
func (p *uploadPage) load(path string) {
	p.path = path
	p.data, p.size, p.err = LoadCSV(path)
	if p.err == nil {
		p.summary = dataset.Describe(p.data)
	}
	p.showing = true
	p.result.SetContent(p.resultContent())
	p.result.GotoTop()
}

func (p *uploadPage) resize(width, height int) {
	p.result.Width = max(width, 20)
	p.result.Height = max(height-8, 5)
}

func (p *uploadPage) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && p.showing {
		if key.String() == KeyClose {
			p.showing = false
			return nil
		}
		var cmd tea.Cmd
		p.result, cmd = p.result.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)

	if ok, path := p.picker.DidSelectFile(msg); ok {
		p.load(path)
	}
	if ok, path := p.picker.DidSelectDisabledFile(msg); ok {
		p.path = path
		p.data = nil
		p.err = errors.New(errors.ErrData,
			filepath.Base(path)+" is not a CSV file",
			"Only .csv files are accepted")
		p.showing = true
		p.result.SetContent(p.resultContent())
	}
	return cmd
}

// resultContent renders the parsed file, or the reason it could not be read.
func (p uploadPage) resultContent() string {
	var b strings.Builder

	b.WriteString(SectionStyle.Render(filepath.Base(p.path)))
	if p.err != nil {
		b.WriteString("\n\n")
		b.WriteString(ErrorStyle.Render(ui.SymbolFail + " " + errorSummary(p.err)))
		return b.String()
	}

	b.WriteString(MutedStyle.Render(fmt.Sprintf("  %s, %d rows × %d columns",
		humanize.Bytes(uint64(p.size)), p.data.Len(), len(p.data.Columns))))
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Data Preview"))
	b.WriteString("\n")
	head := p.data.Head(PreviewRows)
	if head.Len() == 0 {
		b.WriteString(MutedStyle.Render("(no rows)"))
	} else {
		b.WriteString(ui.RenderGrid(head.Columns, head.Rows))
	}
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Data Statistics"))
	b.WriteString("\n")
	header, rows := p.summary.Grid()
	if len(rows) == 0 || len(header) < 2 {
		b.WriteString(MutedStyle.Render("(nothing to describe)"))
	} else {
		b.WriteString(ui.RenderGrid(header, rows))
	}

	return b.String()
}

// errorSummary flattens a structured error onto one line.
func errorSummary(err error) string {
	var parts []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ui.SymbolFail))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " · ")
}

func (p uploadPage) view() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("File Upload"))
	b.WriteString("\n")

	if p.showing {
		b.WriteString(p.result.View())
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render("esc: choose another file"))
		return b.String()
	}

	b.WriteString(LabelStyle.Render("Choose a CSV file"))
	b.WriteString(MutedStyle.Render("  " + p.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(p.picker.View())

	return b.String()
}
