package dashboard

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/datadash/datadash/internal/dataset"
	"github.com/datadash/datadash/internal/ui"
)

// analysisTableHeight is how many sample rows are visible at once.
const analysisTableHeight = 10

// analysisPage holds the Data Analysis view: a random sample table and its
// describe statistics.
type analysisPage struct {
	rows    int
	data    *dataset.Table
	summary dataset.Summary
	table   table.Model
}

func newAnalysisPage(rows int, rng *rand.Rand) analysisPage {
	p := analysisPage{rows: rows}
	p.regenerate(rng)
	return p
}

// regenerate draws a fresh sample table.
func (p *analysisPage) regenerate(rng *rand.Rand) {
	p.data = dataset.Random(rng, p.rows, dataset.DefaultColumns)
	p.summary = dataset.Describe(p.data)

	header := append([]string{""}, p.data.Columns...)
	rows := make([][]string, len(p.data.Rows))
	for i, r := range p.data.Rows {
		rows[i] = append([]string{fmt.Sprint(i)}, r...)
	}
	p.table = ui.NewTable(ui.GridColumns(header, rows), ui.GridRows(rows), analysisTableHeight)
	p.table.Focus()
}

func (p *analysisPage) update(msg tea.Msg, rng *rand.Rand) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == KeyRegenerate {
		p.regenerate(rng)
		return nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (p analysisPage) view() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Data Analysis"))
	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Sample Data"))
	b.WriteString(MutedStyle.Render(fmt.Sprintf("  %d rows × %d columns", p.data.Len(), len(p.data.Columns))))
	b.WriteString("\n")
	b.WriteString(p.table.View())
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Data Statistics"))
	b.WriteString("\n")
	header, rows := p.summary.Grid()
	b.WriteString(ui.RenderGrid(header, rows))

	return b.String()
}
