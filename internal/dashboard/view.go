package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDashboard renders the header, the active page and the footer.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderPage())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderPage dispatches to the active page's render function.
func (m Model) renderPage() string {
	width := m.contentWidth()
	switch m.page {
	case PageAnalysis:
		return m.analysis.view()
	case PageCharts:
		return m.charts.view(width)
	case PageRealtime:
		return m.realtime.view(width)
	case PageUpload:
		return m.upload.view()
	default:
		return m.home.view(width)
	}
}

// renderHeader renders the title and the page tabs. A run going on in the
// background shows as a live marker.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("datadash")

	tabs := make([]string, len(Pages))
	for i, p := range Pages {
		label := fmt.Sprintf("%d %s", i+1, p)
		if p == m.page {
			tabs[i] = TabActiveStyle.Render(label)
		} else {
			tabs[i] = TabStyle.Render(label)
		}
	}

	header := title + " " + strings.Join(tabs, "")

	if m.realtime.running() && m.page != PageRealtime {
		iter := 0
		if m.realtime.frame != nil {
			iter = m.realtime.frame.Iteration
		}
		header += lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Render(fmt.Sprintf("  ● live %d/%d", iter, m.realtime.steps))
	}

	return HeaderStyle.Render(header)
}

// pageHints are the footer hints for each page.
var pageHints = map[Page][]string{
	PageHome:     {"enter next field", "←→ age"},
	PageAnalysis: {"r regenerate", "↑↓ scroll"},
	PageCharts:   {"↑↓ control", "←→ change", "enter generate"},
	PageRealtime: {"enter start", "x stop"},
	PageUpload:   {"enter select", "esc back"},
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := append([]string{}, pageHints[m.page]...)
	hints = append(hints, "tab page", "? help")
	if m.page == PageHome && m.home.typing() {
		hints = append(hints, "ctrl+c quit")
	} else {
		hints = append(hints, "q quit")
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
