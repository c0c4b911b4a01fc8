package dashboard

import tea "github.com/charmbracelet/bubbletea"

// Page identifies one of the dashboard views.
type Page int

const (
	PageHome Page = iota
	PageAnalysis
	PageCharts
	PageRealtime
	PageUpload
)

// pageCount is the number of pages; Next and Prev wrap around it.
const pageCount = 5

// Pages lists every page in navigation order.
var Pages = []Page{PageHome, PageAnalysis, PageCharts, PageRealtime, PageUpload}

// String returns the page's navigation label.
func (p Page) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PageAnalysis:
		return "Data Analysis"
	case PageCharts:
		return "Interactive Charts"
	case PageRealtime:
		return "Real-time Demo"
	case PageUpload:
		return "File Upload"
	default:
		return "Home"
	}
}

// Next cycles to the following page.
func (p Page) Next() Page {
	return Page((int(p) + 1) % pageCount)
}

// Prev cycles to the preceding page.
func (p Page) Prev() Page {
	return Page((int(p) + pageCount - 1) % pageCount)
}

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyNextPage   = "tab"
	KeyPrevPage   = "shift+tab"
	KeyToggleHelp = "?"
	KeyClose      = "esc"
	KeyUp         = "up"
	KeyUpK        = "k"
	KeyDown       = "down"
	KeyDownJ      = "j"
	KeyLeft       = "left"
	KeyLeftH      = "h"
	KeyRight      = "right"
	KeyRightL     = "l"
	KeyPageUp     = "pgup"
	KeyPageDown   = "pgdown"
	KeyFirst      = "home"
	KeyLast       = "end"
	KeyEnter      = "enter"
	KeyRegenerate = "r"
	KeyStart      = "s"
	KeyCancel     = "x"
)

// pageForKey maps the digit keys to pages.
func pageForKey(key string) (Page, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '0'+pageCount {
		return 0, false
	}
	return Page(key[0] - '1'), true
}

// HandleKeyMsg processes the keys that work on every page: quitting, help,
// and page navigation. It returns false for keys the active page should
// handle instead.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyQuitAlt {
		return true, m.quit()
	}

	// While the name field has focus only page switching is global; every
	// other key is text.
	if m.page == PageHome && m.home.typing() {
		switch key {
		case KeyNextPage:
			m.setPage(m.page.Next())
			return true, nil
		case KeyPrevPage:
			m.setPage(m.page.Prev())
			return true, nil
		}
		return false, nil
	}

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyClose {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit:
		return true, m.quit()

	case KeyNextPage:
		m.setPage(m.page.Next())
		return true, nil

	case KeyPrevPage:
		m.setPage(m.page.Prev())
		return true, nil
	}

	if p, ok := pageForKey(key); ok {
		m.setPage(p)
		return true, nil
	}

	return false, nil
}

// setPage switches the visible page. Leaving a page keeps its state,
// including a running simulation.
func (m *Model) setPage(p Page) {
	m.page = p
	m.showHelp = false
}

// quit cancels any running simulation and ends the program.
func (m *Model) quit() tea.Cmd {
	m.realtime.cancel()
	m.quitting = true
	return tea.Quit
}
