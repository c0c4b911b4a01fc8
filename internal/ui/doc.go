// Package ui provides terminal output components for datadash's CLI and
// dashboard.
//
// # Components Overview
//
//	Header        - Branded title line with version and detail lines
//	Progress bars - Bracketed block bars colored by completion
//	Sparkline     - Mini line graphs for a metric series
//	Tables        - Bubbles tables, plus static grids for describe output
//
// # Color Scheme
//
// The neon palette is hex-based. Semantic colors map onto it:
//
//	ColorSuccess (green) - Completed work
//	ColorError   (red)   - Failures
//	ColorWarning (amber) - Warnings
//	ColorInfo    (cyan)  - Informational output and series
//	ColorMuted   (gray)  - Secondary text
//
// Use DisableColors() to switch to plain output (for --no-color).
//
// # Grids
//
// RenderGrid sizes columns to their content and renders a non-interactive
// table, which is how CSV previews and describe statistics are printed:
//
//	header, rows := summary.Grid()
//	fmt.Println(ui.RenderGrid(header, rows))
package ui
