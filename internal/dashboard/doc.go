// Package dashboard implements the interactive terminal dashboard.
//
// The dashboard is a single Bubble Tea program with five pages, switched with
// tab/shift+tab or the digit keys:
//
//	1 Home                - name input and age slider, renders a greeting
//	2 Data Analysis       - random A/B/C sample table with describe statistics
//	3 Interactive Charts  - line/bar/scatter of random points in a chosen colour
//	4 Real-time Demo      - simulator run with metric cards, chart and progress
//	5 File Upload         - .csv file picker, preview table and statistics
//
// # Architecture
//
// Model holds one state struct per page. Update routes global keys first
// (quit, help, page switching) and hands everything else to the active page.
// View dispatches to one render function per page; each render reads only
// its page state and the terminal size.
//
// # Real-time Demo
//
// Pressing enter starts a simulator.Run in the background. The model polls
// its frame channel with a tea.Cmd, one frame per message, so frames arrive
// in order and the run can never get ahead of the screen. Switching pages
// leaves the run going; x cancels it, and quitting cancels it too.
//
// # Keyboard Shortcuts
//
//	tab, shift+tab  - Next / previous page
//	1-5             - Jump to page
//	?               - Toggle help overlay
//	q, Ctrl+C       - Quit
package dashboard
