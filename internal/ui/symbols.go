package ui

// Unicode symbols for status indicators. SymbolFail matches the prefix
// structured errors print.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "⚠"
	SymbolSkipped = "⊘"
)
