// Package cli implements the datadash command tree.
//
// Every command is a package-level *cobra.Command registered in init().
// RunE loads configuration, applies flag overrides, and hands off to an
// xxxCommand function that takes its output writer explicitly so tests can
// capture it.
//
// # Commands
//
//	redirect    HTTP redirect page
//	chart       HTTP chart service (page, JSON, PNG, realtime, upload, metrics)
//	serve       both services in one process
//	dashboard   full-screen terminal dashboard
//	simulate    headless metrics simulation
//	analyze     describe a CSV file
//	init        write .datadash.yaml
//	config      show or set configuration
//	version     build information
//	completion  shell completion scripts
//
// Long-running commands stop on SIGINT or SIGTERM through signalContext.
package cli
