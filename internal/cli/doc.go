// Package cli defines the Cobra command tree. The root command extends a
// widget; list, doctor, config and version are subcommands. Commands resolve
// settings through the config package, delegate the work to pipeline and
// registry, and only handle flags, prompts and output formatting.
package cli
