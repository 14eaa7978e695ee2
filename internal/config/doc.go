// Package config manages bbext settings. Values resolve, in order of
// precedence, from bound command-line flags, BBEXT_* environment variables,
// the user config file at ~/.bbext/config.yaml, and built-in defaults.
package config
