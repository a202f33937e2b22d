// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags, environment variables and the optional conduit.toml
// into the application's internal configuration.
package cli
