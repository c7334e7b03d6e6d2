// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It builds
// the cobra command tree, resolves settings from flags, PIPECONF_*
// environment variables and an optional .env file, and runs the matching
// App operation.
package cli
