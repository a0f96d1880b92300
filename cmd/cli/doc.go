// Package cli constructs the gitmaint command-line interface. The root command
// maintains repositories and a list subcommand prints the repositories it would
// maintain. Configuration comes from the embedded defaults, config.yaml, GITMAINT_
// environment variables, and flags, in increasing priority.
package cli
