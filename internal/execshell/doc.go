// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution (captured, terminal-inherited, or piped output),
// and defines the abstractions gitmaint uses to run git and wc in a testable
// manner.
package execshell
