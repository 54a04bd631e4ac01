// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines abstractions used throughout gitprep
// to run git, gpg, gh, and ssh-add in a testable manner.
package execshell
