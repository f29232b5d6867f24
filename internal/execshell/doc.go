// Package execshell provides structured helpers for running external processes.
//
// It wraps os/exec with logging and cancellation via ProcessExecutor, exposes
// OSCommandRunner for direct process execution with concurrent stream capture,
// and defines ShellDelegator for running multi-stage pipelines through the
// platform shell.
package execshell
