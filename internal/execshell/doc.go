// Package execshell provides structured helpers for invoking the external git client.
//
// ShellExecutor wraps a CommandRunner (OSCommandRunner by default) with zap
// logging, lifecycle observers, and typed errors so callers can tell a process
// that exited non-zero (CommandFailedError) from one that never ran
// (CommandExecutionError).
package execshell
