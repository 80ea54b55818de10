package sshexec

import "context"

// Result carries the captured output of one remote command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes a command on a remote host identified by an SSH target
// string. Implementations must be non-interactive: they fail rather than
// prompt for credentials. Keep the interface narrow so tests can fake it.
type Runner interface {
	Run(ctx context.Context, target, command string) (Result, error)
}
