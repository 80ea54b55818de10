package sshexec

import (
	"context"
	"fmt"
)

// FakeCall records one Run invocation against the fake.
type FakeCall struct {
	Target  string
	Command string
}

// FakeRunner is an in-memory Runner for unit tests. Outputs and failures
// are keyed by target string.
type FakeRunner struct {
	Calls   []FakeCall
	Outputs map[string]string // target -> stdout
	Fail    map[string]string // target -> error message
}

func NewFake() *FakeRunner {
	return &FakeRunner{
		Outputs: map[string]string{},
		Fail:    map[string]string{},
	}
}

func (f *FakeRunner) Run(ctx context.Context, target, command string) (Result, error) {
	f.Calls = append(f.Calls, FakeCall{Target: target, Command: command})
	if err := ctx.Err(); err != nil {
		return Result{ExitCode: -1}, err
	}
	if msg, ok := f.Fail[target]; ok {
		return Result{Stderr: msg, ExitCode: 1}, fmt.Errorf("ssh %s: %s", target, msg)
	}
	return Result{Stdout: f.Outputs[target]}, nil
}

// Targets returns the dispatched target strings in call order.
func (f *FakeRunner) Targets() []string {
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.Target)
	}
	return out
}
