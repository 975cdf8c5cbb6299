package installer

import (
	"context"
	"errors"
	"os/exec"
)

// Runner abstracts PATH lookup and process execution. Backends never call
// the os/exec package directly; tests substitute a scripted runner.
type Runner interface {
	LookPath(file string) (string, error)
	// Run executes a command and waits for it. A nonzero exit code is
	// reported through the first return value, not the error; the error
	// covers failures to start or to complete at all.
	Run(ctx context.Context, name string, args ...string) (exitCode int, output string, err error)
}

type execRunner struct{}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (int, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), string(out), nil
		}
		return -1, string(out), err
	}
	return 0, string(out), nil
}
