package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result holds the outcome of a completed external command.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner executes external commands synchronously. No timeout is applied
// beyond cancellation of the provided context; a caller that passes
// context.Background() blocks until the process exits.
type Runner interface {
	// Run executes name with args, using dir as the working directory
	// (empty means the current directory), and blocks until the process
	// exits. A nonzero exit status is reported through Result.ExitCode,
	// not through err; err is reserved for failures to start or wait on
	// the process itself.
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

func New() Runner {
	return &execRunner{}
}

type execRunner struct{}

var _ Runner = &execRunner{}

func (r *execRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}

	return res, nil
}
