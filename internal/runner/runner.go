package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"multicloud/pkg/provision"
)

// Runner executes an external tool and returns its stdout. A non-zero exit
// surfaces as *provision.ExternalToolError with the tool's stderr verbatim.
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error)
}

// ExecRunner runs tools as child processes.
type ExecRunner struct {
	logger *slog.Logger
}

var _ Runner = (*ExecRunner)(nil)

func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error) {
	r.logger.Debug("Executing external tool", "tool", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), &provision.ExternalToolError{
				Tool:     name,
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return "", fmt.Errorf("running %s: %w", name, err)
	}

	return stdout.String(), nil
}

// LookPath reports whether a tool is available on PATH.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found on PATH: %w", name, err)
	}
	return path, nil
}
