package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Output of a completed command.
type Result struct {
	ExitCode int    // Exit code of the process.
	Stdout   string // Captured standard output.
	Stderr   string // Captured standard error.
}

// Controls a single command execution.
type Options struct {
	Dir     string            // Working directory. Empty means the current directory.
	Env     map[string]string // Extra environment variables, overlaid on the process environment.
	Timeout time.Duration     // Per-command deadline. Zero means no deadline beyond ctx.
	Stream  bool              // Mirror output to the orchestrator's stdout/stderr while capturing it.
}

// Runs a host command and waits for it to exit.
//
// The command must be resolvable via PATH or be an absolute path; a missing
// tool fails with [ErrToolNotFound] before anything is started. A non-zero
// exit fails with [ErrToolFailed] carrying the exit code and captured
// stderr, and an expired deadline fails with [ErrToolTimeout]. The result
// is returned alongside the error whenever the process ran.
func Run(ctx context.Context, opts Options, name string, args ...string) (*Result, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = opts.Dir
	cmd.Env = environ(opts.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Stream {
		cmd.Stdout = io.MultiWriter(os.Stdout, &stdout)
		cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	}

	slog.Debug("run", "tool", name, "args", args, "dir", opts.Dir)

	runErr := cmd.Run()

	result := &Result{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if runErr == nil {
		return result, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return result, fmt.Errorf("%w: %s", ErrToolTimeout, name)
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return result, fmt.Errorf("%w: %s: exit code %d: %s",
			ErrToolFailed, name, result.ExitCode, firstLine(result.Stderr))
	}

	return result, fmt.Errorf("%w: %s: %v", ErrToolFailed, name, runErr)
}

// Returns the process environment with the given overrides applied.
func environ(overrides map[string]string) []string {
	env := os.Environ()
	for k, v := range overrides {
		env = append(env, k+"="+v)
	}
	return env
}

// Returns the first non-empty line of s, for compact error messages.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
