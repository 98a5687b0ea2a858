// SPDX-License-Identifier: MPL-2.0

package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine provides the common implementation for CLI-based compose
	// engines. Docker and Podman embed this struct; everything that is
	// identical across engines (argv building, process execution, exit code
	// capture) lives here.
	BaseCLIEngine struct {
		name        string
		binaryPath  string
		execCommand ExecCommandFunc
	}
)

// WithExecCommand injects a command constructor, used by tests to observe
// argv without spawning processes.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.execCommand = fn
	}
}

// NewBaseCLIEngine creates a base engine around the given binary path.
func NewBaseCLIEngine(name, binaryPath string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		name:        name,
		binaryPath:  binaryPath,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the engine name.
func (e *BaseCLIEngine) Name() string { return e.name }

// BinaryPath returns the resolved engine binary path (empty if not found).
func (e *BaseCLIEngine) BinaryPath() string { return e.binaryPath }

// --- Argument Builders ---

// UpArgs constructs arguments for `compose up -d <service>`.
func (e *BaseCLIEngine) UpArgs(opts ServiceOptions) []string {
	args := []string{"compose"}
	if opts.ComposeFile != "" {
		args = append(args, "-f", opts.ComposeFile)
	}
	args = append(args, "up", "-d")
	if opts.Service != "" {
		args = append(args, opts.Service)
	}
	return args
}

// ExecArgs constructs arguments for `compose exec <service> <argv...>`.
// -T disables TTY allocation; tool output is stream-oriented.
// Env names are emitted in sorted order so identical options always yield
// identical argv.
func (e *BaseCLIEngine) ExecArgs(opts ExecOptions) []string {
	args := []string{"compose"}
	if opts.ComposeFile != "" {
		args = append(args, "-f", opts.ComposeFile)
	}
	args = append(args, "exec", "-T")

	for _, name := range opts.EnvNames {
		args = append(args, "-e", name)
	}

	keys := make([]string, 0, len(opts.Env))
	for k := range opts.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, opts.Env[k]))
	}

	args = append(args, opts.Service)
	args = append(args, opts.Argv...)
	return args
}

// DownArgs constructs arguments for `compose down`.
func (e *BaseCLIEngine) DownArgs(opts ServiceOptions) []string {
	args := []string{"compose"}
	if opts.ComposeFile != "" {
		args = append(args, "-f", opts.ComposeFile)
	}
	return append(args, "down")
}

// --- Command Execution ---

// RunCommandStatus executes a command and returns only the error status.
func (e *BaseCLIEngine) RunCommandStatus(ctx context.Context, args ...string) error {
	cmd := e.CreateCommand(ctx, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}
	return nil
}

// RunCommandWithOutput executes a command with stdout captured to a buffer.
func (e *BaseCLIEngine) RunCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	cmd := e.CreateCommand(ctx, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}

	return out.String(), nil
}

// CreateCommand creates an exec.Cmd for the given arguments. Callers that
// need to wire stdin/stdout/stderr use this directly.
func (e *BaseCLIEngine) CreateCommand(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, e.binaryPath, args...)
}

// --- Promoted Engine Methods (shared by Docker and Podman) ---

// Up starts the named service in detached mode.
func (e *BaseCLIEngine) Up(ctx context.Context, opts ServiceOptions) error {
	cmd := e.CreateCommand(ctx, e.UpArgs(opts)...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to start compose service '%s': %w", opts.Service, err)
	}
	return nil
}

// Exec runs argv inside the named running service. Tool failures surface as
// the exit code in the result; only engine-level failures set Error.
func (e *BaseCLIEngine) Exec(ctx context.Context, opts ExecOptions) (*ExecResult, error) {
	cmd := e.CreateCommand(ctx, e.ExecArgs(opts)...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	err := cmd.Run()

	result := &ExecResult{}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Error = err
		}
	}

	return result, nil
}

// Down stops and removes the compose project's containers.
func (e *BaseCLIEngine) Down(ctx context.Context, opts ServiceOptions) error {
	cmd := e.CreateCommand(ctx, e.DownArgs(opts)...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to stop compose project: %w", err)
	}
	return nil
}
