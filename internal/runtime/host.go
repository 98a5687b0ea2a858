// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"errors"
	"os/exec"

	log "github.com/charmbracelet/log"

	"terrabake-cli/internal/task"
)

// HostRunner executes commands directly on the host. It serves both the
// local and pipeline runtime modes; the two differ only in where the
// credentials come from, which is outside this layer's concern.
type HostRunner struct{}

// NewHostRunner creates a new host runner.
func NewHostRunner() *HostRunner {
	return &HostRunner{}
}

// Name returns the runner name.
func (r *HostRunner) Name() string {
	return "host"
}

// Available returns whether this runner is available. Direct execution is
// always possible; individual tools may still be missing, which surfaces as
// the exec error for that invocation.
func (r *HostRunner) Available() bool {
	return true
}

// Run executes the command with streams wired to the context. The tool's
// exit code passes through unchanged.
func (r *HostRunner) Run(ctx *ExecutionContext, c task.Command) *Result {
	cmd := r.prepare(ctx, c)
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr
	cmd.Stdin = ctx.Stdin

	if ctx.Verbose {
		log.Debug("executing on host", "command", task.Render(c), "workdir", cmd.Dir)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: ExitCode(exitErr.ExitCode())}
		}
		return errResult("failed to execute '%s': %w", c.Name, err)
	}

	return &Result{}
}

// RunCapture executes the command and captures its stdout. Stderr still
// streams to the context so tool diagnostics stay visible.
func (r *HostRunner) RunCapture(ctx *ExecutionContext, c task.Command) *Result {
	cmd := r.prepare(ctx, c)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = ctx.Stderr

	if ctx.Verbose {
		log.Debug("executing on host (captured)", "command", task.Render(c), "workdir", cmd.Dir)
	}

	err := cmd.Run()
	result := &Result{Output: stdout.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = ExitCode(exitErr.ExitCode())
		} else {
			result.ExitCode = 1
			result.Error = err
		}
	}
	return result
}

func (r *HostRunner) prepare(ctx *ExecutionContext, c task.Command) *exec.Cmd {
	cmd := exec.CommandContext(ctx.Context, c.Name, c.Args...)
	cmd.Dir = ctx.WorkDir
	cmd.Env = EnvToSlice(ctx.Env)
	return cmd
}
