// SPDX-License-Identifier: MPL-2.0

// Package runtime executes built task commands either directly on the host
// (local and pipeline modes) or inside the per-cloud compose service
// (container mode). Execution is synchronous and sequential; one external
// process runs to completion before the next begins, and tool failures
// propagate as exit codes without translation.
package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"terrabake-cli/internal/cloud"
	"terrabake-cli/internal/compose"
	"terrabake-cli/internal/task"
)

type (
	// ExecutionContext contains everything needed to run task commands.
	ExecutionContext struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// Request is the resolved task request.
		Request task.Request
		// WorkDir is the project root all relative tool paths resolve against.
		WorkDir string
		// Env is the boundary snapshot of the process environment.
		Env map[string]string
		// EnvForward lists variable names forwarded into container mode
		// execs by name, so credential values never appear in argv.
		EnvForward []string
		// Stdout is where to write standard output.
		Stdout io.Writer
		// Stderr is where to write standard error.
		Stderr io.Writer
		// Stdin is where to read standard input.
		Stdin io.Reader
		// Verbose enables debug logging of each invocation.
		Verbose bool
	}

	// Result contains the outcome of a single command execution.
	Result struct {
		// ExitCode is the exit code of the command.
		ExitCode ExitCode
		// Error contains any infrastructure-level error. Tool failures are
		// reported via ExitCode only.
		Error error
		// Output contains captured stdout when run through RunCapture.
		Output string
	}

	// Runner executes a single built command.
	Runner interface {
		// Name returns the runner name.
		Name() string
		// Available returns whether this runner can execute on this system.
		Available() bool
		// Run executes cmd with streams wired to the context.
		Run(ctx *ExecutionContext, cmd task.Command) *Result
	}

	// CapturingRunner is implemented by runners that can capture stdout.
	CapturingRunner interface {
		// RunCapture executes cmd and captures its stdout into the result.
		RunCapture(ctx *ExecutionContext, cmd task.Command) *Result
	}
)

// NewExecutionContext creates an execution context with standard streams
// and a background context.
func NewExecutionContext(req task.Request, env map[string]string) *ExecutionContext {
	return &ExecutionContext{
		Context: context.Background(),
		Request: req,
		Env:     env,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
	}
}

// Success returns true if the command executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// ForMode returns the runner for the given runtime mode. Local and pipeline
// modes execute directly on the host; container mode requires a usable
// compose engine.
func ForMode(mode cloud.RuntimeMode, engineType compose.EngineType, composeFile string) (Runner, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if !mode.InContainer() {
		return NewHostRunner(), nil
	}
	engine, err := compose.NewEngine(engineType)
	if err != nil {
		return nil, err
	}
	return NewContainerRunner(engine, composeFile), nil
}

// EnvToSlice converts an environment map to the KEY=VALUE slice form that
// exec.Cmd expects.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	return result
}

// RunAll executes the commands in order, stopping at the first non-success
// result, which is returned. The failure model is pass-through: no retries,
// no recovery.
func RunAll(runner Runner, ctx *ExecutionContext, cmds []task.Command) *Result {
	for _, c := range cmds {
		if res := runner.Run(ctx, c); !res.Success() {
			return res
		}
	}
	return &Result{}
}

// errResult wraps an infrastructure failure as a Result.
func errResult(format string, args ...any) *Result {
	return &Result{ExitCode: 1, Error: fmt.Errorf(format, args...)}
}
