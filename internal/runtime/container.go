// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"

	log "github.com/charmbracelet/log"

	"terrabake-cli/internal/compose"
	"terrabake-cli/internal/task"
)

// ContainerRunner executes commands inside the per-cloud compose service
// (`<cloud>-terraform-packer`). Each invocation is prefixed with the compose
// exec indirection; at most one service instance per cloud is active at a
// time, identified by the cloud name.
type ContainerRunner struct {
	engine      compose.Engine
	composeFile string
}

// NewContainerRunner creates a container runner on top of a compose engine.
func NewContainerRunner(engine compose.Engine, composeFile string) *ContainerRunner {
	return &ContainerRunner{engine: engine, composeFile: composeFile}
}

// Name returns the runner name.
func (r *ContainerRunner) Name() string {
	return "container"
}

// Available returns whether the underlying compose engine is usable.
func (r *ContainerRunner) Available() bool {
	return r.engine.Available()
}

// Run executes the command inside the request's compose service. Credential
// variables are forwarded by name only; their values travel through the
// engine's environment, never through argv.
func (r *ContainerRunner) Run(ctx *ExecutionContext, c task.Command) *Result {
	opts := r.execOptions(ctx, c)
	opts.Stdin = ctx.Stdin
	opts.Stdout = ctx.Stdout
	opts.Stderr = ctx.Stderr

	if ctx.Verbose {
		log.Debug("executing in container",
			"engine", r.engine.Name(),
			"service", opts.Service,
			"command", task.Render(c),
		)
	}

	res, err := r.engine.Exec(ctx.Context, opts)
	if err != nil {
		return errResult("failed to exec in service '%s': %w", opts.Service, err)
	}
	return &Result{ExitCode: ExitCode(res.ExitCode), Error: res.Error}
}

// RunCapture executes the command in the service and captures its stdout.
func (r *ContainerRunner) RunCapture(ctx *ExecutionContext, c task.Command) *Result {
	opts := r.execOptions(ctx, c)

	var stdout bytes.Buffer
	opts.Stdout = &stdout
	opts.Stderr = ctx.Stderr

	res, err := r.engine.Exec(ctx.Context, opts)
	if err != nil {
		return errResult("failed to exec in service '%s': %w", opts.Service, err)
	}
	return &Result{
		ExitCode: ExitCode(res.ExitCode),
		Error:    res.Error,
		Output:   stdout.String(),
	}
}

func (r *ContainerRunner) execOptions(ctx *ExecutionContext, c task.Command) compose.ExecOptions {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	argv = append(argv, c.Args...)

	return compose.ExecOptions{
		ComposeFile: r.composeFile,
		Service:     ctx.Request.Cloud.ServiceName(),
		Argv:        argv,
		EnvNames:    ctx.EnvForward,
	}
}
