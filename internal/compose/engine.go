// SPDX-License-Identifier: MPL-2.0

// Package compose abstracts the container runtime (Docker or Podman) behind
// a small engine interface driving `compose` for the per-cloud tool
// environments. All compose invocations go through the engine CLI; argv is
// assembled as structured argument lists.
package compose

import (
	"context"
	"fmt"
	"io"
)

// Engine drives a compose-capable container runtime.
type Engine interface {
	// Name returns the engine name (docker or podman).
	Name() string
	// Available checks if the engine is installed and its daemon reachable.
	Available() bool
	// Version returns the engine version.
	Version(ctx context.Context) (string, error)

	// Up starts the named service in detached mode.
	Up(ctx context.Context, opts ServiceOptions) error
	// Exec runs argv inside the named running service.
	Exec(ctx context.Context, opts ExecOptions) (*ExecResult, error)
	// Down stops and removes the compose project's containers.
	Down(ctx context.Context, opts ServiceOptions) error
}

// ServiceOptions identifies a compose file and, for Up, the service to start.
type ServiceOptions struct {
	// ComposeFile is the path to the compose file.
	ComposeFile string
	// Service is the service name; empty for project-wide operations (Down).
	Service string
	// Stdout is where to write engine output.
	Stdout io.Writer
	// Stderr is where to write engine errors.
	Stderr io.Writer
}

// ExecOptions describes a command to run inside a running service.
type ExecOptions struct {
	// ComposeFile is the path to the compose file.
	ComposeFile string
	// Service is the service to exec into.
	Service string
	// Argv is the program and arguments to run inside the service.
	Argv []string
	// Env contains extra environment variables passed into the exec.
	Env map[string]string
	// EnvNames are names forwarded from the caller's environment without
	// exposing their values on the command line (compose `-e NAME` form).
	EnvNames []string
	// Stdin, Stdout, Stderr wire the exec's streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ExecResult carries the exit status of an Exec.
type ExecResult struct {
	// ExitCode is the exit code of the command inside the container.
	ExitCode int
	// Error contains any engine-level failure (not tool failures).
	Error error
}

// EngineType identifies the container engine type.
type EngineType string

const (
	EngineTypeDocker EngineType = "docker"
	EngineTypePodman EngineType = "podman"
)

// ErrEngineNotAvailable is returned when no usable container engine exists.
type ErrEngineNotAvailable struct {
	Engine string
	Reason string
}

func (e *ErrEngineNotAvailable) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// NewEngine creates a container engine of the preferred type, falling back
// to the other engine when the preferred one is not usable.
func NewEngine(preferred EngineType) (Engine, error) {
	switch preferred {
	case EngineTypePodman:
		engine := NewPodmanEngine()
		if engine.Available() {
			return engine, nil
		}
		dockerEngine := NewDockerEngine()
		if dockerEngine.Available() {
			return dockerEngine, nil
		}
		return nil, &ErrEngineNotAvailable{Engine: string(preferred), Reason: "neither podman nor docker is usable"}
	case EngineTypeDocker, "":
		engine := NewDockerEngine()
		if engine.Available() {
			return engine, nil
		}
		podmanEngine := NewPodmanEngine()
		if podmanEngine.Available() {
			return podmanEngine, nil
		}
		return nil, &ErrEngineNotAvailable{Engine: string(EngineTypeDocker), Reason: "neither docker nor podman is usable"}
	default:
		return nil, &ErrEngineNotAvailable{Engine: string(preferred), Reason: "unknown engine type"}
	}
}
