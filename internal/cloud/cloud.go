// SPDX-License-Identifier: MPL-2.0

// Package cloud defines the cloud target, runtime mode, stage, and image
// target types, and resolves the per-cloud provisioning profile (Packer
// builder plus required credential variable names).
package cloud

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors wrapped by the typed validation errors below, for use
// with errors.Is.
var (
	ErrInvalidCloud       = errors.New("invalid cloud target")
	ErrInvalidRuntimeMode = errors.New("invalid runtime mode")
	ErrInvalidStage       = errors.New("invalid stage")
	ErrInvalidImage       = errors.New("invalid image target")
)

type (
	// Target identifies the cloud provider being provisioned.
	Target string

	// RuntimeMode selects where tool invocations execute: directly on the
	// host (local, pipeline) or inside a compose-managed container.
	RuntimeMode string

	// Stage selects which Terraform root configuration applies: the initial
	// environment bootstrap or the disposable test environment.
	Stage string

	// Image identifies a Packer machine-image template.
	Image string
)

// Cloud targets.
const (
	Azure Target = "azure"
	AWS   Target = "aws"
	GCP   Target = "gcp"
)

// Runtime modes.
const (
	RuntimeLocal     RuntimeMode = "local"
	RuntimeContainer RuntimeMode = "container"
	RuntimePipeline  RuntimeMode = "pipeline"
)

// Stages.
const (
	StageBootstrap Stage = "bootstrap"
	StageTest      Stage = "test"
)

// Image targets.
const (
	ImageNginx         Image = "nginx"
	ImageElasticsearch Image = "elasticsearch"
)

// Targets returns all valid cloud targets in stable order.
func Targets() []Target {
	return []Target{Azure, AWS, GCP}
}

// RuntimeModes returns all valid runtime modes in stable order.
func RuntimeModes() []RuntimeMode {
	return []RuntimeMode{RuntimeLocal, RuntimeContainer, RuntimePipeline}
}

// Stages returns all valid stages in stable order.
func Stages() []Stage {
	return []Stage{StageBootstrap, StageTest}
}

// Images returns all valid image targets in stable order.
func Images() []Image {
	return []Image{ImageNginx, ImageElasticsearch}
}

// InvalidCloudError is returned when a cloud target is not one of
// azure, aws, or gcp.
type InvalidCloudError struct {
	Value string
}

func (e *InvalidCloudError) Error() string {
	return fmt.Sprintf("invalid cloud target %q (must be one of: %s)", e.Value, joinTargets())
}

// Unwrap returns ErrInvalidCloud for programmatic detection.
func (e *InvalidCloudError) Unwrap() error { return ErrInvalidCloud }

// InvalidRuntimeModeError is returned when a runtime mode is not one of
// local, container, or pipeline.
type InvalidRuntimeModeError struct {
	Value string
}

func (e *InvalidRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (must be one of: %s)", e.Value, joinRuntimeModes())
}

// Unwrap returns ErrInvalidRuntimeMode for programmatic detection.
func (e *InvalidRuntimeModeError) Unwrap() error { return ErrInvalidRuntimeMode }

// InvalidStageError is returned when a stage is not bootstrap or test.
type InvalidStageError struct {
	Value string
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("invalid stage %q (must be one of: %s)", e.Value, joinStages())
}

// Unwrap returns ErrInvalidStage for programmatic detection.
func (e *InvalidStageError) Unwrap() error { return ErrInvalidStage }

// InvalidImageError is returned when an image target is not nginx or
// elasticsearch.
type InvalidImageError struct {
	Value string
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image target %q (must be one of: %s)", e.Value, joinImages())
}

// Unwrap returns ErrInvalidImage for programmatic detection.
func (e *InvalidImageError) Unwrap() error { return ErrInvalidImage }

// Validate returns an error unless the target is a known cloud.
func (t Target) Validate() error {
	switch t {
	case Azure, AWS, GCP:
		return nil
	default:
		return &InvalidCloudError{Value: string(t)}
	}
}

// Validate returns an error unless the mode is a known runtime mode.
func (m RuntimeMode) Validate() error {
	switch m {
	case RuntimeLocal, RuntimeContainer, RuntimePipeline:
		return nil
	default:
		return &InvalidRuntimeModeError{Value: string(m)}
	}
}

// InContainer returns true if tool invocations execute inside the
// compose-managed container rather than directly on the host.
func (m RuntimeMode) InContainer() bool {
	return m == RuntimeContainer
}

// Validate returns an error unless the stage is bootstrap or test.
func (s Stage) Validate() error {
	switch s {
	case StageBootstrap, StageTest:
		return nil
	default:
		return &InvalidStageError{Value: string(s)}
	}
}

// Validate returns an error unless the image is a known template.
func (i Image) Validate() error {
	switch i {
	case ImageNginx, ImageElasticsearch:
		return nil
	default:
		return &InvalidImageError{Value: string(i)}
	}
}

// ServiceName returns the name of the per-cloud compose service that hosts
// containerized tool execution, e.g. "azure-terraform-packer". At most one
// such service instance is active at a time.
func (t Target) ServiceName() string {
	return string(t) + "-terraform-packer"
}

func (t Target) String() string      { return string(t) }
func (m RuntimeMode) String() string { return string(m) }
func (s Stage) String() string       { return string(s) }
func (i Image) String() string       { return string(i) }

func joinTargets() string {
	vals := make([]string, 0, len(Targets()))
	for _, t := range Targets() {
		vals = append(vals, string(t))
	}
	return strings.Join(vals, ", ")
}

func joinRuntimeModes() string {
	vals := make([]string, 0, len(RuntimeModes()))
	for _, m := range RuntimeModes() {
		vals = append(vals, string(m))
	}
	return strings.Join(vals, ", ")
}

func joinStages() string {
	vals := make([]string, 0, len(Stages()))
	for _, s := range Stages() {
		vals = append(vals, string(s))
	}
	return strings.Join(vals, ", ")
}

func joinImages() string {
	vals := make([]string, 0, len(Images()))
	for _, i := range Images() {
		vals = append(vals, string(i))
	}
	return strings.Join(vals, ", ")
}
