// SPDX-License-Identifier: MPL-2.0

// Package task builds the argv for every terraform and packer operation as a
// structured argument list. Commands are assembled from typed inputs only;
// no shell templating or string interpolation happens anywhere in this
// package, so quoting and injection concerns do not arise.
package task

import (
	"errors"
	"fmt"

	"terrabake-cli/internal/cloud"
)

// Operation identifies a provisioning task.
type Operation string

// Terraform operations.
const (
	TerraInit    Operation = "terra-init"
	TerraLint    Operation = "terra-lint"
	TerraPlan    Operation = "terra-plan"
	TerraSec     Operation = "terra-sec"
	TerraApply   Operation = "terra-apply"
	TerraOutput  Operation = "terra-output"
	TerraDestroy Operation = "terra-destroy"
)

// Packer operations.
const (
	PackerInit      Operation = "packer-init"
	PackerValidate  Operation = "packer-validate"
	PackerBuild     Operation = "packer-build"
	PackerDelete    Operation = "packer-delete"
	PackerVariables Operation = "packer-variables"
)

// ErrUnknownOperation is returned by Commands for an operation outside the
// enumerated set.
var ErrUnknownOperation = errors.New("unknown operation")

type (
	// Request carries everything an operation needs, resolved once at the
	// CLI boundary: the target cloud and its provisioning profile, the
	// runtime mode, the terraform stage, and the image (image tasks only).
	Request struct {
		Cloud   cloud.Target
		Runtime cloud.RuntimeMode
		Stage   cloud.Stage
		Image   cloud.Image
		Spec    cloud.Spec
	}

	// Command is a single external tool invocation: a program name and its
	// argument list. It carries no shell syntax.
	Command struct {
		Name string
		Args []string
	}

	// Toolchain holds the binary names of the external collaborators.
	// Defaults come from workspace configuration.
	Toolchain struct {
		Terraform string
		Packer    string
		TFLint    string
		Checkov   string
	}
)

// PlanArtifact is the binary plan file name written by terra-plan and
// consumed by terra-sec, relative to the terraform root.
const PlanArtifact = "tfplan.binary"

// PlanJSONArtifact is the structured JSON export of the plan, written by
// terra-sec and consumed by the security scanner.
const PlanJSONArtifact = "tfplan.json"

// Helper script paths, relative to the project root.
const (
	deleteImageScript     = "scripts/delete-image.sh"
	packerVariablesScript = "scripts/get-packer-variables.sh"
)

// Validate checks the request's enums. Image is only validated when the
// operation needs one (see NeedsImage).
func (r Request) Validate(op Operation) error {
	if err := r.Cloud.Validate(); err != nil {
		return err
	}
	if err := r.Runtime.Validate(); err != nil {
		return err
	}
	if err := r.Stage.Validate(); err != nil {
		return err
	}
	if op.NeedsImage() {
		if err := r.Image.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NeedsImage returns true for packer operations that act on a specific
// image template.
func (op Operation) NeedsImage() bool {
	switch op {
	case PackerInit, PackerValidate, PackerBuild:
		return true
	default:
		return false
	}
}

// RequiredVars returns the credential variable names that must be present
// before the operation may launch any external process. The helper-script
// operations and env lifecycle need no cloud credentials of their own; the
// scripts read them through the cloud CLIs they invoke.
func (op Operation) RequiredVars(spec cloud.Spec) []string {
	switch op {
	case TerraInit, TerraLint, TerraPlan, TerraSec, TerraApply, TerraOutput, TerraDestroy:
		return spec.TerraformVars
	case PackerValidate, PackerBuild:
		return spec.PackerVars
	default:
		return nil
	}
}

// TerraformRoot returns the terraform root configuration path for the
// request, keyed by stage and cloud. Paths use forward slashes because they
// may be resolved inside the per-cloud container.
func (r Request) TerraformRoot() string {
	return "terraform/" + string(r.Stage) + "/" + string(r.Cloud)
}

// PackerRoot returns the packer template path for the request's image.
func (r Request) PackerRoot() string {
	return "packer/" + string(r.Image)
}

// Commands returns the ordered tool invocations for the operation. The
// result is a pure function of (tc, r, op): building the same operation
// twice yields identical argv slices.
func Commands(tc Toolchain, r Request, op Operation) ([]Command, error) {
	if err := r.Validate(op); err != nil {
		return nil, err
	}

	switch op {
	case TerraInit:
		return []Command{tc.terraformCmd(r, "init")}, nil
	case TerraLint:
		return []Command{
			tc.terraformCmd(r, "fmt", "-check", "-recursive"),
			tc.terraformCmd(r, "validate"),
			{Name: tc.TFLint, Args: []string{"--chdir=" + r.TerraformRoot()}},
		}, nil
	case TerraPlan:
		return []Command{tc.terraformCmd(r, "plan", "-out="+PlanArtifact)}, nil
	case TerraSec:
		return []Command{
			tc.terraformCmd(r, "plan", "-out="+PlanArtifact),
			tc.terraformCmd(r, "show", "-json", PlanArtifact),
			{Name: tc.Checkov, Args: []string{"--file", r.TerraformRoot() + "/" + PlanJSONArtifact}},
		}, nil
	case TerraApply:
		return []Command{tc.terraformCmd(r, "apply", "-auto-approve")}, nil
	case TerraOutput:
		return []Command{tc.terraformCmd(r, "output")}, nil
	case TerraDestroy:
		return []Command{tc.terraformCmd(r, "destroy", "-auto-approve")}, nil
	case PackerInit:
		return []Command{{Name: tc.Packer, Args: []string{"init", r.PackerRoot()}}}, nil
	case PackerValidate:
		return []Command{
			{Name: tc.Packer, Args: []string{"fmt", "-check", r.PackerRoot()}},
			{Name: tc.Packer, Args: []string{"validate", "-only=" + r.Spec.Builder + "." + string(r.Image), r.PackerRoot()}},
		}, nil
	case PackerBuild:
		return []Command{
			{Name: tc.Packer, Args: []string{"build", "-only=" + r.Spec.Builder + "." + string(r.Image), r.PackerRoot()}},
		}, nil
	case PackerDelete:
		return []Command{scriptCmd(deleteImageScript, "delete_image", "delete-image", r)}, nil
	case PackerVariables:
		return []Command{scriptCmd(packerVariablesScript, "get_packer_variables", "get-packer-variables", r)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
}

// terraformCmd assembles a terraform invocation rooted at the request's
// stage/cloud configuration via -chdir.
func (tc Toolchain) terraformCmd(r Request, args ...string) Command {
	full := make([]string, 0, len(args)+1)
	full = append(full, "-chdir="+r.TerraformRoot())
	full = append(full, args...)
	return Command{Name: tc.Terraform, Args: full}
}

// scriptCmd assembles a helper-script invocation. The local and container
// branches reference different function-naming conventions (underscore vs
// hyphen); both are preserved as-is because the two scripts are distinct
// external contracts.
//
// TODO: confirm with the scripts' owners whether the hyphenated container
// variants are intentional before unifying the naming.
func scriptCmd(script, localFunc, containerFunc string, r Request) Command {
	fn := localFunc + "_" + string(r.Cloud)
	if r.Runtime.InContainer() {
		fn = containerFunc + "-" + string(r.Cloud)
	}
	return Command{Name: script, Args: []string{fn, string(r.Cloud)}}
}
