// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"terrabake-cli/internal/task"
)

// packerCmd groups the machine-image tasks. init/validate/build act on the
// packer template selected by the image target; delete and variables call
// the cloud helper scripts.
var packerCmd = &cobra.Command{
	Use:   "packer",
	Short: "Bake and manage machine images with Packer",
	Long: `Run Packer against the template selected by the image target, using the
builder resolved for the cloud target (azure-arm, amazon-ebs, or
googlecompute).

'delete' and 'variables' invoke the cloud helper scripts rather than
Packer itself.`,
}

var packerInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the plugins required by the image template",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.PackerInit)
	},
}

var packerValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check formatting and validate the image template",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.PackerValidate)
	},
}

var packerBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the machine image with the cloud's builder",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.PackerBuild)
	},
}

var packerDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete baked images via the cloud helper script",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.PackerDelete)
	},
}

var packerVariablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "Print the packer variables via the cloud helper script",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.PackerVariables)
	},
}

func init() {
	packerCmd.AddCommand(packerInitCmd)
	packerCmd.AddCommand(packerValidateCmd)
	packerCmd.AddCommand(packerBuildCmd)
	packerCmd.AddCommand(packerDeleteCmd)
	packerCmd.AddCommand(packerVariablesCmd)
}
