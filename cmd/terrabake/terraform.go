// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"terrabake-cli/internal/task"
)

// terraCmd groups the terraform-facing tasks. Each subcommand maps to one
// operation; the stage and cloud select the terraform root configuration
// (terraform/<stage>/<cloud>).
var terraCmd = &cobra.Command{
	Use:   "terra",
	Short: "Provision cloud infrastructure with Terraform",
	Long: `Run Terraform (and its companion lint/scan tools) against the root
configuration selected by the cloud target and stage.

The stage distinguishes the initial environment bootstrap from the
disposable test environment; each has its own terraform root per cloud.`,
}

var terraInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the terraform root for the selected cloud and stage",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.TerraInit)
	},
}

var terraLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check formatting, validate, and lint the terraform root",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.TerraLint)
	},
}

var terraPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Produce an execution plan for the terraform root",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.TerraPlan)
	},
}

var terraSecCmd = &cobra.Command{
	Use:   "sec",
	Short: "Export the plan as JSON and run the security scanner over it",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.TerraSec)
	},
}

var terraApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the terraform root without interactive approval",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.TerraApply)
	},
}

var terraOutputCmd = &cobra.Command{
	Use:   "output",
	Short: "Show the terraform root's output values",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.TerraOutput)
	},
}

var terraDestroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Destroy the terraform root's resources without interactive approval",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runOperation(task.TerraDestroy)
	},
}

func init() {
	terraCmd.AddCommand(terraInitCmd)
	terraCmd.AddCommand(terraLintCmd)
	terraCmd.AddCommand(terraPlanCmd)
	terraCmd.AddCommand(terraSecCmd)
	terraCmd.AddCommand(terraApplyCmd)
	terraCmd.AddCommand(terraOutputCmd)
	terraCmd.AddCommand(terraDestroyCmd)
}
