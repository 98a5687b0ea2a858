// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"terrabake-cli/internal/cloud"
	"terrabake-cli/internal/compose"
	"terrabake-cli/internal/config"
	"terrabake-cli/internal/envcheck"
	"terrabake-cli/internal/issue"
)

// envCmd manages the per-cloud tool containers that container mode execs
// into. Up is scoped to one cloud's service; down tears down the whole
// compose project.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage the per-cloud tool containers",
	Long: `Start or stop the compose services holding the terraform/packer
toolchain for each cloud. Container-mode tasks exec into these services,
so 'env up' must run before any task with --runtime container.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var envUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the selected cloud's tool container in the background",
	RunE: func(cmd *cobra.Command, _ []string) error {
		target, err := resolveCloudTarget()
		if err != nil {
			return err
		}

		engine, cfg, err := composeEngine()
		if err != nil {
			return err
		}

		opts := compose.ServiceOptions{
			ComposeFile: cfg.ComposeFile,
			Service:     target.ServiceName(),
			Stdout:      os.Stdout,
			Stderr:      os.Stderr,
		}
		if err := engine.Up(cmd.Context(), opts); err != nil {
			return fmt.Errorf("failed to start service '%s': %w", opts.Service, err)
		}

		fmt.Printf("%s Started %s (%s)\n", SuccessStyle.Render("✓"), opts.Service, engine.Name())
		return nil
	},
}

var envDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop and remove all tool containers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, cfg, err := composeEngine()
		if err != nil {
			return err
		}

		opts := compose.ServiceOptions{
			ComposeFile: cfg.ComposeFile,
			Stdout:      os.Stdout,
			Stderr:      os.Stderr,
		}
		if err := engine.Down(cmd.Context(), opts); err != nil {
			return fmt.Errorf("failed to stop tool containers: %w", err)
		}

		fmt.Printf("%s Stopped tool containers (%s)\n", SuccessStyle.Render("✓"), engine.Name())
		return nil
	},
}

// resolveCloudTarget picks the cloud from --cloud or CLOUD, without
// touching the other task inputs.
func resolveCloudTarget() (cloud.Target, error) {
	value := cloudFlag
	if value == "" {
		env := envcheck.Snapshot()
		if v, ok := envcheck.Lookup(env, envCloud); ok {
			value = v
		}
	}

	target := cloud.Target(value)
	if err := target.Validate(); err != nil {
		showIssueCard(err)
		return "", err
	}
	return target, nil
}

func composeEngine() (compose.Engine, *config.Config, error) {
	cfg := config.Get()
	engine, err := compose.NewEngine(cfg.EngineType())
	if err != nil {
		showIssueCard(err)
		return nil, nil, issue.NewErrorContext().
			WithOperation("select a container engine").
			WithSuggestion("Install docker or podman and make sure its daemon is running").
			Wrap(err).
			BuildError()
	}
	return engine, cfg, nil
}

func init() {
	envCmd.AddCommand(envUpCmd)
	envCmd.AddCommand(envDownCmd)
}
