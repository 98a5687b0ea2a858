// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"terrabake-cli/internal/cloud"
	"terrabake-cli/internal/compose"
	"terrabake-cli/internal/task"
)

type (
	// Config is the terrabake workspace configuration.
	Config struct {
		// ContainerEngine selects the container runtime for container mode
		// ("docker" or "podman").
		ContainerEngine string `mapstructure:"container_engine"`

		// ComposeFile is the path to the compose file defining the
		// per-cloud tool services.
		ComposeFile string `mapstructure:"compose_file"`

		// ProjectRoot is the directory containing the terraform/, packer/,
		// and scripts/ trees. Empty means the current working directory.
		ProjectRoot string `mapstructure:"project_root"`

		// DefaultRuntime is the runtime mode used when neither the
		// RUNTIME_ENV variable nor the --runtime flag is set.
		DefaultRuntime string `mapstructure:"default_runtime"`

		// Tools holds the external collaborator binary names.
		Tools Tools `mapstructure:"tools"`

		// UI holds user interface settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// Tools names the external binaries terrabake shells out to.
	Tools struct {
		Terraform string `mapstructure:"terraform"`
		Packer    string `mapstructure:"packer"`
		TFLint    string `mapstructure:"tflint"`
		Checkov   string `mapstructure:"checkov"`
	}

	// UIConfig holds user interface settings.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: string(compose.EngineTypeDocker),
		ComposeFile:     "docker-compose.yml",
		DefaultRuntime:  string(cloud.RuntimeLocal),
		Tools: Tools{
			Terraform: "terraform",
			Packer:    "packer",
			TFLint:    "tflint",
			Checkov:   "checkov",
		},
	}
}

// Toolchain converts the configured tool names into the task builder's
// toolchain value.
func (c *Config) Toolchain() task.Toolchain {
	return task.Toolchain{
		Terraform: c.Tools.Terraform,
		Packer:    c.Tools.Packer,
		TFLint:    c.Tools.TFLint,
		Checkov:   c.Tools.Checkov,
	}
}

// EngineType returns the configured container engine type.
func (c *Config) EngineType() compose.EngineType {
	return compose.EngineType(c.ContainerEngine)
}

// GenerateCUE generates a CUE representation of the configuration, used
// when writing a default config file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// terrabake workspace configuration\n\n")

	sb.WriteString(fmt.Sprintf("container_engine: %q\n", cfg.ContainerEngine))
	sb.WriteString(fmt.Sprintf("compose_file: %q\n", cfg.ComposeFile))
	if cfg.ProjectRoot != "" {
		sb.WriteString(fmt.Sprintf("project_root: %q\n", cfg.ProjectRoot))
	}
	sb.WriteString(fmt.Sprintf("default_runtime: %q\n", cfg.DefaultRuntime))

	sb.WriteString("\ntools: {\n")
	sb.WriteString(fmt.Sprintf("\tterraform: %q\n", cfg.Tools.Terraform))
	sb.WriteString(fmt.Sprintf("\tpacker: %q\n", cfg.Tools.Packer))
	sb.WriteString(fmt.Sprintf("\ttflint: %q\n", cfg.Tools.TFLint))
	sb.WriteString(fmt.Sprintf("\tcheckov: %q\n", cfg.Tools.Checkov))
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}
