// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"terrabake-cli/internal/config"
	"terrabake-cli/internal/issue"
)

// configCmd manages the workspace configuration file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage terrabake configuration",
	Long: `Manage terrabake configuration.

Configuration is stored in:
  - Linux: ~/.config/terrabake/config.cue
  - macOS: ~/Library/Application Support/terrabake/config.cue
  - Windows: %APPDATA%\terrabake\config.cue

A terrabake.cue file in the current directory is used when no user-level
config exists.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return showConfig()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfgDir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		if err := config.CreateDefaultConfig(); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		fmt.Printf("%s Created default configuration at %s\n",
			SuccessStyle.Render("✓"),
			filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfgDir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		fmt.Printf("Config directory: %s\n", cfgDir)
		fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a configuration file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := config.ValidateFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s %s is valid\n", SuccessStyle.Render("✓"), args[0])
		return nil
	},
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Output effective configuration as CUE",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Print(config.GenerateCUE(cfg))
		return nil
	},
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		if rendered, rerr := issue.Get(issue.ConfigLoadFailedId).Render("dark"); rerr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgDir, dirErr := config.ConfigDir()
	cfgPath := ""
	if dirErr == nil {
		cfgPath = filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	}
	if cfgPath != "" && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else if fileExistsCheck(config.LocalConfigFileName) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), config.LocalConfigFileName)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("container_engine"), valueStyle.Render(cfg.ContainerEngine))
	fmt.Printf("%s: %s\n", keyStyle.Render("compose_file"), valueStyle.Render(cfg.ComposeFile))
	if cfg.ProjectRoot != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("project_root"), valueStyle.Render(cfg.ProjectRoot))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("project_root"), SubtitleStyle.Render("(current directory)"))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("default_runtime"), valueStyle.Render(cfg.DefaultRuntime))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("tools"))
	fmt.Printf("  terraform: %s\n", valueStyle.Render(cfg.Tools.Terraform))
	fmt.Printf("  packer: %s\n", valueStyle.Render(cfg.Tools.Packer))
	fmt.Printf("  tflint: %s\n", valueStyle.Render(cfg.Tools.TFLint))
	fmt.Printf("  checkov: %s\n", valueStyle.Render(cfg.Tools.Checkov))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configDumpCmd)
}
