// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for terrabake.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"terrabake-cli/internal/config"
	"terrabake-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// dryRun prints commands instead of executing them
	dryRun bool

	// Flag overrides for the environment-supplied inputs. Empty means
	// "use the environment variable".
	cloudFlag   string
	stageFlag   string
	runtimeFlag string
	imageFlag   string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "terrabake",
		Short: "Provision cloud infrastructure and bake machine images",
		Long: TitleStyle.Render("terrabake") + SubtitleStyle.Render(" - terraform + packer task runner for azure, aws, and gcp") + `

terrabake wraps Terraform, Packer, tflint, checkov, and the cloud helper
scripts behind declarative task commands. Tools run directly on the host
(local/pipeline mode) or inside a per-cloud compose service (container mode).

Inputs come from the environment (CLOUD, BOOTSTRAP_OR_TEST, RUNTIME_ENV,
IMAGE) or the matching flags, plus the per-cloud credential variables.

` + SubtitleStyle.Render("Examples:") + `
  CLOUD=aws BOOTSTRAP_OR_TEST=test terrabake terra plan
  terrabake terra apply --cloud azure --stage bootstrap
  terrabake packer build --cloud gcp --image nginx
  terrabake env up --cloud azure      Start the azure tool container
  terrabake config show               Show effective configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/terrabake/config.cue)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print commands without executing them")
	rootCmd.PersistentFlags().StringVar(&cloudFlag, "cloud", "", "cloud target: azure, aws, or gcp (overrides CLOUD)")
	rootCmd.PersistentFlags().StringVar(&stageFlag, "stage", "", "terraform stage: bootstrap or test (overrides BOOTSTRAP_OR_TEST)")
	rootCmd.PersistentFlags().StringVar(&runtimeFlag, "runtime", "", "runtime mode: local, container, or pipeline (overrides RUNTIME_ENV)")
	rootCmd.PersistentFlags().StringVar(&imageFlag, "image", "", "image target: nginx or elasticsearch (overrides IMAGE)")

	// Add subcommands
	rootCmd.AddCommand(terraCmd)
	rootCmd.AddCommand(packerCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(completionCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and applies config-level defaults.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
