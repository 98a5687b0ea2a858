// SPDX-License-Identifier: MPL-2.0

// Package config loads the terrabake workspace configuration from a CUE
// file validated against an embedded schema, layered over defaults via
// viper. The process environment and CLI flags are handled at the CLI
// boundary, not here.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"terrabake-cli/internal/issue"
	"terrabake-cli/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "terrabake"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFileName is the per-project config file looked up in the
	// current directory.
	LocalConfigFileName = "terrabake.cue"
)

//go:embed config_schema.cue
var configSchema string

var (
	cacheMu            sync.Mutex
	cached             *Config
	configFileOverride string
)

// SetConfigFilePathOverride points Load at an explicit config file,
// set by the --config flag. It also drops any cached config.
func SetConfigFilePathOverride(path string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	configFileOverride = path
	cached = nil
}

// Get returns the cached configuration, loading it on first use. Load
// errors fall back to defaults; callers that must surface errors use Load.
func Get() *Config {
	cfg, err := Load()
	if err != nil || cfg == nil {
		return DefaultConfig()
	}
	return cfg
}

// Load reads the workspace configuration. Resolution order:
//
//  1. the --config override, if set (missing file is an error)
//  2. <config-dir>/terrabake/config.cue
//  3. ./terrabake.cue
//  4. built-in defaults (no error)
func Load() (*Config, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached != nil {
		return cached, nil
	}

	cfg, err := load(configFileOverride)
	if err != nil {
		return nil, err
	}
	cached = cfg
	return cfg, nil
}

// ConfigDir returns the terrabake configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

func load(overridePath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("container_engine", defaults.ContainerEngine)
	v.SetDefault("compose_file", defaults.ComposeFile)
	v.SetDefault("project_root", defaults.ProjectRoot)
	v.SetDefault("default_runtime", defaults.DefaultRuntime)
	v.SetDefault("tools.terraform", defaults.Tools.Terraform)
	v.SetDefault("tools.packer", defaults.Tools.Packer)
	v.SetDefault("tools.tflint", defaults.Tools.TFLint)
	v.SetDefault("tools.checkov", defaults.Tools.Checkov)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	if overridePath != "" {
		if !fileExists(overridePath) {
			return nil, issue.NewErrorContext().
				WithOperation("load workspace configuration").
				WithResource(overridePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'terrabake config init' to create a default config").
				Wrap(fmt.Errorf("config file not found: %s", overridePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, overridePath); err != nil {
			return nil, wrapLoadError(err, overridePath)
		}
	} else {
		cfgDir, err := ConfigDir()
		if err != nil {
			return nil, err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		switch {
		case fileExists(cuePath):
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, wrapLoadError(err, cuePath)
			}
		case fileExists(LocalConfigFileName):
			if err := loadCUEIntoViper(v, LocalConfigFileName); err != nil {
				return nil, wrapLoadError(err, LocalConfigFileName)
			}
		}
		// No config file found: defaults apply, no error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func wrapLoadError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load workspace configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'terrabake config --help' for configuration options").
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into viper.
//
// Note: this uses manual CUE parsing instead of cueutil.ParseAndDecode
// because the config decodes to map[string]any for viper integration,
// validates with Concrete(false) since all fields are optional, and merges
// into viper's config map rather than returning a struct.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// CreateDefaultConfig creates a default config file if it doesn't exist.
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	cueContent := GenerateCUE(DefaultConfig())

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
