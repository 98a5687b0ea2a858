// SPDX-License-Identifier: MPL-2.0

// Package envcheck validates that required environment variables are present
// and non-empty. The process environment is read exactly once at the CLI
// boundary via Snapshot; everything downstream works on the returned map.
package envcheck

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingVariable is the sentinel error wrapped by MissingVariablesError.
var ErrMissingVariable = errors.New("missing required environment variable")

// MissingVariablesError reports every required variable that is unset or
// empty, not just the first, so a user can fix the whole set in one pass.
type MissingVariablesError struct {
	Names []string
}

func (e *MissingVariablesError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("required environment variable %s is not set", e.Names[0])
	}
	return fmt.Sprintf("required environment variables are not set: %s", strings.Join(e.Names, ", "))
}

// Unwrap returns ErrMissingVariable so callers can use errors.Is.
func (e *MissingVariablesError) Unwrap() error { return ErrMissingVariable }

// Snapshot reads the process environment into a map. Malformed entries
// without a '=' separator are skipped.
func Snapshot() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		idx := strings.IndexByte(entry, '=')
		if idx < 0 {
			continue
		}
		env[entry[:idx]] = entry[idx+1:]
	}
	return env
}

// Check verifies that every named variable is present and non-empty in env.
// It returns a MissingVariablesError listing all absent names in the order
// they were requested, or nil if everything is set.
func Check(env map[string]string, names []string) error {
	var missing []string
	for _, name := range names {
		if env[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingVariablesError{Names: missing}
	}
	return nil
}

// Lookup returns the value of name from env and whether it is set to a
// non-empty value.
func Lookup(env map[string]string, name string) (string, bool) {
	v, ok := env[name]
	return v, ok && v != ""
}
