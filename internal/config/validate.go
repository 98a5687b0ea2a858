// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"

	"terrabake-cli/pkg/cueutil"
)

// ValidateFile checks that a CUE file satisfies the configuration schema
// without loading it into the active configuration. Used by
// 'terrabake config validate' to vet a config before it is put in place.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	_, err = cueutil.ParseAndDecodeString[map[string]any](
		configSchema,
		data,
		"#Config",
		cueutil.WithConcrete(false),
		cueutil.WithFilename(path),
	)
	return err
}
