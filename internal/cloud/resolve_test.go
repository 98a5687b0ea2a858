// SPDX-License-Identifier: MPL-2.0

package cloud

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		target            Target
		wantBuilder       string
		wantTerraformVars []string
		wantPackerVars    []string
	}{
		{
			name:        "azure",
			target:      Azure,
			wantBuilder: "azure-arm",
			wantTerraformVars: []string{
				"ARM_CLIENT_ID",
				"ARM_CLIENT_SECRET",
				"ARM_SUBSCRIPTION_ID",
				"ARM_TENANT_ID",
			},
			wantPackerVars: []string{
				"AZURE_CLIENT_ID",
				"AZURE_CLIENT_SECRET",
				"AZURE_SUBSCRIPTION_ID",
				"AZURE_TENANT_ID",
			},
		},
		{
			name:        "aws",
			target:      AWS,
			wantBuilder: "amazon-ebs",
			wantTerraformVars: []string{
				"AWS_ACCESS_KEY_ID",
				"AWS_SECRET_ACCESS_KEY",
				"AWS_DEFAULT_REGION",
			},
			wantPackerVars: []string{
				"AWS_ACCESS_KEY_ID",
				"AWS_SECRET_ACCESS_KEY",
				"AWS_DEFAULT_REGION",
			},
		},
		{
			name:        "gcp",
			target:      GCP,
			wantBuilder: "googlecompute",
			wantTerraformVars: []string{
				"GOOGLE_APPLICATION_CREDENTIALS",
				"GOOGLE_PROJECT",
				"GOOGLE_REGION",
			},
			wantPackerVars: []string{
				"GOOGLE_APPLICATION_CREDENTIALS",
				"GOOGLE_PROJECT",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spec, err := Resolve(tt.target)
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.target, err)
			}
			if spec.Builder != tt.wantBuilder {
				t.Errorf("Resolve(%q).Builder = %q, want %q", tt.target, spec.Builder, tt.wantBuilder)
			}
			if !reflect.DeepEqual(spec.TerraformVars, tt.wantTerraformVars) {
				t.Errorf("Resolve(%q).TerraformVars = %v, want %v", tt.target, spec.TerraformVars, tt.wantTerraformVars)
			}
			if !reflect.DeepEqual(spec.PackerVars, tt.wantPackerVars) {
				t.Errorf("Resolve(%q).PackerVars = %v, want %v", tt.target, spec.PackerVars, tt.wantPackerVars)
			}
		})
	}
}

func TestResolveUnknownTarget(t *testing.T) {
	t.Parallel()

	_, err := Resolve("openstack")
	if err == nil {
		t.Fatal("Resolve() expected error for unknown target, got nil")
	}
	if !errors.Is(err, ErrInvalidCloud) {
		t.Errorf("error does not wrap ErrInvalidCloud: %v", err)
	}
}

// Mutating a resolved spec must not leak into subsequent resolutions.
func TestResolveReturnsCopies(t *testing.T) {
	t.Parallel()

	first, err := Resolve(AWS)
	if err != nil {
		t.Fatalf("Resolve(aws) unexpected error: %v", err)
	}
	first.TerraformVars[0] = "MUTATED"
	first.PackerVars[0] = "MUTATED"

	second, err := Resolve(AWS)
	if err != nil {
		t.Fatalf("Resolve(aws) unexpected error: %v", err)
	}
	if second.TerraformVars[0] != "AWS_ACCESS_KEY_ID" {
		t.Errorf("Resolve() TerraformVars mutated across calls: %v", second.TerraformVars)
	}
	if second.PackerVars[0] != "AWS_ACCESS_KEY_ID" {
		t.Errorf("Resolve() PackerVars mutated across calls: %v", second.PackerVars)
	}
}
