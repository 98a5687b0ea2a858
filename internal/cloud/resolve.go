// SPDX-License-Identifier: MPL-2.0

package cloud

import "golang.org/x/exp/slices"

// Spec is the resolved provisioning profile for a cloud target: the Packer
// builder plugin identifier and the ordered credential variable names that
// Terraform and Packer invocations require in the process environment.
type Spec struct {
	// Builder is the Packer builder plugin identifier (e.g. "amazon-ebs").
	Builder string
	// TerraformVars are the credential variable names required by any
	// Terraform operation against this cloud, in documentation order.
	TerraformVars []string
	// PackerVars are the credential variable names required by Packer
	// validate/build operations against this cloud, in documentation order.
	PackerVars []string
}

// specs is the full resolution table. Order inside the var slices is part
// of the contract: validation reports missing names in this order.
var specs = map[Target]Spec{
	Azure: {
		Builder: "azure-arm",
		TerraformVars: []string{
			"ARM_CLIENT_ID",
			"ARM_CLIENT_SECRET",
			"ARM_SUBSCRIPTION_ID",
			"ARM_TENANT_ID",
		},
		PackerVars: []string{
			"AZURE_CLIENT_ID",
			"AZURE_CLIENT_SECRET",
			"AZURE_SUBSCRIPTION_ID",
			"AZURE_TENANT_ID",
		},
	},
	AWS: {
		Builder: "amazon-ebs",
		TerraformVars: []string{
			"AWS_ACCESS_KEY_ID",
			"AWS_SECRET_ACCESS_KEY",
			"AWS_DEFAULT_REGION",
		},
		PackerVars: []string{
			"AWS_ACCESS_KEY_ID",
			"AWS_SECRET_ACCESS_KEY",
			"AWS_DEFAULT_REGION",
		},
	},
	GCP: {
		Builder: "googlecompute",
		TerraformVars: []string{
			"GOOGLE_APPLICATION_CREDENTIALS",
			"GOOGLE_PROJECT",
			"GOOGLE_REGION",
		},
		PackerVars: []string{
			"GOOGLE_APPLICATION_CREDENTIALS",
			"GOOGLE_PROJECT",
		},
	},
}

// Resolve returns the provisioning profile for the given cloud target.
// The returned Spec holds copies of the variable lists, so callers may
// mutate them freely.
func Resolve(t Target) (Spec, error) {
	if err := t.Validate(); err != nil {
		return Spec{}, err
	}
	s := specs[t]
	return Spec{
		Builder:       s.Builder,
		TerraformVars: slices.Clone(s.TerraformVars),
		PackerVars:    slices.Clone(s.PackerVars),
	}, nil
}
