// SPDX-License-Identifier: MPL-2.0

// Package planinfo decodes the structured JSON export of a Terraform plan
// and summarizes the pending resource changes. The summary is logged before
// the security scanner runs so scan findings can be read against the shape
// of the change set.
package planinfo

import (
	"encoding/json"
	"fmt"

	tfjson "github.com/hashicorp/terraform-json"
)

// Summary counts the pending resource changes in a plan by action.
type Summary struct {
	Create  int
	Update  int
	Delete  int
	Replace int
	// NoOp counts resources present in the plan with no pending action.
	NoOp int
	// TerraformVersion is the version that produced the plan.
	TerraformVersion string
}

// Parse decodes a `terraform show -json` document.
func Parse(data []byte) (*tfjson.Plan, error) {
	var plan tfjson.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan JSON: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan document: %w", err)
	}
	return &plan, nil
}

// Summarize tallies the plan's resource changes by action.
func Summarize(plan *tfjson.Plan) Summary {
	s := Summary{TerraformVersion: plan.TerraformVersion}
	for _, rc := range plan.ResourceChanges {
		if rc.Change == nil {
			continue
		}
		actions := rc.Change.Actions
		switch {
		case actions.Replace():
			s.Replace++
		case actions.Create():
			s.Create++
		case actions.Update():
			s.Update++
		case actions.Delete():
			s.Delete++
		default:
			s.NoOp++
		}
	}
	return s
}

// String renders the summary in terraform's familiar "to add, to change,
// to destroy" phrasing, with replacements counted separately.
func (s Summary) String() string {
	return fmt.Sprintf("%d to add, %d to change, %d to replace, %d to destroy",
		s.Create, s.Update, s.Replace, s.Delete)
}
