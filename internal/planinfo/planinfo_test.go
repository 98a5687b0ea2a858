// SPDX-License-Identifier: MPL-2.0

package planinfo

import (
	"strings"
	"testing"
)

const samplePlanJSON = `{
  "format_version": "1.2",
  "terraform_version": "1.9.0",
  "resource_changes": [
    {
      "address": "aws_instance.web",
      "mode": "managed",
      "type": "aws_instance",
      "name": "web",
      "change": {"actions": ["create"]}
    },
    {
      "address": "aws_instance.db",
      "mode": "managed",
      "type": "aws_instance",
      "name": "db",
      "change": {"actions": ["create"]}
    },
    {
      "address": "aws_security_group.allow",
      "mode": "managed",
      "type": "aws_security_group",
      "name": "allow",
      "change": {"actions": ["update"]}
    },
    {
      "address": "aws_s3_bucket.logs",
      "mode": "managed",
      "type": "aws_s3_bucket",
      "name": "logs",
      "change": {"actions": ["delete"]}
    },
    {
      "address": "aws_launch_template.web",
      "mode": "managed",
      "type": "aws_launch_template",
      "name": "web",
      "change": {"actions": ["delete", "create"]}
    },
    {
      "address": "aws_vpc.main",
      "mode": "managed",
      "type": "aws_vpc",
      "name": "main",
      "change": {"actions": ["no-op"]}
    }
  ]
}`

func TestParseAndSummarize(t *testing.T) {
	t.Parallel()

	plan, err := Parse([]byte(samplePlanJSON))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	s := Summarize(plan)
	if s.Create != 2 {
		t.Errorf("Summary.Create = %d, want 2", s.Create)
	}
	if s.Update != 1 {
		t.Errorf("Summary.Update = %d, want 1", s.Update)
	}
	if s.Delete != 1 {
		t.Errorf("Summary.Delete = %d, want 1", s.Delete)
	}
	if s.Replace != 1 {
		t.Errorf("Summary.Replace = %d, want 1", s.Replace)
	}
	if s.NoOp != 1 {
		t.Errorf("Summary.NoOp = %d, want 1", s.NoOp)
	}
	if s.TerraformVersion != "1.9.0" {
		t.Errorf("Summary.TerraformVersion = %q, want 1.9.0", s.TerraformVersion)
	}
}

func TestSummaryString(t *testing.T) {
	t.Parallel()

	s := Summary{Create: 2, Update: 1, Replace: 1, Delete: 3}
	want := "2 to add, 1 to change, 1 to replace, 3 to destroy"
	if got := s.String(); got != want {
		t.Errorf("Summary.String() = %q, want %q", got, want)
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "terraform will perform the following actions"},
		{name: "missing format version", data: `{"terraform_version": "1.9.0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}

func TestSummarizeEmptyPlan(t *testing.T) {
	t.Parallel()

	plan, err := Parse([]byte(`{"format_version": "1.2", "terraform_version": "1.9.0"}`))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	s := Summarize(plan)
	if !strings.HasPrefix(s.String(), "0 to add") {
		t.Errorf("empty plan summary = %q", s.String())
	}
}
