// SPDX-License-Identifier: MPL-2.0

package envcheck

import (
	"errors"
	"reflect"
	"testing"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"SET_VAR":   "value",
		"EMPTY_VAR": "",
	}

	tests := []struct {
		name        string
		names       []string
		wantMissing []string
	}{
		{name: "no requirements", names: nil, wantMissing: nil},
		{name: "all present", names: []string{"SET_VAR"}, wantMissing: nil},
		{name: "unset variable", names: []string{"UNSET_VAR"}, wantMissing: []string{"UNSET_VAR"}},
		{name: "empty counts as missing", names: []string{"EMPTY_VAR"}, wantMissing: []string{"EMPTY_VAR"}},
		{
			name:        "all missing reported in request order",
			names:       []string{"B_VAR", "A_VAR", "SET_VAR", "C_VAR"},
			wantMissing: []string{"B_VAR", "A_VAR", "C_VAR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Check(env, tt.names)
			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("Check() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Check() expected error, got nil")
			}
			if !errors.Is(err, ErrMissingVariable) {
				t.Errorf("error does not wrap ErrMissingVariable: %v", err)
			}
			var missing *MissingVariablesError
			if !errors.As(err, &missing) {
				t.Fatalf("error is not *MissingVariablesError: %v", err)
			}
			if !reflect.DeepEqual(missing.Names, tt.wantMissing) {
				t.Errorf("missing names = %v, want %v", missing.Names, tt.wantMissing)
			}
		})
	}
}

func TestMissingVariablesErrorMessage(t *testing.T) {
	t.Parallel()

	single := &MissingVariablesError{Names: []string{"ARM_CLIENT_ID"}}
	if got := single.Error(); got != "required environment variable ARM_CLIENT_ID is not set" {
		t.Errorf("single-variable message = %q", got)
	}

	multi := &MissingVariablesError{Names: []string{"ARM_CLIENT_ID", "ARM_TENANT_ID"}}
	if got := multi.Error(); got != "required environment variables are not set: ARM_CLIENT_ID, ARM_TENANT_ID" {
		t.Errorf("multi-variable message = %q", got)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"SET_VAR":   "value",
		"EMPTY_VAR": "",
	}

	if v, ok := Lookup(env, "SET_VAR"); !ok || v != "value" {
		t.Errorf("Lookup(SET_VAR) = (%q, %v), want (value, true)", v, ok)
	}
	if _, ok := Lookup(env, "EMPTY_VAR"); ok {
		t.Error("Lookup(EMPTY_VAR) reported an empty value as set")
	}
	if _, ok := Lookup(env, "UNSET_VAR"); ok {
		t.Error("Lookup(UNSET_VAR) reported an unset value as set")
	}
}

func TestSnapshot(t *testing.T) {
	t.Setenv("ENVCHECK_SNAPSHOT_TEST", "snapshot-value")

	env := Snapshot()
	if env["ENVCHECK_SNAPSHOT_TEST"] != "snapshot-value" {
		t.Errorf("Snapshot() missing ENVCHECK_SNAPSHOT_TEST, got %q", env["ENVCHECK_SNAPSHOT_TEST"])
	}
}
