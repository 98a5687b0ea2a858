// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"sort"
	"testing"

	"terrabake-cli/internal/cloud"
	"terrabake-cli/internal/task"
)

// fakeRunner records executed commands and fails on a configured command
// name.
type fakeRunner struct {
	ran      []string
	failOn   string
	exitCode ExitCode
}

func (f *fakeRunner) Name() string    { return "fake" }
func (f *fakeRunner) Available() bool { return true }

func (f *fakeRunner) Run(_ *ExecutionContext, c task.Command) *Result {
	f.ran = append(f.ran, c.Name)
	if f.failOn != "" && c.Name == f.failOn {
		return &Result{ExitCode: f.exitCode}
	}
	return &Result{}
}

func TestEnvToSlice(t *testing.T) {
	t.Parallel()

	got := EnvToSlice(map[string]string{"A": "1", "B": "two"})
	sort.Strings(got)

	want := []string{"A=1", "B=two"}
	if len(got) != len(want) {
		t.Fatalf("EnvToSlice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EnvToSlice()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunAll(t *testing.T) {
	t.Parallel()

	cmds := []task.Command{
		{Name: "first"},
		{Name: "second"},
		{Name: "third"},
	}

	t.Run("runs all on success", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{}
		res := RunAll(runner, &ExecutionContext{}, cmds)
		if !res.Success() {
			t.Errorf("RunAll() = %+v, want success", res)
		}
		if len(runner.ran) != 3 {
			t.Errorf("RunAll() executed %d commands, want 3", len(runner.ran))
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{failOn: "second", exitCode: 7}
		res := RunAll(runner, &ExecutionContext{}, cmds)
		if res.ExitCode != 7 {
			t.Errorf("RunAll() exit code = %d, want 7", res.ExitCode)
		}
		if len(runner.ran) != 2 {
			t.Errorf("RunAll() executed %d commands before stopping, want 2", len(runner.ran))
		}
	})

	t.Run("empty command list succeeds", func(t *testing.T) {
		t.Parallel()

		res := RunAll(&fakeRunner{}, &ExecutionContext{}, nil)
		if !res.Success() {
			t.Errorf("RunAll() = %+v, want success", res)
		}
	})
}

func TestForMode(t *testing.T) {
	t.Parallel()

	t.Run("local runs on the host", func(t *testing.T) {
		t.Parallel()

		runner, err := ForMode(cloud.RuntimeLocal, "", "")
		if err != nil {
			t.Fatalf("ForMode(local) unexpected error: %v", err)
		}
		if runner.Name() != "host" {
			t.Errorf("ForMode(local) runner = %q, want host", runner.Name())
		}
	})

	t.Run("pipeline runs on the host", func(t *testing.T) {
		t.Parallel()

		runner, err := ForMode(cloud.RuntimePipeline, "", "")
		if err != nil {
			t.Fatalf("ForMode(pipeline) unexpected error: %v", err)
		}
		if runner.Name() != "host" {
			t.Errorf("ForMode(pipeline) runner = %q, want host", runner.Name())
		}
	})

	t.Run("invalid mode rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ForMode("remote", "", "")
		if !errors.Is(err, cloud.ErrInvalidRuntimeMode) {
			t.Errorf("ForMode(remote) error = %v, want to wrap ErrInvalidRuntimeMode", err)
		}
	})
}

func TestResultSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  Result
		want bool
	}{
		{name: "zero value succeeds", res: Result{}, want: true},
		{name: "non-zero exit fails", res: Result{ExitCode: 1}, want: false},
		{name: "error fails", res: Result{Error: errors.New("boom")}, want: false},
	}

	for _, tt := range tests {
		if got := tt.res.Success(); got != tt.want {
			t.Errorf("%s: Success() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
