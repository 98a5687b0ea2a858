// SPDX-License-Identifier: MPL-2.0

// Integration tests for container-mode execution. These require a working
// Docker or Podman installation with compose support and are skipped
// otherwise.
package runtime

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/testcontainers/testcontainers-go"

	"terrabake-cli/internal/cloud"
	"terrabake-cli/internal/compose"
	"terrabake-cli/internal/task"
)

// checkTestcontainersAvailable safely checks if testcontainers can reach a
// container provider. Returns false instead of panicking when the daemon is
// unreachable.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

// composeFileFor writes a minimal compose file whose service name matches
// the per-cloud tool service convention.
func composeFileFor(t *testing.T, target cloud.Target) string {
	t.Helper()

	content := `services:
  ` + target.ServiceName() + `:
    image: alpine:latest
    command: ["sleep", "300"]
`
	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write compose file: %v", err)
	}
	return path
}

func TestContainerRunner_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	engine, err := compose.NewEngine(compose.EngineTypeDocker)
	if err != nil {
		t.Skipf("skipping container integration tests: no container engine available: %v", err)
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping container integration tests: testcontainers provider not available")
	}

	composeFile := composeFileFor(t, cloud.AWS)

	upOpts := compose.ServiceOptions{
		ComposeFile: composeFile,
		Service:     cloud.AWS.ServiceName(),
	}
	if err := engine.Up(context.Background(), upOpts); err != nil {
		t.Fatalf("failed to start tool service: %v", err)
	}
	t.Cleanup(func() {
		downOpts := compose.ServiceOptions{ComposeFile: composeFile}
		if err := engine.Down(context.Background(), downOpts); err != nil {
			t.Logf("warning: failed to stop tool service: %v", err)
		}
	})

	runner := NewContainerRunner(engine, composeFile)

	t.Run("BasicExecution", func(t *testing.T) {
		ctx := containerContext(cloud.AWS, nil)
		var stdout, stderr bytes.Buffer
		ctx.Stdout = &stdout
		ctx.Stderr = &stderr

		res := runner.Run(ctx, task.Command{Name: "echo", Args: []string{"hello from the tool container"}})
		if !res.Success() {
			t.Fatalf("Run() = %+v, stderr: %s", res, stderr.String())
		}
		if got := strings.TrimSpace(stdout.String()); got != "hello from the tool container" {
			t.Errorf("Run() output = %q", got)
		}
	})

	t.Run("CapturedOutput", func(t *testing.T) {
		ctx := containerContext(cloud.AWS, nil)
		var stderr bytes.Buffer
		ctx.Stderr = &stderr

		res := runner.RunCapture(ctx, task.Command{Name: "echo", Args: []string{"captured"}})
		if !res.Success() {
			t.Fatalf("RunCapture() = %+v, stderr: %s", res, stderr.String())
		}
		if got := strings.TrimSpace(res.Output); got != "captured" {
			t.Errorf("RunCapture() output = %q, want captured", got)
		}
	})

	t.Run("ExitCode", func(t *testing.T) {
		ctx := containerContext(cloud.AWS, nil)
		var stderr bytes.Buffer
		ctx.Stderr = &stderr

		res := runner.Run(ctx, task.Command{Name: "sh", Args: []string{"-c", "exit 42"}})
		if res.ExitCode != 42 {
			t.Errorf("Run() exit code = %d, want 42", res.ExitCode)
		}
	})

	t.Run("EnvForwarding", func(t *testing.T) {
		t.Setenv("TERRABAKE_FORWARD_TEST", "forwarded-value")

		ctx := containerContext(cloud.AWS, []string{"TERRABAKE_FORWARD_TEST"})
		var stderr bytes.Buffer
		ctx.Stderr = &stderr

		res := runner.RunCapture(ctx, task.Command{Name: "sh", Args: []string{"-c", "echo $TERRABAKE_FORWARD_TEST"}})
		if !res.Success() {
			t.Fatalf("RunCapture() = %+v, stderr: %s", res, stderr.String())
		}
		if got := strings.TrimSpace(res.Output); got != "forwarded-value" {
			t.Errorf("forwarded env value = %q, want forwarded-value", got)
		}
	})
}
