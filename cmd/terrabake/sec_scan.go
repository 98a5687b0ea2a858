// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/charmbracelet/log"

	"terrabake-cli/internal/planinfo"
	"terrabake-cli/internal/runtime"
	"terrabake-cli/internal/task"
)

// runSecScan drives the terra-sec pipeline: plan, export the plan as
// structured JSON, summarize the pending changes, then hand the JSON to the
// security scanner. cmds is the ordered argv list from task.Commands
// (plan, show -json, scanner).
func runSecScan(runner runtime.Runner, ctx *runtime.ExecutionContext, cmds []task.Command) *runtime.Result {
	planCmd, showCmd, scanCmd := cmds[0], cmds[1], cmds[2]

	if res := runner.Run(ctx, planCmd); !res.Success() {
		return res
	}

	capturer, ok := runner.(runtime.CapturingRunner)
	if !ok {
		return &runtime.Result{ExitCode: 1, Error: fmt.Errorf("runner '%s' cannot capture plan output", runner.Name())}
	}
	res := capturer.RunCapture(ctx, showCmd)
	if !res.Success() {
		return res
	}

	jsonPath := filepath.Join(ctx.WorkDir, filepath.FromSlash(ctx.Request.TerraformRoot()), task.PlanJSONArtifact)
	if err := os.WriteFile(jsonPath, []byte(res.Output), 0o644); err != nil {
		return &runtime.Result{ExitCode: 1, Error: fmt.Errorf("failed to write plan JSON: %w", err)}
	}

	if plan, err := planinfo.Parse([]byte(res.Output)); err != nil {
		// A summary failure must not block the scan; the scanner consumes
		// the raw JSON regardless.
		log.Warn("could not summarize plan", "err", err)
	} else {
		summary := planinfo.Summarize(plan)
		log.Info("plan summary",
			"cloud", ctx.Request.Cloud.String(),
			"stage", ctx.Request.Stage.String(),
			"changes", summary.String(),
			"terraform", summary.TerraformVersion,
		)
	}

	return runner.Run(ctx, scanCmd)
}
