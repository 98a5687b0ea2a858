// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	log "github.com/charmbracelet/log"

	"terrabake-cli/internal/cloud"
	"terrabake-cli/internal/compose"
	"terrabake-cli/internal/config"
	"terrabake-cli/internal/envcheck"
	"terrabake-cli/internal/issue"
	"terrabake-cli/internal/runtime"
	"terrabake-cli/internal/task"
)

// Environment variable names for the task inputs. Flags take precedence;
// the environment is read exactly once per invocation via envcheck.Snapshot.
const (
	envCloud   = "CLOUD"
	envStage   = "BOOTSTRAP_OR_TEST"
	envRuntime = "RUNTIME_ENV"
	envImage   = "IMAGE"
)

// resolveRequest builds the task request for op from flags and the
// environment snapshot, validating every input before anything executes.
func resolveRequest(op task.Operation, env map[string]string) (task.Request, error) {
	cfg := config.Get()

	pick := func(flagValue, envName, fallback string) string {
		if flagValue != "" {
			return flagValue
		}
		if v, ok := envcheck.Lookup(env, envName); ok {
			return v
		}
		return fallback
	}

	req := task.Request{
		Cloud:   cloud.Target(pick(cloudFlag, envCloud, "")),
		Stage:   cloud.Stage(pick(stageFlag, envStage, "")),
		Runtime: cloud.RuntimeMode(pick(runtimeFlag, envRuntime, cfg.DefaultRuntime)),
		Image:   cloud.Image(pick(imageFlag, envImage, "")),
	}

	if err := req.Validate(op); err != nil {
		showIssueCard(err)
		return task.Request{}, err
	}

	spec, err := cloud.Resolve(req.Cloud)
	if err != nil {
		showIssueCard(err)
		return task.Request{}, err
	}
	req.Spec = spec

	return req, nil
}

// runOperation is the shared driver behind every terra and packer
// subcommand: resolve the request, check credentials, build the argv, and
// execute (or print, under --dry-run). The last tool's exit code passes
// through as the process exit code.
func runOperation(op task.Operation) error {
	env := envcheck.Snapshot()

	req, err := resolveRequest(op, env)
	if err != nil {
		return err
	}

	required := op.RequiredVars(req.Spec)
	if err := envcheck.Check(env, required); err != nil {
		showIssueCard(err)
		return issue.NewErrorContext().
			WithOperation(fmt.Sprintf("run %s for cloud '%s'", op, req.Cloud)).
			WithSuggestion("Set every variable listed above and retry").
			Wrap(err).
			BuildError()
	}

	cmds, err := task.Commands(config.Get().Toolchain(), req, op)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(os.Stdout, task.RenderAll(cmds))
		return nil
	}

	cfg := config.Get()
	runner, err := runtime.ForMode(req.Runtime, cfg.EngineType(), cfg.ComposeFile)
	if err != nil {
		showIssueCard(err)
		return err
	}

	ctx := runtime.NewExecutionContext(req, env)
	ctx.WorkDir = cfg.ProjectRoot
	ctx.EnvForward = required
	ctx.Verbose = verbose

	log.Debug("dispatching operation",
		"operation", string(op),
		"cloud", req.Cloud.String(),
		"stage", req.Stage.String(),
		"runtime", req.Runtime.String(),
	)

	var res *runtime.Result
	if op == task.TerraSec {
		res = runSecScan(runner, ctx, cmds)
	} else {
		res = runtime.RunAll(runner, ctx, cmds)
	}

	if res.Error != nil {
		return res.Error
	}
	if !res.ExitCode.IsSuccess() {
		// Underlying tool failure: propagate the exit code verbatim.
		return &ExitError{Code: res.ExitCode}
	}
	return nil
}

// showIssueCard renders the help card matching a known failure condition.
// Unknown errors render nothing; the error text itself is still shown by
// the CLI error path.
func showIssueCard(err error) {
	id, ok := issueIDFor(err)
	if !ok {
		return
	}
	if card := issue.Get(id); card != nil {
		if rendered, rerr := card.Render("dark"); rerr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
	}
}

func issueIDFor(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, cloud.ErrInvalidCloud):
		return issue.InvalidCloudId, true
	case errors.Is(err, cloud.ErrInvalidRuntimeMode):
		return issue.InvalidRuntimeModeId, true
	case errors.Is(err, cloud.ErrInvalidStage):
		return issue.InvalidStageId, true
	case errors.Is(err, cloud.ErrInvalidImage):
		return issue.InvalidImageId, true
	case errors.Is(err, envcheck.ErrMissingVariable):
		return issue.MissingCredentialsId, true
	}

	var notAvail *compose.ErrEngineNotAvailable
	if errors.As(err, &notAvail) {
		return issue.ContainerEngineNotFoundId, true
	}
	return 0, false
}
