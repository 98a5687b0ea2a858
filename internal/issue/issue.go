// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a known failure condition with a rendered help card.
type Id int

const (
	InvalidCloudId Id = iota + 1
	InvalidRuntimeModeId
	InvalidStageId
	InvalidImageId
	MissingCredentialsId
	ContainerEngineNotFoundId
	ComposeServiceNotRunningId
	ConfigLoadFailedId
	PlanArtifactMissingId
)

// MarkdownMsg is the markdown body of an issue card.
type MarkdownMsg string

// Issue is a known failure condition with user-facing remediation guidance.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

// Id returns the issue's identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue card for terminal display using the given
// glamour style path (e.g. "dark").
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	invalidCloudIssue = &Issue{
		id: InvalidCloudId,
		mdMsg: `
# Unknown cloud target!

The CLOUD value is not one of the supported targets.

## Supported targets:
- azure
- aws
- gcp

## Things you can try:
~~~
$ export CLOUD=aws
$ terrabake terra plan
~~~
or pass the target explicitly:
~~~
$ terrabake terra plan --cloud aws
~~~`,
	}

	invalidRuntimeModeIssue = &Issue{
		id: InvalidRuntimeModeId,
		mdMsg: `
# Unknown runtime mode!

The RUNTIME_ENV value is not one of the supported modes.

## Supported modes:
- local: run tools directly on this host
- container: run tools inside the per-cloud compose service
- pipeline: run tools directly, under pipeline automation

## Things you can try:
~~~
$ export RUNTIME_ENV=local
~~~
or pass the mode explicitly:
~~~
$ terrabake terra plan --runtime local
~~~`,
	}

	invalidStageIssue = &Issue{
		id: InvalidStageId,
		mdMsg: `
# Unknown stage!

The BOOTSTRAP_OR_TEST value must select one of the two Terraform root
configurations.

## Supported stages:
- bootstrap: initial environment setup
- test: disposable test environment

## Things you can try:
~~~
$ export BOOTSTRAP_OR_TEST=test
~~~
or:
~~~
$ terrabake terra plan --stage test
~~~`,
	}

	invalidImageIssue = &Issue{
		id: InvalidImageId,
		mdMsg: `
# Unknown image target!

The IMAGE value is not one of the known Packer templates.

## Supported images:
- nginx
- elasticsearch

## Things you can try:
~~~
$ export IMAGE=nginx
$ terrabake packer build
~~~
or:
~~~
$ terrabake packer build --image nginx
~~~`,
	}

	missingCredentialsIssue = &Issue{
		id: MissingCredentialsId,
		mdMsg: `
# Missing cloud credentials!

One or more required credential variables are unset or empty. Nothing was
executed; set every variable named in the error above and retry.

## Required variables per cloud:
| cloud | terraform                                                            |
|-------|----------------------------------------------------------------------|
| azure | ARM_CLIENT_ID, ARM_CLIENT_SECRET, ARM_SUBSCRIPTION_ID, ARM_TENANT_ID |
| aws   | AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_DEFAULT_REGION         |
| gcp   | GOOGLE_APPLICATION_CREDENTIALS, GOOGLE_PROJECT, GOOGLE_REGION        |

Packer operations use the analogous AZURE_*/AWS_*/GOOGLE_* variables; run
this to see the full list for your cloud:
~~~
$ terrabake config show
~~~`,
	}

	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# No container engine available!

Runtime mode is 'container', but neither docker nor podman is usable on
this host.

## Things you can try:
- Install Docker or Podman and ensure its daemon/socket is running
- Check engine health:
~~~
$ docker version
~~~
- Or run directly on the host instead:
~~~
$ terrabake terra plan --runtime local
~~~`,
	}

	composeServiceNotRunningIssue = &Issue{
		id: ComposeServiceNotRunningId,
		mdMsg: `
# Compose service is not running!

Container mode executes inside the per-cloud service
(<cloud>-terraform-packer), which must be started first.

## Things you can try:
~~~
$ terrabake env up
~~~
then retry the operation. When you are done:
~~~
$ terrabake env down
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load workspace configuration!

The terrabake config file exists but could not be parsed or failed schema
validation.

## Things you can try:
- Check the error message above for the offending line
- Regenerate a default config:
~~~
$ terrabake config init
~~~
- Inspect the effective configuration:
~~~
$ terrabake config show
~~~`,
	}

	planArtifactMissingIssue = &Issue{
		id: PlanArtifactMissingId,
		mdMsg: `
# No plan artifact found!

'terra apply' consumes the plan produced by an earlier step, but
tfplan.binary does not exist in the terraform root.

## Things you can try:
~~~
$ terrabake terra plan
$ terrabake terra apply
~~~`,
	}

	issues = map[Id]*Issue{
		InvalidCloudId:             invalidCloudIssue,
		InvalidRuntimeModeId:       invalidRuntimeModeIssue,
		InvalidStageId:             invalidStageIssue,
		InvalidImageId:             invalidImageIssue,
		MissingCredentialsId:       missingCredentialsIssue,
		ContainerEngineNotFoundId:  containerEngineNotFoundIssue,
		ComposeServiceNotRunningId: composeServiceNotRunningIssue,
		ConfigLoadFailedId:         configLoadFailedIssue,
		PlanArtifactMissingId:      planArtifactMissingIssue,
	}
)

// Get returns the issue registered under id, or nil if unknown.
func Get(id Id) *Issue {
	return issues[id]
}

// Ids returns all registered issue ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	return ids
}
