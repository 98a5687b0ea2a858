// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const usageGuide = `
# terrabake workflows

## Inputs

Every task reads four inputs, from flags or the environment:

| Input   | Variable          | Flag        | Values                     |
|---------|-------------------|-------------|----------------------------|
| cloud   | CLOUD             | --cloud     | azure, aws, gcp            |
| stage   | BOOTSTRAP_OR_TEST | --stage     | bootstrap, test            |
| runtime | RUNTIME_ENV       | --runtime   | local, container, pipeline |
| image   | IMAGE             | --image     | nginx, elasticsearch       |

Stage is required by the terra tasks; image by the packer tasks. Flags
win over environment variables.

## Credentials

Credentials are validated before anything runs, per cloud:

- **azure**: ARM_CLIENT_ID, ARM_CLIENT_SECRET, ARM_SUBSCRIPTION_ID,
  ARM_TENANT_ID (terraform); AZURE_CLIENT_ID, AZURE_CLIENT_SECRET,
  AZURE_SUBSCRIPTION_ID, AZURE_TENANT_ID (packer)
- **aws**: AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_DEFAULT_REGION
- **gcp**: GOOGLE_APPLICATION_CREDENTIALS, GOOGLE_PROJECT (plus
  GOOGLE_REGION for terraform)

In container mode the variables are forwarded into the tool container
by name; their values never appear in the command line.

## Typical session

    terrabake env up --cloud aws
    CLOUD=aws BOOTSTRAP_OR_TEST=test RUNTIME_ENV=container terrabake terra init
    terrabake terra plan
    terrabake terra sec
    terrabake terra apply
    terrabake packer build --image nginx
    terrabake terra destroy
    terrabake env down

Use --dry-run on any task to print the commands it would run.
`

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the terrabake usage guide",
	RunE: func(_ *cobra.Command, _ []string) error {
		rendered, err := glamour.Render(usageGuide, "dark")
		if err != nil {
			// Fall back to the raw markdown rather than failing.
			fmt.Print(usageGuide)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}
