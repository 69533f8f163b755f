package cmd

import (
	"github.com/spf13/cobra"

	"cerdito/internal/app"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start all configured resources",
		Long: `Resumes every configured resource, data tier first:
Atlas clusters, AKS clusters, Kubernetes deployments and finally
Databricks job schedules.

Backends without configuration are skipped. The command fails when any
resource could not be started; the remaining ones are still processed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLifecycle(cmd, app.ModeStart)
		},
	}
}
