package cmd

import (
	"github.com/spf13/cobra"

	"cerdito/internal/app"
)

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop all configured resources",
		Long: `Pauses every configured resource in the reverse order of start:
Databricks job schedules, Kubernetes deployments, AKS clusters and
finally Atlas clusters.

Resources that are already stopped count as stopped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLifecycle(cmd, app.ModeStop)
		},
	}
}
