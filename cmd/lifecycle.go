package cmd

import (
	"github.com/spf13/cobra"

	"cerdito/internal/app"
)

// runLifecycle bootstraps the application from the persistent flags and runs
// mode. Any backend failure makes the command fail.
func runLifecycle(cmd *cobra.Command, mode app.Mode) error {
	cfg := app.NewConfig(configPath, kubeconfig, verbosity, rootCmd.Version)
	cfg.Output = cmd.ErrOrStderr()
	cfg.Stdout = cmd.OutOrStdout()
	cfg.Summary = summary

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}
	return application.Run(cmd.Context(), mode)
}
