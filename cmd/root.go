package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	kubeconfig string
	verbosity  int
	summary    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cerdito",
	Short: "Start and stop your cloud resources on demand",
	Long: `cerdito pauses and resumes the cloud resources of a development or
staging environment so they only cost money while they are in use:

  - MongoDB Atlas clusters are paused and resumed.
  - Azure Kubernetes Service clusters are stopped and started.
  - Kubernetes deployments are scaled to zero and back to one replica.
  - Azure Databricks job schedules are paused and unpaused.

Resources are read from cerdito.yaml (or --config / CERDITO_CONFIG).
Credentials may also come from the environment.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. a backend that failed)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "cerdito version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default is $CERDITO_CONFIG or ./cerdito.yaml)")
	rootCmd.PersistentFlags().StringVarP(&kubeconfig, "kubeconfig", "k", "", "kubeconfig file (default is $KUBECONFIG or the config file value)")
	rootCmd.PersistentFlags().BoolVar(&summary, "summary", false, "print a per-backend result table when done")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")
}
