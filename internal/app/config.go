package app

import (
	"io"
	"os"
)

// Config holds the application configuration taken from the command line.
type Config struct {
	// ConfigPath is the --config flag; empty means CERDITO_CONFIG or cerdito.yaml.
	ConfigPath string
	// Kubeconfig is the --kubeconfig flag.
	Kubeconfig string
	// Verbosity counts the -v flags.
	Verbosity int
	// Version is stamped into the outbound User-Agent.
	Version string

	// Summary prints a per-backend result table once the run is over.
	Summary bool

	// Output receives log records; nil means stderr.
	Output io.Writer
	// Stdout receives the summary table; nil means stdout.
	Stdout io.Writer
}

// NewConfig creates a new application configuration
func NewConfig(configPath, kubeconfig string, verbosity int, version string) *Config {
	return &Config{
		ConfigPath: configPath,
		Kubeconfig: kubeconfig,
		Verbosity:  verbosity,
		Version:    version,
		Output:     os.Stderr,
		Stdout:     os.Stdout,
	}
}

// UserAgent is the User-Agent sent to every REST API.
func (c *Config) UserAgent() string {
	if c.Version == "" {
		return "cerdito"
	}
	return "cerdito/" + c.Version
}
