package app

import (
	"context"
	"fmt"
	"os"

	"cerdito/internal/config"
	"cerdito/pkg/logging"
)

// For mocking in tests
var osGetenv = os.Getenv

// Application is the main application structure that bootstraps and runs cerdito
type Application struct {
	config   *Config
	log      *logging.Logger
	services *Services
}

// NewApplication creates and initializes a new application instance.
// A configuration that cannot be read is fatal: no backend is built.
func NewApplication(cfg *Config) (*Application, error) {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	log := logging.New(logging.LevelFromVerbosity(cfg.Verbosity, osGetenv(config.EnvLogLevel)), output)

	cerditoCfg, path, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		log.Error("Bootstrap", err, "Failed to load cerdito configuration")
		return nil, fmt.Errorf("failed to load cerdito configuration: %w", err)
	}
	if path != "" {
		log.Debug("Bootstrap", "Loaded configuration from %s", path)
	} else {
		log.Debug("Bootstrap", "No configuration file found, using environment only")
	}

	services, err := InitializeServices(cfg, cerditoCfg, log)
	if err != nil {
		log.Error("Bootstrap", err, "Failed to initialize backends")
		return nil, fmt.Errorf("failed to initialize backends: %w", err)
	}

	return &Application{
		config:   cfg,
		log:      log,
		services: services,
	}, nil
}

// Run executes one lifecycle command.
func (a *Application) Run(ctx context.Context, mode Mode) error {
	summary, err := run(ctx, a.log, mode, a.services)
	if a.config.Summary {
		stdout := a.config.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		WriteSummary(stdout, summary)
	}
	return err
}
