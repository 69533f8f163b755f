package app

import (
	"cerdito/internal/backend"
	"cerdito/internal/backend/aks"
	"cerdito/internal/backend/atlas"
	"cerdito/internal/backend/databricks"
	"cerdito/internal/backend/kubernetes"
	"cerdito/internal/config"
	"cerdito/internal/k8smanager"
	"cerdito/internal/orchestrator"
	"cerdito/pkg/logging"
)

// For mocking in tests
var newKubeManager = k8smanager.NewKubeManager

// Services holds the backends and the orchestrator driving them.
type Services struct {
	Orchestrator *orchestrator.Orchestrator
	Backends     []backend.Backend // start order
}

// InitializeServices builds one instance of every backend from the merged
// configuration. Building never touches the network.
func InitializeServices(cfg *Config, cerditoCfg config.CerditoConfig, log *logging.Logger) (*Services, error) {
	userAgent := cfg.UserAgent()
	kubeconfig := config.ResolveKubeconfig(cfg.Kubeconfig, cerditoCfg.Kubernetes)

	backends := []backend.Backend{
		atlas.New(cerditoCfg.Atlas, log, atlas.Options{UserAgent: userAgent}),
		aks.New(cerditoCfg.Azure, log, aks.Options{UserAgent: userAgent}),
		kubernetes.New(cerditoCfg.Kubernetes, kubeconfig, newKubeManager(), log),
		databricks.New(cerditoCfg.Azure, log, databricks.Options{UserAgent: userAgent}),
	}

	return &Services{
		Orchestrator: orchestrator.New(log, backends...),
		Backends:     backends,
	}, nil
}
