package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osGetwd = os.Getwd
var osLookupEnv = os.LookupEnv

// LoadConfig loads the cerdito configuration: defaults, then the YAML file,
// then the environment overlay.
//
// explicitPath is the value of the --config flag. When it is empty the
// CERDITO_CONFIG variable is consulted, and finally cerdito.yaml in the
// working directory. Only that last, implicit location may be missing; any
// other read or parse failure is returned. The second return value is the
// file that was actually read, or "" when none was.
func LoadConfig(explicitPath string) (CerditoConfig, string, error) {
	config := GetDefaultConfig()

	path, explicit, err := resolveConfigPath(explicitPath)
	if err != nil {
		return CerditoConfig{}, "", fmt.Errorf("could not determine config path: %w", err)
	}

	fileConfig, err := loadConfigFromFile(path)
	switch {
	case err == nil:
		config = mergeConfigs(config, fileConfig)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		path = ""
	default:
		return CerditoConfig{}, "", fmt.Errorf("error loading config from %s: %w", path, err)
	}

	applyEnvOverlay(&config)
	return config, path, nil
}

// resolveConfigPath reports the file to read and whether the user asked for it.
func resolveConfigPath(explicitPath string) (string, bool, error) {
	if explicitPath != "" {
		return explicitPath, true, nil
	}
	if envPath, ok := osLookupEnv(EnvConfigFile); ok && envPath != "" {
		return envPath, true, nil
	}
	wd, err := osGetwd()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(wd, defaultConfigFileName), false, nil
}

// loadConfigFromFile loads a CerditoConfig from a YAML file.
func loadConfigFromFile(filePath string) (CerditoConfig, error) {
	var config CerditoConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return CerditoConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return CerditoConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
// Set values in the overlay replace the base ones; lists are replaced whole.
func mergeConfigs(base, overlay CerditoConfig) CerditoConfig {
	merged := base

	if overlay.Atlas.PublicKey != nil {
		merged.Atlas.PublicKey = overlay.Atlas.PublicKey
	}
	if overlay.Atlas.PrivateKey != nil {
		merged.Atlas.PrivateKey = overlay.Atlas.PrivateKey
	}
	if overlay.Atlas.Clusters != nil {
		merged.Atlas.Clusters = overlay.Atlas.Clusters
	}

	if overlay.Azure.TenantID != nil {
		merged.Azure.TenantID = overlay.Azure.TenantID
	}
	if overlay.Azure.ClientID != nil {
		merged.Azure.ClientID = overlay.Azure.ClientID
	}
	if overlay.Azure.ClientSecret != nil {
		merged.Azure.ClientSecret = overlay.Azure.ClientSecret
	}
	if overlay.Azure.AKS != nil {
		merged.Azure.AKS = overlay.Azure.AKS
	}
	if overlay.Azure.Databricks != nil {
		merged.Azure.Databricks = overlay.Azure.Databricks
	}

	if overlay.Kubernetes.Kubeconfig != nil {
		merged.Kubernetes.Kubeconfig = overlay.Kubernetes.Kubeconfig
	}
	if overlay.Kubernetes.Projects != nil {
		merged.Kubernetes.Projects = overlay.Kubernetes.Projects
	}

	return merged
}

// applyEnvOverlay replaces credentials with values from the environment.
// A variable that is set but empty still overrides, so the gate can report it.
func applyEnvOverlay(cfg *CerditoConfig) {
	for _, o := range envOverrides(cfg) {
		for _, name := range o.names {
			if value, ok := osLookupEnv(name); ok {
				v := value
				*o.target = &v
				break
			}
		}
	}
}

// ResolveKubeconfig picks the kubeconfig path: the --kubeconfig flag first,
// then KUBECONFIG, then the configuration file. nil means "use the client-go
// default loading rules".
func ResolveKubeconfig(flagPath string, cfg KubernetesConfig) *string {
	if flagPath != "" {
		return &flagPath
	}
	if envPath, ok := osLookupEnv(EnvKubeconfig); ok && envPath != "" {
		return &envPath
	}
	return cfg.Kubeconfig
}
