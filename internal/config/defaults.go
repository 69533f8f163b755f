package config

const (
	// AppName is used for the default config file name and the env prefix.
	AppName = "cerdito"

	defaultConfigFileName = AppName + ".yaml"

	// EnvConfigFile points at an alternative configuration file.
	EnvConfigFile = "CERDITO_CONFIG"
	// EnvLogLevel selects the log level when no -v flag is given.
	EnvLogLevel = "CERDITO_LOGLEVEL"
	// EnvKubeconfig is the standard kubeconfig variable honoured by kubectl.
	EnvKubeconfig = "KUBECONFIG"
)

// GetDefaultConfig returns the default configuration for cerdito.
// By default nothing is configured, so every backend is skipped.
func GetDefaultConfig() CerditoConfig {
	return CerditoConfig{}
}

// envOverrides lists every variable that may override a credential or path
// from the file. For each target the first variable that is set wins, so the
// CERDITO_ names take precedence over the vendor ones.
func envOverrides(cfg *CerditoConfig) []envOverride {
	return []envOverride{
		{target: &cfg.Atlas.PublicKey, names: []string{"CERDITO_ATLAS_PUBLIC_KEY", "MONGODB_ATLAS_PUBLIC_KEY"}},
		{target: &cfg.Atlas.PrivateKey, names: []string{"CERDITO_ATLAS_PRIVATE_KEY", "MONGODB_ATLAS_PRIVATE_KEY"}},
		{target: &cfg.Azure.TenantID, names: []string{"CERDITO_AZURE_TENANT_ID", "AZURE_TENANT_ID"}},
		{target: &cfg.Azure.ClientID, names: []string{"CERDITO_AZURE_CLIENT_ID", "AZURE_CLIENT_ID"}},
		{target: &cfg.Azure.ClientSecret, names: []string{"CERDITO_AZURE_CLIENT_SECRET", "AZURE_CLIENT_SECRET"}},
		{target: &cfg.Kubernetes.Kubeconfig, names: []string{"CERDITO_KUBERNETES_KUBECONFIG"}},
	}
}

type envOverride struct {
	target **string
	names  []string
}
