package azureauth

import (
	"cerdito/internal/backend"
	"cerdito/internal/config"
)

// Readiness is the gate shared by the Azure backends: the three service
// principal fields plus the backend's own resource list.
func Readiness(cfg config.AzureConfig, collection string, collectionPresent bool) backend.Readiness {
	return backend.CheckCredentials("Azure", collection, collectionPresent,
		backend.Credential{Field: "tenant ID", Value: cfg.TenantID},
		backend.Credential{Field: "client ID", Value: cfg.ClientID},
		backend.Credential{Field: "client secret", Value: cfg.ClientSecret},
	)
}

// CredentialsFrom copies the service principal out of cfg. Only call it once
// Readiness passed; absent fields become empty strings.
func CredentialsFrom(cfg config.AzureConfig) Credentials {
	var creds Credentials
	if cfg.TenantID != nil {
		creds.TenantID = *cfg.TenantID
	}
	if cfg.ClientID != nil {
		creds.ClientID = *cfg.ClientID
	}
	if cfg.ClientSecret != nil {
		creds.ClientSecret = *cfg.ClientSecret
	}
	return creds
}
