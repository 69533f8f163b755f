// Package config provides configuration management for cerdito.
//
// Configuration is read once at startup and handed to the backends as a
// read-only value. It is assembled from three layers, later layers
// overriding earlier ones:
//
//  1. Default Configuration (nothing configured, every backend skipped)
//  2. The YAML configuration file
//     - the --config flag, or
//     - the CERDITO_CONFIG environment variable, or
//     - ./cerdito.yaml (may be missing)
//  3. Environment variables for credentials and the kubeconfig path
//
// # Configuration Structure
//
//	atlas:
//	  publicKey: "abcdefgh"
//	  privateKey: "00000000-0000-0000-0000-000000000000"
//	  clusters:
//	    - name: "production"
//	      groupId: "5f0c0c0c0c0c0c0c0c0c0c0c"
//
//	azure:
//	  tenantId: "..."
//	  clientId: "..."
//	  clientSecret: "..."
//	  aks:
//	    - subscriptionId: "..."
//	      resourceGroupName: "rg-prod"
//	      resourceName: "aks-prod"
//	  databricks:
//	    - url: "https://adb-1234567890.12.azuredatabricks.net"
//	      allJobs: false
//	      jobs: ["nightly-etl", "hourly-sync"]
//
//	kubernetes:
//	  kubeconfig: "~/.kube/config"
//	  projects:
//	    - namespace: "shop"
//	      deployments: ["frontend", "backend"]
//
// # Absent versus Empty
//
// Credentials are optional pointers. A key that is missing leaves the
// backend unconfigured and it is skipped quietly; a key that is present but
// empty is a misconfiguration and the backend is skipped with a warning.
//
// # Environment Overlay
//
//   - CERDITO_ATLAS_PUBLIC_KEY / MONGODB_ATLAS_PUBLIC_KEY
//   - CERDITO_ATLAS_PRIVATE_KEY / MONGODB_ATLAS_PRIVATE_KEY
//   - CERDITO_AZURE_TENANT_ID / AZURE_TENANT_ID
//   - CERDITO_AZURE_CLIENT_ID / AZURE_CLIENT_ID
//   - CERDITO_AZURE_CLIENT_SECRET / AZURE_CLIENT_SECRET
//   - CERDITO_KUBERNETES_KUBECONFIG
//
// The kubeconfig used at runtime is chosen by ResolveKubeconfig: the
// --kubeconfig flag, then KUBECONFIG, then the file.
package config
