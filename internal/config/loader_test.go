package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
atlas:
  publicKey: pub
  privateKey: priv
  clusters:
    - name: x
      groupId: g1
    - name: y
      groupId: g1
azure:
  tenantId: tenant
  clientId: client
  clientSecret: ""
  aks:
    - subscriptionId: sub
      resourceGroupName: rg
      resourceName: aks1
  databricks:
    - url: https://adb.example.net
      allJobs: true
    - url: https://adb2.example.net
      jobs: [a, b]
kubernetes:
  projects:
    - namespace: shop
      deployments: [frontend, backend]
`

// mockEnv swaps the environment lookup for a fixed map for the duration of a test.
func mockEnv(t *testing.T, env map[string]string) {
	t.Helper()
	original := osLookupEnv
	osLookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	t.Cleanup(func() { osLookupEnv = original })
}

func mockWd(t *testing.T, dir string) {
	t.Helper()
	original := osGetwd
	osGetwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { osGetwd = original })
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	mockEnv(t, nil)
	mockWd(t, t.TempDir())

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)

	assert.Empty(t, path)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoadConfig_DefaultFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	mockEnv(t, nil)
	mockWd(t, dir)
	expected := writeFile(t, dir, "cerdito.yaml", sampleConfig)

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, expected, path)
	require.NotNil(t, cfg.Atlas.PublicKey)
	assert.Equal(t, "pub", *cfg.Atlas.PublicKey)
	assert.Equal(t, []AtlasCluster{{Name: "x", GroupID: "g1"}, {Name: "y", GroupID: "g1"}}, cfg.Atlas.Clusters)

	// Present but empty is kept as an empty string, not dropped.
	require.NotNil(t, cfg.Azure.ClientSecret)
	assert.Equal(t, "", *cfg.Azure.ClientSecret)

	require.Len(t, cfg.Azure.Databricks, 2)
	assert.True(t, cfg.Azure.Databricks[0].AllJobs)
	assert.Empty(t, cfg.Azure.Databricks[0].Jobs)
	assert.False(t, cfg.Azure.Databricks[1].AllJobs)
	assert.Equal(t, []string{"a", "b"}, cfg.Azure.Databricks[1].Jobs)

	assert.Nil(t, cfg.Kubernetes.Kubeconfig)
	assert.Equal(t, []KubernetesProject{{Namespace: "shop", Deployments: []string{"frontend", "backend"}}}, cfg.Kubernetes.Projects)
}

func TestLoadConfig_ExplicitPathMissingIsFatal(t *testing.T) {
	mockEnv(t, nil)

	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_EnvPathMissingIsFatal(t *testing.T) {
	mockEnv(t, map[string]string{EnvConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})

	_, _, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_ParseErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	mockEnv(t, nil)
	path := writeFile(t, dir, "broken.yaml", "atlas: [not, a, map")

	_, _, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadConfig_EnvOverlay(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", sampleConfig)
	mockEnv(t, map[string]string{
		"MONGODB_ATLAS_PUBLIC_KEY":  "vendor-pub",
		"CERDITO_ATLAS_PUBLIC_KEY":  "cerdito-pub",
		"MONGODB_ATLAS_PRIVATE_KEY": "vendor-priv",
		"AZURE_CLIENT_SECRET":       "s3cr3t",
		"CERDITO_AZURE_TENANT_ID":   "",
	})

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "cerdito-pub", *cfg.Atlas.PublicKey, "CERDITO_ variables win over vendor ones")
	assert.Equal(t, "vendor-priv", *cfg.Atlas.PrivateKey)
	assert.Equal(t, "s3cr3t", *cfg.Azure.ClientSecret)
	require.NotNil(t, cfg.Azure.TenantID)
	assert.Equal(t, "", *cfg.Azure.TenantID, "an empty variable still overrides")
	assert.Equal(t, "client", *cfg.Azure.ClientID)
}

func TestMergeConfigs(t *testing.T) {
	basePub := "base"
	overlayPriv := "overlay"
	base := CerditoConfig{Atlas: AtlasConfig{PublicKey: &basePub, Clusters: []AtlasCluster{{Name: "a"}}}}
	overlay := CerditoConfig{Atlas: AtlasConfig{PrivateKey: &overlayPriv, Clusters: []AtlasCluster{{Name: "b"}}}}

	merged := mergeConfigs(base, overlay)

	assert.Equal(t, "base", *merged.Atlas.PublicKey)
	assert.Equal(t, "overlay", *merged.Atlas.PrivateKey)
	assert.Equal(t, []AtlasCluster{{Name: "b"}}, merged.Atlas.Clusters)
}

func TestResolveKubeconfig(t *testing.T) {
	fromFile := "/from/file"
	cfg := KubernetesConfig{Kubeconfig: &fromFile}

	t.Run("flag wins", func(t *testing.T) {
		mockEnv(t, map[string]string{EnvKubeconfig: "/from/env"})
		got := ResolveKubeconfig("/from/flag", cfg)
		require.NotNil(t, got)
		assert.Equal(t, "/from/flag", *got)
	})

	t.Run("env before file", func(t *testing.T) {
		mockEnv(t, map[string]string{EnvKubeconfig: "/from/env"})
		got := ResolveKubeconfig("", cfg)
		require.NotNil(t, got)
		assert.Equal(t, "/from/env", *got)
	})

	t.Run("file", func(t *testing.T) {
		mockEnv(t, nil)
		got := ResolveKubeconfig("", cfg)
		require.NotNil(t, got)
		assert.Equal(t, "/from/file", *got)
	})

	t.Run("default rules", func(t *testing.T) {
		mockEnv(t, nil)
		assert.Nil(t, ResolveKubeconfig("", KubernetesConfig{}))
	})
}
