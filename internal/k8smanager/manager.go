package k8smanager

import (
	"fmt"
	"path/filepath"
	"strings"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// NewK8sClientsetFromConfig is a package-level variable for creating a clientset from rest.Config.
// Exported to allow overriding in tests.
var NewK8sClientsetFromConfig = func(c *rest.Config) (kubernetes.Interface, error) {
	return kubernetes.NewForConfig(c)
}

// K8sNewNonInteractiveDeferredLoadingClientConfig is a package-level variable to allow mocking of clientcmd.NewNonInteractiveDeferredLoadingClientConfig.
var K8sNewNonInteractiveDeferredLoadingClientConfig = func(loader clientcmd.ClientConfigLoader, overrides *clientcmd.ConfigOverrides) clientcmd.ClientConfig {
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loader, overrides)
}

type kubeManager struct{}

// NewKubeManager creates a new instance of KubeManager.
func NewKubeManager() KubeManagerAPI {
	return &kubeManager{}
}

// LoadingRules turns a kubeconfig location into client-go loading rules.
// A path list (joined with the OS list separator, like KUBECONFIG) is merged
// in order; a single path is loaded on its own.
func LoadingRules(kubeconfig *string) *clientcmd.ClientConfigLoadingRules {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig == nil {
		return rules
	}
	if strings.Contains(*kubeconfig, string(filepath.ListSeparator)) {
		rules.Precedence = filepath.SplitList(*kubeconfig)
		return rules
	}
	rules.ExplicitPath = *kubeconfig
	return rules
}

func (km *kubeManager) clientConfig(kubeconfig *string) clientcmd.ClientConfig {
	return K8sNewNonInteractiveDeferredLoadingClientConfig(LoadingRules(kubeconfig), &clientcmd.ConfigOverrides{})
}

func (km *kubeManager) Clientset(kubeconfig *string) (kubernetes.Interface, error) {
	restConfig, err := km.clientConfig(kubeconfig).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get REST config from %s: %w", describe(kubeconfig), err)
	}

	clientset, err := NewK8sClientsetFromConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset from %s: %w", describe(kubeconfig), err)
	}
	return clientset, nil
}

func (km *kubeManager) CurrentContext(kubeconfig *string) (string, error) {
	raw, err := km.clientConfig(kubeconfig).RawConfig()
	if err != nil {
		return "", fmt.Errorf("failed to read kubeconfig %s: %w", describe(kubeconfig), err)
	}
	return raw.CurrentContext, nil
}

func describe(kubeconfig *string) string {
	if kubeconfig == nil {
		return "default kubeconfig"
	}
	return *kubeconfig
}
