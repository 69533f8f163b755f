package k8smanager

import "k8s.io/client-go/kubernetes"

// KubeManagerAPI builds Kubernetes clients from a kubeconfig location.
// A nil kubeconfig means the client-go default loading rules.
type KubeManagerAPI interface {
	// Clientset returns a typed client for the current context of kubeconfig.
	Clientset(kubeconfig *string) (kubernetes.Interface, error)
	// CurrentContext names the context Clientset would use.
	CurrentContext(kubeconfig *string) (string, error)
}
