// Package kubernetes scales the deployments of configured namespaces down to
// zero replicas and back up to one.
package kubernetes

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	k8s "k8s.io/client-go/kubernetes"

	"cerdito/internal/backend"
	"cerdito/internal/config"
	"cerdito/internal/k8smanager"
	"cerdito/pkg/logging"
)

const (
	// FieldManager identifies cerdito's writes in managedFields.
	FieldManager = "cerdito"

	subsystem = "Kubernetes"
	kind      = "Kubernetes deployment"
)

// Backend scales the deployments of the configured projects.
type Backend struct {
	projects   []config.KubernetesProject
	kubeconfig *string
	kube       k8smanager.KubeManagerAPI
	log        *logging.Logger
}

// New creates the Kubernetes backend. kubeconfig is the already resolved
// location (see config.ResolveKubeconfig); nil selects the client-go defaults.
func New(cfg config.KubernetesConfig, kubeconfig *string, kube k8smanager.KubeManagerAPI, log *logging.Logger) *Backend {
	if kube == nil {
		kube = k8smanager.NewKubeManager()
	}
	log.Debug(subsystem, "Kubernetes kubeconfig file: %s", describeKubeconfig(kubeconfig))
	log.Debug(subsystem, "Kubernetes projects: %+v", cfg.Projects)
	return &Backend{projects: cfg.Projects, kubeconfig: kubeconfig, kube: kube, log: log}
}

// Name implements backend.Backend.
func (b *Backend) Name() string {
	return subsystem
}

// Readiness implements backend.Backend. No credentials are needed; the
// kubeconfig carries them.
func (b *Backend) Readiness() backend.Readiness {
	if b.projects == nil {
		return backend.Absent("No Kubernetes projects configured")
	}
	if b.kubeconfig != nil && *b.kubeconfig == "" {
		return backend.Invalid(subsystem, "kubeconfig")
	}
	return backend.Ready()
}

// Replicas is the replica count a deployment is scaled to.
func Replicas(order backend.Order) int32 {
	if order == backend.Pause {
		return 0
	}
	return 1
}

// Apply implements backend.Backend.
func (b *Backend) Apply(ctx context.Context, order backend.Order) backend.Outcome {
	if !backend.Admit(b.log, subsystem, b.Readiness()) {
		return backend.SkippedOutcome(subsystem)
	}

	verbs := order.ScaleVerbs()
	outcome := backend.NewOutcome(subsystem)
	b.log.Debug(subsystem, "Trying to %s all configured projects", verbs.Verb)
	b.log.Debug(subsystem, "Using kubeconfig %s", describeKubeconfig(b.kubeconfig))

	clientset, err := b.kube.Clientset(b.kubeconfig)
	if err != nil {
		b.log.Error(subsystem, err, "Kubernetes client cannot be configured")
		outcome.Fail(fmt.Errorf("%w: %w", backend.ErrClientSetup, err))
		outcome.LogSummary(b.log, subsystem, "projects", verbs)
		return outcome
	}
	if name, err := b.kube.CurrentContext(b.kubeconfig); err == nil {
		b.log.Debug(subsystem, "Using Kubernetes context %s", name)
	}

	patch := []byte(fmt.Sprintf(`{"spec":{"replicas":%d}}`, Replicas(order)))
	for _, project := range b.projects {
		b.log.Info(subsystem, "%s Kubernetes project %s", verbs.Pre, project.Namespace)

		before := len(outcome.Errors())
		for _, deployment := range project.Deployments {
			outcome.Record(b.scale(ctx, clientset, project.Namespace, deployment, patch, verbs))
		}

		if len(outcome.Errors()) > before {
			b.log.Debug(subsystem, "Some (or all) deployments in Kubernetes project %s have failed to %s", project.Namespace, verbs.Verb)
		} else {
			b.log.Debug(subsystem, "Kubernetes project %s has been %s", project.Namespace, verbs.Past)
		}
	}

	outcome.LogSummary(b.log, subsystem, "projects", verbs)
	return outcome
}

func (b *Backend) scale(ctx context.Context, clientset k8s.Interface, namespace, deployment string, patch []byte, verbs backend.Verbs) error {
	_, err := clientset.AppsV1().Deployments(namespace).Patch(ctx, deployment, types.StrategicMergePatchType, patch,
		metav1.PatchOptions{FieldManager: FieldManager})
	if err != nil {
		b.log.Error(subsystem, err, "Something has gone wrong trying to %s deployment %s in %s", verbs.Verb, deployment, namespace)
		return backend.OperationError(kind, namespace+"/"+deployment, verbs.Verb, err)
	}
	b.log.Info(subsystem, "Kubernetes deployment %s %s", deployment, verbs.Past)
	return nil
}

func describeKubeconfig(kubeconfig *string) string {
	if kubeconfig == nil {
		return "default location"
	}
	return *kubeconfig
}
