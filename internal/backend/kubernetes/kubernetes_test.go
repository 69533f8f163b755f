package kubernetes

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	k8s "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"cerdito/internal/backend"
	"cerdito/internal/config"
	"cerdito/pkg/logging"
)

func strPtr(s string) *string { return &s }

type stubKube struct {
	clientset  k8s.Interface
	err        error
	calls      int
	kubeconfig *string
}

func (s *stubKube) Clientset(kubeconfig *string) (k8s.Interface, error) {
	s.calls++
	s.kubeconfig = kubeconfig
	if s.err != nil {
		return nil, s.err
	}
	return s.clientset, nil
}

func (s *stubKube) CurrentContext(*string) (string, error) {
	return "test-context", nil
}

func deployment(namespace, name string, replicas int32) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec:       appsv1.DeploymentSpec{Replicas: &replicas},
	}
}

func replicasOf(t *testing.T, cs k8s.Interface, namespace, name string) int32 {
	t.Helper()
	d, err := cs.AppsV1().Deployments(namespace).Get(context.Background(), name, metav1.GetOptions{})
	require.NoError(t, err)
	require.NotNil(t, d.Spec.Replicas)
	return *d.Spec.Replicas
}

func patchActions(cs *fake.Clientset) []k8stesting.PatchAction {
	var patches []k8stesting.PatchAction
	for _, a := range cs.Actions() {
		if p, ok := a.(k8stesting.PatchAction); ok {
			patches = append(patches, p)
		}
	}
	return patches
}

func TestApply_ScalesDownAndUp(t *testing.T) {
	cs := fake.NewSimpleClientset(
		deployment("shop", "api", 1),
		deployment("shop", "worker", 1),
		deployment("blog", "web", 1),
	)
	kube := &stubKube{clientset: cs}
	cfg := config.KubernetesConfig{Projects: []config.KubernetesProject{
		{Namespace: "shop", Deployments: []string{"api", "worker"}},
		{Namespace: "blog", Deployments: []string{"web"}},
	}}
	kubeconfig := "/tmp/kubeconfig"
	var buf bytes.Buffer
	b := New(cfg, &kubeconfig, kube, logging.New(logging.LevelDebug, &buf))

	outcome := b.Apply(context.Background(), backend.Pause)

	assert.False(t, outcome.Failed())
	assert.Equal(t, 3, outcome.Succeeded)
	assert.Equal(t, &kubeconfig, kube.kubeconfig)
	assert.Zero(t, replicasOf(t, cs, "shop", "api"))
	assert.Zero(t, replicasOf(t, cs, "shop", "worker"))
	assert.Zero(t, replicasOf(t, cs, "blog", "web"))

	out := buf.String()
	assert.Contains(t, out, "Scaling down Kubernetes project shop")
	assert.Contains(t, out, "Kubernetes deployment api scaled down")
	assert.Contains(t, out, "Kubernetes project blog has been scaled down")
	assert.Contains(t, out, "All projects have been scaled down")

	outcome = b.Apply(context.Background(), backend.Resume)

	assert.False(t, outcome.Failed())
	assert.Equal(t, int32(1), replicasOf(t, cs, "shop", "api"))
	assert.Equal(t, int32(1), replicasOf(t, cs, "blog", "web"))
}

func TestApply_PatchShape(t *testing.T) {
	cs := fake.NewSimpleClientset(deployment("shop", "api", 1))
	b := New(config.KubernetesConfig{Projects: []config.KubernetesProject{{Namespace: "shop", Deployments: []string{"api"}}}},
		nil, &stubKube{clientset: cs}, logging.Discard())

	b.Apply(context.Background(), backend.Pause)

	patches := patchActions(cs)
	require.Len(t, patches, 1)
	assert.Equal(t, "deployments", patches[0].GetResource().Resource)
	assert.Equal(t, "shop", patches[0].GetNamespace())
	assert.Equal(t, "api", patches[0].GetName())
	assert.Empty(t, patches[0].GetSubresource())
	assert.JSONEq(t, `{"spec":{"replicas":0}}`, string(patches[0].GetPatch()))
}

func TestApply_MissingDeploymentFailsButContinues(t *testing.T) {
	cs := fake.NewSimpleClientset(deployment("shop", "worker", 1))
	cfg := config.KubernetesConfig{Projects: []config.KubernetesProject{
		{Namespace: "shop", Deployments: []string{"api", "worker"}},
		{Namespace: "blog", Deployments: []string{}},
	}}
	var buf bytes.Buffer
	b := New(cfg, nil, &stubKube{clientset: cs}, logging.New(logging.LevelDebug, &buf))

	outcome := b.Apply(context.Background(), backend.Pause)

	assert.True(t, outcome.Failed())
	assert.Equal(t, 2, outcome.Attempted)
	assert.Equal(t, 1, outcome.Succeeded)
	assert.True(t, errors.Is(outcome.Err(), backend.ErrOperationFailed))
	assert.Zero(t, replicasOf(t, cs, "shop", "worker"))

	out := buf.String()
	assert.Contains(t, out, "Something has gone wrong trying to scale down deployment api in shop")
	assert.Contains(t, out, "Some (or all) deployments in Kubernetes project shop have failed to scale down")
	assert.Contains(t, out, "Kubernetes project blog has been scaled down", "failures do not leak into the next project")
	assert.Contains(t, out, "Some (or all) projects have failed to scale down")
}

func TestApply_PatchErrorFromAPI(t *testing.T) {
	cs := fake.NewSimpleClientset(deployment("shop", "api", 1))
	cs.PrependReactor("patch", "deployments", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("admission webhook denied the request")
	})
	var buf bytes.Buffer
	b := New(config.KubernetesConfig{Projects: []config.KubernetesProject{{Namespace: "shop", Deployments: []string{"api"}}}},
		nil, &stubKube{clientset: cs}, logging.New(logging.LevelDebug, &buf))

	outcome := b.Apply(context.Background(), backend.Resume)

	assert.True(t, outcome.Failed())
	assert.Contains(t, outcome.Err().Error(), "admission webhook denied the request")
	assert.Contains(t, buf.String(), "Some (or all) projects have failed to scale up")
}

func TestApply_ClientSetupFailure(t *testing.T) {
	kube := &stubKube{err: errors.New("no such file")}
	var buf bytes.Buffer
	b := New(config.KubernetesConfig{Projects: []config.KubernetesProject{{Namespace: "shop", Deployments: []string{"api"}}}},
		nil, kube, logging.New(logging.LevelDebug, &buf))

	outcome := b.Apply(context.Background(), backend.Pause)

	assert.True(t, outcome.Failed())
	assert.False(t, outcome.Skipped)
	assert.True(t, errors.Is(outcome.Err(), backend.ErrClientSetup))
	assert.Zero(t, outcome.Attempted)
	assert.Contains(t, buf.String(), "Kubernetes client cannot be configured")
}

func TestReadiness(t *testing.T) {
	projects := []config.KubernetesProject{{Namespace: "shop"}}

	tests := []struct {
		name       string
		projects   []config.KubernetesProject
		kubeconfig *string
		want       backend.ReadinessState
		wantReason string
	}{
		{name: "ready with default kubeconfig", projects: projects, want: backend.StateReady},
		{name: "ready with explicit kubeconfig", projects: projects, kubeconfig: strPtr("/k"), want: backend.StateReady},
		{name: "no projects", want: backend.StateAbsent, wantReason: "No Kubernetes projects configured"},
		{name: "empty kubeconfig", projects: projects, kubeconfig: strPtr(""), want: backend.StateInvalid, wantReason: "Kubernetes kubeconfig cannot be an empty string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kube := &stubKube{}
			var buf bytes.Buffer
			b := New(config.KubernetesConfig{Projects: tt.projects}, tt.kubeconfig, kube, logging.New(logging.LevelInfo, &buf))

			r := b.Readiness()
			assert.Equal(t, tt.want, r.State)
			assert.Equal(t, tt.wantReason, r.Reason)

			if tt.want != backend.StateReady {
				outcome := b.Apply(context.Background(), backend.Pause)
				assert.True(t, outcome.Skipped)
				assert.Zero(t, kube.calls, "a skipped backend never builds a client")
				assert.Contains(t, buf.String(), "skipping Kubernetes action")
			}
		})
	}
}

func TestReplicas(t *testing.T) {
	assert.Equal(t, int32(0), Replicas(backend.Pause))
	assert.Equal(t, int32(1), Replicas(backend.Resume))
}
