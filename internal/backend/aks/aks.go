// Package aks starts and stops Azure Kubernetes Service managed clusters
// through Azure Resource Manager.
package aks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cerdito/internal/azureauth"
	"cerdito/internal/backend"
	"cerdito/internal/config"
	"cerdito/pkg/logging"
)

const (
	// DefaultManagementURL is Azure Resource Manager.
	DefaultManagementURL = "https://management.azure.com"
	// APIVersion is the Microsoft.ContainerService API version used.
	APIVersion = "2024-02-01"

	notRunningMarker = "is not currently running"

	subsystem = "AKS"
	kind      = "AKS"
)

// Options tunes the backend; the zero value talks to the real Azure endpoints.
type Options struct {
	ManagementURL string
	LoginURL      string
	UserAgent     string
	HTTPClient    *http.Client
}

// Backend starts and stops the configured AKS clusters.
type Backend struct {
	cfg  config.AzureConfig
	opts Options
	log  *logging.Logger
}

// New creates the AKS backend. Only the credentials and the aks list of cfg are used.
func New(cfg config.AzureConfig, log *logging.Logger, opts Options) *Backend {
	if opts.ManagementURL == "" {
		opts.ManagementURL = DefaultManagementURL
	}
	opts.ManagementURL = strings.TrimSuffix(opts.ManagementURL, "/")

	log.Debug(subsystem, "Azure tenant ID: %s", deref(cfg.TenantID))
	log.Debug(subsystem, "Azure client ID: %s", deref(cfg.ClientID))
	log.Debug(subsystem, "Azure client secret: %s", logging.Mask(cfg.ClientSecret))
	log.Debug(subsystem, "AKS: %+v", cfg.AKS)

	return &Backend{cfg: cfg, opts: opts, log: log}
}

// Name implements backend.Backend.
func (b *Backend) Name() string {
	return subsystem
}

// Readiness implements backend.Backend.
func (b *Backend) Readiness() backend.Readiness {
	return azureauth.Readiness(b.cfg, "AKS clusters", b.cfg.AKS != nil)
}

// IsAlreadyInTargetState recognises ARM refusing to stop a stopped cluster.
// Starting has no such marker.
func IsAlreadyInTargetState(order backend.Order, _ int, body string) bool {
	return order == backend.Pause && strings.Contains(body, notRunningMarker)
}

// Apply implements backend.Backend.
func (b *Backend) Apply(ctx context.Context, order backend.Order) backend.Outcome {
	if !backend.Admit(b.log, subsystem, b.Readiness()) {
		return backend.SkippedOutcome(subsystem)
	}

	verbs := order.DefaultVerbs()
	outcome := backend.NewOutcome(subsystem)
	b.log.Debug(subsystem, "Trying to %s all configured AKS", verbs.Verb)

	client := b.opts.HTTPClient
	if client == nil {
		client = backend.NewHTTPClient(b.opts.UserAgent)
	}

	tokens := azureauth.NewClient(azureauth.CredentialsFrom(b.cfg), b.opts.LoginURL, client)
	token, err := tokens.Token(ctx, azureauth.ManagementScope)
	if err != nil {
		b.log.Error(subsystem, err, "Cannot obtain Azure token")
		outcome.Fail(err)
		outcome.LogSummary(b.log, subsystem, "AKS", verbs)
		return outcome
	}

	for _, cluster := range b.cfg.AKS {
		b.log.Info(subsystem, "%s AKS %s", verbs.Pre, cluster.ResourceName)

		attempt := backend.Attempt{Subsystem: subsystem, Kind: kind, Name: cluster.ResourceName, Order: order, Verbs: verbs}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.ActionURL(cluster, verbs.Verb), http.NoBody)
		if err != nil {
			outcome.RecordResponse(b.log, attempt, 0, "", err, nil)
			continue
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.ContentLength = 0

		status, body, err := backend.Do(client, req)
		outcome.RecordResponse(b.log, attempt, status, body, err, IsAlreadyInTargetState)
	}

	outcome.LogSummary(b.log, subsystem, "AKS", verbs)
	return outcome
}

// ActionURL is the ARM endpoint that runs action ("start" or "stop") on cluster.
func (b *Backend) ActionURL(cluster config.AKSCluster, action string) string {
	return fmt.Sprintf("%s/subscriptions/%s/resourceGroups/%s/providers/Microsoft.ContainerService/managedClusters/%s/%s?api-version=%s",
		b.opts.ManagementURL,
		url.PathEscape(cluster.SubscriptionID),
		url.PathEscape(cluster.ResourceGroupName),
		url.PathEscape(cluster.ResourceName),
		action,
		APIVersion,
	)
}

func deref(s *string) string {
	if s == nil {
		return "<unset>"
	}
	return *s
}
