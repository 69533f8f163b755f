// Package atlas pauses and resumes MongoDB Atlas clusters through the Atlas
// Administration API, authenticating with HTTP digest auth.
package atlas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/icholy/digest"

	"cerdito/internal/backend"
	"cerdito/internal/config"
	"cerdito/pkg/logging"
)

const (
	// DefaultBaseURL is the Atlas control plane.
	DefaultBaseURL = "https://cloud.mongodb.com"
	// APIVersion is the Atlas Administration API path version.
	APIVersion = "v2"

	acceptHeader        = "application/vnd.atlas.2023-02-01+json"
	alreadyPausedMarker = "CLUSTER_ALREADY_PAUSED"

	subsystem = "Atlas"
	kind      = "Atlas cluster"
)

// Options tunes the backend; the zero value talks to the real Atlas API.
type Options struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client // wrapped with digest auth; nil builds a pooled client
}

// Backend pauses and resumes the configured Atlas clusters.
type Backend struct {
	cfg  config.AtlasConfig
	opts Options
	log  *logging.Logger
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

// New creates the Atlas backend. The configuration is only read.
func New(cfg config.AtlasConfig, log *logging.Logger, opts Options) *Backend {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")

	publicKey := "<unset>"
	if cfg.PublicKey != nil {
		publicKey = *cfg.PublicKey
	}
	log.Debug(subsystem, "Atlas public key: %s", publicKey)
	log.Debug(subsystem, "Atlas private key: %s", logging.Mask(cfg.PrivateKey))
	log.Debug(subsystem, "Atlas clusters: %+v", cfg.Clusters)

	return &Backend{cfg: cfg, opts: opts, log: log}
}

// Name implements backend.Backend.
func (b *Backend) Name() string {
	return subsystem
}

// Readiness implements backend.Backend.
func (b *Backend) Readiness() backend.Readiness {
	return backend.CheckCredentials(subsystem, "clusters", b.cfg.Clusters != nil,
		backend.Credential{Field: "public key", Value: b.cfg.PublicKey},
		backend.Credential{Field: "private key", Value: b.cfg.PrivateKey},
	)
}

// IsAlreadyInTargetState recognises Atlas refusing to pause a paused cluster.
func IsAlreadyInTargetState(_ backend.Order, _ int, body string) bool {
	return strings.Contains(body, alreadyPausedMarker)
}

// Apply implements backend.Backend.
func (b *Backend) Apply(ctx context.Context, order backend.Order) backend.Outcome {
	if !backend.Admit(b.log, subsystem, b.Readiness()) {
		return backend.SkippedOutcome(subsystem)
	}

	verbs := order.DefaultVerbs()
	outcome := backend.NewOutcome(subsystem)
	b.log.Debug(subsystem, "Trying to %s all configured clusters", verbs.Verb)

	client := b.newClient()
	for _, cluster := range b.cfg.Clusters {
		b.log.Info(subsystem, "%s Atlas cluster %s", verbs.Pre, cluster.Name)

		attempt := backend.Attempt{Subsystem: subsystem, Kind: kind, Name: cluster.Name, Order: order, Verbs: verbs}
		req, err := b.newPauseRequest(ctx, cluster, order == backend.Pause)
		if err != nil {
			outcome.RecordResponse(b.log, attempt, 0, "", err, nil)
			continue
		}

		status, body, err := backend.Do(client, req)
		outcome.RecordResponse(b.log, attempt, status, body, err, IsAlreadyInTargetState)
	}

	outcome.LogSummary(b.log, subsystem, "clusters", verbs)
	return outcome
}

// ClusterURL is the Atlas resource path of a cluster.
func (b *Backend) ClusterURL(cluster config.AtlasCluster) string {
	return fmt.Sprintf("%s/api/atlas/%s/groups/%s/clusters/%s",
		b.opts.BaseURL, APIVersion, url.PathEscape(cluster.GroupID), url.PathEscape(cluster.Name))
}

func (b *Backend) newPauseRequest(ctx context.Context, cluster config.AtlasCluster, paused bool) (*http.Request, error) {
	payload, err := json.Marshal(pauseRequest{Paused: paused})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, b.ClusterURL(cluster), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// newClient wraps the base client with digest auth. Readiness guarantees
// both keys are set.
func (b *Backend) newClient() *http.Client {
	base := b.opts.HTTPClient
	if base == nil {
		base = backend.NewHTTPClient(b.opts.UserAgent)
	}
	client := *base
	client.Transport = &digest.Transport{
		Username:  *b.cfg.PublicKey,
		Password:  *b.cfg.PrivateKey,
		Transport: base.Transport,
	}
	return &client
}
