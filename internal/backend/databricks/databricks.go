// Package databricks pauses and resumes the schedules of Azure Databricks
// jobs. Declared job names are reconciled against the live job list of each
// workspace before anything is changed.
package databricks

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cerdito/internal/azureauth"
	"cerdito/internal/backend"
	"cerdito/internal/config"
	"cerdito/pkg/logging"
)

const (
	subsystem = "Databricks"
	kind      = "Databricks job"
)

// Options tunes the backend; the zero value talks to the real Azure endpoints.
type Options struct {
	LoginURL   string
	UserAgent  string
	HTTPClient *http.Client
}

// Backend pauses and resumes job schedules in the configured workspaces.
type Backend struct {
	cfg  config.AzureConfig
	opts Options
	log  *logging.Logger
}

// New creates the Databricks backend. Only the credentials and the databricks
// list of cfg are used.
func New(cfg config.AzureConfig, log *logging.Logger, opts Options) *Backend {
	log.Debug(subsystem, "Databricks: %+v", cfg.Databricks)
	return &Backend{cfg: cfg, opts: opts, log: log}
}

// Name implements backend.Backend.
func (b *Backend) Name() string {
	return subsystem
}

// Readiness implements backend.Backend.
func (b *Backend) Readiness() backend.Readiness {
	return azureauth.Readiness(b.cfg, "Databricks workspaces", b.cfg.Databricks != nil)
}

// Apply implements backend.Backend.
func (b *Backend) Apply(ctx context.Context, order backend.Order) backend.Outcome {
	if !backend.Admit(b.log, subsystem, b.Readiness()) {
		return backend.SkippedOutcome(subsystem)
	}

	verbs := order.ScheduleVerbs()
	outcome := backend.NewOutcome(subsystem)
	b.log.Debug(subsystem, "Trying to %s all configured Databricks jobs", verbs.Verb)

	client := b.opts.HTTPClient
	if client == nil {
		client = backend.NewHTTPClient(b.opts.UserAgent)
	}

	tokens := azureauth.NewClient(azureauth.CredentialsFrom(b.cfg), b.opts.LoginURL, client)
	token, err := tokens.Token(ctx, azureauth.DatabricksScope)
	if err != nil {
		b.log.Error(subsystem, err, "Cannot obtain Azure token")
		outcome.Fail(err)
		outcome.LogSummary(b.log, subsystem, "Databricks jobs", verbs)
		return outcome
	}

	for _, decl := range b.cfg.Databricks {
		b.applyWorkspace(ctx, NewClient(decl.URL, token, client), decl, order, verbs, &outcome)
	}

	outcome.LogSummary(b.log, subsystem, "Databricks jobs", verbs)
	return outcome
}

func (b *Backend) applyWorkspace(ctx context.Context, client *Client, decl config.DatabricksWorkspace, order backend.Order, verbs backend.Verbs, outcome *backend.Outcome) {
	jobs, err := client.ListJobs(ctx)
	if err != nil {
		b.log.Error(subsystem, err, "Cannot list Databricks jobs in %s", decl.URL)
		outcome.Record(err)
		return
	}
	b.log.Trace(subsystem, "Found %d jobs in %s", len(jobs), decl.URL)

	plan := Reconcile(decl, jobs)

	pauseStatus := StatusUnpaused
	if order == backend.Pause {
		pauseStatus = StatusPaused
	}

	for _, job := range plan.Act {
		name := jobLabel(job)
		b.log.Info(subsystem, "%s Databricks job %s", verbs.Pre, name)

		status, body, err := client.UpdatePauseStatus(ctx, job, pauseStatus)
		attempt := backend.Attempt{Subsystem: subsystem, Kind: kind, Name: name, Order: order, Verbs: verbs}
		verdict := outcome.RecordResponse(b.log, attempt, status, body, err, nil)
		if verdict == backend.VerdictSucceeded && order == backend.Resume {
			b.logNextRun(name, *job.Settings.Schedule)
		}
	}

	for _, name := range plan.Unscheduled {
		b.log.Warn(subsystem, "Databricks job %s cannot be %s because it is not scheduled", name, verbs.Past)
	}
	for _, name := range plan.Unmatched {
		b.log.Warn(subsystem, "Databricks job %s is not defined in %s", name, decl.URL)
	}
}

func (b *Backend) logNextRun(name string, schedule Schedule) {
	next, err := NextRun(schedule, time.Now())
	if err != nil {
		b.log.Trace(subsystem, "Cannot compute next run of Databricks job %s: %v", name, err)
		return
	}
	b.log.Debug(subsystem, "Databricks job %s will next run at %s", name, next.Format(time.RFC3339))
}

// jobLabel names a job in log lines; unnamed jobs fall back to their id.
func jobLabel(job Job) string {
	if job.Settings.Name != "" {
		return job.Settings.Name
	}
	return fmt.Sprintf("#%d", job.JobID)
}
