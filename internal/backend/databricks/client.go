package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cerdito/internal/backend"
)

// Schedule statuses understood by the Jobs API.
const (
	StatusPaused   = "PAUSED"
	StatusUnpaused = "UNPAUSED"
)

// Job is a live job as returned by jobs/list.
type Job struct {
	JobID    int64       `json:"job_id"`
	Settings JobSettings `json:"settings"`
}

// JobSettings holds the subset of job settings cerdito reads.
type JobSettings struct {
	Name     string    `json:"name"`
	Schedule *Schedule `json:"schedule,omitempty"`
}

// Schedule is a job's cron trigger.
type Schedule struct {
	QuartzCronExpression string `json:"quartz_cron_expression"`
	TimezoneID           string `json:"timezone_id"`
	PauseStatus          string `json:"pause_status,omitempty"`
}

// Scheduled reports whether the job has a schedule that can be paused.
func (j Job) Scheduled() bool {
	return j.Settings.Schedule != nil
}

type listResponse struct {
	Jobs          []Job  `json:"jobs"`
	HasMore       bool   `json:"has_more"`
	NextPageToken string `json:"next_page_token"`
}

type updateRequest struct {
	JobID       int64          `json:"job_id"`
	NewSettings updateSettings `json:"new_settings"`
}

type updateSettings struct {
	Schedule Schedule `json:"schedule"`
}

// Client talks to the Jobs 2.1 API of one workspace.
type Client struct {
	workspaceURL string
	token        string
	httpClient   *http.Client
}

// NewClient creates a client for the workspace at workspaceURL.
func NewClient(workspaceURL, token string, httpClient *http.Client) *Client {
	return &Client{
		workspaceURL: strings.TrimSuffix(workspaceURL, "/"),
		token:        token,
		httpClient:   httpClient,
	}
}

// ListJobs returns every job of the workspace, following pagination.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	pageToken := ""
	for {
		page, err := c.listPage(ctx, pageToken)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, page.Jobs...)
		if !page.HasMore || page.NextPageToken == "" {
			return jobs, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) listPage(ctx context.Context, pageToken string) (listResponse, error) {
	endpoint := c.workspaceURL + "/api/2.1/jobs/list"
	if pageToken != "" {
		endpoint += "?" + url.Values{"page_token": {pageToken}}.Encode()
	}

	var page listResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return page, backend.TransportFailed("Databricks workspace", c.workspaceURL, "list jobs of", err)
	}
	c.authorize(req)

	status, body, err := backend.Do(c.httpClient, req)
	if err != nil {
		return page, backend.TransportFailed("Databricks workspace", c.workspaceURL, "list jobs of", err)
	}
	if !backend.IsSuccess(status) {
		return page, backend.OperationFailed("Databricks workspace", c.workspaceURL, "list jobs of", status, body)
	}
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		return page, backend.OperationError("Databricks workspace", c.workspaceURL, "list jobs of",
			fmt.Errorf("failed to decode job list: %w", err))
	}
	return page, nil
}

// UpdatePauseStatus sends the job's schedule back with only pause_status
// changed. The raw status and body are returned for classification.
func (c *Client) UpdatePauseStatus(ctx context.Context, job Job, pauseStatus string) (int, string, error) {
	schedule := *job.Settings.Schedule
	schedule.PauseStatus = pauseStatus

	payload, err := json.Marshal(updateRequest{
		JobID:       job.JobID,
		NewSettings: updateSettings{Schedule: schedule},
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.workspaceURL+"/api/2.1/jobs/update", bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	return backend.Do(c.httpClient, req)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
}
