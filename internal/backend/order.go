package backend

import "context"

// Order is the direction of a lifecycle action.
type Order int

const (
	// Resume restores a resource (the start command).
	Resume Order = iota
	// Pause stops or scales down a resource (the stop command).
	Pause
)

func (o Order) String() string {
	if o == Pause {
		return "pause"
	}
	return "resume"
}

// Verbs holds the wording used in log lines for one direction.
type Verbs struct {
	Pre  string // "Stopping"
	Verb string // "stop"
	Past string // "stopped"
}

// DefaultVerbs returns the start/stop wording used by most backends.
func (o Order) DefaultVerbs() Verbs {
	if o == Pause {
		return Verbs{Pre: "Stopping", Verb: "stop", Past: "stopped"}
	}
	return Verbs{Pre: "Starting", Verb: "start", Past: "started"}
}

// ScaleVerbs returns the wording used when scaling workloads.
func (o Order) ScaleVerbs() Verbs {
	if o == Pause {
		return Verbs{Pre: "Scaling down", Verb: "scale down", Past: "scaled down"}
	}
	return Verbs{Pre: "Scaling up", Verb: "scale up", Past: "scaled up"}
}

// Backend is one provider integration.
type Backend interface {
	// Name identifies the backend in logs and summaries.
	Name() string
	// Readiness reports whether the backend is configured, without any I/O.
	Readiness() Readiness
	// Apply pauses or resumes every configured resource. It must attempt all
	// of them and never return early because one failed.
	Apply(ctx context.Context, order Order) Outcome
}

// ScheduleVerbs returns the wording used for job schedules.
func (o Order) ScheduleVerbs() Verbs {
	if o == Pause {
		return Verbs{Pre: "Pausing", Verb: "pause", Past: "paused"}
	}
	return Verbs{Pre: "Resuming", Verb: "resume", Past: "resumed"}
}
