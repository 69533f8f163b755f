package app

import (
	"context"
	"fmt"

	"cerdito/internal/orchestrator"
	"cerdito/pkg/logging"
)

// Mode is the lifecycle command being run.
type Mode int

const (
	// ModeStart resumes every configured resource.
	ModeStart Mode = iota
	// ModeStop pauses every configured resource.
	ModeStop
)

func (m Mode) String() string {
	if m == ModeStop {
		return "stop"
	}
	return "start"
}

// run drives the orchestrator once and turns its summary into the exit error.
func run(ctx context.Context, log *logging.Logger, mode Mode, services *Services) (orchestrator.Summary, error) {
	log.Debug("CLI", "Running %s", mode)

	var summary orchestrator.Summary
	switch mode {
	case ModeStop:
		summary = services.Orchestrator.StopAll(ctx)
	default:
		summary = services.Orchestrator.StartAll(ctx)
	}

	if err := summary.Err(); err != nil {
		log.Error("CLI", err, "Failed to %s: %v", mode, summary.Failed())
		return summary, fmt.Errorf("cerdito %s: %w", mode, err)
	}
	log.Debug("CLI", "Finished %s", mode)
	return summary, nil
}
