package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"cerdito/internal/backend"
	"cerdito/pkg/logging"
)

const subsystem = "Orchestrator"

// ErrPartialFailure is returned by Summary.Err when at least one backend failed.
var ErrPartialFailure = errors.New("some backends failed")

// Orchestrator holds the backends built from the merged configuration.
type Orchestrator struct {
	backends []backend.Backend // start order
	log      *logging.Logger
}

// New creates an orchestrator. backends must be given in start order.
func New(log *logging.Logger, backends ...backend.Backend) *Orchestrator {
	return &Orchestrator{backends: backends, log: log}
}

// Backends returns the registered backends in start order.
func (o *Orchestrator) Backends() []backend.Backend {
	return append([]backend.Backend(nil), o.backends...)
}

// StartAll resumes every backend in start order.
func (o *Orchestrator) StartAll(ctx context.Context) Summary {
	return o.run(ctx, backend.Resume, o.backends)
}

// StopAll pauses every backend in reverse start order.
func (o *Orchestrator) StopAll(ctx context.Context) Summary {
	reversed := make([]backend.Backend, 0, len(o.backends))
	for i := len(o.backends) - 1; i >= 0; i-- {
		reversed = append(reversed, o.backends[i])
	}
	return o.run(ctx, backend.Pause, reversed)
}

func (o *Orchestrator) run(ctx context.Context, order backend.Order, backends []backend.Backend) Summary {
	summary := Summary{Order: order}
	for _, b := range backends {
		o.log.Trace(subsystem, "Running %s backend (%s)", b.Name(), order)
		outcome := b.Apply(ctx, order)
		summary.Outcomes = append(summary.Outcomes, outcome)
	}
	summary.log(o.log)
	return summary
}

// Summary collects the outcome of every backend of one run, in run order.
type Summary struct {
	Order    backend.Order
	Outcomes []backend.Outcome
}

// Failed lists the names of the backends that reported a failure.
func (s Summary) Failed() []string {
	var names []string
	for _, o := range s.Outcomes {
		if o.Failed() {
			names = append(names, o.Backend)
		}
	}
	return names
}

// Err returns nil when no backend failed. Otherwise it wraps ErrPartialFailure
// together with every backend error. Skipped backends are not failures.
func (s Summary) Err() error {
	var errs *multierror.Error
	for _, o := range s.Outcomes {
		if err := o.Err(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", o.Backend, err))
		}
	}
	if errs == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPartialFailure, errs)
}

func (s Summary) log(log *logging.Logger) {
	for _, o := range s.Outcomes {
		switch {
		case o.Skipped:
			log.Debug(subsystem, "%s: skipped", o.Backend)
		case o.Failed():
			log.Debug(subsystem, "%s: %d/%d succeeded, %d errors", o.Backend, o.Succeeded, o.Attempted, len(o.Errors()))
		default:
			log.Debug(subsystem, "%s: %d/%d succeeded", o.Backend, o.Succeeded, o.Attempted)
		}
	}
}
