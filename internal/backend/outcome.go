package backend

import (
	"github.com/hashicorp/go-multierror"

	"cerdito/pkg/logging"
)

// Outcome aggregates the per-resource results of one backend run.
// It is failed when any single operation failed (logical OR).
type Outcome struct {
	Backend   string
	Skipped   bool // the gate refused to run the backend
	Attempted int
	Succeeded int

	errs *multierror.Error
}

// NewOutcome starts an empty outcome for a backend that is about to run.
func NewOutcome(name string) Outcome {
	return Outcome{Backend: name}
}

// SkippedOutcome is the outcome of a backend whose gate did not pass.
func SkippedOutcome(name string) Outcome {
	return Outcome{Backend: name, Skipped: true}
}

// Record adds the result of one resource operation; nil is a success.
func (o *Outcome) Record(err error) {
	o.Attempted++
	if err == nil {
		o.Succeeded++
		return
	}
	o.errs = multierror.Append(o.errs, err)
}

// Fail adds a failure that is not tied to a single resource, such as a
// token or client setup failure.
func (o *Outcome) Fail(err error) {
	o.errs = multierror.Append(o.errs, err)
}

// Failed reports whether anything failed.
func (o Outcome) Failed() bool {
	return o.errs != nil && len(o.errs.Errors) > 0
}

// Err returns every recorded failure, or nil.
func (o Outcome) Err() error {
	return o.errs.ErrorOrNil()
}

// Errors returns the recorded failures in order.
func (o Outcome) Errors() []error {
	if o.errs == nil {
		return nil
	}
	return o.errs.Errors
}

// LogSummary emits the aggregate debug line for a backend, e.g.
// "All clusters have been stopped" or "Some (or all) clusters have failed to stop".
func (o Outcome) LogSummary(log *logging.Logger, subsystem, plural string, verbs Verbs) {
	if o.Failed() {
		log.Debug(subsystem, "Some (or all) %s have failed to %s", plural, verbs.Verb)
		return
	}
	log.Debug(subsystem, "All %s have been %s", plural, verbs.Past)
}

// Attempt identifies one resource operation for RecordResponse.
type Attempt struct {
	Subsystem string
	Kind      string // "Atlas cluster"
	Name      string
	Order     Order
	Verbs     Verbs
}

// RecordResponse classifies one REST exchange, logs it and records it.
// err is the transport error returned by Do, if any.
func (o *Outcome) RecordResponse(log *logging.Logger, a Attempt, statusCode int, body string, err error, alreadyInTargetState TargetStatePredicate) Verdict {
	if err != nil {
		log.Error(a.Subsystem, err, "Unexpected response when trying to %s %s %s", a.Verbs.Verb, a.Kind, a.Name)
		o.Record(TransportFailed(a.Kind, a.Name, a.Verbs.Verb, err))
		return VerdictFailed
	}

	verdict := Classify(a.Order, statusCode, body, alreadyInTargetState)
	switch verdict {
	case VerdictSucceeded:
		log.Debug(a.Subsystem, "%s %s %s", a.Kind, a.Name, a.Verbs.Past)
		o.Record(nil)
	case VerdictAlreadyInTargetState:
		log.Info(a.Subsystem, "%s %s is already %s", a.Kind, a.Name, alreadyWord(a.Order))
		o.Record(nil)
	default:
		log.Error(a.Subsystem, nil, "Bad response status code %s when trying to %s %s %s, %s",
			StatusText(statusCode), a.Verbs.Verb, a.Kind, a.Name, NormalizeBody(body))
		o.Record(OperationFailed(a.Kind, a.Name, a.Verbs.Verb, statusCode, body))
	}
	return verdict
}

func alreadyWord(order Order) string {
	if order == Pause {
		return "paused"
	}
	return "running"
}
