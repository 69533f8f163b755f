package backend

import (
	"errors"
	"fmt"
)

// Error taxonomy. Configuration problems are not errors (see Readiness) and
// a resource already in its target state is a success.
var (
	// ErrAuth means no token could be obtained; the backend run is aborted.
	ErrAuth = errors.New("authentication failed")
	// ErrOperationFailed means the provider rejected the mutation of one resource.
	ErrOperationFailed = errors.New("resource operation failed")
	// ErrTransport means the request could not be sent or its response read.
	ErrTransport = errors.New("transport error")
	// ErrClientSetup means the provider client could not be built.
	ErrClientSetup = errors.New("client setup failed")
)

// ResourceError describes the failure of one resource operation.
type ResourceError struct {
	Kind       string // "Atlas cluster", "AKS", ...
	Name       string
	Action     string // "stop", "scale up", ...
	StatusCode int    // 0 for transport failures
	Body       string // normalised response body
	Err        error  // underlying cause, if any

	sentinel error
}

// OperationFailed builds the error for a non-2xx answer.
func OperationFailed(kind, name, action string, statusCode int, body string) *ResourceError {
	return &ResourceError{
		Kind:       kind,
		Name:       name,
		Action:     action,
		StatusCode: statusCode,
		Body:       NormalizeBody(body),
		sentinel:   ErrOperationFailed,
	}
}

// OperationError builds the error for a failed typed-client call.
func OperationError(kind, name, action string, err error) *ResourceError {
	return &ResourceError{Kind: kind, Name: name, Action: action, Err: err, sentinel: ErrOperationFailed}
}

// TransportFailed builds the error for a request that never got an answer.
func TransportFailed(kind, name, action string, err error) *ResourceError {
	return &ResourceError{Kind: kind, Name: name, Action: action, Err: err, sentinel: ErrTransport}
}

func (e *ResourceError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("failed to %s %s %s: status %d: %s", e.Action, e.Kind, e.Name, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("failed to %s %s %s: %v", e.Action, e.Kind, e.Name, e.Err)
	default:
		return fmt.Sprintf("failed to %s %s %s", e.Action, e.Kind, e.Name)
	}
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *ResourceError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.sentinel != nil {
		errs = append(errs, e.sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
