package backend

import (
	"fmt"
	"io"
	"net/http"
)

// EmptyBodyPlaceholder replaces an empty response body in diagnostics.
const EmptyBodyPlaceholder = "empty text response"

// Verdict is the classification of one resource operation.
type Verdict int

const (
	VerdictSucceeded Verdict = iota
	VerdictAlreadyInTargetState
	VerdictFailed
)

// TargetStatePredicate recognises a provider's "already paused" style
// answer to a rejected request. It is only consulted for non-2xx responses.
type TargetStatePredicate func(order Order, statusCode int, body string) bool

// IsSuccess reports whether statusCode is 2xx.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// Classify decides the verdict for a response. A nil predicate means the
// provider has no idempotency marker.
func Classify(order Order, statusCode int, body string, alreadyInTargetState TargetStatePredicate) Verdict {
	if IsSuccess(statusCode) {
		return VerdictSucceeded
	}
	if alreadyInTargetState != nil && alreadyInTargetState(order, statusCode, body) {
		return VerdictAlreadyInTargetState
	}
	return VerdictFailed
}

// NormalizeBody never lets a diagnostic end with a blank body.
func NormalizeBody(body string) string {
	if body == "" {
		return EmptyBodyPlaceholder
	}
	return body
}

// StatusText renders a code the way it shows up in logs, e.g. "409 Conflict".
func StatusText(statusCode int) string {
	if text := http.StatusText(statusCode); text != "" {
		return fmt.Sprintf("%d %s", statusCode, text)
	}
	return fmt.Sprintf("%d", statusCode)
}

// Do sends req and returns the status code and the full body. An error means
// a transport failure: the request was not sent or the body was unreadable.
func Do(client *http.Client, req *http.Request) (int, string, error) {
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, string(data), nil
}
