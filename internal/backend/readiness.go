package backend

import (
	"fmt"

	"cerdito/pkg/logging"
)

// ReadinessState tags the result of a configuration gate.
type ReadinessState int

const (
	// StateReady means the backend can run.
	StateReady ReadinessState = iota
	// StateAbsent means something required was not configured at all.
	StateAbsent
	// StateInvalid means a required credential was configured but empty.
	StateInvalid
)

// Readiness is the tagged result of a configuration gate.
type Readiness struct {
	State ReadinessState
	// Reason is the diagnostic for StateAbsent and StateInvalid.
	Reason string
	// Field names the empty credential for StateInvalid.
	Field string
}

// Ready is the readiness of a fully configured backend.
func Ready() Readiness {
	return Readiness{State: StateReady}
}

// Absent reports missing configuration.
func Absent(reason string) Readiness {
	return Readiness{State: StateAbsent, Reason: reason}
}

// Invalid reports an empty credential.
func Invalid(subject, field string) Readiness {
	return Readiness{
		State:  StateInvalid,
		Reason: fmt.Sprintf("%s %s cannot be an empty string", subject, field),
		Field:  field,
	}
}

// IsReady is a shorthand for State == StateReady.
func (r Readiness) IsReady() bool {
	return r.State == StateReady
}

// Credential is one required credential field.
type Credential struct {
	Field string // human name used in diagnostics, e.g. "public key"
	Value *string
}

// CheckCredentials is the single gate every backend uses. subject names the
// provider ("Atlas"), collection names its resources ("clusters") and
// collectionPresent says whether that list was configured.
//
// Checks run in a fixed order: all credentials present, then the resource
// collection present, then every credential non-empty.
func CheckCredentials(subject, collection string, collectionPresent bool, creds ...Credential) Readiness {
	for _, c := range creds {
		if c.Value == nil {
			return Absent(fmt.Sprintf("No %s credentials configured", subject))
		}
	}
	if !collectionPresent {
		return Absent(fmt.Sprintf("No %s %s configured", subject, collection))
	}
	for _, c := range creds {
		if *c.Value == "" {
			return Invalid(subject, c.Field)
		}
	}
	return Ready()
}

// Admit logs a non-ready gate and reports whether the backend may run.
func Admit(log *logging.Logger, subsystem string, r Readiness) bool {
	switch r.State {
	case StateReady:
		return true
	case StateInvalid:
		log.Warn(subsystem, "%s, skipping %s action", r.Reason, subsystem)
	default:
		log.Info(subsystem, "%s, skipping %s action", r.Reason, subsystem)
	}
	return false
}
