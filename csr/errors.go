package csr

import (
	"fmt"

	"github.com/juju/errors"
)

// StructuralError reports a register node that lacks something the
// documentation cannot be produced without, such as its address or its
// rv32 view. Unlike a legal-value decode miss, it stops extraction.
type StructuralError struct {
	Register string
	Key      string
	Reason   string
}

func (e *StructuralError) Error() string {
	msg := fmt.Sprintf("register %q", e.Register)
	if e.Key != "" {
		msg += fmt.Sprintf(": %q", e.Key)
	}
	if e.Reason != "" {
		msg += " " + e.Reason
	}
	return msg
}

func missingKey(register, key string) error {
	return errors.Trace(&StructuralError{Register: register, Key: key, Reason: "is missing"})
}

func badKey(register, key, reason string) error {
	return errors.Trace(&StructuralError{Register: register, Key: key, Reason: reason})
}

// IsStructural reports whether err, or the error it annotates, is a
// StructuralError.
func IsStructural(err error) bool {
	_, ok := errors.Cause(err).(*StructuralError)
	return ok
}

// AsStructural returns the StructuralError at the root of err, if any.
func AsStructural(err error) (*StructuralError, bool) {
	se, ok := errors.Cause(err).(*StructuralError)
	return se, ok
}
