// Package tx error types.
//
// Every operation in the pipeline returns a result and one of these typed
// errors; nothing is thrown as control flow. Each layer surfaces the first
// error it encounters and performs no partial commit: a constructor that
// fails leaves nothing built, and a builder that fails leaves its
// collections untouched.
package tx

import "fmt"

// ParameterError is returned for invalid caller input: a nil or unbuilt
// child entity, a field exceeding its length bound, or a bounded
// collection that is already full.
type ParameterError struct {
	Message string // Human-readable error message
	Cause   error  // Underlying error (if any)
}

func (e *ParameterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parameter error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parameter error: %s", e.Message)
}

func (e *ParameterError) Unwrap() error { return e.Cause }

// BuildError is returned when a composite fails to serialize.
type BuildError struct {
	Entity  string // Entity being built (e.g. "RawTransaction")
	Message string // Human-readable error message
	Cause   error  // Underlying encode error (if any)
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("build error in %s: %s: %v", e.Entity, e.Message, e.Cause)
	}
	return fmt.Sprintf("build error in %s: %s", e.Entity, e.Message)
}

func (e *BuildError) Unwrap() error { return e.Cause }

// HashError is returned when the hash primitive fails during the
// signing-hash pipeline.
type HashError struct {
	Message string // Human-readable error message
	Cause   error  // Underlying error from the hash primitive
}

func (e *HashError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("hash error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("hash error: %s", e.Message)
}

func (e *HashError) Unwrap() error { return e.Cause }

// AlgorithmError is returned when a signer is initialized with an
// unrecognized algorithm identifier.
type AlgorithmError struct {
	ID byte // The rejected identifier
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("unrecognized signing algorithm 0x%02x", e.ID)
}

// SignError is returned when the signing operation itself fails.
type SignError struct {
	Message string // Human-readable error message
	Cause   error  // Underlying error (if any)
}

func (e *SignError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sign error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("sign error: %s", e.Message)
}

func (e *SignError) Unwrap() error { return e.Cause }

// NoKeyError is returned when a signer operation is attempted before the
// signer has been initialized with a key.
type NoKeyError struct {
	Op string // Operation that was attempted (e.g. "Sign")
}

func (e *NoKeyError) Error() string {
	return fmt.Sprintf("%s called before Begin: no key loaded", e.Op)
}
