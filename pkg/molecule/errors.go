// Package molecule error types.
//
// Encoding can only fail on caller input: an item exceeding the configured
// length bound, or an item whose length does not match its schema-declared
// fixed size. Both are parameter problems, surfaced as distinct types so
// callers can map them onto their own error taxonomy.
package molecule

import "fmt"

// LimitError is returned when an item exceeds a size bound.
type LimitError struct {
	Kind  string // Encoding kind being built (e.g. "Bytes", "Table")
	Size  int    // Actual size of the offending input
	Limit int    // Bound that was exceeded
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("molecule: %s input of %d bytes exceeds limit %d", e.Kind, e.Size, e.Limit)
}

// SizeError is returned when a fixed-size item has the wrong length.
type SizeError struct {
	Kind string // Encoding kind being built
	Size int    // Actual item length
	Want int    // Schema-declared item length
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("molecule: %s item is %d bytes, want %d", e.Kind, e.Size, e.Want)
}
