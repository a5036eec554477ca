package schema

import "errors"

// Common schema errors.
var (
	// ErrVersionMismatch is returned when no applicable ifcOWL ontology
	// version can be determined for an input model.
	ErrVersionMismatch = errors.New("ifcOWL ontology version mismatch")

	// ErrUnknownClass is returned when a fact-base query names a class the
	// loaded schema does not declare.
	ErrUnknownClass = errors.New("unknown entity class")
)
