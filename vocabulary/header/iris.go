// Package header provides vocabulary terms for the STEP file-header ontology.
//
// Header statements in an ifcOWL graph use the document node (the base IRI,
// whose local name is empty) as their subject. They populate the
// FILE_DESCRIPTION, FILE_NAME, and FILE_SCHEMA records of the emitted
// ISO-10303-21 header section.
package header

// Namespace is the base IRI prefix for STEP header terms.
const Namespace = "https://w3id.org/ifc/header#"

// FILE_DESCRIPTION predicates.
const (
	// Description is one free-text description line. Repeatable.
	Description = "description"

	// ImplementationLevel is the STEP implementation level, usually "2;1".
	ImplementationLevel = "implementation_level"
)

// FILE_NAME predicates.
const (
	// Name is the model file name.
	Name = "name"

	// TimeStamp is the model creation timestamp.
	TimeStamp = "time_stamp"

	// Author is one author entry. Repeatable.
	Author = "author"

	// Organization is one originating organization entry. Repeatable.
	Organization = "organization"

	// PreprocessorVersion identifies the producing toolchain.
	PreprocessorVersion = "preprocessor_version"

	// OriginatingSystem identifies the authoring system.
	OriginatingSystem = "originating_system"

	// Authorization is the authorization free text.
	Authorization = "authorization"
)

// FILE_SCHEMA predicates.
const (
	// SchemaIdentifiers is one declared schema identifier. Repeatable.
	// When absent, the active schema version label is emitted instead.
	SchemaIdentifiers = "schema_identifiers"
)
