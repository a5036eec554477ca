package model

// Header is the STEP file-header record, populated from statements whose
// subject is the document node.
type Header struct {
	// FILE_DESCRIPTION fields.
	Description         []string
	ImplementationLevel string

	// FILE_NAME fields.
	Name                string
	TimeStamp           string
	Authors             []string
	Organizations       []string
	PreprocessorVersion string
	OriginatingSystem   string
	Authorization       string

	// FILE_SCHEMA fields. Empty means the active schema version label is
	// emitted instead.
	SchemaIdentifiers []string
}
