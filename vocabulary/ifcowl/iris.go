// Package ifcowl provides core RDF/OWL terms and IRI helpers shared by the
// ifcOWL ingestion and schema layers.
package ifcowl

// Core RDF and OWL predicate IRIs.
const (
	// RDFType is the rdf:type predicate, carrying a node's declared type.
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	// OWLImports is the owl:imports predicate. A model graph declares the
	// ifcOWL ontology version it conforms to by importing it.
	OWLImports = "http://www.w3.org/2002/07/owl#imports"
)

// HasExpressID is the predicate local name carrying an instance's explicit
// STEP line number.
const HasExpressID = "hasExpressID"

// Schema-supplement predicate local names. The ontology supplement records
// the EXPRESS facts that plain OWL cannot express: attribute cardinality
// flags, optionality, and derived attributes.
const (
	// IsIfcEntity marks a class resource as an IFC entity class.
	IsIfcEntity = "isIfcEntity"

	// IsSet marks an attribute as set-valued.
	IsSet = "isSet"

	// IsListOrArray marks an attribute as list- or array-valued.
	IsListOrArray = "isListOrArray"

	// IsOptional marks an attribute as OPTIONAL in the EXPRESS schema.
	IsOptional = "isOptional"

	// HasDeriveAttribute links a class to an attribute it derives.
	HasDeriveAttribute = "hasDeriveAttribute"
)

// LocalName returns the fragment or last path segment of an IRI. The
// document node (an IRI ending in its separator) has an empty local name.
func LocalName(iri string) string {
	for i := len(iri) - 1; i >= 0; i-- {
		switch iri[i] {
		case '#', '/':
			return iri[i+1:]
		case ':':
			// Blank node labels ("_:b0") and prefixed names.
			if i == 1 && iri[0] == '_' {
				return iri[2:]
			}
		}
	}
	return iri
}
