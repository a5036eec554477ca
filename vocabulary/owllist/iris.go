// Package owllist provides vocabulary terms for the OWL list ontology used
// by ifcOWL to encode EXPRESS ordered collections as chains of linked cells.
//
// A logical list is a chain of cell nodes: each cell holds its value through
// list:hasContents and points at the following cell through list:hasNext. A
// cell without a hasNext edge terminates the chain.
package owllist

// Namespace is the base IRI prefix for OWL list ontology terms.
const Namespace = "https://w3id.org/list#"

// Predicate local names recognized by the ingestion layer.
const (
	// HasNext links a list cell to the next cell in its chain.
	HasNext = "hasNext"

	// HasContents links a list cell to the value it holds.
	HasContents = "hasContents"
)

// OWLList is the local name of the root class of all list cell types.
// Schema-generated per-attribute list types are subclasses of it and follow
// the ListSuffix naming convention.
const OWLList = "OWLList"

// ListSuffix is the naming convention for schema-generated list types: the
// list-of-T type for an element type T is named T + ListSuffix.
const ListSuffix = "_List"
