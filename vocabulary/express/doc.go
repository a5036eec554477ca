// Package express provides vocabulary terms for the EXPRESS meta-ontology
// used by ifcOWL encodings of IFC building models.
//
// The EXPRESS ontology describes how EXPRESS-language constructs (simple
// types, enumerations, SELECT unions) appear in RDF. Model graphs wrap
// primitive values in typed nodes carrying exactly one of the literal
// predicates defined here (express:hasDouble, express:hasString, ...), and
// tri-state LOGICAL values reference one of the named individuals TRUE,
// FALSE, or UNKNOWN.
//
// The ingestion layer matches these predicates by local name, so constants
// are provided both as full IRIs and as bare local names.
package express
