package schema

// Version identifies one released ifcOWL ontology version, which corresponds
// one-to-one with an EXPRESS schema release of IFC.
type Version string

// Supported ifcOWL ontology versions.
const (
	IFC2X3TC1   Version = "IFC2X3_TC1"
	IFC2X3Final Version = "IFC2X3_FINAL"
	IFC4        Version = "IFC4"
	IFC4Add1    Version = "IFC4_ADD1"
	IFC4Add2    Version = "IFC4_ADD2"
	IFC4x1      Version = "IFC4X1"
)

// versionNamespaces maps each supported version to its ontology namespace.
// A model graph declares its version by importing one of these ontologies.
var versionNamespaces = map[Version]string{
	IFC2X3TC1:   "https://standards.buildingsmart.org/IFC/DEV/IFC2x3/TC1/OWL",
	IFC2X3Final: "https://standards.buildingsmart.org/IFC/DEV/IFC2x3/FINAL/OWL",
	IFC4:        "https://standards.buildingsmart.org/IFC/DEV/IFC4/FINAL/OWL",
	IFC4Add1:    "https://standards.buildingsmart.org/IFC/DEV/IFC4/ADD1/OWL",
	IFC4Add2:    "https://standards.buildingsmart.org/IFC/DEV/IFC4/ADD2/OWL",
	IFC4x1:      "https://standards.buildingsmart.org/IFC/DEV/IFC4_1/OWL",
}

// namespaceVersions is the inverse of versionNamespaces.
var namespaceVersions = func() map[string]Version {
	m := make(map[string]Version, len(versionNamespaces))
	for v, ns := range versionNamespaces {
		m[ns] = v
	}
	return m
}()

// Label returns the version's schema label as emitted in FILE_SCHEMA when
// the model declares no schema identifiers of its own, and as used for the
// on-disk name of the version's fact-base resource.
func (v Version) Label() string { return string(v) }

// Namespace returns the ontology namespace for the version, or "" if the
// version is not a supported one.
func (v Version) Namespace() string { return versionNamespaces[v] }

// Valid reports whether v names a supported ontology version.
func (v Version) Valid() bool {
	_, ok := versionNamespaces[v]
	return ok
}

// VersionForNamespace resolves an imported ontology IRI to its version.
// Trailing "#" and "/" are ignored so that both the bare namespace and the
// ontology document IRI resolve.
func VersionForNamespace(iri string) (Version, bool) {
	for len(iri) > 0 {
		c := iri[len(iri)-1]
		if c != '#' && c != '/' {
			break
		}
		iri = iri[:len(iri)-1]
	}
	v, ok := namespaceVersions[iri]
	return v, ok
}
