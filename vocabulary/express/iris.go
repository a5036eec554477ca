package express

// Namespace is the base IRI prefix for EXPRESS ontology terms.
const Namespace = "https://w3id.org/express#"

// Literal-wrapper predicates. Each typed value node in an ifcOWL graph
// carries exactly one of these, holding the primitive literal.
const (
	// HasDouble holds an xsd:double literal (EXPRESS REAL/NUMBER).
	HasDouble = "hasDouble"

	// HasString holds an xsd:string literal (EXPRESS STRING).
	HasString = "hasString"

	// HasInteger holds an xsd:integer literal (EXPRESS INTEGER).
	HasInteger = "hasInteger"

	// HasHexBinary holds an xsd:hexBinary literal (EXPRESS BINARY).
	HasHexBinary = "hasHexBinary"

	// HasBoolean holds an xsd:boolean literal (EXPRESS BOOLEAN).
	HasBoolean = "hasBoolean"

	// HasLogical references one of the LOGICAL individuals below.
	HasLogical = "hasLogical"
)

// Named individuals of the EXPRESS LOGICAL type.
const (
	// True is the local name of the express:TRUE individual.
	True = "TRUE"

	// False is the local name of the express:FALSE individual.
	False = "FALSE"

	// Unknown is the local name of the express:UNKNOWN individual.
	Unknown = "UNKNOWN"
)

// Meta-type IRIs used when classifying schema resources.
const (
	// Enumeration is the root class of all EXPRESS enumeration types.
	Enumeration = Namespace + "ENUMERATION"

	// Select is the root class of all EXPRESS SELECT (union) types.
	Select = Namespace + "SELECT"
)

// STEP tokens for EXPRESS BOOLEAN and LOGICAL values.
const (
	// TokenTrue is the STEP encoding of boolean/logical true.
	TokenTrue = ".T."

	// TokenFalse is the STEP encoding of boolean/logical false.
	TokenFalse = ".F."

	// TokenUnknown is the STEP encoding of logical unknown.
	TokenUnknown = ".U."
)
