// Package model holds the in-memory object model assembled for one
// conversion: the instance table in insertion order, the literal value
// table, the list-chain tables, the node type table, and the file header
// record. A Model is scoped to a single conversion, has a single owner at
// any time, and is discarded when the conversion returns.
package model

// Model is the conversion-scoped object model.
type Model struct {
	objects map[string]*Object
	order   []string

	types    map[string]string
	literals map[string]string
	contents map[string][]string
	next     map[string]string

	header  Header
	maxLine int
}

// New creates an empty object model for one conversion.
func New() *Model {
	return &Model{
		objects:  make(map[string]*Object),
		types:    make(map[string]string),
		literals: make(map[string]string),
		contents: make(map[string][]string),
		next:     make(map[string]string),
	}
}

// Ensure returns the instance for a node key, creating it on first
// encounter. Creation order is preserved and determines emission order.
func (m *Model) Ensure(key string) *Object {
	if o, ok := m.objects[key]; ok {
		return o
	}
	o := newObject()
	m.objects[key] = o
	m.order = append(m.order, key)
	return o
}

// Object returns the instance for a node key, or nil if none was created.
func (m *Model) Object(key string) *Object { return m.objects[key] }

// Keys returns instance keys in insertion order. The slice is shared;
// callers must not mutate it.
func (m *Model) Keys() []string { return m.order }

// Len returns the number of instances.
func (m *Model) Len() int { return len(m.order) }

// SetType records a node's declared type local name. The last type edge
// observed for a node wins.
func (m *Model) SetType(key, typeName string) { m.types[key] = typeName }

// Type returns a node's declared type local name, or "" if the node was
// never the subject of a type edge.
func (m *Model) Type(key string) string { return m.types[key] }

// SetLiteral records the pre-formatted STEP text for a literal-bearing node.
func (m *Model) SetLiteral(key, text string) { m.literals[key] = text }

// Literal returns the recorded STEP text for a literal-bearing node.
func (m *Model) Literal(key string) (string, bool) {
	text, ok := m.literals[key]
	return text, ok
}

// SetContents records the value held by a list cell.
func (m *Model) SetContents(key string, refs []string) { m.contents[key] = refs }

// Contents returns the value held by a list cell.
func (m *Model) Contents(key string) ([]string, bool) {
	refs, ok := m.contents[key]
	return refs, ok
}

// LinkNext records the chain link from a list cell to its successor.
func (m *Model) LinkNext(key, next string) { m.next[key] = next }

// Next returns the successor of a list cell, if the cell has one.
func (m *Model) Next(key string) (string, bool) {
	n, ok := m.next[key]
	return n, ok
}

// Header returns the mutable file-header record.
func (m *Model) Header() *Header { return &m.header }

// ObserveLine folds an explicitly assigned line number into the running
// maximum used for synthetic id assignment.
func (m *Model) ObserveLine(n int) {
	if n > m.maxLine {
		m.maxLine = n
	}
}

// NextLine allocates the next synthetic line number, one past the running
// maximum of all numbers seen or allocated so far.
func (m *Model) NextLine() int {
	m.maxLine++
	return m.maxLine
}
