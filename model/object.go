package model

// Value holds what was observed for one attribute position: a single node
// reference, or an ordered sequence of references once the position has
// been promoted to set semantics.
type Value struct {
	// Refs are the observed node references, in observation order. A
	// scalar value has exactly one element.
	Refs []string

	// Many reports whether the position holds an ordered sequence rather
	// than a scalar. A position declared set-valued is a sequence from its
	// first observation; a scalar position is promoted when a second edge
	// for it arrives.
	Many bool
}

// Object is one schema-typed instance of the model under conversion.
type Object struct {
	// Class is the instance's entity class local name. The last type edge
	// observed for the subject wins.
	Class string

	line    int
	hasLine bool

	attrs map[int]*Value
}

func newObject() *Object {
	return &Object{attrs: make(map[int]*Value)}
}

// Line returns the instance's STEP line number and whether one has been
// assigned yet.
func (o *Object) Line() (int, bool) { return o.line, o.hasLine }

// SetLine assigns the instance's STEP line number.
func (o *Object) SetLine(n int) {
	o.line = n
	o.hasLine = true
}

// Attr returns the value observed at a schema attribute position, or nil if
// the position was never observed.
func (o *Object) Attr(pos int) *Value { return o.attrs[pos] }

// SetAttr records a node reference at a schema attribute position. The
// first observation of a set-valued position starts a sequence; a repeat
// observation of a scalar position promotes it to a sequence and appends.
func (o *Object) SetAttr(pos int, ref string, set bool) {
	v := o.attrs[pos]
	if v == nil {
		o.attrs[pos] = &Value{Refs: []string{ref}, Many: set}
		return
	}
	v.Refs = append(v.Refs, ref)
	v.Many = true
}
