// Package schema provides the queryable fact base over one loaded ifcOWL
// schema version: attribute order per entity class, per-attribute EXPRESS
// flags, and the static classification sets the value classifier dispatches
// on. A Schema is immutable after load and safe for concurrent readers.
package schema

import (
	"strings"

	"github.com/c360studio/owl2step/vocabulary/owllist"
)

// Attribute describes one EXPRESS attribute of an entity class, as declared
// by the ontology and its supplement.
type Attribute struct {
	// Name is the attribute's predicate local name (e.g. "name_IfcRoot").
	Name string

	// Range is the local name of the attribute's declared range type.
	Range string

	// Set reports whether the attribute is set-valued.
	Set bool

	// ListOrArray reports whether the attribute is list- or array-valued.
	ListOrArray bool

	// Optional reports whether the attribute is OPTIONAL.
	Optional bool
}

// Kind is the role a graph node plays when its value is encoded.
type Kind int

// The four value kinds, resolved purely from a node's declared type name.
const (
	// KindPrimitive is a typed literal wrapper, resolved through the
	// conversion's literal value table at encode time.
	KindPrimitive Kind = iota

	// KindInstance is an entity instance, encoded as a #N reference.
	KindInstance

	// KindEnumeration is an enumeration member, encoded as .MEMBER.
	KindEnumeration

	// KindListCell is a cell of a linked list chain.
	KindListCell
)

func (k Kind) String() string {
	switch k {
	case KindInstance:
		return "instance"
	case KindEnumeration:
		return "enumeration"
	case KindListCell:
		return "list"
	default:
		return "primitive"
	}
}

// attrSlot locates an attribute within its owning class. Attribute predicate
// local names are globally unique in ifcOWL, so the lookup needs no class.
type attrSlot struct {
	class string
	pos   int
	attr  Attribute
}

// Schema is the fact base for one loaded ontology version.
type Schema struct {
	version Version

	// classes maps entity class local names to their ordered attributes.
	classes map[string][]Attribute

	// slots maps attribute predicate local names to their slot.
	slots map[string]attrSlot

	// derived maps class name -> set of attribute names derived for it.
	derived map[string]map[string]bool

	// Static classification sets, built once at load.
	entities map[string]bool
	enums    map[string]bool
	members  map[string]bool
	lists    map[string]bool
	selects  map[string]bool
}

// Version returns the ontology version the schema was loaded for.
func (s *Schema) Version() Version { return s.version }

// AttributeOrder returns the schema-declared, ordered attribute list for an
// entity class. The returned slice is shared; callers must not mutate it.
func (s *Schema) AttributeOrder(class string) ([]Attribute, error) {
	attrs, ok := s.classes[class]
	if !ok {
		return nil, ErrUnknownClass
	}
	return attrs, nil
}

// Position resolves an attribute predicate local name to its 0-based slot in
// the owning class's attribute order.
func (s *Schema) Position(attrName string) (int, bool) {
	slot, ok := s.slots[attrName]
	return slot.pos, ok
}

// Attribute resolves an attribute predicate local name to its descriptor.
func (s *Schema) Attribute(attrName string) (Attribute, bool) {
	slot, ok := s.slots[attrName]
	return slot.attr, ok
}

// Range returns the declared range type local name of an attribute, or ""
// when the attribute is unknown.
func (s *Schema) Range(attrName string) string {
	return s.slots[attrName].attr.Range
}

// IsSet reports whether an attribute is set-valued.
func (s *Schema) IsSet(attrName string) bool { return s.slots[attrName].attr.Set }

// IsListOrArray reports whether an attribute is list- or array-valued.
func (s *Schema) IsListOrArray(attrName string) bool { return s.slots[attrName].attr.ListOrArray }

// IsOptional reports whether an attribute is OPTIONAL.
func (s *Schema) IsOptional(attrName string) bool { return s.slots[attrName].attr.Optional }

// IsDerived reports whether the attribute is derived for the given class.
func (s *Schema) IsDerived(class, attrName string) bool {
	return s.derived[class][attrName]
}

// IsEntity reports whether a type local name names an entity class.
func (s *Schema) IsEntity(typeName string) bool { return s.entities[typeName] }

// IsEnumerationRooted reports whether a type local name names an
// enumeration type (the express:ENUMERATION root or any subtype of it).
func (s *Schema) IsEnumerationRooted(typeName string) bool { return s.enums[typeName] }

// IsEnumerationMember reports whether a node key names an enumeration
// member. Members are ontology-level individuals (e.g. LENGTHUNIT), so model
// graphs reference them without restating their type; the encoder uses this
// set when the node carries no type of its own.
func (s *Schema) IsEnumerationMember(key string) bool { return s.members[key] }

// IsListRooted reports whether a type local name names a list cell type:
// the OWLList root, a declared subtype, or a schema-generated per-attribute
// list type following the list-suffix convention.
func (s *Schema) IsListRooted(typeName string) bool {
	if s.lists[typeName] {
		return true
	}
	return typeName != "" && strings.HasSuffix(typeName, owllist.ListSuffix)
}

// IsDirectSubtypeOfSelect reports whether a type is a direct subtype of the
// express:SELECT union root. Values whose attribute range is such a type
// are emitted in the embedded TYPENAME(value) form.
func (s *Schema) IsDirectSubtypeOfSelect(typeName string) bool { return s.selects[typeName] }

// NarrowListRange narrows a list-of-T range type name to its element type T
// when the name carries the list-suffix convention, and returns it unchanged
// otherwise.
func (s *Schema) NarrowListRange(typeName string) string {
	if strings.HasSuffix(typeName, owllist.ListSuffix) {
		return strings.TrimSuffix(typeName, owllist.ListSuffix)
	}
	return typeName
}

// Classify resolves a node's declared type local name to its value kind.
// An empty or unknown type name classifies as primitive; the encoder then
// falls back to the literal table or a $ placeholder.
func (s *Schema) Classify(typeName string) Kind {
	switch {
	case s.entities[typeName]:
		return KindInstance
	case s.enums[typeName]:
		return KindEnumeration
	case s.IsListRooted(typeName):
		return KindListCell
	default:
		return KindPrimitive
	}
}
