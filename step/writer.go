// Package step serializes an assembled object model as ISO-10303-21 text.
//
// The writer runs two strictly sequential phases over the instance table:
// id finalization, which assigns synthetic line numbers to instances that
// arrived without one, and emission, which writes the header and data
// sections. Emission order is the instance insertion order recorded during
// ingestion, so re-running the writer over an unmodified model produces
// byte-identical output.
package step

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/c360studio/owl2step/model"
	"github.com/c360studio/owl2step/schema"
	"github.com/c360studio/owl2step/vocabulary/owllist"
)

// Writer emits one object model as a STEP physical file.
type Writer struct {
	schema *schema.Schema
	model  *model.Model
	out    *bufio.Writer
	logger *slog.Logger
	err    error
}

// NewWriter creates a writer for an assembled model. Diagnostics go to the
// logger only; the output stream receives nothing but STEP text.
func NewWriter(sch *schema.Schema, m *model.Model, out io.Writer, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		schema: sch,
		model:  m,
		out:    bufio.NewWriter(out),
		logger: logger,
	}
}

// Write emits the header and data sections.
func (w *Writer) Write() error {
	w.writeHeader()
	w.writeData()
	if w.err != nil {
		return fmt.Errorf("write step output: %w", w.err)
	}
	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("write step output: %w", err)
	}
	return nil
}

func (w *Writer) print(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.out.WriteString(s)
}

func (w *Writer) println(s string) {
	w.print(s)
	w.print("\n")
}

// quoted renders a single-quoted header string.
func quoted(s string) string {
	return "'" + s + "'"
}

// quotedList renders a parenthesized header string list. An empty list
// still serializes as a single empty-quoted element.
func quotedList(items []string) string {
	if len(items) == 0 {
		return "('')"
	}
	var sb strings.Builder
	sb.WriteString("(")
	for i, s := range items {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(quoted(s))
	}
	sb.WriteString(")")
	return sb.String()
}

func (w *Writer) writeHeader() {
	h := w.model.Header()

	w.println("ISO-10303-21;")
	w.println("HEADER;")
	w.println("FILE_DESCRIPTION(" + quotedList(h.Description) + "," + quoted(h.ImplementationLevel) + ");")
	w.println("FILE_NAME(" + quoted(h.Name) + "," + quoted(h.TimeStamp) + "," +
		quotedList(h.Authors) + "," + quotedList(h.Organizations) + "," +
		quoted(h.PreprocessorVersion) + "," + quoted(h.OriginatingSystem) + "," +
		quoted(h.Authorization) + ");")
	if len(h.SchemaIdentifiers) > 0 {
		w.println("FILE_SCHEMA(" + quotedList(h.SchemaIdentifiers) + ");")
	} else {
		w.println("FILE_SCHEMA((" + quoted(w.schema.Version().Label()) + "));")
	}
	w.println("ENDSEC;")
}

func (w *Writer) writeData() {
	w.println("DATA;")

	// Phase one: every instance gets a line number before anything is
	// emitted, so forward references resolve.
	for _, key := range w.model.Keys() {
		obj := w.model.Object(key)
		if _, ok := obj.Line(); !ok {
			n := w.model.NextLine()
			obj.SetLine(n)
			w.logger.Warn("Instance has no express id, assigned one", "instance", key, "line", n)
		}
	}

	for _, key := range w.model.Keys() {
		w.writeLine(key, w.model.Object(key))
	}

	w.println("ENDSEC;")
	w.println("END-ISO-10303-21;")
}

// writeLine emits one #N= CLASS(...); record. Attribute count and order
// come from the schema fact base, not from what was observed.
func (w *Writer) writeLine(key string, obj *model.Object) {
	if obj.Class == "" {
		w.logger.Warn("Instance has no declared entity class, skipped", "instance", key)
		return
	}
	attrs, err := w.schema.AttributeOrder(obj.Class)
	if err != nil {
		w.logger.Warn("Entity class unknown to the schema, instance skipped",
			"instance", key, "class", obj.Class)
		return
	}

	line, _ := obj.Line()
	w.print("#")
	w.print(strconv.Itoa(line))
	w.print("= ")
	w.print(strings.ToUpper(obj.Class))
	w.print("(")
	for i, attr := range attrs {
		if i > 0 {
			w.print(",")
		}
		v := obj.Attr(i)
		switch {
		case v == nil:
			w.writeNull(obj.Class, attr)
		case v.Many:
			w.writeSet(v.Refs, attr.Range)
		default:
			w.writeValue(v.Refs[0], attr.Range)
		}
	}
	w.println(");")
}

// writeNull emits the schema-driven marker for an unobserved attribute:
// an empty collection for mandatory aggregates, * for derived attributes,
// $ otherwise.
func (w *Writer) writeNull(class string, attr schema.Attribute) {
	switch {
	case (attr.Set || attr.ListOrArray) && !attr.Optional:
		w.print("()")
	case w.schema.IsDerived(class, attr.Name):
		w.print("*")
	default:
		w.print("$")
	}
}

// writeSet emits an observed ordered sequence as a parenthesized list.
func (w *Writer) writeSet(refs []string, rng string) {
	w.print("(")
	for i, ref := range refs {
		if i > 0 {
			w.print(",")
		}
		w.writeValue(ref, rng)
	}
	w.print(")")
}

// classify resolves a value node's kind. Enumeration members are
// ontology-level individuals the instance stream never types, so an untyped
// node whose own key names a member still classifies as an enumeration.
func (w *Writer) classify(ref string) schema.Kind {
	typ := w.model.Type(ref)
	if typ == "" && w.schema.IsEnumerationMember(ref) {
		return schema.KindEnumeration
	}
	return w.schema.Classify(typ)
}

// writeValue dispatches one scalar value on its classified kind.
func (w *Writer) writeValue(ref, rng string) {
	switch w.classify(ref) {
	case schema.KindInstance:
		w.writeInstanceRef(ref)
	case schema.KindEnumeration:
		w.writeEnum(ref)
	case schema.KindListCell:
		w.writeList(ref, rng, false)
	default:
		w.writePrimitiveRanged(ref, rng, w.schema.IsDirectSubtypeOfSelect(rng))
	}
}

// writeInstanceRef emits a #N reference to another instance.
func (w *Writer) writeInstanceRef(ref string) {
	obj := w.model.Object(ref)
	if obj == nil {
		w.logger.Warn("Found a dangling instance reference", "instance", ref)
		w.print("$")
		return
	}
	line, _ := obj.Line()
	w.print("#")
	w.print(strconv.Itoa(line))
}

// writeEnum emits an enumeration member. The sentinel member NULL encodes
// absence.
func (w *Writer) writeEnum(ref string) {
	if ref == "NULL" {
		w.print("$")
		return
	}
	w.print(".")
	w.print(ref)
	w.print(".")
}

// writePrimitiveRanged emits a primitive value against its attribute range:
// raw when the node's concrete type equals the range, embedded in the
// TYPENAME(value) form when the range is a SELECT union, raw otherwise (a
// non-union range mismatch trusts the literal).
func (w *Writer) writePrimitiveRanged(ref, rng string, rangeIsSelect bool) {
	if w.model.Type(ref) == rng || !rangeIsSelect {
		w.writePrimitive(ref)
		return
	}
	w.writeEmbedded(ref)
}

// writePrimitive emits the recorded literal text, or $ when the value node
// was never visited as a literal subject.
func (w *Writer) writePrimitive(ref string) {
	if text, ok := w.model.Literal(ref); ok {
		w.print(text)
		return
	}
	w.print("$")
}

// writeEmbedded emits the embedded SELECT form TYPENAME(value).
func (w *Writer) writeEmbedded(ref string) {
	w.print(strings.ToUpper(w.model.Type(ref)))
	w.print("(")
	w.writePrimitive(ref)
	w.print(")")
}

// writeList resolves a cell chain and emits it as a parenthesized
// sequence. When the range is a SELECT union and the list's own declared
// type matches the range itself, the sequence is wrapped in an extra
// type-name prefix (an embedded-typed list); the flag suppresses further
// embedding one level down.
func (w *Writer) writeList(head, rng string, embedded bool) {
	refs := resolveChain(w.model, head, w.logger)
	if len(refs) == 0 {
		w.print("()")
		return
	}

	listType := w.model.Type(head)
	wrap := w.schema.IsDirectSubtypeOfSelect(rng) && listType == rng
	if wrap {
		w.print(strings.ToUpper(listType))
		w.print("(")
		embedded = true
	}
	w.print("(")

	narrowed := w.schema.NarrowListRange(rng)
	for i, ref := range refs {
		if i > 0 {
			w.print(",")
		}
		if ref == nullRef {
			w.logger.Warn("A list holds a null value", "cell", head)
			w.print("$")
			continue
		}
		switch w.classify(ref) {
		case schema.KindInstance:
			w.writeInstanceRef(ref)
		case schema.KindEnumeration:
			w.writeEnum(ref)
		case schema.KindListCell:
			w.writeList(ref, narrowed, embedded)
		default:
			w.writeListPrimitive(head, ref, narrowed, embedded)
		}
	}

	w.print(")")
	if wrap {
		w.print(")")
	}
}

// writeListPrimitive emits one primitive list element. Embedding applies
// only when the narrowed range is a SELECT union, no enclosing list already
// carries the type, and the list's own type is not the element type's list
// form.
func (w *Writer) writeListPrimitive(head, ref, narrowed string, embedded bool) {
	clazz := w.model.Type(ref)
	if clazz == narrowed {
		w.writePrimitive(ref)
		return
	}
	if w.schema.IsDirectSubtypeOfSelect(narrowed) && !embedded &&
		w.model.Type(head) != clazz+owllist.ListSuffix {
		w.writeEmbedded(ref)
		return
	}
	w.writePrimitive(ref)
}
