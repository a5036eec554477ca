// Package ingest assembles the conversion-scoped object model from an
// unordered stream of ifcOWL graph edges.
//
// The builder is the single consumer of a one-shot producer goroutine; it
// reads the edge channel until the producer closes it. Every recoverable
// anomaly (malformed literal, unparseable id, unknown attribute predicate)
// is logged and the single fact dropped; the rest of the model is built
// normally.
package ingest

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/owl2step/model"
	"github.com/c360studio/owl2step/schema"
	"github.com/c360studio/owl2step/vocabulary/express"
	"github.com/c360studio/owl2step/vocabulary/header"
	"github.com/c360studio/owl2step/vocabulary/ifcowl"
	"github.com/c360studio/owl2step/vocabulary/owllist"
)

// Builder consumes an edge stream and populates the object model.
type Builder struct {
	schema *schema.Schema
	logger *slog.Logger
}

// NewBuilder creates a builder over a loaded schema fact base.
func NewBuilder(sch *schema.Schema, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{schema: sch, logger: logger}
}

// Consume reads edges until the channel is closed and returns the
// assembled model.
func (b *Builder) Consume(edges <-chan message.Triple) *model.Model {
	m := model.New()
	for t := range edges {
		b.apply(m, t)
	}
	return m
}

// apply folds one edge into the model.
func (b *Builder) apply(m *model.Model, t message.Triple) {
	sn := ifcowl.LocalName(t.Subject)
	pn := ifcowl.LocalName(t.Predicate)

	switch {
	case t.Predicate == ifcowl.RDFType || pn == "type":
		b.applyType(m, sn, t)

	case pn == ifcowl.HasExpressID:
		obj := m.Ensure(sn)
		n, ok := asInt(t.Object)
		if !ok {
			b.logger.Warn("Found an invalid express id", "subject", t.Subject)
			return
		}
		obj.SetLine(int(n))
		m.ObserveLine(int(n))

	case pn == owllist.HasNext:
		m.LinkNext(sn, objectRef(t.Object))

	case pn == owllist.HasContents:
		m.SetContents(sn, []string{objectRef(t.Object)})

	case strings.EqualFold(pn, express.HasDouble):
		v, ok := asFloat(t.Object)
		if !ok {
			b.logger.Warn("Found an invalid double value", "subject", t.Subject)
			return
		}
		text, finite := formatDouble(v)
		if !finite {
			b.logger.Warn("Serialize non-finite number as 0.00", "subject", t.Subject)
		}
		m.SetLiteral(sn, text)

	case strings.EqualFold(pn, express.HasString):
		s, ok := t.Object.(string)
		if !ok {
			b.logger.Warn("Found an invalid string value", "subject", t.Subject)
			return
		}
		m.SetLiteral(sn, formatString(s))

	case pn == express.HasInteger:
		n, ok := asInt(t.Object)
		if !ok {
			b.logger.Warn("Found an invalid integer value", "subject", t.Subject)
			return
		}
		m.SetLiteral(sn, formatInteger(n))

	case pn == express.HasHexBinary:
		s, ok := t.Object.(string)
		if !ok {
			b.logger.Warn("Did not convert the binary value", "subject", t.Subject)
			return
		}
		m.SetLiteral(sn, formatHexBinary(s))

	case pn == express.HasBoolean:
		v, ok := t.Object.(bool)
		if !ok {
			b.logger.Warn("Found an invalid boolean value", "subject", t.Subject)
			return
		}
		if v {
			m.SetLiteral(sn, express.TokenTrue)
		} else {
			m.SetLiteral(sn, express.TokenFalse)
		}

	case pn == express.HasLogical:
		switch objectRef(t.Object) {
		case express.True:
			m.SetLiteral(sn, express.TokenTrue)
		case express.False:
			m.SetLiteral(sn, express.TokenFalse)
		case express.Unknown:
			m.SetLiteral(sn, express.TokenUnknown)
		default:
			b.logger.Warn("Found an invalid logical value", "subject", t.Subject)
		}

	case sn == "":
		b.applyHeader(m.Header(), pn, t.Object)

	default:
		b.applyAttribute(m, sn, pn, t)
	}
}

// applyType records a node's declared type and, for entity instances,
// creates the instance record and extracts a fallback line number from a
// trailing "_<digits>" suffix of the node's local name.
func (b *Builder) applyType(m *model.Model, sn string, t message.Triple) {
	obj, ok := t.Object.(string)
	if !ok {
		b.logger.Warn("Found a non-resource type object", "subject", t.Subject)
		return
	}
	on := ifcowl.LocalName(obj)
	m.SetType(sn, on)

	if !b.schema.IsEntity(on) {
		return
	}
	inst := m.Ensure(sn)
	inst.Class = on

	// An explicitly declared express id always wins over the suffix.
	if _, has := inst.Line(); has {
		return
	}
	if i := strings.LastIndexByte(sn, '_'); i >= 0 {
		if n, err := strconv.Atoi(sn[i+1:]); err == nil {
			inst.SetLine(n)
			m.ObserveLine(n)
		}
	}
}

// applyHeader populates one file-header field from a document-node edge.
// Unrecognized header predicates are ignored.
func (b *Builder) applyHeader(h *model.Header, pn string, v any) {
	switch pn {
	case header.Description:
		h.Description = append(h.Description, asString(v))
	case header.ImplementationLevel:
		h.ImplementationLevel = asString(v)
	case header.Name:
		h.Name = asString(v)
	case header.TimeStamp:
		h.TimeStamp = asString(v)
	case header.Author:
		h.Authors = append(h.Authors, asString(v))
	case header.Organization:
		h.Organizations = append(h.Organizations, asString(v))
	case header.PreprocessorVersion:
		h.PreprocessorVersion = asString(v)
	case header.OriginatingSystem:
		h.OriginatingSystem = asString(v)
	case header.Authorization:
		h.Authorization = asString(v)
	case header.SchemaIdentifiers:
		h.SchemaIdentifiers = append(h.SchemaIdentifiers, asString(v))
	}
}

// applyAttribute records a generic instance attribute edge at its
// schema-declared position.
func (b *Builder) applyAttribute(m *model.Model, sn, pn string, t message.Triple) {
	attr, ok := b.schema.Attribute(pn)
	if !ok {
		b.logger.Warn("Found an unknown attribute predicate", "predicate", t.Predicate, "subject", t.Subject)
		return
	}
	pos, _ := b.schema.Position(pn)
	m.Ensure(sn).SetAttr(pos, objectRef(t.Object), attr.Set)
}

// objectRef resolves a triple object to the local name of the referenced
// node. Non-resource objects keep their lexical form.
func objectRef(v any) string {
	if s, ok := v.(string); ok {
		return ifcowl.LocalName(s)
	}
	return asString(v)
}
