package step

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/owl2step/model"
	"github.com/c360studio/owl2step/schema"
)

const writerDoc = `
version: IFC4
enumerations:
  - IfcNullStyle
  - IfcUnitEnum
members:
  - POSITIVE
  - NEGATIVE
  - LENGTHUNIT
  - NULL
lists:
  - IfcCompoundPlaneAngleMeasure
selects:
  - IfcValue
  - IfcCompoundPlaneAngleMeasure
classes:
  IfcWall:
    attributes:
      - name: globalId_IfcRoot
        range: IfcLabel
      - name: description_IfcRoot
        range: IfcText
        optional: true
      - name: representation_IfcProduct
        range: IfcProductRepresentation
        optional: true
  IfcProductRepresentation:
    attributes:
      - name: name_IfcProductRepresentation
        range: IfcLabel
        optional: true
  IfcRelAggregates:
    attributes:
      - name: relatedObjects_IfcRelDecomposes
        range: IfcObjectDefinition
        set: true
      - name: dimension_IfcRelAggregates
        range: IfcDimensionCount
      - name: description_IfcRelAggregates
        range: IfcText
        optional: true
    derived:
      - dimension_IfcRelAggregates
  IfcPropertySingleValue:
    attributes:
      - name: nominalValue_IfcPropertySingleValue
        range: IfcValue
        optional: true
  IfcCartesianPoint:
    attributes:
      - name: coordinates_IfcCartesianPoint
        range: IfcLengthMeasure_List
        list_or_array: true
  IfcSurfaceStyle:
    attributes:
      - name: side_IfcSurfaceStyle
        range: IfcNullStyle
  IfcSIUnit:
    attributes:
      - name: unitType_IfcNamedUnit
        range: IfcUnitEnum
  IfcMeasureWithUnit:
    attributes:
      - name: valueComponent_IfcMeasureWithUnit
        range: IfcCompoundPlaneAngleMeasure
`

func writerSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Load(strings.NewReader(writerDoc))
	require.NoError(t, err)
	return s
}

func render(t *testing.T, m *model.Model) string {
	t.Helper()
	var buf bytes.Buffer
	err := NewWriter(writerSchema(t), m, &buf, discardLogger()).Write()
	require.NoError(t, err)
	return buf.String()
}

// dataSection strips the fixed framing and returns the instance lines.
func dataSection(t *testing.T, out string) []string {
	t.Helper()
	_, rest, ok := strings.Cut(out, "DATA;\n")
	require.True(t, ok)
	body, _, ok := strings.Cut(rest, "ENDSEC;\nEND-ISO-10303-21;\n")
	require.True(t, ok)
	if body == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(body, "\n"), "\n")
}

func addInstance(m *model.Model, key, class string, line int) *model.Object {
	o := m.Ensure(key)
	o.Class = class
	m.SetType(key, class)
	if line > 0 {
		o.SetLine(line)
		m.ObserveLine(line)
	}
	return o
}

func addLiteral(m *model.Model, key, typeName, text string) {
	m.SetType(key, typeName)
	m.SetLiteral(key, text)
}

func TestWriteEmptyModel(t *testing.T) {
	out := render(t, model.New())

	want := "ISO-10303-21;\n" +
		"HEADER;\n" +
		"FILE_DESCRIPTION((''),'');\n" +
		"FILE_NAME('','',(''),(''),'','','');\n" +
		"FILE_SCHEMA(('IFC4'));\n" +
		"ENDSEC;\n" +
		"DATA;\n" +
		"ENDSEC;\n" +
		"END-ISO-10303-21;\n"
	assert.Equal(t, want, out)
}

func TestWriteHeaderFields(t *testing.T) {
	m := model.New()
	h := m.Header()
	h.Description = []string{"ViewDefinition [CoordinationView]"}
	h.ImplementationLevel = "2;1"
	h.Name = "duplex.ifc"
	h.TimeStamp = "2026-01-01T00:00:00"
	h.Authors = []string{"architect", "engineer"}
	h.Organizations = []string{"acme"}
	h.PreprocessorVersion = "owl2step"
	h.OriginatingSystem = "revit"
	h.Authorization = "none"
	h.SchemaIdentifiers = []string{"IFC4"}

	out := render(t, m)
	assert.Contains(t, out, "FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');\n")
	assert.Contains(t, out,
		"FILE_NAME('duplex.ifc','2026-01-01T00:00:00',('architect','engineer'),('acme'),'owl2step','revit','none');\n")
	assert.Contains(t, out, "FILE_SCHEMA(('IFC4'));\n")
}

func TestWriteInstanceLine(t *testing.T) {
	m := model.New()
	wall := addInstance(m, "wall", "IfcWall", 12)
	addLiteral(m, "guid", "IfcLabel", "'Wall-1'")
	wall.SetAttr(0, "guid", false)

	addInstance(m, "rep", "IfcProductRepresentation", 7)
	wall.SetAttr(2, "rep", false)

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 2)
	assert.Equal(t, "#12= IFCWALL('Wall-1',$,#7);", lines[0])
	assert.Equal(t, "#7= IFCPRODUCTREPRESENTATION($);", lines[1])
}

func TestWriteNullForms(t *testing.T) {
	// An unobserved mandatory aggregate renders (), a derived attribute *,
	// everything else $.
	m := model.New()
	addInstance(m, "rel", "IfcRelAggregates", 1)

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 1)
	assert.Equal(t, "#1= IFCRELAGGREGATES((),*,$);", lines[0])
}

func TestWriteSyntheticLineNumbers(t *testing.T) {
	m := model.New()
	addInstance(m, "wall", "IfcWall", 12)
	addInstance(m, "rep", "IfcProductRepresentation", 0) // no express id

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 2)
	assert.Equal(t, "#13= IFCPRODUCTREPRESENTATION($);", lines[1])
}

func TestWriteSkipsUnclassedInstances(t *testing.T) {
	m := model.New()
	m.Ensure("phantom") // no type edge ever arrived
	mystery := m.Ensure("mystery")
	mystery.Class = "IfcMystery"
	addInstance(m, "wall", "IfcWall", 1)

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 1)
	assert.Equal(t, "#1= IFCWALL($,$,$);", lines[0])
}

func TestWriteDanglingReference(t *testing.T) {
	m := model.New()
	wall := addInstance(m, "wall", "IfcWall", 1)
	m.SetType("ghost", "IfcProductRepresentation")
	wall.SetAttr(2, "ghost", false)

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 1)
	assert.Equal(t, "#1= IFCWALL($,$,$);", lines[0])
}

func TestWriteEnumeration(t *testing.T) {
	t.Run("member", func(t *testing.T) {
		m := model.New()
		style := addInstance(m, "style", "IfcSurfaceStyle", 1)
		m.SetType("POSITIVE", "IfcNullStyle")
		style.SetAttr(0, "POSITIVE", false)

		lines := dataSection(t, render(t, m))
		require.Len(t, lines, 1)
		assert.Equal(t, "#1= IFCSURFACESTYLE(.POSITIVE.);", lines[0])
	})

	t.Run("sentinel NULL member encodes absence", func(t *testing.T) {
		m := model.New()
		style := addInstance(m, "style", "IfcSurfaceStyle", 1)
		m.SetType("NULL", "IfcNullStyle")
		style.SetAttr(0, "NULL", false)

		lines := dataSection(t, render(t, m))
		require.Len(t, lines, 1)
		assert.Equal(t, "#1= IFCSURFACESTYLE($);", lines[0])
	})

	// Members are ontology individuals; model graphs reference them without
	// a type edge of their own.
	t.Run("untyped member resolves through the schema member set", func(t *testing.T) {
		m := model.New()
		unit := addInstance(m, "unit", "IfcSIUnit", 73)
		unit.SetAttr(0, "LENGTHUNIT", false)

		lines := dataSection(t, render(t, m))
		require.Len(t, lines, 1)
		assert.Equal(t, "#73= IFCSIUNIT(.LENGTHUNIT.);", lines[0])
	})

	t.Run("untyped sentinel NULL member encodes absence", func(t *testing.T) {
		m := model.New()
		unit := addInstance(m, "unit", "IfcSIUnit", 1)
		unit.SetAttr(0, "NULL", false)

		lines := dataSection(t, render(t, m))
		require.Len(t, lines, 1)
		assert.Equal(t, "#1= IFCSIUNIT($);", lines[0])
	})
}

func TestWriteEmbeddedSelectValue(t *testing.T) {
	m := model.New()
	prop := addInstance(m, "prop", "IfcPropertySingleValue", 1)
	addLiteral(m, "val", "IfcLabel", "'Apartment'")
	prop.SetAttr(0, "val", false)

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 1)
	assert.Equal(t, "#1= IFCPROPERTYSINGLEVALUE(IFCLABEL('Apartment'));", lines[0])
}

func TestWriteListAttribute(t *testing.T) {
	m := model.New()
	point := addInstance(m, "point", "IfcCartesianPoint", 1)

	m.SetType("cell_1", "IfcLengthMeasure_List")
	m.SetType("cell_2", "IfcLengthMeasure_List")
	m.SetContents("cell_1", []string{"len_1"})
	m.LinkNext("cell_1", "cell_2")
	m.SetContents("cell_2", []string{"len_2"})
	addLiteral(m, "len_1", "IfcLengthMeasure", "0.00000000")
	addLiteral(m, "len_2", "IfcLengthMeasure", "2.50000000")

	point.SetAttr(0, "cell_1", false)

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 1)
	assert.Equal(t, "#1= IFCCARTESIANPOINT((0.00000000,2.50000000));", lines[0])
}

func TestWriteEmbeddedTypedList(t *testing.T) {
	// A list whose own type is the SELECT-ranged attribute's range carries
	// the type name around the whole sequence.
	m := model.New()
	measure := addInstance(m, "measure", "IfcMeasureWithUnit", 1)

	m.SetType("cell_1", "IfcCompoundPlaneAngleMeasure")
	m.SetType("cell_2", "IfcCompoundPlaneAngleMeasure")
	m.SetContents("cell_1", []string{"deg"})
	m.LinkNext("cell_1", "cell_2")
	m.SetContents("cell_2", []string{"min"})
	addLiteral(m, "deg", "IfcInteger", "50")
	addLiteral(m, "min", "IfcInteger", "10")

	measure.SetAttr(0, "cell_1", false)

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 1)
	assert.Equal(t, "#1= IFCMEASUREWITHUNIT(IFCCOMPOUNDPLANEANGLEMEASURE((50,10)));", lines[0])
}

func TestWriteListWithNullSlot(t *testing.T) {
	m := model.New()
	point := addInstance(m, "point", "IfcCartesianPoint", 1)

	m.SetType("cell_1", "IfcLengthMeasure_List")
	m.SetType("cell_2", "IfcLengthMeasure_List")
	m.LinkNext("cell_1", "cell_2") // cell_1 has no contents
	m.SetContents("cell_2", []string{"len_2"})
	addLiteral(m, "len_2", "IfcLengthMeasure", "2.50000000")

	point.SetAttr(0, "cell_1", false)

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 1)
	assert.Equal(t, "#1= IFCCARTESIANPOINT(($,2.50000000));", lines[0])
}

func TestWriteSetAttribute(t *testing.T) {
	m := model.New()
	rel := addInstance(m, "rel", "IfcRelAggregates", 1)
	addInstance(m, "wall", "IfcWall", 2)
	addInstance(m, "rep", "IfcProductRepresentation", 3)
	rel.SetAttr(0, "wall", true)
	rel.SetAttr(0, "rep", true)

	lines := dataSection(t, render(t, m))
	require.Len(t, lines, 3)
	assert.Equal(t, "#1= IFCRELAGGREGATES((#2,#3),*,$);", lines[0])
}

func TestWriteIsRepeatable(t *testing.T) {
	m := model.New()
	wall := addInstance(m, "wall", "IfcWall", 12)
	addLiteral(m, "guid", "IfcLabel", "'Wall-1'")
	wall.SetAttr(0, "guid", false)
	addInstance(m, "rep", "IfcProductRepresentation", 0)

	first := render(t, m)
	second := render(t, m)
	assert.Equal(t, first, second)
}
