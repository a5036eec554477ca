package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsurePreservesInsertionOrder(t *testing.T) {
	m := New()

	m.Ensure("wall_3")
	m.Ensure("slab_1")
	m.Ensure("wall_3") // repeat must not reorder
	m.Ensure("door_2")

	assert.Equal(t, []string{"wall_3", "slab_1", "door_2"}, m.Keys())
	assert.Equal(t, 3, m.Len())
	assert.Same(t, m.Ensure("slab_1"), m.Object("slab_1"))
	assert.Nil(t, m.Object("window_9"))
}

func TestScalarPromotion(t *testing.T) {
	m := New()
	o := m.Ensure("wall_1")

	o.SetAttr(2, "label_a", false)
	v := o.Attr(2)
	require.NotNil(t, v)
	assert.False(t, v.Many)
	assert.Equal(t, []string{"label_a"}, v.Refs)

	// A second edge for the same position promotes the slot.
	o.SetAttr(2, "label_b", false)
	v = o.Attr(2)
	assert.True(t, v.Many)
	assert.Equal(t, []string{"label_a", "label_b"}, v.Refs)

	assert.Nil(t, o.Attr(0))
}

func TestSetValuedAttributeStartsAsSequence(t *testing.T) {
	m := New()
	o := m.Ensure("wall_1")

	o.SetAttr(3, "rel_1", true)
	v := o.Attr(3)
	require.NotNil(t, v)
	assert.True(t, v.Many)
	assert.Equal(t, []string{"rel_1"}, v.Refs)
}

func TestLineAssignment(t *testing.T) {
	m := New()
	o := m.Ensure("wall_1")

	_, ok := o.Line()
	assert.False(t, ok)

	o.SetLine(12)
	m.ObserveLine(12)

	n, ok := o.Line()
	require.True(t, ok)
	assert.Equal(t, 12, n)

	// Synthetic ids continue past the highest observed number.
	assert.Equal(t, 13, m.NextLine())
	assert.Equal(t, 14, m.NextLine())

	// A lower observation never rewinds the counter.
	m.ObserveLine(5)
	assert.Equal(t, 15, m.NextLine())
}

func TestListTables(t *testing.T) {
	m := New()

	m.SetContents("cell_1", []string{"val_1"})
	m.LinkNext("cell_1", "cell_2")

	refs, ok := m.Contents("cell_1")
	require.True(t, ok)
	assert.Equal(t, []string{"val_1"}, refs)

	next, ok := m.Next("cell_1")
	require.True(t, ok)
	assert.Equal(t, "cell_2", next)

	_, ok = m.Contents("cell_2")
	assert.False(t, ok)
	_, ok = m.Next("cell_2")
	assert.False(t, ok)
}

func TestTypeAndLiteralTables(t *testing.T) {
	m := New()

	m.SetType("node_1", "IfcLabel")
	m.SetType("node_1", "IfcText") // last type edge wins
	assert.Equal(t, "IfcText", m.Type("node_1"))
	assert.Empty(t, m.Type("node_2"))

	m.SetLiteral("node_1", "'Wall'")
	text, ok := m.Literal("node_1")
	require.True(t, ok)
	assert.Equal(t, "'Wall'", text)
	_, ok = m.Literal("node_2")
	assert.False(t, ok)
}
