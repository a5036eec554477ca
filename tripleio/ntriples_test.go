package tripleio

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semstreams/message"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stringSource(doc string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(doc)), nil
	}
}

func collect(t *testing.T, ch <-chan message.Triple) []message.Triple {
	t.Helper()
	var out []message.Triple
	for tr := range ch {
		out = append(out, tr)
	}
	return out
}

func TestParseTripleLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantObject any
	}{
		{
			"resource object",
			`<http://ex.org/a> <http://ex.org/p> <http://ex.org/b> .`,
			"http://ex.org/b",
		},
		{
			"plain literal",
			`<http://ex.org/a> <http://ex.org/p> "hello" .`,
			"hello",
		},
		{
			"integer literal",
			`<http://ex.org/a> <http://ex.org/p> "12"^^<http://www.w3.org/2001/XMLSchema#integer> .`,
			int64(12),
		},
		{
			"double literal",
			`<http://ex.org/a> <http://ex.org/p> "2.5"^^<http://www.w3.org/2001/XMLSchema#double> .`,
			2.5,
		},
		{
			"boolean literal",
			`<http://ex.org/a> <http://ex.org/p> "true"^^<http://www.w3.org/2001/XMLSchema#boolean> .`,
			true,
		},
		{
			"unknown datatype keeps lexical form",
			`<http://ex.org/a> <http://ex.org/p> "0AFB"^^<http://www.w3.org/2001/XMLSchema#hexBinary> .`,
			"0AFB",
		},
		{
			"language-tagged literal",
			`<http://ex.org/a> <http://ex.org/p> "mur"@fr .`,
			"mur",
		},
		{
			"escaped literal",
			`<http://ex.org/a> <http://ex.org/p> "line\nbreak é" .`,
			"line\nbreak é",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ok, err := parseTripleLine(tt.line)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "http://ex.org/a", tr.Subject)
			assert.Equal(t, "http://ex.org/p", tr.Predicate)
			assert.Equal(t, tt.wantObject, tr.Object)
		})
	}
}

func TestParseTripleLineBlankNodes(t *testing.T) {
	tr, ok, err := parseTripleLine(`_:b0 <http://ex.org/p> _:b1 .`)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "_:b0", tr.Subject)
	assert.Equal(t, "_:b1", tr.Object)
}

func TestParseTripleLineSkipsCommentsAndBlanks(t *testing.T) {
	for _, line := range []string{"", "   ", "# a comment"} {
		_, ok, err := parseTripleLine(line)
		require.NoError(t, err, line)
		assert.False(t, ok, line)
	}
}

func TestParseTripleLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bare word subject", `wall <http://ex.org/p> <http://ex.org/b> .`},
		{"unterminated IRI", `<http://ex.org/a <http://ex.org/p> <http://ex.org/b> .`},
		{"missing terminator", `<http://ex.org/a> <http://ex.org/p> <http://ex.org/b>`},
		{"unterminated literal", `<http://ex.org/a> <http://ex.org/p> "open .`},
		{"bad integer literal", `<http://ex.org/a> <http://ex.org/p> "x"^^<http://www.w3.org/2001/XMLSchema#integer> .`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseTripleLine(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestNTriplesEdges(t *testing.T) {
	doc := `# duplex model
<http://ex.org/wall_1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://ex.org/IfcWall> .
not a triple line
<http://ex.org/v> <https://w3id.org/express#hasDouble> "2.5"^^<http://www.w3.org/2001/XMLSchema#double> .
`
	src := NewNTriples(stringSource(doc), discardLogger())

	ch, err := src.Edges(context.Background())
	require.NoError(t, err)
	triples := collect(t, ch)

	// The malformed line is skipped, not fatal.
	require.Len(t, triples, 2)
	assert.Equal(t, "http://ex.org/wall_1", triples[0].Subject)
	assert.Equal(t, 2.5, triples[1].Object)
}

func TestNTriplesEdgesIsReopenable(t *testing.T) {
	doc := `<http://ex.org/a> <http://ex.org/p> <http://ex.org/b> .` + "\n"
	src := NewNTriples(stringSource(doc), discardLogger())

	for i := 0; i < 2; i++ {
		ch, err := src.Edges(context.Background())
		require.NoError(t, err)
		assert.Len(t, collect(t, ch), 1)
	}
}

func TestNTriplesEdgesOpenFailure(t *testing.T) {
	src := NewNTriplesFile("testdata/does-not-exist.nt", discardLogger())
	_, err := src.Edges(context.Background())
	assert.Error(t, err)
}
