package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionForNamespace(t *testing.T) {
	tests := []struct {
		name string
		iri  string
		want Version
		ok   bool
	}{
		{"bare namespace", "https://standards.buildingsmart.org/IFC/DEV/IFC4/FINAL/OWL", IFC4, true},
		{"trailing hash", "https://standards.buildingsmart.org/IFC/DEV/IFC4/FINAL/OWL#", IFC4, true},
		{"trailing slash", "https://standards.buildingsmart.org/IFC/DEV/IFC2x3/TC1/OWL/", IFC2X3TC1, true},
		{"ifc4 addendum", "https://standards.buildingsmart.org/IFC/DEV/IFC4/ADD2/OWL", IFC4Add2, true},
		{"unknown ontology", "https://example.org/vocab#", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := VersionForNamespace(tt.iri)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestVersionQueries(t *testing.T) {
	assert.True(t, IFC4.Valid())
	assert.True(t, IFC2X3Final.Valid())
	assert.False(t, Version("IFC99").Valid())

	assert.Equal(t, "IFC2X3_TC1", IFC2X3TC1.Label())
	assert.Equal(t, "https://standards.buildingsmart.org/IFC/DEV/IFC4_1/OWL", IFC4x1.Namespace())
	assert.Empty(t, Version("IFC99").Namespace())
}
