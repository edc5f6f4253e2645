package shacl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/shacl-go/rdf"
)

const discoveryShapes = `
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

ex:A a sh:NodeShape ;
	sh:property ex:E .
ex:E a sh:PropertyShape ;
	sh:path ex:e .
ex:B sh:targetClass ex:C .
ex:D sh:path ex:d .
ex:X rdfs:seeAlso ex:F .
ex:F a sh:NodeShape .
`

func TestDiscoverRoots(t *testing.T) {
	g := loadTurtle(t, discoveryShapes)

	tests := []struct {
		mode RootMode
		want []rdf.Term
	}{
		{RootsUnreferenced, []rdf.Term{ex("A"), ex("B"), ex("D"), ex("X")}},
		{RootsDeclared, []rdf.Term{ex("A"), ex("B"), ex("F")}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, DiscoverRoots(g, tt.mode))
		})
	}
}

func TestPropertyShapeCandidates(t *testing.T) {
	g := loadTurtle(t, `
ex:Node sh:property ex:Nested ;
	sh:not ex:Negated .
ex:Nested sh:path ex:a .
ex:Negated sh:path ex:b .
ex:Standalone sh:path ex:c .
ex:ViaNode sh:path ex:d .
ex:Other sh:node ex:ViaNode .
`)
	assert.Equal(t, []rdf.Term{ex("Standalone"), ex("ViaNode")}, PropertyShapeCandidates(g))
}

func TestParseDeclaredRoots(t *testing.T) {
	g := loadTurtle(t, discoveryShapes)
	res, err := Parse(t.Context(), g, WithRootDiscovery(RootsDeclared))
	require.NoError(t, err)
	assert.Equal(t, []rdf.Term{ex("A"), ex("B"), ex("F")}, res.Roots)
	assert.Equal(t, 4, res.Len())

	_, ok := res.Lookup(ex("D"))
	assert.False(t, ok)
}

func TestParseRootMode(t *testing.T) {
	for in, want := range map[string]RootMode{
		"":             RootsUnreferenced,
		"unreferenced": RootsUnreferenced,
		"Declared":     RootsDeclared,
		" declared ":   RootsDeclared,
	} {
		got, err := ParseRootMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseRootMode("all")
	assert.Error(t, err)
	assert.Equal(t, "RootMode(7)", RootMode(7).String())
}
