package shacl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/shacl-go/rdf"
)

func TestDecodeListLengths(t *testing.T) {
	tests := []struct {
		name  string
		items []rdf.Term
	}{
		{"empty", nil},
		{"one", []rdf.Term{ex("a")}},
		{"many", []rdf.Term{ex("a"), str("b"), blank("c"), ex("a")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rdf.NewGraph()
			head := addList(g, "l", tt.items...)
			list, conflicts, err := DecodeList(g, ex("S"), SHIn, head, ElementCheck{})
			require.NoError(t, err)
			assert.Empty(t, conflicts)
			assert.Equal(t, head, list.Head)
			assert.Equal(t, len(tt.items), list.Len())
			if len(tt.items) > 0 {
				assert.Equal(t, tt.items, list.Items)
			}
		})
	}
}

func TestDecodeListMalformed(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *rdf.Graph) rdf.Term
	}{
		{
			name: "head is a literal",
			build: func(*rdf.Graph) rdf.Term {
				return str("x")
			},
		},
		{
			name: "cycle",
			build: func(g *rdf.Graph) rdf.Term {
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFFirst, O: ex("x")})
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFRest, O: blank("b")})
				g.Add(rdf.Triple{S: blank("b"), P: rdf.RDFFirst, O: ex("y")})
				g.Add(rdf.Triple{S: blank("b"), P: rdf.RDFRest, O: blank("a")})
				return blank("a")
			},
		},
		{
			name: "missing first",
			build: func(g *rdf.Graph) rdf.Term {
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFRest, O: rdf.RDFNil})
				return blank("a")
			},
		},
		{
			name: "missing rest",
			build: func(g *rdf.Graph) rdf.Term {
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFFirst, O: ex("x")})
				return blank("a")
			},
		},
		{
			name: "two firsts",
			build: func(g *rdf.Graph) rdf.Term {
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFFirst, O: ex("x")})
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFFirst, O: ex("y")})
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFRest, O: rdf.RDFNil})
				return blank("a")
			},
		},
		{
			name: "two rests",
			build: func(g *rdf.Graph) rdf.Term {
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFFirst, O: ex("x")})
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFRest, O: rdf.RDFNil})
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFRest, O: blank("b")})
				return blank("a")
			},
		},
		{
			name: "rest is a literal",
			build: func(g *rdf.Graph) rdf.Term {
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFFirst, O: ex("x")})
				g.Add(rdf.Triple{S: blank("a"), P: rdf.RDFRest, O: str("nil")})
				return blank("a")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rdf.NewGraph()
			head := tt.build(g)
			_, _, err := DecodeList(g, ex("S"), SHIn, head, ElementCheck{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedList), "got %v", err)

			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, ex("S"), shapeErr.Shape)
			assert.Equal(t, SHIn, shapeErr.Predicate)
		})
	}
}

func TestDecodeListElementChecksReportEachMember(t *testing.T) {
	g := rdf.NewGraph()
	head := addList(g, "l", str("en"), ex("fr"), rdf.NewLiteral("de", rdf.XSDInteger), rdf.NewLangLiteral("it", "it"))

	list, conflicts, err := DecodeList(g, ex("S"), SHLanguageIn, head, languageInCheck)
	require.NoError(t, err)
	assert.Equal(t, 4, list.Len())
	assert.Equal(t, []ErrorCode{ErrCodeWrongTermKind, ErrCodeWrongDatatype, ErrCodeWrongDatatype}, conflictCodes(conflicts))
	for _, c := range conflicts {
		assert.Equal(t, SHLanguageIn, c.Predicate)
		assert.NotNil(t, c.Value)
	}
}
