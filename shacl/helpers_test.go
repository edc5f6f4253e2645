package shacl

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/shacl-go/rdf"
)

const turtlePrefixes = `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
`

func loadTurtle(t testing.TB, body string) *rdf.Graph {
	t.Helper()
	g, err := rdf.Load(context.Background(), strings.NewReader(turtlePrefixes+body), rdf.FormatTurtle)
	require.NoError(t, err)
	return g
}

func ex(local string) rdf.IRI { return rdf.IRI{Value: "http://example.org/" + local} }

func blank(id string) rdf.BlankNode { return rdf.BlankNode{ID: id} }

func integer(n string) rdf.Literal { return rdf.NewLiteral(n, rdf.XSDInteger) }

func str(s string) rdf.Literal { return rdf.NewStringLiteral(s) }

// addList adds an RDF list of items to g using blank nodes named
// prefix0, prefix1, ... and returns its head.
func addList(g *rdf.Graph, prefix string, items ...rdf.Term) rdf.Term {
	if len(items) == 0 {
		return rdf.RDFNil
	}
	nodes := make([]rdf.Term, len(items))
	for i := range items {
		nodes[i] = blank(prefix + string(rune('0'+i)))
	}
	for i, item := range items {
		g.Add(rdf.Triple{S: nodes[i], P: rdf.RDFFirst, O: item})
		var rest rdf.Term = rdf.RDFNil
		if i+1 < len(items) {
			rest = nodes[i+1]
		}
		g.Add(rdf.Triple{S: nodes[i], P: rdf.RDFRest, O: rest})
	}
	return nodes[0]
}

var ratComparer = cmp.Comparer(func(a, b *big.Rat) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

func conflictCodes(conflicts []Conflict) []ErrorCode {
	codes := make([]ErrorCode, len(conflicts))
	for i, c := range conflicts {
		codes[i] = c.Code
	}
	return codes
}
