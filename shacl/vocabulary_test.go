package shacl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/shacl-go/rdf"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		in   string
		want rdf.IRI
		ok   bool
	}{
		{"minCont", SHMinCount, true},
		{"maxcount", SHMaxCount, true},
		{"targetClas", SHTargetClass, true},
		{"qualifiedValueShapesDisjoin", SHQualifiedValueShapesDisjoint, true},
		{"somethingEntirelyDifferent", rdf.IRI{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Suggest(sh(tt.in))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestVocabularyMembership(t *testing.T) {
	assert.True(t, IsKnown(SHPath))
	assert.True(t, IsKnown(SHQualifiedMaxCount))
	assert.False(t, IsKnown(SHSPARQL))
	assert.False(t, IsKnown(ex("path")))
	assert.True(t, InNamespace(SHSPARQL))
	assert.False(t, InNamespace(rdf.RDFType))
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "sh:minCount", Prefixed(SHMinCount))
	assert.Equal(t, "<http://example.org/a>", Prefixed(ex("a")))
	assert.Equal(t, `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`, Prefixed(integer("1")))
}

func TestShapeError(t *testing.T) {
	err := newShapeError(ErrCodeMalformedList, ex("S"), SHIn, "list node %s has no rdf:first", "_:b0")
	assert.Equal(t, "shacl: shape <http://example.org/S> sh:in: MALFORMED_LIST: list node _:b0 has no rdf:first", err.Error())
	assert.True(t, errors.Is(err, ErrMalformedList))
	assert.False(t, errors.Is(err, ErrInvalidPath))

	wrapped := fmt.Errorf("loading shapes: %w", err)
	assert.Equal(t, ErrCodeMalformedList, Code(wrapped))
	assert.True(t, errors.Is(wrapped, ErrMalformedList))

	noPredicate := &ShapeError{Code: ErrCodeInvalidPath, Shape: blank("p")}
	assert.Equal(t, "shacl: shape _:p: INVALID_PATH", noPredicate.Error())

	assert.Equal(t, ErrorCode(""), Code(nil))
	assert.Equal(t, ErrorCode(""), Code(errors.New("other")))
}

func TestConflictString(t *testing.T) {
	c := Conflict{Code: ErrCodeWrongTermKind, Shape: ex("S"), Predicate: SHClass, Message: `"A" is a literal, expected IRI`}
	require.Equal(t, `WRONG_TERM_KIND <http://example.org/S> sh:class: "A" is a literal, expected IRI`, c.String())
}
