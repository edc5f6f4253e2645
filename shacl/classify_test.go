package shacl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/shacl-go/rdf"
)

func TestClassify(t *testing.T) {
	path := pred("name")
	tests := []struct {
		name string
		rec  Record
		kind ShapeKind
	}{
		{"empty record", Record{}, KindNode},
		{"targets only", Record{Common: Common{TargetClass: []rdf.Term{ex("C")}, NodeKind: SHIRI}}, KindNode},
		{"closed node", Record{Closed: &Flag{Value: true}, IgnoredProperties: &List{}}, KindNode},
		{"path only", Record{Path: path, PathTerm: ex("name")}, KindProperty},
		{"path with constraints", Record{Path: path, Constraints: Constraints{MinCount: &Bound{Term: integer("1")}}}, KindProperty},
		{"class without path", Record{Constraints: Constraints{Class: []rdf.Term{ex("C")}}}, KindGeneric},
		{"explicit false flag", Record{Constraints: Constraints{UniqueLang: &Flag{Term: rdf.NewLiteral("false", rdf.XSDBoolean)}}}, KindGeneric},
		{"empty in list", Record{Constraints: Constraints{In: &List{Head: rdf.RDFNil}}}, KindGeneric},
		{"name only", Record{Constraints: Constraints{Name: map[string]string{"en": "x"}}}, KindGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rec.ID = ex("S")
			shape := Classify(&tt.rec)
			require.NotNil(t, shape)
			assert.Equal(t, tt.kind, shape.Kind())
			assert.Equal(t, ex("S"), shape.Identity())
		})
	}
}

func TestClassifyKeepsFields(t *testing.T) {
	rec := &Record{
		Common: Common{ID: ex("S"), URI: "http://example.org/S", Message: map[string]string{"default": "m"}},
		Closed: &Flag{Value: true},
		Path:   pred("p"),
		Constraints: Constraints{
			Datatype: rdf.XSDInteger,
			HasValue: []rdf.Term{integer("1")},
		},
	}
	ps, ok := Classify(rec).(*PropertyShape)
	require.True(t, ok)
	assert.Equal(t, rec.Common, ps.Common)
	assert.Equal(t, rec.Constraints, ps.Constraints)
	assert.Same(t, rec.Closed, ps.Closed)

	rec.Path = nil
	gs, ok := Classify(rec).(*GenericShape)
	require.True(t, ok)
	assert.Same(t, rec, gs.Record)
}

func TestShapeKindString(t *testing.T) {
	assert.Equal(t, "node", KindNode.String())
	assert.Equal(t, "property", KindProperty.String())
	assert.Equal(t, "generic", KindGeneric.String())
	assert.Equal(t, "unknown", ShapeKind(0).String())
}

// recordSetters each set one field of a record. Bit i of a fuzzed mask
// applies recordSetters[i].
var recordSetters = []func(*Record){
	func(r *Record) { r.Path = pred("p"); r.PathTerm = ex("p") },
	func(r *Record) { r.TargetClass = []rdf.Term{ex("C")} },
	func(r *Record) { r.NodeKind = SHIRI },
	func(r *Record) { r.Message = map[string]string{DefaultMessageKey: "m"} },
	func(r *Record) { r.Properties = []rdf.Term{ex("P")} },
	func(r *Record) { r.Closed = &Flag{Term: rdf.NewLiteral("false", rdf.XSDBoolean)} },
	func(r *Record) { r.IgnoredProperties = &List{Head: rdf.RDFNil} },
	func(r *Record) { r.Class = []rdf.Term{ex("C")} },
	func(r *Record) { r.Datatype = rdf.XSDString },
	func(r *Record) { r.MinCount = &Bound{Term: integer("0")} },
	func(r *Record) { r.MaxLength = &Bound{Term: integer("3")} },
	func(r *Record) { r.Pattern = str("^a") },
	func(r *Record) { r.LanguageIn = &List{Head: rdf.RDFNil} },
	func(r *Record) { r.Equals = []rdf.Term{ex("q")} },
	func(r *Record) { r.Node = []rdf.Term{ex("N")} },
	func(r *Record) { r.In = &List{Head: rdf.RDFNil} },
	func(r *Record) { r.QualifiedValueShape = ex("Q") },
	func(r *Record) { r.Order = &Bound{Term: integer("1")} },
	func(r *Record) { r.Description = map[string]string{"en": "d"} },
}

// constraintSetters is the index of the first setter touching Constraints.
const constraintSetters = 7

func FuzzClassify(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(1))
	f.Add(uint32(1 << constraintSetters))
	f.Add(uint32(0b1111110))
	f.Add(uint32(1<<len(recordSetters) - 1))

	f.Fuzz(func(t *testing.T, mask uint32) {
		rec := &Record{Common: Common{ID: ex("S")}}
		hasPath, hasConstraint := false, false
		for i, set := range recordSetters {
			if mask&(1<<i) == 0 {
				continue
			}
			set(rec)
			switch {
			case i == 0:
				hasPath = true
			case i >= constraintSetters:
				hasConstraint = true
			}
		}

		shape := Classify(rec)
		if shape == nil {
			t.Fatalf("mask %b: nil shape", mask)
		}
		if shape.Identity() != ex("S") {
			t.Fatalf("mask %b: identity %v", mask, shape.Identity())
		}
		want := KindNode
		switch {
		case hasPath:
			want = KindProperty
		case hasConstraint:
			want = KindGeneric
		}
		if shape.Kind() != want {
			t.Fatalf("mask %b: kind %v, want %v", mask, shape.Kind(), want)
		}
		if g, ok := shape.(*GenericShape); ok && g.Record != rec {
			t.Fatalf("mask %b: generic shape does not wrap the record", mask)
		}
	})
}
