package rdf

import (
	"errors"
	"testing"
)

var (
	exS  = NewIRI("http://example.org/s")
	exP  = NewIRI("http://example.org/p")
	exQ  = NewIRI("http://example.org/q")
	exO1 = NewIRI("http://example.org/o1")
	exO2 = NewIRI("http://example.org/o2")
)

func TestGraphAddDedupes(t *testing.T) {
	g := NewGraph()
	if !g.Add(Triple{S: exS, P: exP, O: exO1}) {
		t.Fatal("first add should report new")
	}
	if g.Add(Triple{S: exS, P: exP, O: exO1}) {
		t.Fatal("duplicate add should report not new")
	}
	if g.Add(Triple{S: nil, P: exP, O: exO1}) {
		t.Fatal("incomplete triple should be ignored")
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	if !g.Has(Triple{S: exS, P: exP, O: exO1}) {
		t.Fatal("Has should find stored triple")
	}
}

func TestGraphObjectFunctional(t *testing.T) {
	g := NewGraphFromTriples(
		Triple{S: exS, P: exP, O: exO1},
		Triple{S: exS, P: exQ, O: exO1},
		Triple{S: exS, P: exQ, O: exO2},
	)

	obj, err := g.Object(exS, exP)
	if err != nil || obj != exO1 {
		t.Fatalf("Object(p) = %v, %v", obj, err)
	}

	obj, err = g.Object(exO1, exP)
	if err != nil || obj != nil {
		t.Fatalf("Object on unknown subject = %v, %v", obj, err)
	}

	_, err = g.Object(exS, exQ)
	if !errors.Is(err, ErrAmbiguousValue) {
		t.Fatalf("expected ErrAmbiguousValue, got %v", err)
	}
	var ambiguous *AmbiguousValueError
	if !errors.As(err, &ambiguous) || len(ambiguous.Values) != 2 {
		t.Fatalf("expected two ambiguous values, got %v", err)
	}
	if Code(err) != ErrCodeAmbiguousValue {
		t.Fatalf("Code() = %s", Code(err))
	}
}

func TestGraphInsertionOrder(t *testing.T) {
	g := NewGraphFromTriples(
		Triple{S: exO2, P: exP, O: exS},
		Triple{S: exS, P: exQ, O: exO2},
		Triple{S: exS, P: exP, O: exO1},
		Triple{S: exS, P: exP, O: exO2},
	)
	subjects := g.Subjects()
	if len(subjects) != 2 || subjects[0] != exO2 || subjects[1] != exS {
		t.Fatalf("unexpected subject order: %v", subjects)
	}
	preds := g.Predicates(exS)
	if len(preds) != 2 || preds[0] != exQ || preds[1] != exP {
		t.Fatalf("unexpected predicate order: %v", preds)
	}
	objs := g.Objects(exS, exP)
	if len(objs) != 2 || objs[0] != exO1 || objs[1] != exO2 {
		t.Fatalf("unexpected object order: %v", objs)
	}
}

func TestGraphSubjectsWithAndIncoming(t *testing.T) {
	other := NewIRI("http://example.org/other")
	g := NewGraphFromTriples(
		Triple{S: exS, P: RDFType, O: exO1},
		Triple{S: other, P: RDFType, O: exO2},
		Triple{S: other, P: exP, O: exS},
	)

	if got := g.SubjectsWith(RDFType, nil); len(got) != 2 {
		t.Fatalf("SubjectsWith(any) = %v", got)
	}
	if got := g.SubjectsWith(RDFType, exO2); len(got) != 1 || got[0] != other {
		t.Fatalf("SubjectsWith(o2) = %v", got)
	}
	if !g.HasIncoming(exS) {
		t.Fatal("s is referenced by other")
	}
	if g.HasIncoming(other) {
		t.Fatal("other is never an object")
	}
	if !g.HasIncomingVia(exS, exQ, exP) {
		t.Fatal("s is referenced via p")
	}
	if g.HasIncomingVia(exS, exQ) {
		t.Fatal("s is not referenced via q")
	}
	if !g.HasSubject(other) || g.HasSubject(exO1) {
		t.Fatal("HasSubject mismatch")
	}
}

func TestGraphReturnsCopies(t *testing.T) {
	g := NewGraphFromTriples(Triple{S: exS, P: exP, O: exO1})
	objs := g.Objects(exS, exP)
	objs[0] = exO2
	if again := g.Objects(exS, exP); again[0] != exO1 {
		t.Fatal("Objects must not expose internal storage")
	}
	triples := g.Triples()
	triples[0].O = exO2
	if !g.Has(Triple{S: exS, P: exP, O: exO1}) {
		t.Fatal("Triples must not expose internal storage")
	}
}
