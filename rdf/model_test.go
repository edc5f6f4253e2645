package rdf

import "testing"

func TestTermKindsAndStrings(t *testing.T) {
	iri := IRI{Value: "http://example.org/s"}
	if iri.Kind() != TermIRI {
		t.Fatalf("expected IRI kind")
	}
	if iri.String() != "http://example.org/s" {
		t.Fatalf("unexpected IRI string: %s", iri.String())
	}

	blank := BlankNode{ID: "b1"}
	if blank.Kind() != TermBlankNode {
		t.Fatalf("expected blank node kind")
	}
	if blank.String() != "_:b1" {
		t.Fatalf("unexpected blank node string: %s", blank.String())
	}

	litPlain := Literal{Lexical: "plain"}
	if litPlain.Kind() != TermLiteral {
		t.Fatalf("expected literal kind")
	}
	if litPlain.String() != "\"plain\"" {
		t.Fatalf("unexpected literal string: %s", litPlain.String())
	}

	litLang := NewLangLiteral("hi", "en")
	if litLang.String() != "\"hi\"@en" {
		t.Fatalf("unexpected lang literal: %s", litLang.String())
	}

	litDT := NewLiteral("1", IRI{Value: "http://example.org/int"})
	if litDT.String() != "\"1\"^^<http://example.org/int>" {
		t.Fatalf("unexpected datatype literal: %s", litDT.String())
	}
}

func TestTermKindString(t *testing.T) {
	cases := map[TermKind]string{
		TermIRI:       "IRI",
		TermBlankNode: "blank node",
		TermLiteral:   "literal",
		TermKind(42):  "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("TermKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestEffectiveDatatype(t *testing.T) {
	if dt := (Literal{Lexical: "x"}).EffectiveDatatype(); dt != XSDString {
		t.Fatalf("simple literal datatype = %v", dt)
	}
	if dt := NewLangLiteral("x", "fr").EffectiveDatatype(); dt != RDFLangString {
		t.Fatalf("tagged literal datatype = %v", dt)
	}
	if dt := NewLiteral("1", XSDInteger).EffectiveDatatype(); dt != XSDInteger {
		t.Fatalf("typed literal datatype = %v", dt)
	}
}

func TestIsResource(t *testing.T) {
	if !IsResource(NewIRI("http://example.org/a")) {
		t.Fatal("IRI should be a resource")
	}
	if !IsResource(BlankNode{ID: "b"}) {
		t.Fatal("blank node should be a resource")
	}
	if IsResource(NewStringLiteral("a")) {
		t.Fatal("literal should not be a resource")
	}
	if IsResource(nil) {
		t.Fatal("nil should not be a resource")
	}
}

func TestTripleString(t *testing.T) {
	tr := Triple{
		S: BlankNode{ID: "s"},
		P: NewIRI("http://example.org/p"),
		O: NewStringLiteral("v"),
	}
	want := `_:s <http://example.org/p> "v"`
	if got := tr.String(); got != want {
		t.Fatalf("Triple.String() = %q, want %q", got, want)
	}
}

func TestLiteralIdentity(t *testing.T) {
	a := NewStringLiteral("v")
	b := Literal{Lexical: "v", Datatype: XSDString}
	if a != b {
		t.Fatal("equal literals should compare equal")
	}
	if NewLangLiteral("v", "en") == NewLangLiteral("v", "de") {
		t.Fatal("language tags must distinguish literals")
	}
}
