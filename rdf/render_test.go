package rdf

import (
	"strings"
	"testing"
)

func TestRenderTerm(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{NewIRI("http://example.org/s"), "<http://example.org/s>"},
		{BlankNode{ID: "b0"}, "_:b0"},
		{NewStringLiteral("plain"), `"plain"`},
		{NewLangLiteral("chat", "fr"), `"chat"@fr`},
		{NewLiteral("1", XSDInteger), `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{NewStringLiteral("a \"b\"\n\\"), `"a \"b\"\n\\"`},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := RenderTerm(tt.term); got != tt.want {
			t.Fatalf("RenderTerm(%#v) = %q, want %q", tt.term, got, tt.want)
		}
	}
}

func TestWriteNTriples(t *testing.T) {
	g := NewGraphFromTriples(
		Triple{S: NewIRI("http://example.org/s"), P: RDFType, O: NewIRI("http://example.org/C")},
		Triple{S: NewIRI("http://example.org/s"), P: NewIRI("http://example.org/p"), O: NewStringLiteral("v")},
	)
	var buf strings.Builder
	if err := WriteNTriples(&buf, g); err != nil {
		t.Fatalf("WriteNTriples: %v", err)
	}
	want := "<http://example.org/s> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/C> .\n" +
		"<http://example.org/s> <http://example.org/p> \"v\" .\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
